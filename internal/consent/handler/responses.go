package handler

import (
	"time"

	"mintgate/internal/consent"
)

// RecordResponse is the HTTP representation of a consent record.
type RecordResponse struct {
	ID             string     `json:"id"`
	Type           string     `json:"type"`
	Granted        bool       `json:"granted"`
	GrantedAt      time.Time  `json:"granted_at"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	Purposes       []string   `json:"purposes"`
	DataCategories []string   `json:"data_categories,omitempty"`
}

// ListResponse is the HTTP response for GET /consent.
type ListResponse struct {
	Records []RecordResponse `json:"records"`
}

// ValidityResponse is the HTTP response for GET /consent/valid.
type ValidityResponse struct {
	Purpose string `json:"purpose"`
	Valid   bool   `json:"valid"`
}

// FromRecord converts a ledger record to an HTTP response.
func FromRecord(record consent.Record) RecordResponse {
	purposes := make([]string, len(record.Purposes))
	for i, p := range record.Purposes {
		purposes[i] = p.String()
	}
	categories := make([]string, len(record.DataCategories))
	for i, c := range record.DataCategories {
		categories[i] = c.String()
	}
	return RecordResponse{
		ID:             record.ID.String(),
		Type:           record.Type.String(),
		Granted:        record.Granted,
		GrantedAt:      record.GrantedAt,
		ExpiresAt:      record.ExpiresAt,
		Purposes:       purposes,
		DataCategories: categories,
	}
}
