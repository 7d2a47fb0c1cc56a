package handler

import (
	"strings"

	"mintgate/pkg/domain"
	dErrors "mintgate/pkg/domain-errors"
)

// GrantRequest is the HTTP request body for POST /consent.
type GrantRequest struct {
	Type           string   `json:"type"`
	Purposes       []string `json:"purposes"`
	DataCategories []string `json:"data_categories,omitempty"`

	// Parsed values (populated by Validate)
	parsedType       domain.ConsentType
	parsedPurposes   []domain.ConsentPurpose
	parsedCategories []domain.DataCategory
}

// Validate validates and parses the request.
func (r *GrantRequest) Validate() error {
	consentType, err := domain.ParseConsentType(strings.TrimSpace(r.Type))
	if err != nil {
		return err
	}
	r.parsedType = consentType

	if len(r.Purposes) == 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "at least one purpose is required")
	}
	r.parsedPurposes = make([]domain.ConsentPurpose, 0, len(r.Purposes))
	for _, raw := range r.Purposes {
		purpose, err := domain.ParseConsentPurpose(strings.TrimSpace(raw))
		if err != nil {
			return err
		}
		r.parsedPurposes = append(r.parsedPurposes, purpose)
	}

	r.parsedCategories = make([]domain.DataCategory, 0, len(r.DataCategories))
	for _, raw := range r.DataCategories {
		category, err := domain.ParseDataCategory(strings.TrimSpace(raw))
		if err != nil {
			return err
		}
		r.parsedCategories = append(r.parsedCategories, category)
	}

	return nil
}

// ParsedType returns the validated consent type.
func (r *GrantRequest) ParsedType() domain.ConsentType {
	return r.parsedType
}

// ParsedPurposes returns the validated purposes.
func (r *GrantRequest) ParsedPurposes() []domain.ConsentPurpose {
	return r.parsedPurposes
}

// ParsedCategories returns the validated data categories.
func (r *GrantRequest) ParsedCategories() []domain.DataCategory {
	return r.parsedCategories
}

// RevokeRequest is the HTTP request body for POST /consent/revoke.
type RevokeRequest struct {
	ID string `json:"id"`

	parsedID domain.ConsentID
}

// Validate validates and parses the request.
func (r *RevokeRequest) Validate() error {
	id, err := domain.ParseConsentID(strings.TrimSpace(r.ID))
	if err != nil {
		return err
	}
	r.parsedID = id
	return nil
}

// ParsedID returns the validated consent record ID.
func (r *RevokeRequest) ParsedID() domain.ConsentID {
	return r.parsedID
}
