package consent

import (
	"time"

	"mintgate/pkg/domain"
)

// Record captures a subject's decision to allow biometric data processing for
// a set of purposes. Records are immutable once written; revocation removes
// them from the ledger rather than flipping a flag.
type Record struct {
	ID             domain.ConsentID        `json:"id"`
	Subject        string                  `json:"subject"`
	Type           domain.ConsentType      `json:"type"`
	Granted        bool                    `json:"granted"`
	GrantedAt      time.Time               `json:"granted_at"`
	ExpiresAt      *time.Time              `json:"expires_at,omitempty"`
	Purposes       []domain.ConsentPurpose `json:"purposes"`
	DataCategories []domain.DataCategory   `json:"data_categories"`
}

// IsValidFor reports whether the record authorizes processing for the subject
// and purpose at the given instant. Validity requires: subject match, granted,
// purpose bound to the record, and no expiry or an expiry in the future.
func (r Record) IsValidFor(subject string, purpose domain.ConsentPurpose, now time.Time) bool {
	if r.Subject != subject || !r.Granted {
		return false
	}
	if r.ExpiresAt != nil && !r.ExpiresAt.After(now) {
		return false
	}
	for _, p := range r.Purposes {
		if p == purpose {
			return true
		}
	}
	return false
}
