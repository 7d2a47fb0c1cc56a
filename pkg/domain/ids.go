package domain

import (
	"github.com/google/uuid"

	dErrors "mintgate/pkg/domain-errors"
)

// ConsentID identifies a single consent record in the ledger.
// Invariant: always a valid UUID; construct via NewConsentID or ParseConsentID.
type ConsentID uuid.UUID

// NewConsentID generates a fresh random consent ID.
func NewConsentID() ConsentID {
	return ConsentID(uuid.New())
}

// ParseConsentID constructs a ConsentID from external input.
//
// Errors: returns CodeInvalidInput when the value is empty, not a UUID, or the
// nil UUID.
func ParseConsentID(s string) (ConsentID, error) {
	if s == "" {
		return ConsentID{}, dErrors.New(dErrors.CodeInvalidInput, "consent id cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return ConsentID{}, dErrors.New(dErrors.CodeInvalidInput, "invalid consent id")
	}
	if u == uuid.Nil {
		return ConsentID{}, dErrors.New(dErrors.CodeInvalidInput, "consent id cannot be nil")
	}
	return ConsentID(u), nil
}

func (c ConsentID) String() string {
	return uuid.UUID(c).String()
}

// IsZero reports whether the ID is the zero UUID.
func (c ConsentID) IsZero() bool {
	return uuid.UUID(c) == uuid.Nil
}

func (c ConsentID) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *ConsentID) UnmarshalText(data []byte) error {
	u, err := uuid.Parse(string(data))
	if err != nil {
		return err
	}
	*c = ConsentID(u)
	return nil
}
