package consent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mintgate/pkg/domain"
)

func TestRecordIsValidFor(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	base := Record{
		ID:        domain.NewConsentID(),
		Subject:   "artist-1",
		Type:      domain.ConsentTypeNFTMetadata,
		Granted:   true,
		GrantedAt: now.Add(-time.Hour),
		Purposes:  []domain.ConsentPurpose{domain.ConsentPurposeCreation},
	}

	t.Run("no expiration is valid indefinitely", func(t *testing.T) {
		r := base
		r.ExpiresAt = nil
		assert.True(t, r.IsValidFor("artist-1", domain.ConsentPurposeCreation, now))
		assert.True(t, r.IsValidFor("artist-1", domain.ConsentPurposeCreation, now.AddDate(50, 0, 0)))
	})

	t.Run("past expiration is never valid even when granted", func(t *testing.T) {
		expired := now.Add(-time.Minute)
		r := base
		r.ExpiresAt = &expired
		assert.True(t, r.Granted)
		assert.False(t, r.IsValidFor("artist-1", domain.ConsentPurposeCreation, now))
	})

	t.Run("expiration exactly now is invalid", func(t *testing.T) {
		at := now
		r := base
		r.ExpiresAt = &at
		assert.False(t, r.IsValidFor("artist-1", domain.ConsentPurposeCreation, now))
	})

	t.Run("not granted is invalid", func(t *testing.T) {
		r := base
		r.Granted = false
		assert.False(t, r.IsValidFor("artist-1", domain.ConsentPurposeCreation, now))
	})

	t.Run("purpose must be bound to the record", func(t *testing.T) {
		assert.False(t, base.IsValidFor("artist-1", domain.ConsentPurposeResearch, now))
	})

	t.Run("subject must match", func(t *testing.T) {
		assert.False(t, base.IsValidFor("artist-2", domain.ConsentPurposeCreation, now))
	})
}
