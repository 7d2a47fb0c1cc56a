package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	t.Run("direct error", func(t *testing.T) {
		err := New(CodeMissingConsent, "consent not granted")
		assert.True(t, HasCode(err, CodeMissingConsent))
		assert.False(t, HasCode(err, CodeNotFound))
	})

	t.Run("wrapped in fmt chain", func(t *testing.T) {
		err := fmt.Errorf("evaluate: %w", New(CodeTimeout, "deadline exceeded"))
		assert.True(t, HasCode(err, CodeTimeout))
	})

	t.Run("non-domain error", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
	})
}

func TestWrap(t *testing.T) {
	t.Run("nil cause yields nil", func(t *testing.T) {
		require.NoError(t, Wrap(nil, CodeInternal, "ignored"))
	})

	t.Run("cause stays unwrappable", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := Wrap(cause, CodeUnavailable, "store unreachable")
		assert.True(t, errors.Is(err, cause))
		assert.Equal(t, CodeUnavailable, CodeOf(err))
		assert.Contains(t, err.Error(), "store unreachable")
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeBadRequest, CodeOf(New(CodeBadRequest, "bad body")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
}
