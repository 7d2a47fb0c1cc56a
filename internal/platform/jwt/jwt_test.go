package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidate(t *testing.T) {
	v := NewValidator("test-signing-key")

	token, err := v.IssueToken("artist-42", time.Minute)
	require.NoError(t, err)

	claims, err := v.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "artist-42", claims.Subject)
}

func TestValidateRejectsExpired(t *testing.T) {
	v := NewValidator("test-signing-key")

	token, err := v.IssueToken("artist-42", -time.Minute)
	require.NoError(t, err)

	_, err = v.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsWrongKey(t *testing.T) {
	token, err := NewValidator("key-a").IssueToken("artist-42", time.Minute)
	require.NoError(t, err)

	_, err = NewValidator("key-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestIssueRequiresSubject(t *testing.T) {
	_, err := NewValidator("k").IssueToken("", time.Minute)
	assert.Error(t, err)
}
