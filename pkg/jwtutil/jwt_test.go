package jwtutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidate(t *testing.T) {
	codec := NewCodec("test-secret", 7*24*time.Hour)

	token, err := codec.Issue("user-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := codec.ParseAndValidate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestValidateExpired(t *testing.T) {
	codec := NewCodec("test-secret", -time.Minute)

	token, err := codec.Issue("user-1")
	require.NoError(t, err)

	_, err = codec.ParseAndValidate(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateWrongSecret(t *testing.T) {
	issuer := NewCodec("secret-a", time.Hour)
	verifier := NewCodec("secret-b", time.Hour)

	token, err := issuer.Issue("user-1")
	require.NoError(t, err)

	_, err = verifier.ParseAndValidate(token)
	assert.ErrorIs(t, err, ErrTokenSignature)
}

func TestValidateMalformed(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)

	_, err := codec.ParseAndValidate("not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestValidateMissing(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)

	_, err := codec.ParseAndValidate("")
	assert.ErrorIs(t, err, ErrTokenMissing)
}
