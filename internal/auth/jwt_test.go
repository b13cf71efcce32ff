package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager("unit-test-secret")

	token, err := manager.Generate(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := manager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a").Generate(42)
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b").Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := NewTokenManager("unit-test-secret").Validate("not.a.token")
	assert.Error(t, err)
}
