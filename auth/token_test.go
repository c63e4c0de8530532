package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopora/storefront-api/models"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := models.User{ID: 42, Role: models.RoleMerchant}
	token, err := IssueToken(user)
	require.NoError(t, err)

	id, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := IssueToken(models.User{ID: 1})
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "another-secret")
	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	_, err := ParseToken("not-a-token")
	assert.Error(t, err)
}
