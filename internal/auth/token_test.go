package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enpl/fieldops-console/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("unit-test-secret", 5)

	token, exp, err := tm.GenerateToken(42, "ravi", domain.RoleManager)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), exp, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ravi", claims.Username)
	assert.Equal(t, domain.RoleManager, claims.Role)

	accountID, err := claims.AccountID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), accountID)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", 5)
	verifier := NewTokenManager("secret-b", 5)

	token, _, err := issuer.GenerateToken(1, "ravi", domain.RoleAdmin)
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("unit-test-secret", 5)

	_, err := tm.ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestTokenManagerDefaultsTTL(t *testing.T) {
	tm := NewTokenManager("unit-test-secret", 0)

	_, exp, err := tm.GenerateToken(1, "ravi", domain.RoleAdmin)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.NoError(t, ComparePassword(hash, "s3cret"))
	assert.Error(t, ComparePassword(hash, "wrong"))
}
