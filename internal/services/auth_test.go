package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testTokenService(ttl time.Duration) TokenService {
	return TokenService{
		Secret: []byte("test-secret"),
		Issuer: "championsite",
		TTL:    ttl,
	}
}

func TestIssueVerifyRoundtrip(t *testing.T) {
	tokens := testTokenService(time.Hour)
	identity := Identity{ID: "admin-1", Email: "pastor@example.org", Role: RoleSuperAdmin}

	signed, expiresAt, err := tokens.Issue(identity)
	require.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.Greater(t, expiresAt, time.Now().Unix())

	got, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, identity, got)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	tokens := testTokenService(-time.Minute)
	signed, _, err := tokens.Issue(Identity{ID: "admin-1", Role: RoleAdmin})
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	assert.Error(t, err)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	tokens := testTokenService(time.Hour)
	signed, _, err := tokens.Issue(Identity{ID: "admin-1", Role: RoleAdmin})
	require.NoError(t, err)

	other := tokens
	other.Secret = []byte("different-secret")
	_, err = other.Verify(signed)
	assert.Error(t, err)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	tokens := testTokenService(time.Hour)
	signed, _, err := tokens.Issue(Identity{ID: "admin-1", Role: RoleAdmin})
	require.NoError(t, err)

	other := tokens
	other.Issuer = "someone-else"
	_, err = other.Verify(signed)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tokens := testTokenService(time.Hour)
	_, err := tokens.Verify("not-a-token")
	assert.Error(t, err)
}

func TestHashAndVerifyPassword(t *testing.T) {
	tokens := testTokenService(time.Hour)
	hash, err := tokens.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")

	assert.True(t, tokens.VerifyPassword("correct horse battery staple", hash))
	assert.False(t, tokens.VerifyPassword("wrong password", hash))
}

func TestVerifyPasswordBcryptFallback(t *testing.T) {
	tokens := testTokenService(time.Hour)
	legacy, err := bcrypt.GenerateFromPassword([]byte("legacy-password"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, tokens.VerifyPassword("legacy-password", string(legacy)))
	assert.False(t, tokens.VerifyPassword("wrong", string(legacy)))
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	tokens := testTokenService(time.Hour)
	assert.False(t, tokens.VerifyPassword("anything", "$argon2id$broken"))
}
