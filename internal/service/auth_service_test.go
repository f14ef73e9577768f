package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookforge/internal/config"
)

func testAuthService() *AuthService {
	return NewAuthService(&config.ServerConfig{
		AuthorUsername: "author",
		AuthorPassword: "pw",
		JWTSecret:      "test-secret",
	})
}

func TestLoginSuccess(t *testing.T) {
	svc := testAuthService()

	resp, err := svc.Login("author", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Contains(t, resp.AuthorID, "author_")
}

func TestLoginAuthorIDStableAcrossSessions(t *testing.T) {
	svc := testAuthService()

	first, err := svc.Login("author", "pw")
	require.NoError(t, err)
	second, err := svc.Login("author", "pw")
	require.NoError(t, err)

	assert.Equal(t, first.AuthorID, second.AuthorID)
	assert.Equal(t, AuthorIDFor("author"), first.AuthorID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := testAuthService()

	_, err := svc.Login("author", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("someone", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRoundTrip(t *testing.T) {
	svc := testAuthService()

	resp, err := svc.Login("author", "pw")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.AuthorID, claims.AuthorID)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := testAuthService()

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	svc := testAuthService()
	other := NewAuthService(&config.ServerConfig{
		AuthorUsername: "author",
		AuthorPassword: "pw",
		JWTSecret:      "different-secret",
	})

	resp, err := other.Login("author", "pw")
	require.NoError(t, err)

	_, err = svc.ValidateToken(resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
