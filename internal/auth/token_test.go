package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobclip/internal/auth"
	"jobclip/internal/config"
	"jobclip/internal/domain"
)

func newService(expiry time.Duration) *auth.TokenService {
	return auth.NewTokenService(&config.JWTConfig{Secret: "test-secret", Issuer: "jobclip", TokenExpiry: expiry})
}

func TestIssueAndValidate(t *testing.T) {
	svc := newService(time.Hour)

	token, expiresAt, err := svc.Issue("me@example.com", "chrome")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", claims.Subject)
	assert.Equal(t, "chrome", claims.Client)
}

func TestIssue_NoExpiry(t *testing.T) {
	svc := newService(0)

	token, expiresAt, err := svc.Issue("cli", "")
	require.NoError(t, err)
	assert.True(t, expiresAt.IsZero())

	_, err = svc.Validate(token)
	assert.NoError(t, err)
}

func TestValidate_WrongSecret(t *testing.T) {
	token, _, err := newService(time.Hour).Issue("me", "")
	require.NoError(t, err)

	other := auth.NewTokenService(&config.JWTConfig{Secret: "other", Issuer: "jobclip", TokenExpiry: time.Hour})
	_, err = other.Validate(token)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestValidate_Expired(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "me",
		Issuer:    "jobclip",
		Audience:  jwt.ClaimStrings{"extension"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = newService(time.Hour).Validate(token)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestValidate_WrongAudience(t *testing.T) {
	claims := jwt.RegisteredClaims{Subject: "me", Issuer: "jobclip", Audience: jwt.ClaimStrings{"access"}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = newService(time.Hour).Validate(token)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestValidate_Garbage(t *testing.T) {
	_, err := newService(time.Hour).Validate("not-a-token")

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
