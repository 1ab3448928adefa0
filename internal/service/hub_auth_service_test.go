package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/tutorboard-api/internal/models"
	"github.com/noah-isme/tutorboard-api/pkg/config"
	appErrors "github.com/noah-isme/tutorboard-api/pkg/errors"
)

const hubTestSecret = "hub-test-secret"

func newHubAuthFixture() *HubAuthService {
	return NewHubAuthService(config.HubConfig{
		JWTSecret: hubTestSecret,
		Issuer:    "memberhub",
		Leeway:    30 * time.Second,
	}, zap.NewNop())
}

func signHubToken(t *testing.T, secret string, method jwt.SigningMethod, claims models.HubClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func hubClaims(userID string) models.HubClaims {
	return models.HubClaims{
		UserID:   userID,
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "memberhub",
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestHubAuthServiceValidatesToken(t *testing.T) {
	svc := newHubAuthFixture()
	token := signHubToken(t, hubTestSecret, jwt.SigningMethodHS256, hubClaims("memberhub-42"))

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "memberhub-42", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestHubAuthServiceUserIDFallsBackToSubject(t *testing.T) {
	svc := newHubAuthFixture()
	claims := hubClaims("memberhub-42")
	claims.UserID = ""
	token := signHubToken(t, hubTestSecret, jwt.SigningMethodHS256, claims)

	parsed, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "memberhub-42", parsed.UserID)
}

func TestHubAuthServiceRejectsMissingUserID(t *testing.T) {
	svc := newHubAuthFixture()
	claims := hubClaims("memberhub-42")
	claims.UserID = ""
	claims.Subject = ""
	token := signHubToken(t, hubTestSecret, jwt.SigningMethodHS256, claims)

	_, err := svc.ValidateToken(token)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}

func TestHubAuthServiceRejectsWrongSecret(t *testing.T) {
	svc := newHubAuthFixture()
	token := signHubToken(t, "not-the-hub-secret", jwt.SigningMethodHS256, hubClaims("memberhub-42"))

	_, err := svc.ValidateToken(token)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}

func TestHubAuthServiceRejectsWrongMethod(t *testing.T) {
	svc := newHubAuthFixture()
	token := signHubToken(t, hubTestSecret, jwt.SigningMethodHS384, hubClaims("memberhub-42"))

	_, err := svc.ValidateToken(token)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}

func TestHubAuthServiceRejectsWrongIssuer(t *testing.T) {
	svc := newHubAuthFixture()
	claims := hubClaims("memberhub-42")
	claims.Issuer = "someone-else"
	token := signHubToken(t, hubTestSecret, jwt.SigningMethodHS256, claims)

	_, err := svc.ValidateToken(token)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}

func TestHubAuthServiceRejectsExpiredToken(t *testing.T) {
	svc := newHubAuthFixture()
	claims := hubClaims("memberhub-42")
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-2 * time.Minute))
	token := signHubToken(t, hubTestSecret, jwt.SigningMethodHS256, claims)

	_, err := svc.ValidateToken(token)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}
