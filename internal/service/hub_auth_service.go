package service

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/tutorboard-api/internal/models"
	"github.com/noah-isme/tutorboard-api/pkg/config"
	appErrors "github.com/noah-isme/tutorboard-api/pkg/errors"
)

// HubAuthService verifies hub-issued SSO access tokens. This service never
// mints tokens; the hub is the only issuer.
type HubAuthService struct {
	cfg    config.HubConfig
	logger *zap.Logger
}

// NewHubAuthService constructs a HubAuthService.
func NewHubAuthService(cfg config.HubConfig, logger *zap.Logger) *HubAuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HubAuthService{cfg: cfg, logger: logger}
}

// ValidateToken parses and verifies a hub access token and returns its
// claims. The hub member id must be present in the subject or user_id claim.
func (s *HubAuthService) ValidateToken(tokenString string) (*models.HubClaims, error) {
	options := []jwt.ParserOption{jwt.WithLeeway(s.cfg.Leeway)}
	if s.cfg.Issuer != "" {
		options = append(options, jwt.WithIssuer(s.cfg.Issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &models.HubClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	}, options...)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.HubClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	if claims.UserID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "token missing hub user id")
	}
	return claims, nil
}
