package models

import "github.com/golang-jwt/jwt/v5"

// HubClaims is the payload of hub-issued SSO access tokens. The hub member id
// in Subject (mirrored in UserID) is the only trusted caller identity.
type HubClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}
