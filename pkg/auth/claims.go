package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenPayload captures the data available when minting a JWT.
// Production tokens come from the external identity provider; minting is used
// by local tooling and tests.
type AccessTokenPayload struct {
	ExternalAuthID string
	Email          string
	DisplayName    string
	JTI            string
}

// AccessTokenClaims represents the typed JWT presented by clients.
type AccessTokenClaims struct {
	ExternalAuthID string `json:"external_auth_id"`
	Email          string `json:"email"`
	DisplayName    string `json:"display_name,omitempty"`
	jwt.RegisteredClaims
}
