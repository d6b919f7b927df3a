package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/shantum/COH-ERP2-sub002/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID       uuid.UUID
	Role         enums.AdminRole
	TokenVersion int
	JTI          string
}

// AccessTokenClaims is the typed JWT issued to back-office clients.
// TokenVersion must still match the user row when the token is presented;
// role or permission changes bump the stored version and orphan old tokens.
type AccessTokenClaims struct {
	UserID       uuid.UUID       `json:"user_id"`
	Role         enums.AdminRole `json:"role"`
	TokenVersion int             `json:"token_version"`
	jwt.RegisteredClaims
}
