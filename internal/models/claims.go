package models

import "github.com/golang-jwt/jwt/v5"

// Token types carried in the typ claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	TokenType    string `json:"typ"`
	TokenVersion int    `json:"token_version"`
}

// IsRefresh reports whether the claims belong to a refresh token.
func (c *UserClaims) IsRefresh() bool {
	return c.TokenType == TokenTypeRefresh
}
