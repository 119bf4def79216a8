// Package middleware provides HTTP middleware components for the application.
package middleware

import (
	"context"
	"strings"

	apperrors "emiverify/internal/errors"
	"emiverify/internal/logger"
	"emiverify/internal/models"
	"emiverify/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// Authenticator validates an access token and returns its claims.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*models.UserClaims, error)
}

// AuthMiddleware handles JWT token validation and user authentication.
type AuthMiddleware struct {
	auth Authenticator
}

func NewAuthMiddleware(auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// Handler requires a Bearer access token whose version matches the user's
// current token version, and stores the claims in the request context.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.ErrMissingToken
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return apperrors.ErrInvalidToken.WithMessage("invalid authorization format")
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

	claims, err := m.auth.Authenticate(c.UserContext(), tokenString)
	if err != nil {
		logger.WithContext(c.UserContext()).Info("authentication failed", "error", err)
		return err
	}

	c.Locals(utils.ClaimsKey, claims)
	c.SetUserContext(logger.WithUserID(c.UserContext(), claims.UserID))
	return c.Next()
}
