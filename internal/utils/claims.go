package utils

import (
	apperrors "emiverify/internal/errors"
	"emiverify/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ClaimsKey is the fiber.Locals key the auth middleware stores claims under.
const ClaimsKey = "claims"

// GetUserClaims extracts the user claims from the Fiber context.
func GetUserClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals(ClaimsKey).(*models.UserClaims)
	if !ok || claims == nil {
		return nil, apperrors.ErrMissingToken
	}
	return claims, nil
}
