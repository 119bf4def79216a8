package handlers

import (
	"errors"
	"time"

	apperrors "emiverify/internal/errors"
	"emiverify/internal/models"
	"emiverify/internal/services/auth"
	"emiverify/internal/services/user"
	"emiverify/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const refreshCookie = "refresh_token"

type AuthHandler struct {
	authService   auth.Service
	userService   user.Service
	refreshTTL    time.Duration
	secureCookies bool
}

func NewAuthHandler(authService auth.Service, userService user.Service, refreshTTL time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		userService:   userService,
		refreshTTL:    refreshTTL,
		secureCookies: secureCookies,
	}
}

// Signup creates an unverified account and emails a verification code
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var input models.SignupInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	u, err := h.authService.Signup(c.UserContext(), input)
	if err != nil {
		return err
	}

	return utils.Created(c, "Account created successfully. Please check your email for the verification code.", fiber.Map{
		"user":                  u.Profile(),
		"requires_verification": true,
	})
}

// VerifyEmail activates an account with the emailed code
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var input models.VerifyEmailInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	u, err := h.authService.VerifyEmail(c.UserContext(), input)
	if err != nil {
		return err
	}

	return utils.Success(c, "Email verified successfully. You can now log in.", fiber.Map{
		"user": u.Profile(),
	})
}

// ResendVerification issues a fresh verification code
func (h *AuthHandler) ResendVerification(c *fiber.Ctx) error {
	var input models.EmailInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	if err := h.authService.ResendVerification(c.UserContext(), input); err != nil {
		return err
	}
	return utils.Success(c, "Verification code sent successfully. Please check your email.", nil)
}

// Login handles user authentication and returns JWT tokens
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input models.LoginInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	result, err := h.authService.Login(c.UserContext(), input)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailNotVerified) {
			return utils.Respond(c, fiber.StatusUnauthorized, utils.Envelope{
				Success: false,
				Error:   apperrors.ErrEmailNotVerified.Message,
				Code:    apperrors.ErrEmailNotVerified.Code,
				Data: fiber.Map{
					"requires_verification": true,
					"email":                 input.Email,
				},
			})
		}
		return err
	}

	h.setRefreshCookie(c, result.Tokens.RefreshToken)
	return utils.Success(c, "Login successful", result)
}

// RefreshToken exchanges a refresh token from the cookie or the body for a new pair
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	refreshToken := c.Cookies(refreshCookie)
	if refreshToken == "" {
		var input models.RefreshInput
		if err := parseBody(c, &input); err != nil {
			return apperrors.ErrMissingToken
		}
		refreshToken = input.RefreshToken
	}
	if refreshToken == "" {
		return apperrors.ErrMissingToken
	}

	pair, err := h.authService.RefreshTokens(c.UserContext(), refreshToken)
	if err != nil {
		return err
	}

	h.setRefreshCookie(c, pair.RefreshToken)
	return utils.Success(c, "Token refreshed", fiber.Map{"tokens": pair})
}

// Logout revokes every token of the current user
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return err
	}

	if err := h.authService.Logout(c.UserContext(), claims.UserID); err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     refreshCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.secureCookies,
		Path:     "/api/auth",
	})
	return utils.Success(c, "Logged out successfully", nil)
}

// ForgotPassword always reports success
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var input models.EmailInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	if err := h.authService.ForgotPassword(c.UserContext(), input); err != nil {
		return err
	}
	return utils.Success(c, "If an account with that email exists, a password reset link has been sent.", nil)
}

// ResetPassword sets a new password with a reset token
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var input models.ResetPasswordInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	if err := h.authService.ResetPassword(c.UserContext(), input); err != nil {
		return err
	}
	return utils.Success(c, "Password reset successfully. Please log in with your new password.", nil)
}

// ChangePassword handles password change requests
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return err
	}

	var input models.ChangePasswordInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	if err := h.authService.ChangePassword(c.UserContext(), claims.UserID, input); err != nil {
		return err
	}
	return utils.Success(c, "Password changed successfully. Please log in again.", nil)
}

func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return err
	}

	profile, err := h.userService.GetProfile(c.UserContext(), claims.UserID)
	if err != nil {
		return err
	}
	return utils.Success(c, "", fiber.Map{"user": profile})
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return err
	}

	var input models.UpdateProfileInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	profile, err := h.userService.UpdateProfile(c.UserContext(), claims.UserID, input)
	if err != nil {
		return err
	}
	return utils.Success(c, "Profile updated successfully", fiber.Map{"user": profile})
}

func (h *AuthHandler) setRefreshCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookie,
		Value:    token,
		Expires:  time.Now().Add(h.refreshTTL),
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/api/auth",
	})
}
