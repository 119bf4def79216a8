package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "emiverify/internal/errors"
	"emiverify/internal/models"
	"emiverify/internal/services/auth"
	"emiverify/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAuthApp(authSvc *MockAuthService, userSvc *MockUserService) *fiber.App {
	h := NewAuthHandler(authSvc, userSvc, 7*24*time.Hour, false)
	app := newTestApp()
	app.Post("/auth/signup", h.Signup)
	app.Post("/auth/verify-email", h.VerifyEmail)
	app.Post("/auth/resend-verification", h.ResendVerification)
	app.Post("/auth/login", h.Login)
	app.Post("/auth/refresh", h.RefreshToken)
	app.Post("/auth/forgot-password", h.ForgotPassword)
	app.Post("/auth/reset-password", h.ResetPassword)
	app.Post("/auth/logout", asUser(5), h.Logout)
	app.Post("/auth/change-password", asUser(5), h.ChangePassword)
	app.Get("/auth/profile", asUser(5), h.GetProfile)
	app.Put("/auth/profile", asUser(5), h.UpdateProfile)
	app.Get("/auth/anonymous-profile", h.GetProfile)
	return app
}

func TestAuthHandler_Signup(t *testing.T) {
	authSvc := new(MockAuthService)
	input := models.SignupInput{FullName: "Ama Mensah", Email: "ama@example.com", Password: "Secret123!"}
	authSvc.On("Signup", mock.Anything, input).
		Return(&models.User{ID: 1, FullName: input.FullName, Email: input.Email, Password: "hash"}, nil)

	resp := do(t, newAuthApp(authSvc, new(MockUserService)), fiber.MethodPost, "/auth/signup", input)

	assert.Equal(t, fiber.StatusCreated, resp.Status)
	assert.True(t, resp.Envelope.Success)
	assert.NotContains(t, string(resp.Body), "hash")

	var data struct {
		User                 models.UserProfile `json:"user"`
		RequiresVerification bool               `json:"requires_verification"`
	}
	resp.data(t, &data)
	assert.Equal(t, "ama@example.com", data.User.Email)
	assert.True(t, data.RequiresVerification)
	authSvc.AssertExpectations(t)
}

func TestAuthHandler_SignupErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       interface{}
		err        error
		wantStatus int
		wantCode   string
	}{
		{"malformed body", "{not json", nil, fiber.StatusBadRequest, apperrors.ErrInvalidBody.Code},
		{"duplicate email", models.SignupInput{Email: "a@b.co"}, apperrors.ErrEmailTaken, fiber.StatusConflict, apperrors.ErrEmailTaken.Code},
		{"weak password", models.SignupInput{Email: "a@b.co"}, apperrors.ErrWeakPassword, fiber.StatusBadRequest, apperrors.ErrWeakPassword.Code},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := new(MockAuthService)
			if tt.err != nil {
				authSvc.On("Signup", mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			resp := do(t, newAuthApp(authSvc, new(MockUserService)), fiber.MethodPost, "/auth/signup", tt.body)
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.False(t, resp.Envelope.Success)
			assert.Equal(t, tt.wantCode, resp.Envelope.Code)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	authSvc := new(MockAuthService)
	input := models.LoginInput{Email: "ama@example.com", Password: "Secret123!"}
	authSvc.On("Login", mock.Anything, input).Return(&auth.LoginResult{
		User:   models.UserProfile{ID: 1, Email: input.Email, Verified: true},
		Tokens: &utils.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
	}, nil)

	resp := do(t, newAuthApp(authSvc, new(MockUserService)), fiber.MethodPost, "/auth/login", input)

	assert.Equal(t, fiber.StatusOK, resp.Status)
	var data auth.LoginResult
	resp.data(t, &data)
	assert.Equal(t, "access", data.Tokens.AccessToken)
	assert.Contains(t, resp.Header.Get(fiber.HeaderSetCookie), "refresh_token=refresh")
	assert.Contains(t, strings.ToLower(resp.Header.Get(fiber.HeaderSetCookie)), "httponly")
}

func TestAuthHandler_LoginUnverified(t *testing.T) {
	authSvc := new(MockAuthService)
	authSvc.On("Login", mock.Anything, mock.Anything).Return(nil, apperrors.ErrEmailNotVerified)

	resp := do(t, newAuthApp(authSvc, new(MockUserService)), fiber.MethodPost, "/auth/login",
		models.LoginInput{Email: "new@example.com", Password: "x"})

	assert.Equal(t, fiber.StatusUnauthorized, resp.Status)
	assert.False(t, resp.Envelope.Success)
	assert.Equal(t, apperrors.ErrEmailNotVerified.Code, resp.Envelope.Code)

	var data struct {
		RequiresVerification bool   `json:"requires_verification"`
		Email                string `json:"email"`
	}
	resp.data(t, &data)
	assert.True(t, data.RequiresVerification)
	assert.Equal(t, "new@example.com", data.Email)
}

func TestAuthHandler_LoginBadCredentials(t *testing.T) {
	authSvc := new(MockAuthService)
	authSvc.On("Login", mock.Anything, mock.Anything).Return(nil, apperrors.ErrInvalidCredentials)

	resp := do(t, newAuthApp(authSvc, new(MockUserService)), fiber.MethodPost, "/auth/login",
		models.LoginInput{Email: "a@example.com", Password: "wrong"})

	assert.Equal(t, fiber.StatusUnauthorized, resp.Status)
	assert.Equal(t, apperrors.ErrInvalidCredentials.Message, resp.Envelope.Error)
	assert.Empty(t, resp.Envelope.Data)
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	pair := &utils.TokenPair{AccessToken: "a2", RefreshToken: "r2"}

	t.Run("from body", func(t *testing.T) {
		authSvc := new(MockAuthService)
		authSvc.On("RefreshTokens", mock.Anything, "r1").Return(pair, nil)

		resp := do(t, newAuthApp(authSvc, new(MockUserService)), fiber.MethodPost, "/auth/refresh",
			models.RefreshInput{RefreshToken: "r1"})
		assert.Equal(t, fiber.StatusOK, resp.Status)
		authSvc.AssertExpectations(t)
	})

	t.Run("cookie wins over body", func(t *testing.T) {
		authSvc := new(MockAuthService)
		authSvc.On("RefreshTokens", mock.Anything, "from-cookie").Return(pair, nil)

		req := httptest.NewRequest(fiber.MethodPost, "/auth/refresh", strings.NewReader(`{"refreshToken":"from-body"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		req.Header.Set(fiber.HeaderCookie, "refresh_token=from-cookie")

		resp := send(t, newAuthApp(authSvc, new(MockUserService)), req)
		assert.Equal(t, fiber.StatusOK, resp.Status)
		authSvc.AssertExpectations(t)
	})

	t.Run("missing", func(t *testing.T) {
		resp := do(t, newAuthApp(new(MockAuthService), new(MockUserService)), fiber.MethodPost, "/auth/refresh", `{}`)
		assert.Equal(t, fiber.StatusUnauthorized, resp.Status)
		assert.Equal(t, apperrors.ErrMissingToken.Code, resp.Envelope.Code)
	})

	t.Run("revoked", func(t *testing.T) {
		authSvc := new(MockAuthService)
		authSvc.On("RefreshTokens", mock.Anything, "old").Return(nil, apperrors.ErrSessionExpired)

		resp := do(t, newAuthApp(authSvc, new(MockUserService)), fiber.MethodPost, "/auth/refresh",
			models.RefreshInput{RefreshToken: "old"})
		assert.Equal(t, fiber.StatusUnauthorized, resp.Status)
	})
}

func TestAuthHandler_LogoutClearsCookie(t *testing.T) {
	authSvc := new(MockAuthService)
	authSvc.On("Logout", mock.Anything, uint(5)).Return(nil)

	resp := do(t, newAuthApp(authSvc, new(MockUserService)), fiber.MethodPost, "/auth/logout", nil)

	assert.Equal(t, fiber.StatusOK, resp.Status)
	assert.Contains(t, resp.Header.Get(fiber.HeaderSetCookie), "refresh_token=;")
	authSvc.AssertExpectations(t)
}

func TestAuthHandler_PasswordFlows(t *testing.T) {
	authSvc := new(MockAuthService)
	authSvc.On("ForgotPassword", mock.Anything, models.EmailInput{Email: "nobody@example.com"}).Return(nil)
	authSvc.On("ResetPassword", mock.Anything, models.ResetPasswordInput{Token: "bad", NewPassword: "Secret123!"}).
		Return(apperrors.ErrInvalidResetToken)
	authSvc.On("ChangePassword", mock.Anything, uint(5), models.ChangePasswordInput{CurrentPassword: "old", NewPassword: "New123!x"}).
		Return(nil)
	app := newAuthApp(authSvc, new(MockUserService))

	resp := do(t, app, fiber.MethodPost, "/auth/forgot-password", models.EmailInput{Email: "nobody@example.com"})
	assert.Equal(t, fiber.StatusOK, resp.Status)
	assert.True(t, resp.Envelope.Success)

	resp = do(t, app, fiber.MethodPost, "/auth/reset-password", models.ResetPasswordInput{Token: "bad", NewPassword: "Secret123!"})
	assert.Equal(t, fiber.StatusBadRequest, resp.Status)
	assert.Equal(t, apperrors.ErrInvalidResetToken.Code, resp.Envelope.Code)

	resp = do(t, app, fiber.MethodPost, "/auth/change-password", models.ChangePasswordInput{CurrentPassword: "old", NewPassword: "New123!x"})
	assert.Equal(t, fiber.StatusOK, resp.Status)
	authSvc.AssertExpectations(t)
}

func TestAuthHandler_VerifyAndResend(t *testing.T) {
	authSvc := new(MockAuthService)
	authSvc.On("VerifyEmail", mock.Anything, models.VerifyEmailInput{Email: "a@example.com", Code: "123456"}).
		Return(&models.User{ID: 1, Email: "a@example.com", EmailVerified: true}, nil)
	authSvc.On("ResendVerification", mock.Anything, models.EmailInput{Email: "ghost@example.com"}).
		Return(apperrors.ErrUserNotFound)
	app := newAuthApp(authSvc, new(MockUserService))

	resp := do(t, app, fiber.MethodPost, "/auth/verify-email", models.VerifyEmailInput{Email: "a@example.com", Code: "123456"})
	assert.Equal(t, fiber.StatusOK, resp.Status)
	var data struct {
		User models.UserProfile `json:"user"`
	}
	resp.data(t, &data)
	assert.True(t, data.User.Verified)

	resp = do(t, app, fiber.MethodPost, "/auth/resend-verification", models.EmailInput{Email: "ghost@example.com"})
	assert.Equal(t, fiber.StatusNotFound, resp.Status)
}

func TestAuthHandler_Profile(t *testing.T) {
	userSvc := new(MockUserService)
	userSvc.On("GetProfile", mock.Anything, uint(5)).Return(&models.UserProfile{ID: 5, FullName: "Ama"}, nil)
	userSvc.On("UpdateProfile", mock.Anything, uint(5), models.UpdateProfileInput{FullName: "Ama M"}).
		Return(&models.UserProfile{ID: 5, FullName: "Ama M"}, nil)
	app := newAuthApp(new(MockAuthService), userSvc)

	resp := do(t, app, fiber.MethodGet, "/auth/profile", nil)
	assert.Equal(t, fiber.StatusOK, resp.Status)

	resp = do(t, app, fiber.MethodPut, "/auth/profile", models.UpdateProfileInput{FullName: "Ama M"})
	assert.Equal(t, fiber.StatusOK, resp.Status)
	var data struct {
		User models.UserProfile `json:"user"`
	}
	resp.data(t, &data)
	assert.Equal(t, "Ama M", data.User.FullName)

	resp = do(t, app, fiber.MethodGet, "/auth/anonymous-profile", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.Status)
	userSvc.AssertExpectations(t)
}
