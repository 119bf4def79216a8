package utils

import (
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"emiverify/internal/config"
	apperrors "emiverify/internal/errors"
	"emiverify/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		Issuer:        "emi-verify-test",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	}
}

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager(testJWTConfig())
	user := &models.User{ID: 42, Email: "ada@example.com", TokenVersion: 3}

	pair, err := m.GenerateTokens(user)
	require.NoError(t, err)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	access, err := m.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), access.UserID)
	assert.Equal(t, "ada@example.com", access.Email)
	assert.Equal(t, 3, access.TokenVersion)
	assert.Equal(t, models.TokenTypeAccess, access.TokenType)
	assert.Equal(t, "42", access.Subject)

	refresh, err := m.ParseRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.True(t, refresh.IsRefresh())
}

func TestTokenManager_RejectsSwappedTypes(t *testing.T) {
	m := NewTokenManager(testJWTConfig())
	pair, err := m.GenerateTokens(&models.User{ID: 1})
	require.NoError(t, err)

	_, err = m.ParseAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	_, err = m.ParseRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager(testJWTConfig())
	m.now = func() time.Time { return time.Now().Add(-time.Hour) }
	pair, err := m.GenerateTokens(&models.User{ID: 1})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ParseAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrSessionExpired)
}

func TestTokenManager_Errors(t *testing.T) {
	m := NewTokenManager(testJWTConfig())

	_, err := m.ParseAccessToken("")
	assert.ErrorIs(t, err, apperrors.ErrMissingToken)

	_, err = m.ParseAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	other := testJWTConfig()
	other.AccessSecret = "different"
	pair, err := NewTokenManager(other).GenerateTokens(&models.User{ID: 1})
	require.NoError(t, err)
	_, err = m.ParseAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	_, err = NewTokenManager(config.JWTConfig{}).GenerateTokens(&models.User{ID: 1})
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
}

func TestGenerateVerificationCode(t *testing.T) {
	digits := regexp.MustCompile(`^[0-9]{6}$`)
	for i := 0; i < 50; i++ {
		code, err := GenerateVerificationCode(6)
		require.NoError(t, err)
		assert.Regexp(t, digits, code)
	}
}

func TestGenerateSecureToken(t *testing.T) {
	a, err := GenerateSecureToken(32)
	require.NoError(t, err)
	b, err := GenerateSecureToken(32)
	require.NoError(t, err)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestDomainErrorEnvelope(t *testing.T) {
	tests := []struct {
		name       string
		err        *apperrors.DomainError
		hide       bool
		wantStatus int
	}{
		{"validation", apperrors.Validation("email is required", map[string]string{"email": "is required"}), false, fiber.StatusBadRequest},
		{"not found", apperrors.ErrInsuranceCaseNotFound, false, fiber.StatusNotFound},
		{"conflict", apperrors.ErrEmailTaken, false, fiber.StatusConflict},
		{"unauthorized", apperrors.ErrInvalidCredentials, false, fiber.StatusUnauthorized},
		{"internal hidden", apperrors.Internal(assert.AnError), true, fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return DomainError(c, tt.err, tt.hide) })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
