package utils

import (
	"errors"
	"strconv"
	"time"

	"emiverify/internal/config"
	apperrors "emiverify/internal/errors"
	"emiverify/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// TokenPair is returned by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenManager signs and verifies access and refresh tokens with separate secrets.
type TokenManager struct {
	cfg config.JWTConfig
	now func() time.Time
}

func NewTokenManager(cfg config.JWTConfig) *TokenManager {
	return &TokenManager{cfg: cfg, now: time.Now}
}

// GenerateTokens issues an access token and a refresh token for the user.
func (m *TokenManager) GenerateTokens(user *models.User) (*TokenPair, error) {
	if m.cfg.AccessSecret == "" || m.cfg.RefreshSecret == "" {
		return nil, apperrors.Internal(errors.New("JWT secrets not configured"))
	}

	now := m.now()
	access, err := m.sign(user, models.TokenTypeAccess, now, m.cfg.AccessTTL, m.cfg.AccessSecret)
	if err != nil {
		return nil, err
	}
	refresh, err := m.sign(user, models.TokenTypeRefresh, now, m.cfg.RefreshTTL, m.cfg.RefreshSecret)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (m *TokenManager) sign(user *models.User, typ string, now time.Time, ttl time.Duration, secret string) (string, error) {
	claims := models.UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.cfg.Issuer,
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
		},
		UserID:       user.ID,
		Email:        user.Email,
		TokenType:    typ,
		TokenVersion: user.TokenVersion,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", apperrors.Internal(err)
	}
	return signed, nil
}

// ParseAccessToken validates an access token and returns its claims.
func (m *TokenManager) ParseAccessToken(tokenStr string) (*models.UserClaims, error) {
	return m.parse(tokenStr, m.cfg.AccessSecret, models.TokenTypeAccess)
}

// ParseRefreshToken validates a refresh token and returns its claims.
func (m *TokenManager) ParseRefreshToken(tokenStr string) (*models.UserClaims, error) {
	return m.parse(tokenStr, m.cfg.RefreshSecret, models.TokenTypeRefresh)
}

func (m *TokenManager) parse(tokenStr, secret, typ string) (*models.UserClaims, error) {
	if tokenStr == "" {
		return nil, apperrors.ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(tokenStr, &models.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	},
		jwt.WithIssuer(m.cfg.Issuer),
		jwt.WithTimeFunc(m.now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrSessionExpired
		}
		return nil, apperrors.ErrInvalidToken.Wrap(err)
	}

	claims, ok := token.Claims.(*models.UserClaims)
	if !ok || !token.Valid || claims.TokenType != typ {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}
