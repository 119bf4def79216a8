// Package auth implements account signup, email verification, login and password recovery.
package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/url"
	"strings"
	"time"

	apperrors "emiverify/internal/errors"
	"emiverify/internal/logger"
	"emiverify/internal/models"
	"emiverify/internal/repositories"
	"emiverify/internal/services/notification"
	"emiverify/internal/utils"
	"emiverify/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultCodeTTL  = 30 * time.Minute
	DefaultResetTTL = 30 * time.Minute
	resetTokenBytes = 32
)

// LoginResult is returned on a successful login.
type LoginResult struct {
	User   models.UserProfile `json:"user"`
	Tokens *utils.TokenPair   `json:"tokens"`
}

type Service interface {
	Signup(ctx context.Context, input models.SignupInput) (*models.User, error)
	VerifyEmail(ctx context.Context, input models.VerifyEmailInput) (*models.User, error)
	ResendVerification(ctx context.Context, input models.EmailInput) error
	Login(ctx context.Context, input models.LoginInput) (*LoginResult, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*utils.TokenPair, error)
	Logout(ctx context.Context, userID uint) error
	ForgotPassword(ctx context.Context, input models.EmailInput) error
	ResetPassword(ctx context.Context, input models.ResetPasswordInput) error
	ChangePassword(ctx context.Context, userID uint, input models.ChangePasswordInput) error
	Authenticate(ctx context.Context, accessToken string) (*models.UserClaims, error)
}

// Options tunes code lifetimes and the link placed in reset emails.
type Options struct {
	CodeTTL     time.Duration
	ResetTTL    time.Duration
	FrontendURL string
}

type service struct {
	userRepo  repositories.UserRepository
	tokenRepo repositories.AuthTokenRepository
	tokens    *utils.TokenManager
	mailer    notification.Mailer
	schema    *validation.Schema
	opts      Options
	hashCost  int
	now       func() time.Time
}

func NewService(
	userRepo repositories.UserRepository,
	tokenRepo repositories.AuthTokenRepository,
	tokens *utils.TokenManager,
	mailer notification.Mailer,
	schema *validation.Schema,
	opts Options,
) Service {
	if opts.CodeTTL <= 0 {
		opts.CodeTTL = DefaultCodeTTL
	}
	if opts.ResetTTL <= 0 {
		opts.ResetTTL = DefaultResetTTL
	}
	return &service{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		tokens:    tokens,
		mailer:    mailer,
		schema:    schema,
		opts:      opts,
		hashCost:  bcrypt.DefaultCost,
		now:       time.Now,
	}
}

func (s *service) Signup(ctx context.Context, input models.SignupInput) (*models.User, error) {
	if err := s.schema.Struct(input); err != nil {
		return nil, err
	}
	if err := checkPassword("password", input.Password); err != nil {
		return nil, err
	}

	hash, err := s.hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FullName:     strings.TrimSpace(input.FullName),
		Email:        repositories.NormalizeEmail(input.Email),
		Password:     hash,
		TokenVersion: 1,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// A lost verification email leaves the account in place; the code can be resent.
	if err := s.issueVerificationCode(ctx, user); err != nil {
		logger.WithContext(ctx).Warn("verification code not delivered", "user_id", user.ID, "error", err)
	}

	logger.WithContext(ctx).Info("user signed up", "user_id", user.ID)
	return user, nil
}

func (s *service) VerifyEmail(ctx context.Context, input models.VerifyEmailInput) (*models.User, error) {
	if err := s.schema.Struct(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user.EmailVerified {
		return nil, apperrors.ErrEmailAlreadyVerified
	}

	verified, err := s.tokenRepo.ConsumeVerificationCode(ctx, user.Email, input.Code, s.now())
	if err != nil {
		return nil, err
	}

	logger.WithContext(ctx).Info("email verified", "user_id", verified.ID)
	return verified, nil
}

func (s *service) ResendVerification(ctx context.Context, input models.EmailInput) error {
	if err := s.schema.Struct(input); err != nil {
		return err
	}

	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return err
	}
	if user.EmailVerified {
		return apperrors.ErrEmailAlreadyVerified
	}

	if err := s.issueVerificationCode(ctx, user); err != nil {
		return apperrors.Internal(err).WithMessage("Failed to send verification email")
	}
	return nil
}

func (s *service) issueVerificationCode(ctx context.Context, user *models.User) error {
	code, err := utils.GenerateVerificationCode(validation.VerificationCodeLength)
	if err != nil {
		return err
	}
	if err := s.tokenRepo.UpsertVerificationCode(ctx, user.Email, code, s.now().Add(s.opts.CodeTTL)); err != nil {
		return err
	}
	return s.mailer.SendVerificationCode(ctx, user.Email, user.FullName, code)
}

func (s *service) Login(ctx context.Context, input models.LoginInput) (*LoginResult, error) {
	if err := s.schema.Struct(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			logger.WithContext(ctx).Info("login failed: unknown email")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		logger.WithContext(ctx).Info("login failed: wrong password", "user_id", user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.EmailVerified {
		return nil, apperrors.ErrEmailNotVerified
	}

	pair, err := s.tokens.GenerateTokens(user)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		logger.WithContext(ctx).Warn("failed to record login time", "user_id", user.ID, "error", err)
	} else {
		user.LastLoginAt = &now
	}

	logger.WithContext(ctx).Info("user logged in", "user_id", user.ID)
	return &LoginResult{User: user.Profile(), Tokens: pair}, nil
}

// RefreshTokens exchanges a valid refresh token for a new pair.
func (s *service) RefreshTokens(ctx context.Context, refreshToken string) (*utils.TokenPair, error) {
	claims, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}
	if user.TokenVersion != claims.TokenVersion {
		return nil, apperrors.ErrSessionExpired
	}

	return s.tokens.GenerateTokens(user)
}

// Logout revokes every token issued to the user.
func (s *service) Logout(ctx context.Context, userID uint) error {
	if err := s.userRepo.IncrementTokenVersion(ctx, userID); err != nil {
		return err
	}
	logger.WithContext(ctx).Info("user logged out", "user_id", userID)
	return nil
}

// ForgotPassword reports success for unknown emails as well.
func (s *service) ForgotPassword(ctx context.Context, input models.EmailInput) error {
	if err := s.schema.Struct(input); err != nil {
		return err
	}
	log := logger.WithContext(ctx)

	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			log.Info("password reset requested for unknown email")
		} else {
			log.Error("password reset lookup failed", "error", err)
		}
		return nil
	}

	token, err := utils.GenerateSecureToken(resetTokenBytes)
	if err != nil {
		log.Error("password reset token generation failed", "user_id", user.ID, "error", err)
		return nil
	}
	if err := s.tokenRepo.UpsertResetToken(ctx, user.Email, hashToken(token), s.now().Add(s.opts.ResetTTL)); err != nil {
		log.Error("password reset token not stored", "user_id", user.ID, "error", err)
		return nil
	}

	if err := s.mailer.SendPasswordReset(ctx, user.Email, user.FullName, s.resetLink(token)); err != nil {
		log.Warn("password reset email not delivered", "user_id", user.ID, "error", err)
		return nil
	}
	log.Info("password reset issued", "user_id", user.ID)
	return nil
}

func (s *service) ResetPassword(ctx context.Context, input models.ResetPasswordInput) error {
	if err := s.schema.Struct(input); err != nil {
		return err
	}
	if err := checkPassword("newPassword", input.NewPassword); err != nil {
		return err
	}

	hash, err := s.hash(input.NewPassword)
	if err != nil {
		return err
	}

	user, err := s.tokenRepo.ConsumeResetToken(ctx, hashToken(input.Token), hash, s.now())
	if err != nil {
		return err
	}

	logger.WithContext(ctx).Info("password reset", "user_id", user.ID)
	return nil
}

// ChangePassword replaces the password and revokes outstanding tokens.
func (s *service) ChangePassword(ctx context.Context, userID uint, input models.ChangePasswordInput) error {
	if err := s.schema.Struct(input); err != nil {
		return err
	}
	if err := checkPassword("newPassword", input.NewPassword); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)); err != nil {
		return apperrors.ErrWrongPassword
	}

	hash, err := s.hash(input.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hash
	user.TokenVersion++

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	logger.WithContext(ctx).Info("password changed", "user_id", userID)
	return nil
}

// Authenticate validates an access token against the user's current token version.
func (s *service) Authenticate(ctx context.Context, accessToken string) (*models.UserClaims, error) {
	claims, err := s.tokens.ParseAccessToken(accessToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}
	if user.TokenVersion != claims.TokenVersion {
		return nil, apperrors.ErrSessionExpired
	}
	return claims, nil
}

func (s *service) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", apperrors.Internal(err)
	}
	return string(hashed), nil
}

func (s *service) resetLink(token string) string {
	return s.opts.FrontendURL + "/reset-password?token=" + url.QueryEscape(token)
}

func checkPassword(field, password string) error {
	v := validation.New()
	v.Password(field, password)
	if v.Valid() {
		return nil
	}
	return v.ErrAs(apperrors.ErrWeakPassword)
}

// hashToken returns the stored form of a reset token.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
