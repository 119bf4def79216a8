package repositories

import (
	"context"
	"errors"
	"time"

	apperrors "emiverify/internal/errors"
	"emiverify/internal/logger"
	"emiverify/internal/models"
	"emiverify/internal/repositories/cache"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type authTokenRepository struct {
	db    *gorm.DB
	cache cache.Store
}

// NewAuthTokenRepository creates a new instance of AuthTokenRepository
func NewAuthTokenRepository(db *gorm.DB, store cache.Store) AuthTokenRepository {
	return &authTokenRepository{db: db, cache: store}
}

func (r *authTokenRepository) UpsertVerificationCode(ctx context.Context, email, code string, expiresAt time.Time) error {
	row := models.VerificationCode{
		Email:     NormalizeEmail(email),
		Code:      code,
		ExpiresAt: expiresAt,
		Used:      false,
		CreatedAt: time.Now(),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "expires_at", "used", "created_at"}),
	}).Create(&row).Error
	return translate(err, apperrors.ErrInvalidVerificationCode)
}

func (r *authTokenRepository) ConsumeVerificationCode(ctx context.Context, email, code string, now time.Time) (*models.User, error) {
	email = NormalizeEmail(email)
	var user models.User

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vc models.VerificationCode
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("email = ? AND code = ?", email, code).
			First(&vc).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidVerificationCode
		}
		if err != nil {
			return err
		}
		if !vc.Valid(now) {
			return apperrors.ErrInvalidVerificationCode
		}

		if err := tx.Model(&vc).Update("used", true).Error; err != nil {
			return err
		}
		if err := tx.Where("email = ?", email).First(&user).Error; err != nil {
			return err
		}
		user.EmailVerified = true
		return tx.Model(&user).Update("email_verified", true).Error
	})
	if err != nil {
		return nil, keepDomain(err, apperrors.ErrUserNotFound)
	}

	r.invalidateUser(ctx, user.ID)
	return &user, nil
}

func (r *authTokenRepository) UpsertResetToken(ctx context.Context, email, token string, expiresAt time.Time) error {
	row := models.PasswordResetToken{
		Email:     NormalizeEmail(email),
		Token:     token,
		ExpiresAt: expiresAt,
		Used:      false,
		CreatedAt: time.Now(),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "expires_at", "used", "created_at"}),
	}).Create(&row).Error
	return translate(err, apperrors.ErrInvalidResetToken)
}

func (r *authTokenRepository) ConsumeResetToken(ctx context.Context, token, passwordHash string, now time.Time) (*models.User, error) {
	var user models.User

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rt models.PasswordResetToken
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("token = ?", token).
			First(&rt).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidResetToken
		}
		if err != nil {
			return err
		}
		if !rt.Valid(now) {
			return apperrors.ErrInvalidResetToken
		}

		if err := tx.Model(&rt).Update("used", true).Error; err != nil {
			return err
		}
		if err := tx.Where("email = ?", rt.Email).First(&user).Error; err != nil {
			return err
		}
		return tx.Model(&user).UpdateColumns(map[string]interface{}{
			"password":      passwordHash,
			"token_version": gorm.Expr("token_version + 1"),
			"updated_at":    now,
		}).Error
	})
	if err != nil {
		return nil, keepDomain(err, apperrors.ErrUserNotFound)
	}

	r.invalidateUser(ctx, user.ID)
	return &user, nil
}

func (r *authTokenRepository) invalidateUser(ctx context.Context, userID uint) {
	if err := r.cache.Delete(ctx, cache.GenerateKey(cache.EntityUser, cache.KeyID, userID)); err != nil {
		logger.WithContext(ctx).Warn("failed to invalidate user cache", "user_id", userID, "error", err)
	}
}

// keepDomain passes domain errors raised inside a transaction through untouched.
func keepDomain(err error, notFound *apperrors.DomainError) error {
	if _, ok := apperrors.As(err); ok {
		return err
	}
	return translate(err, notFound)
}
