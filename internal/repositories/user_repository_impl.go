package repositories

import (
	"context"
	"strings"
	"time"

	apperrors "emiverify/internal/errors"
	"emiverify/internal/logger"
	"emiverify/internal/models"
	"emiverify/internal/repositories/cache"

	"gorm.io/gorm"
)

type userRepository struct {
	db    *gorm.DB
	cache cache.Store
	ttl   time.Duration
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *gorm.DB, store cache.Store, ttl time.Duration) UserRepository {
	return &userRepository{
		db:    db,
		cache: store,
		ttl:   ttl,
	}
}

// NormalizeEmail lowercases and trims an address before lookup or storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.Email = NormalizeEmail(user.Email)
	err := r.db.WithContext(ctx).Create(user).Error
	if IsUniqueViolation(err) {
		return apperrors.ErrEmailTaken
	}
	return translate(err, apperrors.ErrUserNotFound)
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	key := cache.GenerateKey(cache.EntityUser, cache.KeyID, id)

	var user models.User
	if found, err := r.cache.Get(ctx, key, &user); err == nil && found {
		return &user, nil
	} else if err != nil {
		logger.WithContext(ctx).Warn("user cache read failed", "user_id", id, "error", err)
	}

	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, apperrors.ErrUserNotFound)
	}

	if err := r.cache.SetWithTTL(ctx, key, &user, r.ttl); err != nil {
		logger.WithContext(ctx).Warn("failed to cache user", "user_id", id, "error", err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&user).Error
	if err != nil {
		return nil, translate(err, apperrors.ErrUserNotFound)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return translate(err, apperrors.ErrUserNotFound)
	}
	r.invalidate(ctx, user.ID)
	return nil
}

func (r *userRepository) IncrementTokenVersion(ctx context.Context, userID uint) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("token_version", gorm.Expr("token_version + 1"))
	if result.Error != nil {
		return translate(result.Error, apperrors.ErrUserNotFound)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	r.invalidate(ctx, userID)
	return nil
}

func (r *userRepository) TouchLastLogin(ctx context.Context, userID uint) error {
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("last_login_at", time.Now()).Error
	if err != nil {
		return translate(err, apperrors.ErrUserNotFound)
	}
	r.invalidate(ctx, userID)
	return nil
}

func (r *userRepository) invalidate(ctx context.Context, userID uint) {
	if err := r.cache.Delete(ctx, cache.GenerateKey(cache.EntityUser, cache.KeyID, userID)); err != nil {
		logger.WithContext(ctx).Warn("failed to invalidate user cache", "user_id", userID, "error", err)
	}
}
