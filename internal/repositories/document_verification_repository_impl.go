package repositories

import (
	"context"

	apperrors "emiverify/internal/errors"
	"emiverify/internal/models"

	"gorm.io/gorm"
)

type documentVerificationRepository struct {
	db *gorm.DB
}

// NewDocumentVerificationRepository creates a new instance of DocumentVerificationRepository
func NewDocumentVerificationRepository(db *gorm.DB) DocumentVerificationRepository {
	return &documentVerificationRepository{db: db}
}

func (r *documentVerificationRepository) Create(ctx context.Context, v *models.DocumentVerification) error {
	return translate(r.db.WithContext(ctx).Create(v).Error, apperrors.ErrVerificationNotFound)
}

func (r *documentVerificationRepository) GetByID(ctx context.Context, id uint) (*models.DocumentVerification, error) {
	var v models.DocumentVerification
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, translate(err, apperrors.ErrVerificationNotFound)
	}
	return &v, nil
}

func (r *documentVerificationRepository) List(ctx context.Context, filter models.RecordFilter) ([]models.DocumentVerification, error) {
	verifications := make([]models.DocumentVerification, 0)
	err := r.db.WithContext(ctx).
		Scopes(verificationFilter(filter)).
		Order("created_at DESC").Order("id DESC").
		Find(&verifications).Error
	if err != nil {
		return nil, translate(err, apperrors.ErrVerificationNotFound)
	}
	return verifications, nil
}

func (r *documentVerificationRepository) Update(ctx context.Context, v *models.DocumentVerification) error {
	return translate(r.db.WithContext(ctx).Save(v).Error, apperrors.ErrVerificationNotFound)
}

func (r *documentVerificationRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.DocumentVerification{}, id)
	if result.Error != nil {
		return translate(result.Error, apperrors.ErrVerificationNotFound)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrVerificationNotFound
	}
	return nil
}

func (r *documentVerificationRepository) Count(ctx context.Context, filter models.RecordFilter) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.DocumentVerification{}).
		Scopes(verificationFilter(filter)).
		Count(&total).Error
	return total, translate(err, apperrors.ErrVerificationNotFound)
}
