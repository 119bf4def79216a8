package repositories

import (
	"context"

	apperrors "emiverify/internal/errors"
	"emiverify/internal/models"

	"gorm.io/gorm"
)

type insuranceCaseRepository struct {
	db *gorm.DB
}

// NewInsuranceCaseRepository creates a new instance of InsuranceCaseRepository
func NewInsuranceCaseRepository(db *gorm.DB) InsuranceCaseRepository {
	return &insuranceCaseRepository{db: db}
}

func (r *insuranceCaseRepository) Create(ctx context.Context, c *models.InsuranceCase) error {
	return translate(r.db.WithContext(ctx).Create(c).Error, apperrors.ErrInsuranceCaseNotFound)
}

func (r *insuranceCaseRepository) GetByID(ctx context.Context, id uint) (*models.InsuranceCase, error) {
	var c models.InsuranceCase
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err, apperrors.ErrInsuranceCaseNotFound)
	}
	return &c, nil
}

func (r *insuranceCaseRepository) List(ctx context.Context, filter models.RecordFilter) ([]models.InsuranceCase, error) {
	cases := make([]models.InsuranceCase, 0)
	err := r.db.WithContext(ctx).
		Scopes(insuranceFilter(filter)).
		Order("created_at DESC").Order("id DESC").
		Find(&cases).Error
	if err != nil {
		return nil, translate(err, apperrors.ErrInsuranceCaseNotFound)
	}
	return cases, nil
}

func (r *insuranceCaseRepository) Update(ctx context.Context, c *models.InsuranceCase) error {
	result := r.db.WithContext(ctx).Save(c)
	if result.Error != nil {
		return translate(result.Error, apperrors.ErrInsuranceCaseNotFound)
	}
	return nil
}

func (r *insuranceCaseRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.InsuranceCase{}, id)
	if result.Error != nil {
		return translate(result.Error, apperrors.ErrInsuranceCaseNotFound)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrInsuranceCaseNotFound
	}
	return nil
}

func (r *insuranceCaseRepository) Count(ctx context.Context, filter models.RecordFilter) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.InsuranceCase{}).
		Scopes(insuranceFilter(filter)).
		Count(&total).Error
	return total, translate(err, apperrors.ErrInsuranceCaseNotFound)
}
