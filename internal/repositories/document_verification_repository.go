package repositories

import (
	"context"

	"emiverify/internal/models"
)

// DocumentVerificationRepository defines the interface for document verification persistence
type DocumentVerificationRepository interface {
	Create(ctx context.Context, v *models.DocumentVerification) error
	GetByID(ctx context.Context, id uint) (*models.DocumentVerification, error)
	List(ctx context.Context, filter models.RecordFilter) ([]models.DocumentVerification, error)
	Update(ctx context.Context, v *models.DocumentVerification) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context, filter models.RecordFilter) (int64, error)
}
