package repositories

import (
	"context"

	"emiverify/internal/models"
)

// InsuranceCaseRepository defines the interface for insurance case persistence
type InsuranceCaseRepository interface {
	// Create inserts a case; derived fields must already be computed
	Create(ctx context.Context, c *models.InsuranceCase) error

	// GetByID retrieves a case by its ID
	GetByID(ctx context.Context, id uint) (*models.InsuranceCase, error)

	// List returns matching cases, newest first
	List(ctx context.Context, filter models.RecordFilter) ([]models.InsuranceCase, error)

	// Update saves every column of an existing case
	Update(ctx context.Context, c *models.InsuranceCase) error

	// Delete hard-deletes a case; a missing row yields ErrInsuranceCaseNotFound
	Delete(ctx context.Context, id uint) error

	// Count returns the number of matching cases
	Count(ctx context.Context, filter models.RecordFilter) (int64, error)
}
