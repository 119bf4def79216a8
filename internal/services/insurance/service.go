// Package insurance implements CRUD and bulk intake for insurance cases.
package insurance

import (
	"context"

	apperrors "emiverify/internal/errors"
	"emiverify/internal/logger"
	"emiverify/internal/models"
	"emiverify/internal/repositories"
	"emiverify/internal/repositories/cache"
	"emiverify/internal/validation"
)

type Service interface {
	Create(ctx context.Context, input models.InsuranceCaseInput) (*models.InsuranceCase, error)
	List(ctx context.Context, filter models.RecordFilter) ([]models.InsuranceCase, error)
	Get(ctx context.Context, id uint) (*models.InsuranceCase, error)
	Update(ctx context.Context, id uint, patch models.InsuranceCasePatch) (*models.InsuranceCase, error)
	Delete(ctx context.Context, id uint) error
	BulkCreate(ctx context.Context, inputs []models.InsuranceCaseInput) (*models.BulkResult[models.InsuranceCase], error)
}

type service struct {
	repo   repositories.InsuranceCaseRepository
	cache  cache.Store
	schema *validation.Schema
}

func NewService(repo repositories.InsuranceCaseRepository, store cache.Store, schema *validation.Schema) Service {
	return &service{
		repo:   repo,
		cache:  store,
		schema: schema,
	}
}

func (s *service) Create(ctx context.Context, input models.InsuranceCaseInput) (*models.InsuranceCase, error) {
	c, err := s.create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)
	logger.WithContext(ctx).Info("insurance case created", "id", c.ID, "status", c.CaseStatus)
	return c, nil
}

func (s *service) create(ctx context.Context, input models.InsuranceCaseInput) (*models.InsuranceCase, error) {
	if err := s.schema.Struct(input); err != nil {
		return nil, err
	}
	c := input.ToModel()
	c.Recalculate()
	if err := validation.ValidateInsuranceCase(c); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) List(ctx context.Context, filter models.RecordFilter) ([]models.InsuranceCase, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Get(ctx context.Context, id uint) (*models.InsuranceCase, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id uint, patch models.InsuranceCasePatch) (*models.InsuranceCase, error) {
	if patch.Empty() {
		return nil, apperrors.ErrNoFieldsToUpdate
	}
	if err := s.schema.Struct(patch); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(c)
	c.Recalculate()
	if err := validation.ValidateInsuranceCase(c); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.invalidateReports(ctx)
	logger.WithContext(ctx).Info("insurance case updated", "id", c.ID, "status", c.CaseStatus)
	return c, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateReports(ctx)
	logger.WithContext(ctx).Info("insurance case deleted", "id", id)
	return nil
}

// BulkCreate inserts each row independently; a failing row is reported and skipped.
func (s *service) BulkCreate(ctx context.Context, inputs []models.InsuranceCaseInput) (*models.BulkResult[models.InsuranceCase], error) {
	if len(inputs) == 0 {
		return nil, apperrors.ErrEmptyBulk
	}

	result := &models.BulkResult[models.InsuranceCase]{
		Created: make([]models.InsuranceCase, 0, len(inputs)),
		Errors:  make([]models.BulkError, 0),
	}
	for i, input := range inputs {
		c, err := s.create(ctx, input)
		if err != nil {
			result.Errors = append(result.Errors, models.BulkError{Index: i, Row: input, Error: err.Error()})
			continue
		}
		result.Created = append(result.Created, *c)
	}
	result.TotalProcessed = len(inputs)
	result.Successful = len(result.Created)
	result.Failed = len(result.Errors)

	if result.Successful > 0 {
		s.invalidateReports(ctx)
	}
	logger.WithContext(ctx).Info("insurance bulk create finished",
		"processed", result.TotalProcessed, "successful", result.Successful, "failed", result.Failed)
	return result, nil
}

func (s *service) invalidateReports(ctx context.Context) {
	if err := cache.InvalidateReports(ctx, s.cache); err != nil {
		logger.WithContext(ctx).Warn("failed to invalidate report cache", "error", err)
	}
}
