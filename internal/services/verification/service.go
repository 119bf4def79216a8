// Package verification implements CRUD and bulk intake for document verifications.
package verification

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
	Create(ctx context.Context, input models.DocumentVerificationInput) (*models.DocumentVerification, error)
	List(ctx context.Context, filter models.RecordFilter) ([]models.DocumentVerification, error)
	Get(ctx context.Context, id uint) (*models.DocumentVerification, error)
	Update(ctx context.Context, id uint, patch models.DocumentVerificationPatch) (*models.DocumentVerification, error)
	Delete(ctx context.Context, id uint) error
	BulkCreate(ctx context.Context, inputs []models.DocumentVerificationInput) (*models.BulkResult[models.DocumentVerification], error)
}

type service struct {
	repo   repositories.DocumentVerificationRepository
	cache  cache.Store
	schema *validation.Schema
}

func NewService(repo repositories.DocumentVerificationRepository, store cache.Store, schema *validation.Schema) Service {
	return &service{
		repo:   repo,
		cache:  store,
		schema: schema,
	}
}

func (s *service) Create(ctx context.Context, input models.DocumentVerificationInput) (*models.DocumentVerification, error) {
	v, err := s.create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)
	logger.WithContext(ctx).Info("document verification created", "id", v.ID, "status", v.TurnAroundStatus)
	return v, nil
}

func (s *service) create(ctx context.Context, input models.DocumentVerificationInput) (*models.DocumentVerification, error) {
	if err := s.schema.Struct(input); err != nil {
		return nil, err
	}
	v := input.ToModel()
	v.Recalculate()
	if err := validation.ValidateDocumentVerification(v); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) List(ctx context.Context, filter models.RecordFilter) ([]models.DocumentVerification, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Get(ctx context.Context, id uint) (*models.DocumentVerification, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id uint, patch models.DocumentVerificationPatch) (*models.DocumentVerification, error) {
	if patch.Empty() {
		return nil, apperrors.ErrNoFieldsToUpdate
	}
	if err := s.schema.Struct(patch); err != nil {
		return nil, err
	}

	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(v)
	v.Recalculate()
	if err := validation.ValidateDocumentVerification(v); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}

	s.invalidateReports(ctx)
	logger.WithContext(ctx).Info("document verification updated", "id", v.ID, "status", v.TurnAroundStatus)
	return v, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateReports(ctx)
	logger.WithContext(ctx).Info("document verification deleted", "id", id)
	return nil
}

// BulkCreate inserts each row independently; a failing row is reported and skipped.
func (s *service) BulkCreate(ctx context.Context, inputs []models.DocumentVerificationInput) (*models.BulkResult[models.DocumentVerification], error) {
	if len(inputs) == 0 {
		return nil, apperrors.ErrEmptyBulk
	}

	result := &models.BulkResult[models.DocumentVerification]{
		Created: make([]models.DocumentVerification, 0, len(inputs)),
		Errors:  make([]models.BulkError, 0),
	}
	for i, input := range inputs {
		v, err := s.create(ctx, input)
		if err != nil {
			result.Errors = append(result.Errors, models.BulkError{Index: i, Row: input, Error: err.Error()})
			continue
		}
		result.Created = append(result.Created, *v)
	}
	result.TotalProcessed = len(inputs)
	result.Successful = len(result.Created)
	result.Failed = len(result.Errors)

	if result.Successful > 0 {
		s.invalidateReports(ctx)
	}
	logger.WithContext(ctx).Info("document verification bulk create finished",
		"processed", result.TotalProcessed, "successful", result.Successful, "failed", result.Failed)
	return result, nil
}

func (s *service) invalidateReports(ctx context.Context) {
	if err := cache.InvalidateReports(ctx, s.cache); err != nil {
		logger.WithContext(ctx).Warn("failed to invalidate report cache", "error", err)
	}
}
