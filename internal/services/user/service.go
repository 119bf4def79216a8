// Package user serves the signed-in user's profile.
package user

import (
	"context"
	"strings"

	"emiverify/internal/logger"
	"emiverify/internal/models"
	"emiverify/internal/repositories"
	"emiverify/internal/validation"
)

type Service interface {
	GetProfile(ctx context.Context, userID uint) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, userID uint, input models.UpdateProfileInput) (*models.UserProfile, error)
}

type service struct {
	repo   repositories.UserRepository
	schema *validation.Schema
}

func NewService(repo repositories.UserRepository, schema *validation.Schema) Service {
	return &service{
		repo:   repo,
		schema: schema,
	}
}

func (s *service) GetProfile(ctx context.Context, userID uint) (*models.UserProfile, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := u.Profile()
	return &profile, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uint, input models.UpdateProfileInput) (*models.UserProfile, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	if err := s.schema.Struct(input); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.FullName = input.FullName

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	logger.WithContext(ctx).Info("profile updated", "user_id", userID)
	profile := u.Profile()
	return &profile, nil
}
