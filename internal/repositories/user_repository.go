package repositories

import (
	"context"

	"emiverify/internal/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	// Create creates a new user; a duplicate email yields ErrEmailTaken
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by their ID, through the cache
	GetByID(ctx context.Context, id uint) (*models.User, error)

	// GetByEmail retrieves a user by their email address
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Update saves an existing user's information
	Update(ctx context.Context, user *models.User) error

	// IncrementTokenVersion invalidates every token issued to the user
	IncrementTokenVersion(ctx context.Context, userID uint) error

	// TouchLastLogin records a successful login
	TouchLastLogin(ctx context.Context, userID uint) error
}
