package repositories

import (
	"context"
	"time"

	"emiverify/internal/models"
)

// AuthTokenRepository stores email verification codes and password reset tokens.
// Both are keyed by email: issuing a new one replaces the previous one.
type AuthTokenRepository interface {
	// UpsertVerificationCode stores a fresh unused code for the email
	UpsertVerificationCode(ctx context.Context, email, code string, expiresAt time.Time) error

	// ConsumeVerificationCode marks the code used and the user verified in one transaction
	ConsumeVerificationCode(ctx context.Context, email, code string, now time.Time) (*models.User, error)

	// UpsertResetToken stores a fresh unused reset token for the email
	UpsertResetToken(ctx context.Context, email, token string, expiresAt time.Time) error

	// ConsumeResetToken marks the token used, stores the new password hash and
	// bumps the user's token version in one transaction
	ConsumeResetToken(ctx context.Context, token, passwordHash string, now time.Time) (*models.User, error)
}
