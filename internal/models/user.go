package models

import (
	"time"
)

type User struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	FullName      string     `gorm:"size:255;not null" json:"full_name"`
	Email         string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password      string     `gorm:"not null" json:"password"`
	EmailVerified bool       `gorm:"default:false" json:"verified"`
	TokenVersion  int        `gorm:"default:1" json:"token_version"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// UserProfile is the client-facing view of a User.
type UserProfile struct {
	ID          uint       `json:"id"`
	FullName    string     `json:"full_name"`
	Email       string     `json:"email"`
	Verified    bool       `json:"verified"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Profile strips credentials and token state.
func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:          u.ID,
		FullName:    u.FullName,
		Email:       u.Email,
		Verified:    u.EmailVerified,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// VerificationCode is the 6-digit email confirmation code. One row per email.
type VerificationCode struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"size:255;uniqueIndex;not null"`
	Code      string    `gorm:"size:6;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Used      bool      `gorm:"default:false"`
	CreatedAt time.Time
}

// Valid reports whether the code can still be redeemed at now.
func (v *VerificationCode) Valid(now time.Time) bool {
	return !v.Used && now.Before(v.ExpiresAt)
}

// PasswordResetToken is a single-use reset secret. One row per email.
type PasswordResetToken struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"size:255;uniqueIndex;not null"`
	Token     string    `gorm:"size:64;uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Used      bool      `gorm:"default:false"`
	CreatedAt time.Time
}

// Valid reports whether the token can still be redeemed at now.
func (t *PasswordResetToken) Valid(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiresAt)
}
