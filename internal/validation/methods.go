package validation

import (
	"fmt"
	"strings"
	"unicode"

	apperrors "emiverify/internal/errors"
	"emiverify/internal/models"

	"github.com/shopspring/decimal"
)

// Validator collects per-field business rule violations
type Validator struct {
	Errors map[string]string
}

// New creates a new validator
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid checks if there are any validation errors
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records the first message for a field
func (v *Validator) AddError(field, message string) {
	if _, exists := v.Errors[field]; !exists {
		v.Errors[field] = message
	}
}

// Check adds an error if the condition is false
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Err returns nil when valid, otherwise a validation DomainError carrying the fields.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	return apperrors.Validation(v.summary(), v.Errors)
}

// ErrAs is Err with a specific sentinel in place of the generic validation error.
func (v *Validator) ErrAs(sentinel *apperrors.DomainError) error {
	if v.Valid() {
		return nil
	}
	return sentinel.WithFields(v.Errors)
}

func (v *Validator) summary() string {
	if len(v.Errors) == 1 {
		for field, msg := range v.Errors {
			return fmt.Sprintf("%s %s", field, msg)
		}
	}
	return "validation failed"
}

// Required checks if a string is not blank
func (v *Validator) Required(field, value string) {
	v.Check(strings.TrimSpace(value) != "", field, "must not be empty")
}

// NonNegative rejects amounts below zero
func (v *Validator) NonNegative(field string, value decimal.Decimal) {
	v.Check(!value.IsNegative(), field, "must not be negative")
}

// DateOrder rejects a closing date earlier than the receiving date
func (v *Validator) DateOrder(received, closed *models.Date) {
	v.Check(!models.ClosedBeforeReceived(received, closed), "date_closed", "cannot be before date_received")
}

// Password validates password strength
func (v *Validator) Password(field, password string) {
	v.Check(len(password) >= MinPasswordLength, field, fmt.Sprintf("must be at least %d characters long", MinPasswordLength))
	v.Check(len(password) <= MaxPasswordLength, field, fmt.Sprintf("must not be more than %d characters long", MaxPasswordLength))

	var hasLetter, hasNumber bool
	for _, char := range password {
		switch {
		case unicode.IsLetter(char):
			hasLetter = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}

	v.Check(hasLetter, field, "must contain at least one letter")
	v.Check(hasNumber, field, "must contain at least one number")
}
