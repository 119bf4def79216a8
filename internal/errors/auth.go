package errors

var (
	ErrUserNotFound = &DomainError{
		Kind:    KindNotFound,
		Code:    "USER_NOT_FOUND",
		Message: "User not found",
	}
	ErrEmailTaken = &DomainError{
		Kind:    KindConflict,
		Code:    "EMAIL_TAKEN",
		Message: "An account with this email already exists",
	}
	ErrInvalidCredentials = &DomainError{
		Kind:    KindUnauthorized,
		Code:    "INVALID_CREDENTIALS",
		Message: "Invalid email or password",
	}
	ErrEmailNotVerified = &DomainError{
		Kind:    KindUnauthorized,
		Code:    "EMAIL_NOT_VERIFIED",
		Message: "Please verify your email address first",
	}
	ErrEmailAlreadyVerified = &DomainError{
		Kind:    KindValidation,
		Code:    "EMAIL_ALREADY_VERIFIED",
		Message: "Email is already verified",
	}
	ErrInvalidVerificationCode = &DomainError{
		Kind:    KindValidation,
		Code:    "INVALID_VERIFICATION_CODE",
		Message: "Invalid or expired verification code",
	}
	ErrInvalidResetToken = &DomainError{
		Kind:    KindValidation,
		Code:    "INVALID_RESET_TOKEN",
		Message: "Invalid or expired reset token",
	}
	ErrWeakPassword = &DomainError{
		Kind:    KindValidation,
		Code:    "WEAK_PASSWORD",
		Message: "Password must be at least 8 characters and contain a letter and a number",
	}
	ErrWrongPassword = &DomainError{
		Kind:    KindValidation,
		Code:    "WRONG_PASSWORD",
		Message: "Current password is incorrect",
	}
	ErrMissingToken = &DomainError{
		Kind:    KindUnauthorized,
		Code:    "MISSING_TOKEN",
		Message: "Access token required",
	}
	ErrInvalidToken = &DomainError{
		Kind:    KindUnauthorized,
		Code:    "INVALID_TOKEN",
		Message: "Invalid or expired token",
	}
	ErrSessionExpired = &DomainError{
		Kind:    KindUnauthorized,
		Code:    "SESSION_EXPIRED",
		Message: "Session expired, please log in again",
	}
)
