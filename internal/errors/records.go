package errors

var (
	ErrInsuranceCaseNotFound = &DomainError{
		Kind:    KindNotFound,
		Code:    "INSURANCE_CASE_NOT_FOUND",
		Message: "Insurance case not found",
	}
	ErrVerificationNotFound = &DomainError{
		Kind:    KindNotFound,
		Code:    "DOCUMENT_VERIFICATION_NOT_FOUND",
		Message: "Document verification not found",
	}
	ErrInvalidID = &DomainError{
		Kind:    KindValidation,
		Code:    "INVALID_ID",
		Message: "id must be a positive integer",
	}
	ErrInvalidDateOrder = &DomainError{
		Kind:    KindValidation,
		Code:    "INVALID_DATE_ORDER",
		Message: "date_closed cannot be before date_received",
	}
	ErrNegativeAmount = &DomainError{
		Kind:    KindValidation,
		Code:    "NEGATIVE_AMOUNT",
		Message: "amounts must not be negative",
	}
	ErrNoFieldsToUpdate = &DomainError{
		Kind:    KindValidation,
		Code:    "NO_FIELDS_TO_UPDATE",
		Message: "No valid fields to update",
	}
	ErrEmptyBulk = &DomainError{
		Kind:    KindValidation,
		Code:    "EMPTY_BULK",
		Message: "Records array is required and must not be empty",
	}
	ErrInvalidFilter = &DomainError{
		Kind:    KindValidation,
		Code:    "INVALID_FILTER",
		Message: "invalid filter",
	}
	ErrNoDataToExport = &DomainError{
		Kind:    KindNotFound,
		Code:    "NO_DATA_TO_EXPORT",
		Message: "No data found for export",
	}
	ErrInvalidImportFile = &DomainError{
		Kind:    KindValidation,
		Code:    "INVALID_IMPORT_FILE",
		Message: "invalid CSV file",
	}
)
