package validation

import (
	"fmt"
	"reflect"
	"strings"

	apperrors "emiverify/internal/errors"

	"github.com/go-playground/validator/v10"
)

// Schema validates request structs by their `validate` tags and reports fields by JSON name.
type Schema struct {
	validate *validator.Validate
}

// NewSchema builds a Schema; the underlying validator caches struct metadata and is safe for concurrent use.
func NewSchema() *Schema {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return &Schema{validate: v}
}

// Struct returns a validation DomainError listing each failing field, or nil.
func (s *Schema) Struct(input interface{}) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Internal(err)
	}

	v := New()
	for _, fe := range verrs {
		v.AddError(fe.Field(), describe(fe))
	}
	return v.Err()
}

func describe(fe validator.FieldError) string {
	switch fe.ActualTag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must not be more than %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("must be of length %s", fe.Param())
	case "numeric":
		return "must contain only digits"
	case "oneof":
		return fmt.Sprintf("must be one of %s", strings.Join(strings.Fields(fe.Param()), ", "))
	}
	return "is invalid"
}
