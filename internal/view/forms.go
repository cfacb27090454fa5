package view

import (
	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoginForm carries the credentials of a login or signup attempt.
// Validation happens before any network call.
type LoginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// ProductForm carries a seller's item draft. A zero price fails
// validation even though it is a legal catalog value.
type ProductForm struct {
	Name       string  `validate:"required"`
	Price      float64 `validate:"required,gt=0"`
	ImageURL   string
	CategoryID string `validate:"required"`
}

// FieldError represents a field validation error
type FieldError struct {
	Field   string
	Message string
}

// ValidateForm validates a form struct and converts validator errors
// to a renderable format. An empty slice means the form may be sent.
func ValidateForm(v any) []FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var errors []FieldError
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			errors = append(errors, FieldError{
				Field:   e.Field(),
				Message: fieldErrorMessage(e),
			})
		}
	}
	return errors
}

func fieldErrorMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "gt":
		return "Value must be greater than " + e.Param()
	default:
		return "Invalid value"
	}
}
