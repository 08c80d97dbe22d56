package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// FieldError describes a single failed request field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrorResponse is returned when a request body fails the
// required-field validation, before any core logic runs.
type ValidationErrorResponse struct {
	Msg    string       `json:"msg"`
	Errors []FieldError `json:"errors,omitempty"`
}

// NewValidationErrorResponse converts a binding error into a structured
// validation response.
func NewValidationErrorResponse(err error) *ValidationErrorResponse {
	resp := &ValidationErrorResponse{Msg: "Validation failed"}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			resp.Errors = append(resp.Errors, FieldError{
				Field:   fe.Field(),
				Message: formatValidationError(fe),
			})
		}
	}

	return resp
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return e.Field() + " must be a valid email address"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
