package apperrors

import "errors"

// Common errors
var (
	ErrConflict = errors.New("conflict")

	// Authentication errors
	ErrWrongEmail    = errors.New("wrong email")
	ErrWrongPassword = errors.New("wrong password")
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("invalid token")

	// User errors
	ErrUserNotFound         = errors.New("user not found")
	ErrUsernameAlreadyTaken = errors.New("username already taken")
	ErrEmailAlreadyExists   = errors.New("email already registered")
)

// Question and course errors
var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrCourseNotFound   = errors.New("course not found")
)

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}
