package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func TestIsDuplicateConstraintError(t *testing.T) {
	err := uniqueViolation("users_username_key")

	assert.True(t, IsDuplicateConstraintError(err, "users_username_key"))
	assert.False(t, IsDuplicateConstraintError(err, "users_email_key"))

	// Wrapped errors still match.
	wrapped := fmt.Errorf("insert failed: %w", err)
	assert.True(t, IsDuplicateConstraintError(wrapped, "users_username_key"))
}

func TestIsDuplicateConstraintError_OtherCodes(t *testing.T) {
	notNull := &pgconn.PgError{Code: "23502", ConstraintName: "users_username_key"}
	assert.False(t, IsDuplicateConstraintError(notNull, "users_username_key"))
	assert.False(t, IsDuplicateConstraintError(errors.New("plain error"), "users_username_key"))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(uniqueViolation("courses_course_code_key")))
	assert.True(t, IsUniqueViolation(fmt.Errorf("wrapped: %w", uniqueViolation("any"))))

	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("plain error")))
	assert.False(t, IsUniqueViolation(nil))
}
