package apperrors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomError_MessagePreferred(t *testing.T) {
	err := &CustomError{Err: ErrConflict, Message: "course code already exists"}
	assert.Equal(t, "course code already exists", err.Error())
}

func TestCustomError_FallsBackToWrapped(t *testing.T) {
	err := &CustomError{Err: ErrConflict}
	assert.Equal(t, ErrConflict.Error(), err.Error())

	empty := &CustomError{}
	assert.Equal(t, "unknown error", empty.Error())
}

func TestNewConflictError_UnwrapsToSentinel(t *testing.T) {
	err := NewConflictError("course code already exists")
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "course code already exists", err.Error())
	assert.NotErrorIs(t, err, ErrCourseNotFound)
}
