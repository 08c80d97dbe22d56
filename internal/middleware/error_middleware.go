package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/axelstam/coursetalk/internal/app/models/dto"
	"github.com/axelstam/coursetalk/internal/pkg/apperrors"
)

// HandleAPIError maps core errors to the status codes and messages the
// client contract fixes. The 303 conflict/lookup codes and the 409
// login codes are part of that contract.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUsernameAlreadyTaken):
		c.JSON(http.StatusSeeOther, dto.NewMessageResponse("Username is already taken"))
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(http.StatusSeeOther, dto.NewMessageResponse("Email is already registered"))
	case errors.Is(err, apperrors.ErrWrongEmail):
		c.JSON(http.StatusConflict, dto.NewMessageResponse("Wrong email"))
	case errors.Is(err, apperrors.ErrWrongPassword):
		c.JSON(http.StatusConflict, dto.NewMessageResponse("Wrong password"))
	case errors.Is(err, apperrors.ErrUserNotFound):
		c.JSON(http.StatusSeeOther, dto.NewMessageResponse("User does not exist"))
	case errors.Is(err, apperrors.ErrQuestionNotFound):
		c.JSON(http.StatusSeeOther, dto.NewMessageResponse("Question does not exist"))
	case errors.Is(err, apperrors.ErrCourseNotFound):
		c.JSON(http.StatusNotFound, dto.NewMessageResponse("This course does not exist"))
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, dto.NewMessageResponse("Token has expired"))
	case errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, dto.NewMessageResponse("Invalid token"))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewMessageResponse("Internal server error"))
	}
}
