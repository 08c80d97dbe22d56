package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/axelstam/coursetalk/internal/app/services"
	"github.com/axelstam/coursetalk/internal/middleware"
)

// UserController handles user listing and lookup
type UserController struct {
	userService *services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{userService: userService}
}

// AllUsers lists every other user with the requester's follow state
func (c *UserController) AllUsers(ctx *gin.Context) {
	resp, err := c.userService.AllOtherUsers(ctx.Request.Context(), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// UserByUsername fetches a user by username
func (c *UserController) UserByUsername(ctx *gin.Context) {
	resp, err := c.userService.UserByUsername(ctx.Request.Context(), middleware.CurrentUserID(ctx), ctx.Param("username"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// CurrentUser fetches the requester's own record
func (c *UserController) CurrentUser(ctx *gin.Context) {
	resp, err := c.userService.CurrentUser(ctx.Request.Context(), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
