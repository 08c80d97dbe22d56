package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/axelstam/coursetalk/internal/app/models/dto"
	"github.com/axelstam/coursetalk/internal/app/services"
	"github.com/axelstam/coursetalk/internal/middleware"
)

// FollowController handles the follow routes
type FollowController struct {
	followService *services.FollowService
}

// NewFollowController creates a new FollowController
func NewFollowController(followService *services.FollowService) *FollowController {
	return &FollowController{followService: followService}
}

// FollowedUsers lists the users the requester follows
func (c *FollowController) FollowedUsers(ctx *gin.Context) {
	resp, err := c.followService.FollowedUsers(ctx.Request.Context(), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// Follow makes the requester follow the named user
func (c *FollowController) Follow(ctx *gin.Context) {
	err := c.followService.Follow(ctx.Request.Context(), middleware.CurrentUserID(ctx), ctx.Param("username"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Follow successful"))
}

// Unfollow makes the requester unfollow the named user
func (c *FollowController) Unfollow(ctx *gin.Context) {
	err := c.followService.Unfollow(ctx.Request.Context(), middleware.CurrentUserID(ctx), ctx.Param("username"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Unfollow successful"))
}
