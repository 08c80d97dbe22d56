package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/axelstam/coursetalk/internal/app/services"
	"github.com/axelstam/coursetalk/internal/middleware"
)

// CourseController handles course routes
type CourseController struct {
	courseService *services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// AllCourses lists every course room
func (c *CourseController) AllCourses(ctx *gin.Context) {
	resp, err := c.courseService.AllCourses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
