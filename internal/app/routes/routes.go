package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/axelstam/coursetalk/internal/app/controllers"
	"github.com/axelstam/coursetalk/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	followController *controllers.FollowController,
	questionController *controllers.QuestionController,
	courseController *controllers.CourseController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// --- Public routes ---
	router.GET("/", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "Hi there!")
	})

	router.POST("/users", authController.Register)
	router.POST("/login", authController.Login)

	// --- Authenticated routes ---
	authenticated := router.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/logout", authController.Logout)
		authenticated.POST("/refresh_token", authController.RefreshToken)

		authenticated.GET("/users", userController.AllUsers)
		authenticated.GET("/users/current", userController.CurrentUser)
		authenticated.GET("/users/:username", userController.UserByUsername)

		authenticated.GET("/followed_users", followController.FollowedUsers)
		authenticated.POST("/followed_users/:username", followController.Follow)
		authenticated.DELETE("/followed_users/:username", followController.Unfollow)

		authenticated.GET("/questions", questionController.Feed)
		authenticated.POST("/questions", questionController.Ask)
		authenticated.GET("/questions/:question_id", questionController.QuestionByID)
		authenticated.GET("/myquestions", questionController.MyQuestions)

		authenticated.POST("/liked_questions/:question_id", questionController.Like)
		authenticated.DELETE("/liked_questions/:question_id", questionController.Unlike)

		authenticated.POST("/answer_question/:question_id", questionController.Answer)
		authenticated.GET("/answers/:question_id", questionController.Answers)

		authenticated.GET("/courses", courseController.AllCourses)
	}
}
