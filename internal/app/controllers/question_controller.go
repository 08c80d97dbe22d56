package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/axelstam/coursetalk/internal/app/models/dto"
	"github.com/axelstam/coursetalk/internal/app/services"
	"github.com/axelstam/coursetalk/internal/middleware"
	"github.com/axelstam/coursetalk/internal/pkg/apperrors"
)

// QuestionController handles question, answer, like and feed routes
type QuestionController struct {
	questionService *services.QuestionService
}

// NewQuestionController creates a new QuestionController
func NewQuestionController(questionService *services.QuestionService) *QuestionController {
	return &QuestionController{questionService: questionService}
}

// Feed lists the questions posted by the users the requester follows
func (c *QuestionController) Feed(ctx *gin.Context) {
	resp, err := c.questionService.Feed(ctx.Request.Context(), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// Ask posts a new question into a course room
func (c *QuestionController) Ask(ctx *gin.Context) {
	var req dto.AskQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(err))
		return
	}

	if err := c.questionService.Ask(ctx.Request.Context(), middleware.CurrentUserID(ctx), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Question successfully added"))
}

// QuestionByID fetches a single question
func (c *QuestionController) QuestionByID(ctx *gin.Context) {
	questionID, err := questionIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.questionService.QuestionByID(ctx.Request.Context(), middleware.CurrentUserID(ctx), questionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// MyQuestions lists the requester's own questions
func (c *QuestionController) MyQuestions(ctx *gin.Context) {
	resp, err := c.questionService.MyQuestions(ctx.Request.Context(), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// Like marks a question as liked by the requester
func (c *QuestionController) Like(ctx *gin.Context) {
	questionID, err := questionIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.questionService.Like(ctx.Request.Context(), middleware.CurrentUserID(ctx), questionID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Like successful"))
}

// Unlike removes the requester's like from a question
func (c *QuestionController) Unlike(ctx *gin.Context) {
	questionID, err := questionIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.questionService.Unlike(ctx.Request.Context(), middleware.CurrentUserID(ctx), questionID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Unlike successful"))
}

// Answer posts an answer to a question
func (c *QuestionController) Answer(ctx *gin.Context) {
	questionID, err := questionIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(err))
		return
	}

	if err := c.questionService.Answer(ctx.Request.Context(), middleware.CurrentUserID(ctx), questionID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Question successfully answered"))
}

// Answers lists the answers to a question
func (c *QuestionController) Answers(ctx *gin.Context) {
	questionID, err := questionIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.questionService.AnswersFor(ctx.Request.Context(), questionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// questionIDParam parses the question_id path parameter. A value that is
// not a number can never name an existing question, so it maps to the
// same error as an unknown id.
func questionIDParam(ctx *gin.Context) (int64, error) {
	questionID, err := strconv.ParseInt(ctx.Param("question_id"), 10, 64)
	if err != nil {
		return 0, apperrors.ErrQuestionNotFound
	}
	return questionID, nil
}
