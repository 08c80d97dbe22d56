package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/axelstam/coursetalk/internal/app/models"
	"github.com/axelstam/coursetalk/internal/app/models/dto"
	"github.com/axelstam/coursetalk/internal/app/repositories"
)

// QuestionService handles questions, answers, likes and the feed.
type QuestionService struct {
	questionRepo repositories.IQuestionRepository
	answerRepo   repositories.IAnswerRepository
	courseRepo   repositories.ICourseRepository
	logger       zerolog.Logger
}

// NewQuestionService creates a new QuestionService
func NewQuestionService(
	questionRepo repositories.IQuestionRepository,
	answerRepo repositories.IAnswerRepository,
	courseRepo repositories.ICourseRepository,
	logger zerolog.Logger,
) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		courseRepo:   courseRepo,
		logger:       logger,
	}
}

// Ask posts a question into the course room named by its course code.
func (s *QuestionService) Ask(ctx context.Context, userID int64, req *dto.AskQuestionRequest) error {
	course, err := s.courseRepo.GetByCode(ctx, req.CourseRoom)
	if err != nil {
		return err
	}

	question := &models.Question{
		QuestionTitle: req.QuestionTitle,
		QuestionBody:  req.QuestionBody,
		UserID:        userID,
		CourseID:      course.ID,
	}

	if _, err := s.questionRepo.Create(ctx, question); err != nil {
		return fmt.Errorf("error creating question: %w", err)
	}

	s.logger.Info().Int64("userID", userID).Str("course", course.CourseCode).Msg("Question posted")
	return nil
}

// Feed returns the questions authored by users the requester follows,
// newest first, each annotated with the requester's like state.
func (s *QuestionService) Feed(ctx context.Context, userID int64) (*dto.QuestionListResponse, error) {
	questions, err := s.questionRepo.GetFeed(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching feed: %w", err)
	}

	return s.toQuestionList(ctx, userID, questions)
}

// MyQuestions returns the requester's own questions, newest first.
func (s *QuestionService) MyQuestions(ctx context.Context, userID int64) (*dto.QuestionListResponse, error) {
	questions, err := s.questionRepo.GetByAuthor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching questions: %w", err)
	}

	return s.toQuestionList(ctx, userID, questions)
}

// QuestionByID fetches one question with the requester's like state.
func (s *QuestionService) QuestionByID(ctx context.Context, userID, questionID int64) (*dto.QuestionResponse, error) {
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	liking, err := s.questionRepo.IsLiking(ctx, userID, question.ID)
	if err != nil {
		return nil, fmt.Errorf("error checking like state: %w", err)
	}

	resp := toQuestionResponse(question, liking)
	return &resp, nil
}

// Like adds the requester's like edge to a question.
func (s *QuestionService) Like(ctx context.Context, userID, questionID int64) error {
	if _, err := s.questionRepo.GetByID(ctx, questionID); err != nil {
		return err
	}

	if err := s.questionRepo.Like(ctx, userID, questionID); err != nil {
		return fmt.Errorf("error adding like edge: %w", err)
	}

	return nil
}

// Unlike removes the requester's like edge from a question, if present.
func (s *QuestionService) Unlike(ctx context.Context, userID, questionID int64) error {
	if _, err := s.questionRepo.GetByID(ctx, questionID); err != nil {
		return err
	}

	if err := s.questionRepo.Unlike(ctx, userID, questionID); err != nil {
		return fmt.Errorf("error removing like edge: %w", err)
	}

	return nil
}

// Answer posts an answer to an existing question.
func (s *QuestionService) Answer(ctx context.Context, userID, questionID int64, req *dto.AnswerRequest) error {
	if _, err := s.questionRepo.GetByID(ctx, questionID); err != nil {
		return err
	}

	answer := &models.Answer{
		AnswerBody: req.AnswerBody,
		UserID:     userID,
		QuestionID: questionID,
	}

	if _, err := s.answerRepo.Create(ctx, answer); err != nil {
		return fmt.Errorf("error creating answer: %w", err)
	}

	return nil
}

// AnswersFor lists the answers to a question.
func (s *QuestionService) AnswersFor(ctx context.Context, questionID int64) (*dto.AnswerListResponse, error) {
	if _, err := s.questionRepo.GetByID(ctx, questionID); err != nil {
		return nil, err
	}

	answers, err := s.answerRepo.GetByQuestionID(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("error fetching answers: %w", err)
	}

	resp := &dto.AnswerListResponse{Answers: make([]dto.AnswerResponse, 0, len(answers))}
	for _, answer := range answers {
		resp.Answers = append(resp.Answers, dto.AnswerResponse{
			AnswerID:   answer.ID,
			AnswerBody: answer.AnswerBody,
			Timestamp:  answer.Timestamp,
			Author:     toUserResponse(answer.Author),
		})
	}

	return resp, nil
}

func (s *QuestionService) toQuestionList(ctx context.Context, userID int64, questions []*models.Question) (*dto.QuestionListResponse, error) {
	resp := &dto.QuestionListResponse{Questions: make([]dto.QuestionResponse, 0, len(questions))}
	for _, question := range questions {
		liking, err := s.questionRepo.IsLiking(ctx, userID, question.ID)
		if err != nil {
			return nil, fmt.Errorf("error checking like state: %w", err)
		}
		resp.Questions = append(resp.Questions, toQuestionResponse(question, liking))
	}

	return resp, nil
}

func toQuestionResponse(q *models.Question, isLiking bool) dto.QuestionResponse {
	return dto.QuestionResponse{
		QuestionID:    q.ID,
		QuestionTitle: q.QuestionTitle,
		QuestionBody:  q.QuestionBody,
		Timestamp:     q.Timestamp,
		Author:        toUserResponse(q.Author),
		Course: dto.CourseResponse{
			CourseID:   q.Course.ID,
			CourseCode: q.Course.CourseCode,
			CourseName: q.Course.CourseName,
		},
		Likes:    q.Likes,
		Answers:  q.AnswerCount,
		IsLiking: isLiking,
	}
}
