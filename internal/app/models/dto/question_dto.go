package dto

import (
	"time"
)

// AskQuestionRequest represents a new question posted to a course room
type AskQuestionRequest struct {
	QuestionTitle string `json:"question_title" binding:"required"`
	QuestionBody  string `json:"question_body" binding:"required"`
	CourseRoom    string `json:"course_room" binding:"required"` // Course code, e.g. TDDD80
}

// AnswerRequest represents an answer to an existing question
type AnswerRequest struct {
	AnswerBody string `json:"answer_body" binding:"required"`
}

// CourseResponse represents a course room
type CourseResponse struct {
	CourseID   int64  `json:"course_id"`
	CourseCode string `json:"course_code"`
	CourseName string `json:"course_name"`
}

// QuestionResponse represents a question with its author, course and
// derived engagement counts.
type QuestionResponse struct {
	QuestionID    int64          `json:"question_id"`
	QuestionTitle string         `json:"question_title"`
	QuestionBody  string         `json:"question_body"`
	Timestamp     time.Time      `json:"timestamp"`
	Author        UserResponse   `json:"author"`
	Course        CourseResponse `json:"course"`
	Likes         int            `json:"likes"`
	Answers       int            `json:"answers"`
	IsLiking      bool           `json:"is_liking"`
}

// QuestionListResponse wraps a list of questions
type QuestionListResponse struct {
	Questions []QuestionResponse `json:"questions"`
}

// AnswerResponse represents an answer with its author
type AnswerResponse struct {
	AnswerID   int64        `json:"answer_id"`
	AnswerBody string       `json:"answer_body"`
	Timestamp  time.Time    `json:"timestamp"`
	Author     UserResponse `json:"author"`
}

// AnswerListResponse wraps the answers to a question
type AnswerListResponse struct {
	Answers []AnswerResponse `json:"answers"`
}

// CourseListResponse wraps all available courses
type CourseListResponse struct {
	Courses []CourseResponse `json:"courses"`
}
