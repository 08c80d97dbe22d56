package models

import (
	"time"
)

// Question defines the question model based on the 'questions' table.
// Likes and AnswerCount are derived on read from the like edge set and
// the answers table, never stored.
type Question struct {
	ID            int64     `json:"question_id" db:"id"`
	QuestionTitle string    `json:"question_title" db:"question_title"`
	QuestionBody  string    `json:"question_body" db:"question_body"`
	Timestamp     time.Time `json:"timestamp" db:"timestamp"` // Server-assigned at creation
	UserID        int64     `json:"-" db:"user_id"`
	CourseID      int64     `json:"-" db:"course_id"`

	// Relations (populated by repository joins)
	Author *User   `json:"author,omitempty"`
	Course *Course `json:"course,omitempty"`

	// Derived counts
	Likes       int `json:"likes"`
	AnswerCount int `json:"answers"`
}

// Answer defines the answer model based on the 'answers' table
type Answer struct {
	ID         int64     `json:"answer_id" db:"id"`
	AnswerBody string    `json:"answer_body" db:"answer_body"`
	Timestamp  time.Time `json:"timestamp" db:"timestamp"`
	UserID     int64     `json:"-" db:"user_id"`
	QuestionID int64     `json:"-" db:"question_id"`

	Author *User `json:"author,omitempty"`
}
