package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID           int64     `json:"user_id" db:"id" example:"1"`                       // Unique identifier for the user
	Username     string    `json:"username" db:"username" example:"nammers1"`         // Unique username
	Email        string    `json:"email" db:"email" example:"namn.namnsson@test.com"` // Unique email address
	PasswordHash string    `json:"-" db:"password_hash"`                              // Salted bcrypt digest (excluded from JSON)
	CreatedAt    time.Time `json:"-" db:"created_at"`                                 // Timestamp when the user was created
}
