package models

// Course represents a course room that questions belong to.
// Courses are seeded at startup and immutable afterwards.
type Course struct {
	ID         int64  `json:"course_id" db:"id"`
	CourseCode string `json:"course_code" db:"course_code" example:"TDDD80"`
	CourseName string `json:"course_name" db:"course_name" example:"Mobile and Social Applications"`
}
