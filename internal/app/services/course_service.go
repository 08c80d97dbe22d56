package services

import (
	"context"
	"fmt"

	"github.com/axelstam/coursetalk/internal/app/models/dto"
	"github.com/axelstam/coursetalk/internal/app/repositories"
)

// CourseService exposes the seeded course catalogue.
type CourseService struct {
	courseRepo repositories.ICourseRepository
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo repositories.ICourseRepository) *CourseService {
	return &CourseService{courseRepo: courseRepo}
}

// AllCourses lists every available course.
func (s *CourseService) AllCourses(ctx context.Context) (*dto.CourseListResponse, error) {
	courses, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}

	resp := &dto.CourseListResponse{Courses: make([]dto.CourseResponse, 0, len(courses))}
	for _, course := range courses {
		resp.Courses = append(resp.Courses, dto.CourseResponse{
			CourseID:   course.ID,
			CourseCode: course.CourseCode,
			CourseName: course.CourseName,
		})
	}

	return resp, nil
}
