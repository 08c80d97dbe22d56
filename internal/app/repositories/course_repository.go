package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/axelstam/coursetalk/internal/app/models"
	"github.com/axelstam/coursetalk/internal/pkg/apperrors"
	"github.com/axelstam/coursetalk/internal/pkg/dberrors"
)

// CourseRepository handles course database operations. Courses are
// only ever written by the seeder.
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a course; a duplicate course code is a conflict.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) (int64, error) {
	sql, args, err := r.sb.Insert("courses").
		Columns("course_code", "course_name").
		Values(course.CourseCode, course.CourseName).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create course query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		// course_code is the table's only unique column
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.NewConflictError("course code already exists")
		}
		return 0, fmt.Errorf("error creating course: %w", err)
	}

	return id, nil
}

// GetByCode retrieves a course by its course code
func (r *CourseRepository) GetByCode(ctx context.Context, courseCode string) (*models.Course, error) {
	sql, args, err := r.sb.Select("id", "course_code", "course_name").
		From("courses").
		Where(squirrel.Eq{"course_code": courseCode}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	var course models.Course
	err = r.db.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.CourseCode, &course.CourseName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return &course, nil
}

// GetAll retrieves every course
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	sql, args, err := r.sb.Select("id", "course_code", "course_name").
		From("courses").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing get all courses query: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.ID, &course.CourseCode, &course.CourseName); err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, &course)
	}

	return courses, rows.Err()
}
