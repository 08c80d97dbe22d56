package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/axelstam/coursetalk/internal/app/models"
	appRepos "github.com/axelstam/coursetalk/internal/app/repositories"
	"github.com/axelstam/coursetalk/internal/pkg/apperrors"
)

// CreateDefaultData creates the default course rooms if they don't exist.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	courseRepo := appRepos.NewCourseRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default course rooms...")

	defaultCourses := []appModels.Course{
		{CourseCode: "TDDD80", CourseName: "Mobile and Social Applications"},
		{CourseCode: "TDDC73", CourseName: "Interaction Programming"},
		{CourseCode: "TATA24", CourseName: "Linear Algebra"},
	}

	var finalErr error
	for i := range defaultCourses {
		course := defaultCourses[i]
		if _, err := courseRepo.Create(ctx, &course); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				continue
			}
			lgr.Error().Err(err).Str("course", course.CourseCode).Msg("Error creating default course")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
