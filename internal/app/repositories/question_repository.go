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
)

// QuestionRepository handles question rows, the like edge set and the
// feed join. Like and answer counts are correlated subqueries so reads
// always reflect the current store state.
type QuestionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewQuestionRepository creates a new QuestionRepository
func NewQuestionRepository(db *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new question. Timestamp is server-assigned by the
// database default.
func (r *QuestionRepository) Create(ctx context.Context, question *models.Question) (int64, error) {
	sql, args, err := r.sb.Insert("questions").
		Columns("question_title", "question_body", "user_id", "course_id").
		Values(question.QuestionTitle, question.QuestionBody, question.UserID, question.CourseID).
		Suffix("RETURNING id, timestamp").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create question query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id, &question.Timestamp); err != nil {
		return 0, fmt.Errorf("error creating question: %w", err)
	}

	question.ID = id
	return id, nil
}

// selectQuestions is the shared projection: question columns plus
// author, course and the derived counts.
func (r *QuestionRepository) selectQuestions() squirrel.SelectBuilder {
	return r.sb.Select(
		"q.id", "q.question_title", "q.question_body", "q.timestamp", "q.user_id", "q.course_id",
		"u.username", "u.email",
		"c.course_code", "c.course_name",
		"(SELECT COUNT(*) FROM question_likes ql WHERE ql.question_id = q.id) AS likes",
		"(SELECT COUNT(*) FROM answers a WHERE a.question_id = q.id) AS answer_count",
	).
		From("questions q").
		Join("users u ON u.id = q.user_id").
		Join("courses c ON c.id = q.course_id")
}

func (r *QuestionRepository) scanQuestion(row pgx.Row) (*models.Question, error) {
	var q models.Question
	var author models.User
	var course models.Course

	err := row.Scan(
		&q.ID, &q.QuestionTitle, &q.QuestionBody, &q.Timestamp, &q.UserID, &q.CourseID,
		&author.Username, &author.Email,
		&course.CourseCode, &course.CourseName,
		&q.Likes, &q.AnswerCount,
	)
	if err != nil {
		return nil, err
	}

	author.ID = q.UserID
	course.ID = q.CourseID
	q.Author = &author
	q.Course = &course
	return &q, nil
}

// GetByID retrieves a question with author, course and counts
func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (*models.Question, error) {
	sql, args, err := r.selectQuestions().
		Where(squirrel.Eq{"q.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get question query: %w", err)
	}

	q, err := r.scanQuestion(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("error retrieving question: %w", err)
	}

	return q, nil
}

// GetByAuthor retrieves a user's questions, newest first
func (r *QuestionRepository) GetByAuthor(ctx context.Context, userID int64) ([]*models.Question, error) {
	query := r.selectQuestions().
		Where(squirrel.Eq{"q.user_id": userID}).
		OrderBy("q.timestamp DESC")
	return r.queryQuestions(ctx, query)
}

// GetFeed retrieves questions authored by users the given user follows,
// newest first. The (follower, followed) edge is unique per pair, so
// the join cannot fan out.
func (r *QuestionRepository) GetFeed(ctx context.Context, followerID int64) ([]*models.Question, error) {
	query := r.selectQuestions().
		Join("followers f ON f.followed_id = q.user_id").
		Where(squirrel.Eq{"f.follower_id": followerID}).
		OrderBy("q.timestamp DESC")
	return r.queryQuestions(ctx, query)
}

func (r *QuestionRepository) queryQuestions(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Question, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build questions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing questions query: %w", err)
	}
	defer rows.Close()

	var questions []*models.Question
	for rows.Next() {
		q, err := r.scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning question row: %w", err)
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}

// Like inserts the like edge; liking twice is a no-op.
func (r *QuestionRepository) Like(ctx context.Context, userID, questionID int64) error {
	sql, args, err := r.sb.Insert("question_likes").
		Columns("user_id", "question_id").
		Values(userID, questionID).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build like query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error inserting like edge: %w", err)
	}

	return nil
}

// Unlike deletes the like edge; unliking a missing edge is a no-op.
func (r *QuestionRepository) Unlike(ctx context.Context, userID, questionID int64) error {
	sql, args, err := r.sb.Delete("question_likes").
		Where(squirrel.Eq{"user_id": userID, "question_id": questionID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build unlike query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error deleting like edge: %w", err)
	}

	return nil
}

// IsLiking reports whether the like edge exists
func (r *QuestionRepository) IsLiking(ctx context.Context, userID, questionID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("question_likes").
		Where(squirrel.Eq{"user_id": userID, "question_id": questionID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build is-liking query: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error checking like edge: %w", err)
	}

	return true, nil
}
