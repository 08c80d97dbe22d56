package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/axelstam/coursetalk/internal/app/models"
)

// AnswerRepository handles answer database operations
type AnswerRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAnswerRepository creates a new AnswerRepository
func NewAnswerRepository(db *pgxpool.Pool) *AnswerRepository {
	return &AnswerRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new answer
func (r *AnswerRepository) Create(ctx context.Context, answer *models.Answer) (int64, error) {
	sql, args, err := r.sb.Insert("answers").
		Columns("answer_body", "user_id", "question_id").
		Values(answer.AnswerBody, answer.UserID, answer.QuestionID).
		Suffix("RETURNING id, timestamp").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create answer query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id, &answer.Timestamp); err != nil {
		return 0, fmt.Errorf("error creating answer: %w", err)
	}

	answer.ID = id
	return id, nil
}

// GetByQuestionID retrieves all answers for a question with their authors
func (r *AnswerRepository) GetByQuestionID(ctx context.Context, questionID int64) ([]*models.Answer, error) {
	sql, args, err := r.sb.Select(
		"a.id", "a.answer_body", "a.timestamp", "a.user_id", "a.question_id",
		"u.username", "u.email",
	).
		From("answers a").
		Join("users u ON u.id = a.user_id").
		Where(squirrel.Eq{"a.question_id": questionID}).
		OrderBy("a.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build answers query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing answers query: %w", err)
	}
	defer rows.Close()

	var answers []*models.Answer
	for rows.Next() {
		var a models.Answer
		var author models.User
		if err := rows.Scan(&a.ID, &a.AnswerBody, &a.Timestamp, &a.UserID, &a.QuestionID, &author.Username, &author.Email); err != nil {
			return nil, fmt.Errorf("error scanning answer row: %w", err)
		}
		author.ID = a.UserID
		a.Author = &author
		answers = append(answers, &a)
	}

	return answers, rows.Err()
}
