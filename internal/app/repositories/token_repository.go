package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/axelstam/coursetalk/internal/app/models"
	"github.com/axelstam/coursetalk/internal/pkg/logger"
)

// TokenRepository handles the revoked-token ledger. Records accumulate;
// nothing prunes them after expiry.
type TokenRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Insert persists a revocation record
func (r *TokenRepository) Insert(ctx context.Context, token *models.RevokedToken) error {
	sql, args, err := r.sb.Insert("revoked_tokens").
		Columns("jti", "token_type", "user_identity", "expires").
		Values(token.JTI, token.TokenType, token.UserIdentity, token.Expires).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert revoked token query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("jti", token.JTI).Msg("Error inserting revocation record")
		return fmt.Errorf("error inserting revoked token: %w", err)
	}

	return nil
}

// IsRevoked reports whether a record with the given jti exists
func (r *TokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("revoked_tokens").
		Where(squirrel.Eq{"jti": jti}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build revocation query: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error checking revocation: %w", err)
	}

	return true, nil
}
