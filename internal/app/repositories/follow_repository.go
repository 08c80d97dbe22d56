package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/axelstam/coursetalk/internal/app/models"
)

// FollowRepository handles the directed follow edge set. The
// (follower_id, followed_id) pair is the primary key, so an edge can
// exist at most once.
type FollowRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFollowRepository creates a new FollowRepository
func NewFollowRepository(db *pgxpool.Pool) *FollowRepository {
	return &FollowRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Follow inserts the edge; a duplicate follow is a no-op.
func (r *FollowRepository) Follow(ctx context.Context, followerID, followedID int64) error {
	sql, args, err := r.sb.Insert("followers").
		Columns("follower_id", "followed_id").
		Values(followerID, followedID).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build follow query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error inserting follow edge: %w", err)
	}

	return nil
}

// Unfollow deletes the edge; unfollowing a missing edge is a no-op.
func (r *FollowRepository) Unfollow(ctx context.Context, followerID, followedID int64) error {
	sql, args, err := r.sb.Delete("followers").
		Where(squirrel.Eq{"follower_id": followerID, "followed_id": followedID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build unfollow query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error deleting follow edge: %w", err)
	}

	return nil
}

// IsFollowing reports whether the edge exists
func (r *FollowRepository) IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("followers").
		Where(squirrel.Eq{"follower_id": followerID, "followed_id": followedID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build is-following query: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error checking follow edge: %w", err)
	}

	return true, nil
}

// GetFollowed retrieves all users the given user follows
func (r *FollowRepository) GetFollowed(ctx context.Context, followerID int64) ([]*models.User, error) {
	sql, args, err := r.sb.Select("u.id", "u.username", "u.email", "u.password_hash", "u.created_at").
		From("followers f").
		Join("users u ON u.id = f.followed_id").
		Where(squirrel.Eq{"f.follower_id": followerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build followed users query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing followed users query: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning followed user row: %w", err)
		}
		users = append(users, &user)
	}

	return users, rows.Err()
}
