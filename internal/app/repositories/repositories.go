package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/axelstam/coursetalk/internal/app/models"
)

// IUserRepository defines the interface for user-related database operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetAllExcept(ctx context.Context, userID int64) ([]*models.User, error)
}

// ITokenRepository defines the revocation ledger operations
type ITokenRepository interface {
	Insert(ctx context.Context, token *models.RevokedToken) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// IFollowRepository defines the directed follow edge operations
type IFollowRepository interface {
	Follow(ctx context.Context, followerID, followedID int64) error
	Unfollow(ctx context.Context, followerID, followedID int64) error
	IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error)
	GetFollowed(ctx context.Context, followerID int64) ([]*models.User, error)
}

// IQuestionRepository defines question and like-edge operations,
// including the feed join.
type IQuestionRepository interface {
	Create(ctx context.Context, question *models.Question) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Question, error)
	GetByAuthor(ctx context.Context, userID int64) ([]*models.Question, error)
	GetFeed(ctx context.Context, followerID int64) ([]*models.Question, error)
	Like(ctx context.Context, userID, questionID int64) error
	Unlike(ctx context.Context, userID, questionID int64) error
	IsLiking(ctx context.Context, userID, questionID int64) (bool, error)
}

// IAnswerRepository defines answer operations
type IAnswerRepository interface {
	Create(ctx context.Context, answer *models.Answer) (int64, error)
	GetByQuestionID(ctx context.Context, questionID int64) ([]*models.Answer, error)
}

// ICourseRepository defines course operations
type ICourseRepository interface {
	Create(ctx context.Context, course *models.Course) (int64, error)
	GetByCode(ctx context.Context, courseCode string) (*models.Course, error)
	GetAll(ctx context.Context) ([]*models.Course, error)
}

// Repositories bundles all repository implementations for injection
type Repositories struct {
	Users     IUserRepository
	Tokens    ITokenRepository
	Follows   IFollowRepository
	Questions IQuestionRepository
	Answers   IAnswerRepository
	Courses   ICourseRepository
}

// NewRepositories creates the postgres-backed repository set
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(db),
		Tokens:    NewTokenRepository(db),
		Follows:   NewFollowRepository(db),
		Questions: NewQuestionRepository(db),
		Answers:   NewAnswerRepository(db),
		Courses:   NewCourseRepository(db),
	}
}
