package services

import (
	"context"
	"fmt"

	"github.com/axelstam/coursetalk/internal/app/models/dto"
	"github.com/axelstam/coursetalk/internal/app/repositories"
)

// FollowService handles the social graph operations. Follow and
// unfollow are idempotent; repeating either leaves the edge set
// unchanged.
type FollowService struct {
	userRepo   repositories.IUserRepository
	followRepo repositories.IFollowRepository
}

// NewFollowService creates a new FollowService
func NewFollowService(userRepo repositories.IUserRepository, followRepo repositories.IFollowRepository) *FollowService {
	return &FollowService{
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// Follow adds a follow edge from the requester to the named user.
func (s *FollowService) Follow(ctx context.Context, followerID int64, username string) error {
	followed, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	if err := s.followRepo.Follow(ctx, followerID, followed.ID); err != nil {
		return fmt.Errorf("error adding follow edge: %w", err)
	}

	return nil
}

// Unfollow removes the follow edge to the named user, if present.
func (s *FollowService) Unfollow(ctx context.Context, followerID int64, username string) error {
	followed, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	if err := s.followRepo.Unfollow(ctx, followerID, followed.ID); err != nil {
		return fmt.Errorf("error removing follow edge: %w", err)
	}

	return nil
}

// FollowedUsers lists the users the requester follows. Order is
// unspecified.
func (s *FollowService) FollowedUsers(ctx context.Context, followerID int64) (*dto.FollowedUsersResponse, error) {
	users, err := s.followRepo.GetFollowed(ctx, followerID)
	if err != nil {
		return nil, fmt.Errorf("error listing followed users: %w", err)
	}

	resp := &dto.FollowedUsersResponse{Users: make([]dto.UserResponse, 0, len(users))}
	for _, user := range users {
		resp.Users = append(resp.Users, toUserResponse(user))
	}

	return resp, nil
}
