package services

import (
	"context"
	"fmt"

	"github.com/axelstam/coursetalk/internal/app/models"
	"github.com/axelstam/coursetalk/internal/app/models/dto"
	"github.com/axelstam/coursetalk/internal/app/repositories"
)

// UserService handles user listing and lookup, annotating results with
// the requester's follow state.
type UserService struct {
	userRepo   repositories.IUserRepository
	followRepo repositories.IFollowRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.IUserRepository, followRepo repositories.IFollowRepository) *UserService {
	return &UserService{
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// AllOtherUsers lists every user except the requester, each annotated
// with whether the requester follows them.
func (s *UserService) AllOtherUsers(ctx context.Context, currentUserID int64) (*dto.UserListResponse, error) {
	users, err := s.userRepo.GetAllExcept(ctx, currentUserID)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	resp := &dto.UserListResponse{Users: make([]dto.UserWithFollowResponse, 0, len(users))}
	for _, user := range users {
		followed, err := s.followRepo.IsFollowing(ctx, currentUserID, user.ID)
		if err != nil {
			return nil, fmt.Errorf("error checking follow state: %w", err)
		}
		resp.Users = append(resp.Users, dto.UserWithFollowResponse{
			UserResponse: toUserResponse(user),
			IsFollowed:   followed,
		})
	}

	return resp, nil
}

// UserByUsername fetches a user by username with the requester's follow state.
func (s *UserService) UserByUsername(ctx context.Context, currentUserID int64, username string) (*dto.UserWithFollowResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	followed, err := s.followRepo.IsFollowing(ctx, currentUserID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("error checking follow state: %w", err)
	}

	return &dto.UserWithFollowResponse{
		UserResponse: toUserResponse(user),
		IsFollowed:   followed,
	}, nil
}

// CurrentUser fetches the requester's own record.
func (s *UserService) CurrentUser(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func toUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}
