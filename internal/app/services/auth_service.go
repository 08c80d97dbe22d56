package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/axelstam/coursetalk/internal/app/models"
	"github.com/axelstam/coursetalk/internal/app/models/dto"
	"github.com/axelstam/coursetalk/internal/app/repositories"
	"github.com/axelstam/coursetalk/internal/pkg/apperrors"
	"github.com/axelstam/coursetalk/internal/pkg/auth"
)

// AuthService handles registration, login and the token lifecycle.
type AuthService struct {
	userRepo   repositories.IUserRepository
	tokenRepo  repositories.ITokenRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	tokenRepo repositories.ITokenRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates a new user. Username is checked before email so the
// client gets the distinguishing conflict message; the unique
// constraints in the store back-stop a racing duplicate insert.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) error {
	taken, err := s.userRepo.UsernameExists(ctx, req.Username)
	if err != nil {
		return fmt.Errorf("error checking if username exists: %w", err)
	}
	if taken {
		return apperrors.ErrUsernameAlreadyTaken
	}

	registered, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("error checking if email exists: %w", err)
	}
	if registered {
		return apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}

	if _, err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("user creation error: %w", err)
	}

	s.logger.Info().Str("username", req.Username).Msg("User registered")
	return nil
}

// Login authenticates by email and password. Email existence is checked
// first; the two failure causes surface as distinct errors.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrWrongEmail
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrWrongPassword
	}

	return s.generateTokenResponse(user)
}

// Logout revokes the presented access token by recording its jti. The
// token is decoded again here, matching the one place the ledger learns
// about claims.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.jwtService.ValidateAndExtractClaims(tokenString)
	if err != nil {
		return tokenError(err)
	}

	if err := s.tokenRepo.Insert(ctx, claims.RevocationRecord()); err != nil {
		return fmt.Errorf("error recording revocation: %w", err)
	}

	s.logger.Info().Str("jti", claims.ID).Str("email", claims.Email).Msg("Token revoked on logout")
	return nil
}

// RefreshToken revokes the presented token and issues a fresh one for
// the same identity. The old token is spent whether or not issuance
// succeeds, making refresh strictly one-time-use.
func (s *AuthService) RefreshToken(ctx context.Context, tokenString string) (*dto.TokenResponse, error) {
	claims, err := s.jwtService.ValidateAndExtractClaims(tokenString)
	if err != nil {
		return nil, tokenError(err)
	}

	if err := s.tokenRepo.Insert(ctx, claims.RevocationRecord()); err != nil {
		return nil, fmt.Errorf("error recording revocation: %w", err)
	}

	user, err := s.userRepo.GetByEmail(ctx, claims.Email)
	if err != nil {
		return nil, fmt.Errorf("user not found for token identity: %w", err)
	}

	s.logger.Info().Str("jti", claims.ID).Str("email", claims.Email).Msg("Token rotated on refresh")
	return s.generateTokenResponse(user)
}

// tokenError distinguishes an expired token from every other decode
// failure. A token can pass the middleware check and expire before the
// service re-validates it here.
func tokenError(err error) error {
	if errors.Is(err, auth.ErrExpiredToken) {
		return apperrors.ErrTokenExpired
	}
	return apperrors.ErrTokenInvalid
}

// generateTokenResponse creates the token payload for a user
func (s *AuthService) generateTokenResponse(user *models.User) (*dto.TokenResponse, error) {
	accessToken, expiresIn, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}, nil
}
