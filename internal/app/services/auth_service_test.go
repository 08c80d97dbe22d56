package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/axelstam/coursetalk/internal/app/models"
	"github.com/axelstam/coursetalk/internal/app/models/dto"
	"github.com/axelstam/coursetalk/internal/app/repositories"
	"github.com/axelstam/coursetalk/internal/pkg/apperrors"
	"github.com/axelstam/coursetalk/internal/pkg/auth"
	"github.com/axelstam/coursetalk/internal/testutil"
)

func newAuthFixture(t *testing.T) (*AuthService, *repositories.Repositories) {
	t.Helper()
	repos := testutil.NewStore().Repositories()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "coursetalk.test",
	})
	svc := NewAuthService(repos.Users, repos.Tokens, jwtService, zerolog.Nop())
	return svc, repos
}

func registerUser(t *testing.T, svc *AuthService, username, email string) {
	t.Helper()
	err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: username,
		Email:    email,
		Password: "secret123",
	})
	require.NoError(t, err)
}

func TestRegister_AndLogin(t *testing.T) {
	svc, repos := newAuthFixture(t)
	ctx := context.Background()

	registerUser(t, svc, "alice", "alice@example.com")

	user, err := repos.Users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
}

func TestRegister_UsernameTaken(t *testing.T) {
	svc, _ := newAuthFixture(t)
	registerUser(t, svc, "alice", "alice@example.com")

	err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, apperrors.ErrUsernameAlreadyTaken)
}

func TestRegister_EmailRegistered(t *testing.T) {
	svc, _ := newAuthFixture(t)
	registerUser(t, svc, "alice", "alice@example.com")

	err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "bob",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRegister_UsernameConflictWinsOverEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)
	registerUser(t, svc, "alice", "alice@example.com")

	// Both fields collide; the username message must win.
	err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, apperrors.ErrUsernameAlreadyTaken)
}

func TestLogin_WrongEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)
	registerUser(t, svc, "alice", "alice@example.com")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, apperrors.ErrWrongEmail)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)
	registerUser(t, svc, "alice", "alice@example.com")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, apperrors.ErrWrongPassword)
}

func TestLogout_RevokesToken(t *testing.T) {
	svc, repos := newAuthFixture(t)
	ctx := context.Background()
	registerUser(t, svc, "alice", "alice@example.com")

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.AccessToken))

	claims, err := svc.jwtService.ValidateAndExtractClaims(resp.AccessToken)
	require.NoError(t, err)
	revoked, err := repos.Tokens.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestLogout_GarbageToken(t *testing.T) {
	svc, _ := newAuthFixture(t)

	err := svc.Logout(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestLogoutAndRefresh_ExpiredToken(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()
	registerUser(t, svc, "alice", "alice@example.com")

	// Same secret, already-elapsed lifetime: the token decodes but is
	// past its expiry by the time the service re-validates it.
	expiredIssuer := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: -time.Minute,
		TokenIssuer:    "coursetalk.test",
	})
	token, _, err := expiredIssuer.GenerateAccessToken(&models.User{
		ID:    1,
		Email: "alice@example.com",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Logout(ctx, token), apperrors.ErrTokenExpired)

	_, err = svc.RefreshToken(ctx, token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestRefreshToken_RotatesJTI(t *testing.T) {
	svc, repos := newAuthFixture(t)
	ctx := context.Background()
	registerUser(t, svc, "alice", "alice@example.com")

	first, err := svc.Login(ctx, &dto.LoginRequest{Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)

	second, err := svc.RefreshToken(ctx, first.AccessToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.AccessToken, second.AccessToken)

	oldClaims, err := svc.jwtService.ValidateAndExtractClaims(first.AccessToken)
	require.NoError(t, err)
	newClaims, err := svc.jwtService.ValidateAndExtractClaims(second.AccessToken)
	require.NoError(t, err)

	assert.NotEqual(t, oldClaims.ID, newClaims.ID)

	// The spent token is revoked, the fresh one is not.
	revoked, err := repos.Tokens.IsRevoked(ctx, oldClaims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = repos.Tokens.IsRevoked(ctx, newClaims.ID)
	require.NoError(t, err)
	assert.False(t, revoked)
}
