package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/axelstam/coursetalk/internal/app/models"
)

func newTestJWTService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: exp,
		TokenIssuer:    "coursetalk.test",
	})
}

func testUser() *models.User {
	return &models.User{ID: 42, Username: "alice", Email: "alice@example.com"}
}

func TestGenerateAccessToken_ClaimsRoundTrip(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	token, expiresIn, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, int64(3600), expiresIn)

	claims, err := svc.ValidateAndExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, "coursetalk.test", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestGenerateAccessToken_UniqueJTI(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	user := testUser()

	first, _, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	second, _, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	firstClaims, err := svc.ValidateAndExtractClaims(first)
	require.NoError(t, err)
	secondClaims, err := svc.ValidateAndExtractClaims(second)
	require.NoError(t, err)

	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestJWTService(-time.Minute)

	token, _, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := newTestJWTService(time.Hour)
	token, _, err := issuer.GenerateAccessToken(testUser())
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{
		SecretKey:      "different-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "coursetalk.test",
	})

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateAndExtractClaims_EmptyToken(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	_, err := svc.ValidateAndExtractClaims("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRevocationRecord(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	token, _, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)

	claims, err := svc.ValidateAndExtractClaims(token)
	require.NoError(t, err)

	record := claims.RevocationRecord()
	assert.Equal(t, claims.ID, record.JTI)
	assert.Equal(t, TokenTypeAccess, record.TokenType)
	assert.Equal(t, "alice@example.com", record.UserIdentity)
	assert.WithinDuration(t, time.Now().Add(time.Hour), record.Expires, time.Minute)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ExtractBearerToken("abc.def.ghi")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ExtractBearerToken("Basic abc")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
