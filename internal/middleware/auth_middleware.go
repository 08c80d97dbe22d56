package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/axelstam/coursetalk/internal/app/models/dto"
	"github.com/axelstam/coursetalk/internal/app/repositories"
	"github.com/axelstam/coursetalk/internal/pkg/auth"
)

// Context keys set for downstream handlers
const (
	ContextUserID      = "userID"
	ContextEmail       = "email"
	ContextAccessToken = "accessToken"
)

// AuthMiddleware validates bearer tokens and gates revoked ones.
type AuthMiddleware struct {
	jwtService *auth.JWTService
	tokenRepo  repositories.ITokenRepository
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, tokenRepo repositories.ITokenRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		tokenRepo:  tokenRepo,
	}
}

// JWTAuth validates the Authorization header and checks the revocation
// ledger before letting the request through. Any decode failure,
// expiry or revocation surfaces as the same 401 outcome.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewMessageResponse("Missing Authorization Header"))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewMessageResponse("Invalid token format"))
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				msg = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewMessageResponse(msg))
			return
		}

		revoked, err := m.tokenRepo.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewMessageResponse("Internal server error"))
			return
		}
		if revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewMessageResponse("Token has been revoked"))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextAccessToken, tokenString)

		c.Next()
	}
}

// CurrentUserID returns the authenticated user id set by JWTAuth.
func CurrentUserID(c *gin.Context) int64 {
	id, _ := c.Get(ContextUserID)
	userID, _ := id.(int64)
	return userID
}

// AccessToken returns the raw bearer token set by JWTAuth.
func AccessToken(c *gin.Context) string {
	t, _ := c.Get(ContextAccessToken)
	token, _ := t.(string)
	return token
}
