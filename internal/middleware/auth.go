package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/pantrymatch/backend/internal/apperror"
	"github.com/pageza/pantrymatch/backend/internal/types"
)

const (
	userIDKey   = "user_id"
	usernameKey = "username"
)

// TokenValidator is an interface for validating JWT tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// AuthMiddleware creates a middleware that validates JWT tokens
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			AbortWithError(c, apperror.Unauthorized("missing authorization header"), false)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			AbortWithError(c, apperror.Unauthorized("invalid authorization header format"), false)
			return
		}

		claims, err := validator.ValidateToken(parts[1])
		if err != nil {
			AbortWithError(c, apperror.Unauthorized("invalid or expired token"), false)
			return
		}

		// Store user info in context
		c.Set(userIDKey, claims.UserID)
		c.Set(usernameKey, claims.Username)
		c.Next()
	}
}

// UserID returns the authenticated user's id
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok && id != uuid.Nil
}
