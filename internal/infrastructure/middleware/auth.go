package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/corvidlabs/reviewdesk/pkg/jwt"
	"github.com/corvidlabs/reviewdesk/pkg/response"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// ContextUserID is the context key for user ID
	ContextUserID = "user_id"
	// ContextUsername is the context key for username
	ContextUsername = "username"
	// ContextEmail is the context key for email
	ContextEmail = "email"
)

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(jwtManager *jwt.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtManager.ValidateAccessToken(tokenString)
		if err != nil {
			log.Debug().Err(err).Msg("Token validation failed")
			if err == jwt.ErrExpiredToken {
				response.Unauthorized(c, "token has expired")
			} else {
				response.Unauthorized(c, "invalid token")
			}
			c.Abort()
			return
		}

		// Set user info in context
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextEmail, claims.Email)

		c.Next()
	}
}

// GetUserID retrieves the user ID from context
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get(ContextUserID)
	if !exists {
		return ""
	}
	id, _ := userID.(string)
	return id
}

// GetUserUUID retrieves the user ID from context parsed as a UUID.
// Returns uuid.Nil when no authenticated user is present.
func GetUserUUID(c *gin.Context) uuid.UUID {
	id, err := uuid.Parse(GetUserID(c))
	if err != nil {
		return uuid.Nil
	}
	return id
}

// GetUsername retrieves the username from context
func GetUsername(c *gin.Context) string {
	username, exists := c.Get(ContextUsername)
	if !exists {
		return ""
	}
	name, _ := username.(string)
	return name
}

// GetEmail retrieves the email from context
func GetEmail(c *gin.Context) string {
	email, exists := c.Get(ContextEmail)
	if !exists {
		return ""
	}
	e, _ := email.(string)
	return e
}
