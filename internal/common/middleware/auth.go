package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/githoaitandev/my-flashcard/internal/common/database"
	"github.com/githoaitandev/my-flashcard/internal/common/errors"
)

const userIDKey = "user_id"

// AuthRequired resolves a session token (cookie or bearer header) to a user
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := resolveUser(c)
		if !ok {
			appErr := errors.Unauthorized("missing or invalid authentication")
			c.JSON(appErr.Status, appErr)
			c.Abort()
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id set by AuthRequired
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := v.(uint)
	return userID, ok
}

func resolveUser(c *gin.Context) (uint, bool) {
	token := sessionToken(c)
	if token == "" {
		return 0, false
	}

	var session database.Session
	result := database.DB.Where("session_token = ?", token).First(&session)
	if result.Error != nil {
		return 0, false
	}
	if time.Now().After(session.ExpiresAt) {
		return 0, false
	}

	// Touch activity, best-effort
	database.DB.Model(&session).Update("last_activity", time.Now())

	return session.UserID, true
}

func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie("session_token"); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}
