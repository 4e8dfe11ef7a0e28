package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/githoaitandev/my-flashcard/internal/common/middleware"
	"github.com/githoaitandev/my-flashcard/internal/users/models"
	"github.com/githoaitandev/my-flashcard/internal/users/services"
)

// Register handles POST /auth/register
func Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	user, err := services.Register(&req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login handles POST /auth/login
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	resp, err := services.Login(&req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.SetCookie("session_token", resp.Token, int(services.SessionLifetime().Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, resp)
}

// Logout handles POST /auth/logout
func Logout(c *gin.Context) {
	token := sessionToken(c)
	if err := services.Logout(token); err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.SetCookie("session_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func sessionToken(c *gin.Context) string {
	if token, err := c.Cookie("session_token"); err == nil && token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
