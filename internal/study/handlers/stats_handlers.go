package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/githoaitandev/my-flashcard/internal/common/errors"
	"github.com/githoaitandev/my-flashcard/internal/common/middleware"
	"github.com/githoaitandev/my-flashcard/internal/study/services"
)

// GetStats returns the dashboard aggregates
func GetStats(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("authentication required"))
		return
	}

	stats, err := services.GetStats(userID)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, stats)
}
