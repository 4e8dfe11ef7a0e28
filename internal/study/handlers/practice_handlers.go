package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/githoaitandev/my-flashcard/internal/common/errors"
	"github.com/githoaitandev/my-flashcard/internal/common/middleware"
	"github.com/githoaitandev/my-flashcard/internal/study/models"
	"github.com/githoaitandev/my-flashcard/internal/study/services"
)

// StartPractice opens a practice or study run
func StartPractice(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("authentication required"))
		return
	}

	var req models.StartPracticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	view, err := services.StartPractice(userID, req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(201, view)
}

// GetPracticeSession returns the current session snapshot
func GetPracticeSession(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("authentication required"))
		return
	}

	view, err := services.GetPracticeSession(userID, c.Param("token"))
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, view)
}

// AnswerPractice submits the response for the current card
func AnswerPractice(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("authentication required"))
		return
	}

	var req models.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	response, err := services.AnswerPractice(userID, c.Param("token"), req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, response)
}

// AdvancePractice moves to the next card or completes the run
func AdvancePractice(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("authentication required"))
		return
	}

	view, err := services.AdvancePractice(userID, c.Param("token"))
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, view)
}

// RetryPractice restarts a completed run on the same card sequence
func RetryPractice(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("authentication required"))
		return
	}

	view, err := services.RetryPractice(userID, c.Param("token"))
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, view)
}

// AbandonPractice drops a session mid-flight
func AbandonPractice(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("authentication required"))
		return
	}

	services.AbandonPractice(userID, c.Param("token"))

	c.JSON(200, gin.H{
		"success": true,
		"message": "practice session abandoned",
	})
}
