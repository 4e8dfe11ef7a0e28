package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/githoaitandev/my-flashcard/internal/common/errors"
	"github.com/githoaitandev/my-flashcard/internal/common/middleware"
	"github.com/githoaitandev/my-flashcard/internal/study/models"
	"github.com/githoaitandev/my-flashcard/internal/study/services"
)

// GetStudyCards returns the cards due for review. An explicit limit is
// passed through as-is, zero included; the default applies only when the
// parameter is absent.
func GetStudyCards(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("authentication required"))
		return
	}

	deckID, err := optionalUintQuery(c, "deckId")
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	memoryStatus, err := optionalIntQuery(c, "memoryStatus")
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			middleware.JSONErrorResponse(c, errors.BadRequest("invalid limit parameter"))
			return
		}
	}

	cards, err := services.StudyCards(userID, deckID, memoryStatus, limit)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, cards)
}

// CreateStudySession records the start of a review run
func CreateStudySession(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("authentication required"))
		return
	}

	var req models.CreateStudySessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	session, err := services.CreateStudySession(userID, req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(201, session)
}

// FinishStudySession finalizes a review run exactly once
func FinishStudySession(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("authentication required"))
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	var req models.FinishStudySessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	session, err := services.FinishStudySession(userID, id, req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, session)
}

func pathID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, errors.BadRequest("invalid id parameter")
	}
	return uint(id), nil
}

func optionalUintQuery(c *gin.Context, name string) (*uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, errors.BadRequest("invalid " + name + " parameter")
	}
	value := uint(parsed)
	return &value, nil
}

func optionalIntQuery(c *gin.Context, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errors.BadRequest("invalid " + name + " parameter")
	}
	return &value, nil
}
