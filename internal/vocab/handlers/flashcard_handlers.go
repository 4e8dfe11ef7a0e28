package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/githoaitandev/my-flashcard/internal/common/errors"
	"github.com/githoaitandev/my-flashcard/internal/common/middleware"
	"github.com/githoaitandev/my-flashcard/internal/vocab/models"
	"github.com/githoaitandev/my-flashcard/internal/vocab/services"
)

// ListFlashcards returns cards, filtered by deckId or bounded by limit
func ListFlashcards(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("authentication required"))
		return
	}

	var deckID *uint
	if raw := c.Query("deckId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			middleware.JSONErrorResponse(c, errors.BadRequest("invalid deckId parameter"))
			return
		}
		id := uint(parsed)
		deckID = &id
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	cards, err := services.ListFlashcards(userID, deckID, limit)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, cards)
}

// CreateFlashcard adds a card to a deck
func CreateFlashcard(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("authentication required"))
		return
	}

	var req models.CreateFlashcardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	card, err := services.CreateFlashcard(userID, req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(201, card)
}

// GetFlashcard returns a single card
func GetFlashcard(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("authentication required"))
		return
	}

	cardID, err := pathID(c, "id")
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	card, err := services.GetFlashcard(userID, cardID)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, card)
}

// UpdateFlashcard edits a card's content
func UpdateFlashcard(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("authentication required"))
		return
	}

	cardID, err := pathID(c, "id")
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	var req models.UpdateFlashcardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	card, err := services.UpdateFlashcard(userID, cardID, req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, card)
}

// DeleteFlashcard removes a card
func DeleteFlashcard(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("authentication required"))
		return
	}

	cardID, err := pathID(c, "id")
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	if err := services.DeleteFlashcard(userID, cardID); err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "flashcard deleted",
	})
}

// TransitionMemory applies a memory-status transition to a card
func TransitionMemory(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("authentication required"))
		return
	}

	cardID, err := pathID(c, "id")
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	var req models.MemoryTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	card, err := services.ApplyMemoryTransition(userID, cardID, req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, gin.H{
		"card":  card,
		"label": models.MemoryStatusLabel(card.MemoryStatus),
	})
}
