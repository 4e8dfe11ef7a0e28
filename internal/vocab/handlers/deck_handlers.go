package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/githoaitandev/my-flashcard/internal/common/errors"
	"github.com/githoaitandev/my-flashcard/internal/common/middleware"
	"github.com/githoaitandev/my-flashcard/internal/vocab/models"
	"github.com/githoaitandev/my-flashcard/internal/vocab/services"
)

// ListDecks returns the authenticated user's decks
func ListDecks(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("authentication required"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	decks, err := services.ListDecks(userID, limit)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, decks)
}

// CreateDeck creates a new deck
func CreateDeck(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("authentication required"))
		return
	}

	var req models.CreateDeckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	deck, err := services.CreateDeck(userID, req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(201, deck)
}

// GetDeck returns one deck with its cards
func GetDeck(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("authentication required"))
		return
	}

	deckID, err := pathID(c, "id")
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	deck, err := services.GetDeck(userID, deckID)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, deck)
}

// UpdateDeck renames a deck or changes its description
func UpdateDeck(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("authentication required"))
		return
	}

	deckID, err := pathID(c, "id")
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	var req models.UpdateDeckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	deck, err := services.UpdateDeck(userID, deckID, req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, deck)
}

// DeleteDeck removes a deck and all of its flashcards
func DeleteDeck(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("authentication required"))
		return
	}

	deckID, err := pathID(c, "id")
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	if err := services.DeleteDeck(userID, deckID); err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "deck and its flashcards deleted",
	})
}

func pathID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, errors.BadRequest("invalid id parameter")
	}
	return uint(id), nil
}
