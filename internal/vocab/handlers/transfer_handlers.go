package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/githoaitandev/my-flashcard/internal/common/errors"
	"github.com/githoaitandev/my-flashcard/internal/common/middleware"
	"github.com/githoaitandev/my-flashcard/internal/vocab/models"
	"github.com/githoaitandev/my-flashcard/internal/vocab/services"
)

// ExportDeck renders a deck as a portable JSON payload
func ExportDeck(c *gin.Context) {
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

	payload, err := services.ExportDeck(userID, deckID)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, payload)
}

// ImportDeck creates a deck plus cards from an exported payload
func ImportDeck(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("authentication required"))
		return
	}

	var payload models.DeckTransfer
	if err := c.ShouldBindJSON(&payload); err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	result, err := services.ImportDeck(userID, payload)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(201, result)
}
