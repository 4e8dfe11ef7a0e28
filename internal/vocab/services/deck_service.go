package services

import (
	"github.com/githoaitandev/my-flashcard/internal/common/errors"
	"github.com/githoaitandev/my-flashcard/internal/vocab/models"
	"github.com/githoaitandev/my-flashcard/internal/vocab/repository"
)

// ListDecks returns a user's decks with card counts, newest first
func ListDecks(userID uint, limit int) ([]*models.DeckResponse, error) {
	decks, err := repository.ListDecks(userID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.DeckResponse, 0, len(decks))
	for _, deck := range decks {
		count, err := repository.CountCards(deck.ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, &models.DeckResponse{
			ID:          deck.ID,
			Name:        deck.Name,
			Description: deck.Description,
			CreatedAt:   deck.CreatedAt,
			UpdatedAt:   deck.UpdatedAt,
			CardCount:   count,
		})
	}

	return responses, nil
}

// CreateDeck creates a deck for a user
func CreateDeck(userID uint, req models.CreateDeckRequest) (*models.Deck, error) {
	deck := &models.Deck{
		Name:   req.Name,
		UserID: userID,
	}
	if req.Description != "" {
		deck.Description = &req.Description
	}

	if err := repository.CreateDeck(deck); err != nil {
		return nil, err
	}

	return deck, nil
}

// GetDeck returns a deck with its cards; ownership is enforced
func GetDeck(userID, deckID uint) (*models.DeckDetailResponse, error) {
	deck, err := repository.GetDeckWithCards(deckID)
	if err != nil {
		return nil, err
	}
	if deck == nil {
		return nil, errors.NotFound("deck")
	}
	if deck.UserID != userID {
		return nil, errors.Forbidden("deck belongs to another user")
	}

	cards := deck.Cards
	if cards == nil {
		cards = []models.Flashcard{}
	}

	return &models.DeckDetailResponse{
		DeckResponse: models.DeckResponse{
			ID:          deck.ID,
			Name:        deck.Name,
			Description: deck.Description,
			CreatedAt:   deck.CreatedAt,
			UpdatedAt:   deck.UpdatedAt,
			CardCount:   int64(len(cards)),
		},
		Cards: cards,
	}, nil
}

// UpdateDeck renames a deck or changes its description
func UpdateDeck(userID, deckID uint, req models.UpdateDeckRequest) (*models.Deck, error) {
	deck, err := ownedDeck(userID, deckID)
	if err != nil {
		return nil, err
	}

	deck.Name = req.Name
	if req.Description != "" {
		deck.Description = &req.Description
	} else {
		deck.Description = nil
	}

	if err := repository.UpdateDeck(deck); err != nil {
		return nil, err
	}

	return deck, nil
}

// DeleteDeck removes a deck and all its flashcards atomically
func DeleteDeck(userID, deckID uint) error {
	if _, err := ownedDeck(userID, deckID); err != nil {
		return err
	}

	return repository.DeleteDeckWithCards(deckID)
}

func ownedDeck(userID, deckID uint) (*models.Deck, error) {
	deck, err := repository.GetDeck(deckID)
	if err != nil {
		return nil, err
	}
	if deck == nil {
		return nil, errors.NotFound("deck")
	}
	if deck.UserID != userID {
		return nil, errors.Forbidden("deck belongs to another user")
	}
	return deck, nil
}
