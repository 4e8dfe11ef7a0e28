package services

import (
	"fmt"

	"github.com/githoaitandev/my-flashcard/internal/common/errors"
	"github.com/githoaitandev/my-flashcard/internal/common/validation"
	"github.com/githoaitandev/my-flashcard/internal/vocab/models"
	"github.com/githoaitandev/my-flashcard/internal/vocab/repository"
)

// ExportDeck renders a deck and its cards as a transfer payload
func ExportDeck(userID, deckID uint) (*models.DeckTransfer, error) {
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

	cards := make([]models.CardTransfer, 0, len(deck.Cards))
	for _, card := range deck.Cards {
		cards = append(cards, models.CardTransfer{
			Front:        card.Front,
			Back:         card.Back,
			PartOfSpeech: card.PartOfSpeech,
			Example:      card.Example,
			MemoryStatus: card.MemoryStatus,
		})
	}

	return &models.DeckTransfer{
		Name:        deck.Name,
		Description: deck.Description,
		Cards:       cards,
	}, nil
}

// ImportDeck creates a new deck plus all its cards from a transfer payload
// in one transaction. Cards with no grammatical category default to "other",
// unknown or out-of-range memory statuses reset to New.
func ImportDeck(userID uint, payload models.DeckTransfer) (*models.ImportResult, error) {
	if errs := validation.Validate(payload); len(errs) > 0 {
		return nil, errors.Validation("invalid import payload",
			fmt.Sprintf("%s: %s", errs[0].Field, errs[0].Message))
	}

	deck := &models.Deck{
		Name:        payload.Name,
		Description: payload.Description,
		UserID:      userID,
	}

	cards := make([]models.Flashcard, 0, len(payload.Cards))
	for _, in := range payload.Cards {
		partOfSpeech := in.PartOfSpeech
		if !models.ValidPartOfSpeech(partOfSpeech) {
			partOfSpeech = "other"
		}
		status := in.MemoryStatus
		if status < models.MemoryStatusNew || status > models.MemoryStatusMastered {
			status = models.MemoryStatusNew
		}
		cards = append(cards, models.Flashcard{
			Front:        in.Front,
			Back:         in.Back,
			PartOfSpeech: partOfSpeech,
			Example:      in.Example,
			MemoryStatus: status,
		})
	}

	if err := repository.ImportDeck(deck, cards); err != nil {
		return nil, err
	}

	detail, err := GetDeck(userID, deck.ID)
	if err != nil {
		return nil, err
	}

	return &models.ImportResult{
		Message:       "Import successful",
		Deck:          *detail,
		ImportedCards: len(cards),
	}, nil
}
