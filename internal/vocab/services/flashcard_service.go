package services

import (
	"time"

	"github.com/githoaitandev/my-flashcard/internal/common/errors"
	"github.com/githoaitandev/my-flashcard/internal/vocab/models"
	"github.com/githoaitandev/my-flashcard/internal/vocab/repository"
)

// ListFlashcards returns a user's cards for a deck, or across all their
// decks when deckID is nil (bounded by limit, default 100)
func ListFlashcards(userID uint, deckID *uint, limit int) ([]models.Flashcard, error) {
	if deckID != nil {
		if _, err := ownedDeck(userID, *deckID); err != nil {
			return nil, err
		}
		return repository.ListFlashcardsByDeck(*deckID)
	}
	if limit <= 0 {
		limit = 100
	}
	return repository.ListFlashcards(userID, limit)
}

// CreateFlashcard adds a card to one of the user's decks; new cards start
// at status New
func CreateFlashcard(userID uint, req models.CreateFlashcardRequest) (*models.Flashcard, error) {
	if _, err := ownedDeck(userID, req.DeckID); err != nil {
		return nil, err
	}

	partOfSpeech := req.PartOfSpeech
	if partOfSpeech == "" {
		partOfSpeech = "other"
	}

	card := &models.Flashcard{
		Front:        req.Front,
		Back:         req.Back,
		PartOfSpeech: partOfSpeech,
		MemoryStatus: models.MemoryStatusNew,
		DeckID:       req.DeckID,
	}
	if req.Example != "" {
		card.Example = &req.Example
	}

	if err := repository.CreateFlashcard(card); err != nil {
		return nil, err
	}

	return card, nil
}

// GetFlashcard fetches a single card; ownership is enforced through the
// card's deck
func GetFlashcard(userID, id uint) (*models.Flashcard, error) {
	return ownedCard(userID, id)
}

// UpdateFlashcard edits a card's content fields
func UpdateFlashcard(userID, id uint, req models.UpdateFlashcardRequest) (*models.Flashcard, error) {
	card, err := ownedCard(userID, id)
	if err != nil {
		return nil, err
	}

	card.Front = req.Front
	card.Back = req.Back
	if req.PartOfSpeech != "" {
		card.PartOfSpeech = req.PartOfSpeech
	}
	if req.Example != "" {
		card.Example = &req.Example
	} else {
		card.Example = nil
	}

	if err := repository.UpdateFlashcard(card); err != nil {
		return nil, err
	}

	return card, nil
}

// DeleteFlashcard removes a card
func DeleteFlashcard(userID, id uint) error {
	if _, err := ownedCard(userID, id); err != nil {
		return err
	}
	return repository.DeleteFlashcard(id)
}

// ApplyMemoryTransition mutates a card's memory status. Increment clamps at
// Mastered, decrement clamps at New, set takes an explicit 0-3 value. Every
// transition stamps last_reviewed, whichever direction it moved.
func ApplyMemoryTransition(userID, id uint, req models.MemoryTransitionRequest) (*models.Flashcard, error) {
	card, err := ownedCard(userID, id)
	if err != nil {
		return nil, err
	}

	switch req.Action {
	case "increment":
		card.MemoryStatus = models.ClampMemoryStatus(card.MemoryStatus + 1)
	case "decrement":
		card.MemoryStatus = models.ClampMemoryStatus(card.MemoryStatus - 1)
	case "set":
		if req.Value == nil {
			return nil, errors.Validation("missing status value", "action 'set' requires a value between 0 and 3")
		}
		card.MemoryStatus = models.ClampMemoryStatus(*req.Value)
	default:
		return nil, errors.Validation("unknown action", "action must be increment, decrement or set")
	}

	now := time.Now()
	card.LastReviewed = &now

	if err := repository.UpdateFlashcard(card); err != nil {
		return nil, err
	}

	return card, nil
}

// SetMemoryStatus is the direct-set transition used by study sessions
func SetMemoryStatus(userID, id uint, status int) (*models.Flashcard, error) {
	value := status
	return ApplyMemoryTransition(userID, id, models.MemoryTransitionRequest{
		Action: "set",
		Value:  &value,
	})
}

// ownedCard resolves a card and checks it sits in one of the user's decks
func ownedCard(userID, cardID uint) (*models.Flashcard, error) {
	card, err := repository.GetFlashcard(cardID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, errors.NotFound("flashcard")
	}
	if _, err := ownedDeck(userID, card.DeckID); err != nil {
		return nil, err
	}
	return card, nil
}
