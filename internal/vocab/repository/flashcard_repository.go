package repository

import (
	"github.com/githoaitandev/my-flashcard/internal/common/database"
	"github.com/githoaitandev/my-flashcard/internal/common/errors"
	"github.com/githoaitandev/my-flashcard/internal/vocab/models"
	"gorm.io/gorm"
)

// CreateFlashcard saves a new flashcard
func CreateFlashcard(card *models.Flashcard) error {
	result := database.DB.Create(card)
	if result.Error != nil {
		return errors.Internal("failed to create flashcard", result.Error.Error())
	}
	return nil
}

// GetFlashcard retrieves a flashcard by id, nil if absent
func GetFlashcard(id uint) (*models.Flashcard, error) {
	var card models.Flashcard
	result := database.DB.First(&card, id)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Internal("failed to fetch flashcard", result.Error.Error())
	}

	return &card, nil
}

// ListFlashcardsByDeck retrieves a deck's cards, newest first
func ListFlashcardsByDeck(deckID uint) ([]models.Flashcard, error) {
	var cards []models.Flashcard

	result := database.DB.
		Where("deck_id = ?", deckID).
		Order("created_at DESC").
		Find(&cards)

	if result.Error != nil {
		return nil, errors.Internal("failed to fetch flashcards", result.Error.Error())
	}

	return cards, nil
}

// ListFlashcards retrieves a user's cards across all their decks, newest
// first
func ListFlashcards(userID uint, limit int) ([]models.Flashcard, error) {
	var cards []models.Flashcard

	query := database.DB.Model(&models.Flashcard{}).
		Select("flashcards.*").
		Joins("JOIN decks ON decks.id = flashcards.deck_id").
		Where("decks.user_id = ?", userID).
		Order("flashcards.created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	result := query.Find(&cards)
	if result.Error != nil {
		return nil, errors.Internal("failed to fetch flashcards", result.Error.Error())
	}

	return cards, nil
}

// ListStudyCards selects a user's cards due for review. Cards never
// reviewed sort first, then reviewed cards oldest-review first; ties break
// newest-created first. A limit of zero yields no results.
func ListStudyCards(userID uint, deckID *uint, memoryStatus *int, limit int) ([]models.Flashcard, error) {
	cards := []models.Flashcard{}
	if limit <= 0 {
		return cards, nil
	}

	query := database.DB.Model(&models.Flashcard{}).
		Select("flashcards.*").
		Joins("JOIN decks ON decks.id = flashcards.deck_id").
		Where("decks.user_id = ?", userID)
	if deckID != nil {
		query = query.Where("flashcards.deck_id = ?", *deckID)
	}
	if memoryStatus != nil {
		query = query.Where("flashcards.memory_status = ?", *memoryStatus)
	}

	// "IS NOT NULL" sorts ascending as false-before-true on both sqlite
	// and postgres, which puts never-reviewed cards ahead of the rest
	result := query.
		Order("flashcards.last_reviewed IS NOT NULL").
		Order("flashcards.last_reviewed ASC").
		Order("flashcards.created_at DESC").
		Limit(limit).
		Find(&cards)

	if result.Error != nil {
		return nil, errors.Internal("failed to fetch study cards", result.Error.Error())
	}

	return cards, nil
}

// UpdateFlashcard persists flashcard changes
func UpdateFlashcard(card *models.Flashcard) error {
	result := database.DB.Save(card)
	if result.Error != nil {
		return errors.Internal("failed to update flashcard", result.Error.Error())
	}
	return nil
}

// DeleteFlashcard removes a single flashcard
func DeleteFlashcard(id uint) error {
	result := database.DB.Delete(&models.Flashcard{}, id)
	if result.Error != nil {
		return errors.Internal("failed to delete flashcard", result.Error.Error())
	}
	return nil
}
