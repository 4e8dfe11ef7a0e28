package repository

import (
	"github.com/githoaitandev/my-flashcard/internal/common/database"
	"github.com/githoaitandev/my-flashcard/internal/common/errors"
	"github.com/githoaitandev/my-flashcard/internal/vocab/models"
	"gorm.io/gorm"
)

// CreateDeck saves a new deck
func CreateDeck(deck *models.Deck) error {
	result := database.DB.Create(deck)
	if result.Error != nil {
		return errors.Internal("failed to create deck", result.Error.Error())
	}
	return nil
}

// GetDeck retrieves a deck by id, nil if absent
func GetDeck(id uint) (*models.Deck, error) {
	var deck models.Deck
	result := database.DB.First(&deck, id)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Internal("failed to fetch deck", result.Error.Error())
	}

	return &deck, nil
}

// GetDeckWithCards retrieves a deck with its member cards preloaded
func GetDeckWithCards(id uint) (*models.Deck, error) {
	var deck models.Deck
	result := database.DB.Preload("Cards").First(&deck, id)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Internal("failed to fetch deck", result.Error.Error())
	}

	return &deck, nil
}

// ListDecks retrieves a user's decks, newest first
func ListDecks(userID uint, limit int) ([]*models.Deck, error) {
	var decks []*models.Deck

	query := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	result := query.Find(&decks)
	if result.Error != nil {
		return nil, errors.Internal("failed to fetch decks", result.Error.Error())
	}

	return decks, nil
}

// CountCards returns the number of flashcards in a deck
func CountCards(deckID uint) (int64, error) {
	var count int64
	result := database.DB.Model(&models.Flashcard{}).
		Where("deck_id = ?", deckID).
		Count(&count)

	if result.Error != nil {
		return 0, errors.Internal("failed to count cards", result.Error.Error())
	}

	return count, nil
}

// UpdateDeck persists deck changes
func UpdateDeck(deck *models.Deck) error {
	result := database.DB.Save(deck)
	if result.Error != nil {
		return errors.Internal("failed to update deck", result.Error.Error())
	}
	return nil
}

// DeleteDeckWithCards removes a deck and all member flashcards in one
// transaction, so a partial failure leaves every row intact
func DeleteDeckWithCards(id uint) error {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("deck_id = ?", id).Delete(&models.Flashcard{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Deck{}, id).Error
	})

	if err != nil {
		return errors.Internal("failed to delete deck", err.Error())
	}
	return nil
}

// ImportDeck creates a deck and its cards atomically
func ImportDeck(deck *models.Deck, cards []models.Flashcard) error {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(deck).Error; err != nil {
			return err
		}
		if len(cards) == 0 {
			return nil
		}
		for i := range cards {
			cards[i].DeckID = deck.ID
		}
		return tx.Create(&cards).Error
	})

	if err != nil {
		return errors.Internal("failed to import deck", err.Error())
	}
	return nil
}
