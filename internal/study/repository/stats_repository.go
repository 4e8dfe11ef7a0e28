package repository

import (
	"github.com/githoaitandev/my-flashcard/internal/common/database"
	"github.com/githoaitandev/my-flashcard/internal/common/errors"
	"github.com/githoaitandev/my-flashcard/internal/study/models"
	vocabmodels "github.com/githoaitandev/my-flashcard/internal/vocab/models"
)

// CountDecks returns the number of decks owned by a user
func CountDecks(userID uint) (int64, error) {
	var count int64
	result := database.DB.Model(&vocabmodels.Deck{}).
		Where("user_id = ?", userID).
		Count(&count)

	if result.Error != nil {
		return 0, errors.Internal("failed to count decks", result.Error.Error())
	}
	return count, nil
}

// CountCards returns the number of flashcards across a user's decks
func CountCards(userID uint) (int64, error) {
	var count int64
	result := database.DB.Model(&vocabmodels.Flashcard{}).
		Joins("JOIN decks ON decks.id = flashcards.deck_id").
		Where("decks.user_id = ?", userID).
		Count(&count)

	if result.Error != nil {
		return 0, errors.Internal("failed to count cards", result.Error.Error())
	}
	return count, nil
}

// CountSessions returns the total number of a user's study sessions
func CountSessions(userID uint) (int64, error) {
	var count int64
	result := database.DB.Model(&models.StudySession{}).
		Where("user_id = ?", userID).
		Count(&count)

	if result.Error != nil {
		return 0, errors.Internal("failed to count sessions", result.Error.Error())
	}
	return count, nil
}

// ListFinalizedSessions retrieves a user's sessions that have an end
// timestamp
func ListFinalizedSessions(userID uint) ([]models.StudySession, error) {
	var sessions []models.StudySession
	result := database.DB.
		Where("user_id = ? AND ended_at IS NOT NULL", userID).
		Find(&sessions)

	if result.Error != nil {
		return nil, errors.Internal("failed to fetch finalized sessions", result.Error.Error())
	}
	return sessions, nil
}
