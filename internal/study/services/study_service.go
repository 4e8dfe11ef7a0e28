package services

import (
	"time"

	"github.com/githoaitandev/my-flashcard/internal/common/errors"
	"github.com/githoaitandev/my-flashcard/internal/common/validation"
	"github.com/githoaitandev/my-flashcard/internal/study/models"
	"github.com/githoaitandev/my-flashcard/internal/study/repository"
	vocabmodels "github.com/githoaitandev/my-flashcard/internal/vocab/models"
	vocabrepo "github.com/githoaitandev/my-flashcard/internal/vocab/repository"
)

// StudyCards runs the review scheduler over the user's cards: never
// reviewed first, then oldest review first, bounded by limit. A limit of
// zero yields no cards; an empty result is a valid "nothing to study"
// answer, not an error.
func StudyCards(userID uint, deckID *uint, memoryStatus *int, limit int) ([]vocabmodels.Flashcard, error) {
	if memoryStatus != nil {
		if err := validation.ValidateIntRange(*memoryStatus, vocabmodels.MemoryStatusNew, vocabmodels.MemoryStatusMastered); err != nil {
			return nil, errors.Validation("invalid memory status", err.Error())
		}
	}

	return vocabrepo.ListStudyCards(userID, deckID, memoryStatus, limit)
}

// CreateStudySession persists the record of a starting review run
func CreateStudySession(userID uint, req models.CreateStudySessionRequest) (*models.StudySession, error) {
	if req.DeckID != nil {
		if err := checkDeckOwner(userID, *req.DeckID); err != nil {
			return nil, err
		}
	}

	session := &models.StudySession{
		UserID:    userID,
		DeckID:    req.DeckID,
		CardCount: req.CardCount,
		StartedAt: time.Now(),
	}

	if err := repository.CreateStudySession(session); err != nil {
		return nil, err
	}

	return session, nil
}

// FinishStudySession finalizes one of the user's sessions exactly once.
// The reported correct count is capped at the session's card count.
func FinishStudySession(userID, id uint, req models.FinishStudySessionRequest) (*models.StudySession, error) {
	session, err := repository.GetStudySession(id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errors.NotFound("study session")
	}
	if session.UserID != userID {
		return nil, errors.Forbidden("study session belongs to another user")
	}

	correctCount := req.CorrectCount
	if correctCount > session.CardCount {
		correctCount = session.CardCount
	}

	if err := repository.FinalizeStudySession(id, time.Now(), correctCount); err != nil {
		return nil, err
	}

	return repository.GetStudySession(id)
}

// checkDeckOwner verifies the deck exists and belongs to the user
func checkDeckOwner(userID, deckID uint) error {
	deck, err := vocabrepo.GetDeck(deckID)
	if err != nil {
		return err
	}
	if deck == nil {
		return errors.NotFound("deck")
	}
	if deck.UserID != userID {
		return errors.Forbidden("deck belongs to another user")
	}
	return nil
}
