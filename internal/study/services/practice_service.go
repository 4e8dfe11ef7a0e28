package services

import (
	"time"

	"github.com/githoaitandev/my-flashcard/internal/common/errors"
	"github.com/githoaitandev/my-flashcard/internal/study/models"
	"github.com/githoaitandev/my-flashcard/internal/study/repository"
	vocabmodels "github.com/githoaitandev/my-flashcard/internal/vocab/models"
	vocabrepo "github.com/githoaitandev/my-flashcard/internal/vocab/repository"
	vocabservices "github.com/githoaitandev/my-flashcard/internal/vocab/services"
	"github.com/githoaitandev/my-flashcard/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultStudyLimit    = 20
	defaultPracticeLimit = 10
	candidatePoolLimit   = 100
)

// StartPractice creates a session tracker for the user, loads its card
// sequence (and the candidate pool for choice mode) and activates it.
// Study-mode sessions also persist a StudySession record. An empty card set
// activates into the no-cards sub-state; a failed prerequisite fetch aborts
// into Error.
func StartPractice(userID uint, req models.StartPracticeRequest) (*models.PracticeView, error) {
	if req.DeckID != nil {
		if err := checkDeckOwner(userID, *req.DeckID); err != nil {
			return nil, err
		}
	}

	limit := req.Limit
	if limit <= 0 {
		if req.Mode == models.ModeStudy {
			limit = defaultStudyLimit
		} else {
			limit = defaultPracticeLimit
		}
	}

	tracker := NewPracticeTracker(uuid.New().String(), req.Mode, userID, req.DeckID)

	cards, err := vocabrepo.ListStudyCards(userID, req.DeckID, req.MemoryStatus, limit)
	if err != nil {
		tracker.Fail(asAppError(err))
		return nil, err
	}

	var pool []vocabmodels.Flashcard
	if req.Mode == models.ModeChoice {
		// The pool is read-only for the session's lifetime; status changes
		// elsewhere are not reflected until a new session fetches
		pool, err = vocabrepo.ListFlashcards(userID, candidatePoolLimit)
		if err != nil {
			tracker.Fail(asAppError(err))
			return nil, err
		}
	}

	if req.Mode == models.ModeStudy && len(cards) > 0 {
		session := &models.StudySession{
			UserID:    userID,
			DeckID:    req.DeckID,
			CardCount: len(cards),
			StartedAt: time.Now(),
		}
		if err := repository.CreateStudySession(session); err != nil {
			tracker.Fail(asAppError(err))
			return nil, err
		}
		tracker.StudySessionID = &session.ID

		sessionID := session.ID
		tracker.SetOnComplete(func(summary models.SessionSummary) {
			finalizeSession(sessionID, summary.CorrectCount)
		})
	}

	if err := tracker.Activate(cards, pool); err != nil {
		return nil, err
	}

	registry.Put(tracker)
	return tracker.View(), nil
}

// GetPracticeSession returns the current snapshot of a session
func GetPracticeSession(userID uint, token string) (*models.PracticeView, error) {
	tracker, err := trackerFor(userID, token)
	if err != nil {
		return nil, err
	}
	return tracker.View(), nil
}

// AnswerPractice evaluates the user's response for the current card. Study
// mode writes the chosen memory status through to the card first; a failed
// write is reported without touching in-memory session progress.
func AnswerPractice(userID uint, token string, req models.AnswerRequest) (*models.AnswerResponse, error) {
	tracker, err := trackerFor(userID, token)
	if err != nil {
		return nil, err
	}

	switch tracker.Mode {
	case models.ModeChoice:
		if req.CardID == nil {
			return nil, errors.Validation("missing selection", "choice mode requires card_id")
		}
		return tracker.AnswerChoice(*req.CardID)

	case models.ModeWriting:
		if req.Input == nil {
			return nil, errors.Validation("missing input", "writing mode requires input")
		}
		return tracker.AnswerWriting(*req.Input)

	case models.ModeStudy:
		if req.MemoryStatus == nil {
			return nil, errors.Validation("missing status", "study mode requires memory_status 0-3")
		}
		cardID, err := tracker.CurrentCardID()
		if err != nil {
			return nil, err
		}
		if _, err := vocabservices.SetMemoryStatus(userID, cardID, *req.MemoryStatus); err != nil {
			return nil, err
		}
		return tracker.RecordReview(cardID, *req.MemoryStatus)

	default:
		return nil, errors.BadRequest("unknown practice mode")
	}
}

// AdvancePractice moves a session to the next card (or completion),
// cancelling any pending auto-advance
func AdvancePractice(userID uint, token string) (*models.PracticeView, error) {
	tracker, err := trackerFor(userID, token)
	if err != nil {
		return nil, err
	}
	if err := tracker.Advance(); err != nil {
		return nil, err
	}
	return tracker.View(), nil
}

// RetryPractice restarts a completed session on the same card sequence
func RetryPractice(userID uint, token string) (*models.PracticeView, error) {
	tracker, err := trackerFor(userID, token)
	if err != nil {
		return nil, err
	}
	if err := tracker.Retry(); err != nil {
		return nil, err
	}
	return tracker.View(), nil
}

// AbandonPractice drops one of the user's sessions. Writes already sent
// (status updates, session creation) are not rolled back.
func AbandonPractice(userID uint, token string) {
	if _, err := trackerFor(userID, token); err != nil {
		return
	}
	registry.Remove(token)
}

// trackerFor resolves a session token for its owner. A token held by
// another user reads as missing rather than forbidden, so token existence
// stays hidden.
func trackerFor(userID uint, token string) (*PracticeTracker, error) {
	tracker, ok := registry.Get(token)
	if !ok || tracker.UserID != userID {
		return nil, errors.NotFound("practice session")
	}
	return tracker, nil
}

// finalizeSession is the one-time, best-effort study session finalize:
// no retry, no rollback; failure is logged and swallowed
func finalizeSession(sessionID uint, correctCount int) {
	if err := repository.FinalizeStudySession(sessionID, time.Now(), correctCount); err != nil {
		logger.Warn("study session finalize failed",
			zap.Uint("session_id", sessionID),
			zap.Error(err),
		)
	}
}

func asAppError(err error) *errors.AppError {
	if appErr, ok := err.(*errors.AppError); ok {
		return appErr
	}
	return errors.Internal("unexpected failure", err.Error())
}
