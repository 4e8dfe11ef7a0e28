package services

import (
	"github.com/githoaitandev/my-flashcard/internal/study/models"
	"github.com/githoaitandev/my-flashcard/internal/study/repository"
)

// GetStats aggregates a user's dashboard numbers: totals plus the average
// score over their finalized sessions (rounded mean of per-session
// percentages)
func GetStats(userID uint) (*models.StatsResponse, error) {
	totalDecks, err := repository.CountDecks(userID)
	if err != nil {
		return nil, err
	}

	totalCards, err := repository.CountCards(userID)
	if err != nil {
		return nil, err
	}

	totalSessions, err := repository.CountSessions(userID)
	if err != nil {
		return nil, err
	}

	sessions, err := repository.ListFinalizedSessions(userID)
	if err != nil {
		return nil, err
	}

	averageScore := 0
	if len(sessions) > 0 {
		totalScore := 0.0
		for _, session := range sessions {
			if session.CardCount > 0 {
				totalScore += float64(session.CorrectCount) / float64(session.CardCount) * 100
			}
		}
		averageScore = int(totalScore/float64(len(sessions)) + 0.5)
	}

	return &models.StatsResponse{
		TotalDecks:        totalDecks,
		TotalCards:        totalCards,
		TotalSessions:     totalSessions,
		CompletedSessions: len(sessions),
		AverageScore:      averageScore,
	}, nil
}
