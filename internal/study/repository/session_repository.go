package repository

import (
	"time"

	"github.com/githoaitandev/my-flashcard/internal/common/database"
	"github.com/githoaitandev/my-flashcard/internal/common/errors"
	"github.com/githoaitandev/my-flashcard/internal/study/models"
	"gorm.io/gorm"
)

// CreateStudySession persists a new session record
func CreateStudySession(session *models.StudySession) error {
	result := database.DB.Create(session)
	if result.Error != nil {
		return errors.Internal("failed to create study session", result.Error.Error())
	}
	return nil
}

// GetStudySession retrieves a session by id, nil if absent
func GetStudySession(id uint) (*models.StudySession, error) {
	var session models.StudySession
	result := database.DB.First(&session, id)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Internal("failed to fetch study session", result.Error.Error())
	}

	return &session, nil
}

// FinalizeStudySession writes the end timestamp and final correct count.
// The guard on ended_at makes the write one-time: a session already
// finalized is left untouched and reported as a conflict.
func FinalizeStudySession(id uint, endedAt time.Time, correctCount int) error {
	result := database.DB.Model(&models.StudySession{}).
		Where("id = ? AND ended_at IS NULL", id).
		Updates(map[string]interface{}{
			"ended_at":      endedAt,
			"correct_count": correctCount,
		})

	if result.Error != nil {
		return errors.Internal("failed to finalize study session", result.Error.Error())
	}
	if result.RowsAffected == 0 {
		session, err := GetStudySession(id)
		if err != nil {
			return err
		}
		if session == nil {
			return errors.NotFound("study session")
		}
		return errors.Conflict("study session already finalized")
	}

	return nil
}
