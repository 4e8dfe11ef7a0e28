package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/githoaitandev/my-flashcard/internal/common/database"
	"github.com/githoaitandev/my-flashcard/internal/common/errors"
)

// CreateUser inserts a new user record
func CreateUser(user *database.User) error {
	if err := database.DB.Create(user).Error; err != nil {
		return errors.Internal("Failed to create user", err.Error())
	}
	return nil
}

// GetUserByUsername retrieves a user by username
func GetUserByUsername(username string) (*database.User, error) {
	var user database.User
	err := database.DB.Where("username = ?", username).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Internal("Failed to get user", err.Error())
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email
func GetUserByEmail(email string) (*database.User, error) {
	var user database.User
	err := database.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Internal("Failed to get user", err.Error())
	}
	return &user, nil
}

// UpdateLastLogin stamps the user's last login time
func UpdateLastLogin(userID uint) error {
	now := time.Now()
	err := database.DB.Model(&database.User{}).
		Where("id = ?", userID).
		Update("last_login", now).Error
	if err != nil {
		return errors.Internal("Failed to update last login", err.Error())
	}
	return nil
}

// CreateSession inserts a new session record
func CreateSession(session *database.Session) error {
	if err := database.DB.Create(session).Error; err != nil {
		return errors.Internal("Failed to create session", err.Error())
	}
	return nil
}

// DeleteSession removes a session by its token
func DeleteSession(token string) error {
	err := database.DB.Where("session_token = ?", token).Delete(&database.Session{}).Error
	if err != nil {
		return errors.Internal("Failed to delete session", err.Error())
	}
	return nil
}

// DeleteExpiredSessions removes all sessions past their expiry
func DeleteExpiredSessions() (int64, error) {
	result := database.DB.Where("expires_at < ?", time.Now()).Delete(&database.Session{})
	if result.Error != nil {
		return 0, errors.Internal("Failed to delete expired sessions", result.Error.Error())
	}
	return result.RowsAffected, nil
}
