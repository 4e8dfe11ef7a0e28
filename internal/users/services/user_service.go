package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/githoaitandev/my-flashcard/internal/common/auth"
	"github.com/githoaitandev/my-flashcard/internal/common/database"
	"github.com/githoaitandev/my-flashcard/internal/common/errors"
	"github.com/githoaitandev/my-flashcard/internal/users/models"
	"github.com/githoaitandev/my-flashcard/internal/users/repository"
)

var sessionLifetime = 72 * time.Hour

// SetSessionLifetime overrides the default session validity window
func SetSessionLifetime(d time.Duration) {
	if d > 0 {
		sessionLifetime = d
	}
}

// SessionLifetime returns the current session validity window
func SessionLifetime() time.Duration {
	return sessionLifetime
}

// Register creates a new user account
func Register(req *models.RegisterRequest) (*database.User, error) {
	existing, err := repository.GetUserByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.Conflict("Username already taken")
	}

	existing, err = repository.GetUserByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.Conflict("Email already registered")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err.Error())
	}

	user := &database.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
	}
	if err := repository.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a new session token
func Login(req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := repository.GetUserByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.Unauthorized("Invalid username or password")
	}

	if !auth.VerifyPassword(req.Password, user.Password) {
		return nil, errors.Unauthorized("Invalid username or password")
	}

	now := time.Now()
	session := &database.Session{
		UserID:       user.ID,
		SessionToken: uuid.New().String(),
		ExpiresAt:    now.Add(sessionLifetime),
		LastActivity: now,
	}
	if err := repository.CreateSession(session); err != nil {
		return nil, err
	}

	if err := repository.UpdateLastLogin(user.ID); err != nil {
		return nil, err
	}

	return &models.AuthResponse{Token: session.SessionToken, User: user}, nil
}

// Logout invalidates the given session token
func Logout(token string) error {
	if token == "" {
		return errors.Unauthorized("No session token provided")
	}
	return repository.DeleteSession(token)
}
