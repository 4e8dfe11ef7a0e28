package models

import (
	"github.com/githoaitandev/my-flashcard/internal/common/database"
)

// Request/Response Models

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=100"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string         `json:"token"`
	User  *database.User `json:"user"`
}
