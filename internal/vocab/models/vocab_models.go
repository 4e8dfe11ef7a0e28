package models

import (
	"time"
)

// Deck represents a named collection of flashcards owned by a user
type Deck struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;size:100" json:"name"`
	Description *string   `gorm:"size:500" json:"description,omitempty"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Cards []Flashcard `gorm:"foreignKey:DeckID" json:"cards,omitempty"`
}

// Flashcard represents a single vocabulary card
type Flashcard struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Front        string     `gorm:"not null;size:200" json:"front"`
	Back         string     `gorm:"not null;size:200" json:"back"`
	PartOfSpeech string     `gorm:"not null;default:other;size:20" json:"part_of_speech"`
	Example      *string    `gorm:"size:500" json:"example,omitempty"`
	MemoryStatus int        `gorm:"not null;default:0;index" json:"memory_status"`
	DeckID       uint       `gorm:"not null;index" json:"deck_id"`
	LastReviewed *time.Time `json:"last_reviewed,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Memory status values track learning progress per card
const (
	MemoryStatusNew      = 0
	MemoryStatusLearning = 1
	MemoryStatusFamiliar = 2
	MemoryStatusMastered = 3
)

var memoryStatusLabels = [...]string{"New", "Learning", "Familiar", "Mastered"}

// MemoryStatusLabel maps a status value to its display label
func MemoryStatusLabel(status int) string {
	if status < MemoryStatusNew || status > MemoryStatusMastered {
		return "Unknown"
	}
	return memoryStatusLabels[status]
}

// ClampMemoryStatus bounds a status value to the valid range
func ClampMemoryStatus(status int) int {
	if status < MemoryStatusNew {
		return MemoryStatusNew
	}
	if status > MemoryStatusMastered {
		return MemoryStatusMastered
	}
	return status
}

// PartsOfSpeech is the closed set of grammatical categories
var PartsOfSpeech = []string{
	"noun", "verb", "adjective", "adverb", "preposition",
	"conjunction", "pronoun", "interjection", "other",
}

// ValidPartOfSpeech reports whether s is a known grammatical category
func ValidPartOfSpeech(s string) bool {
	for _, p := range PartsOfSpeech {
		if p == s {
			return true
		}
	}
	return false
}

// Request/Response Models

type CreateDeckRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
}

type UpdateDeckRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
}

type DeckResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	CardCount   int64     `json:"card_count"`
}

type DeckDetailResponse struct {
	DeckResponse
	Cards []Flashcard `json:"cards"`
}

type CreateFlashcardRequest struct {
	Front        string `json:"front" binding:"required,min=1,max=200"`
	Back         string `json:"back" binding:"required,min=1,max=200"`
	PartOfSpeech string `json:"part_of_speech" binding:"omitempty,oneof=noun verb adjective adverb preposition conjunction pronoun interjection other"`
	Example      string `json:"example" binding:"max=500"`
	DeckID       uint   `json:"deck_id" binding:"required"`
}

type UpdateFlashcardRequest struct {
	Front        string `json:"front" binding:"required,min=1,max=200"`
	Back         string `json:"back" binding:"required,min=1,max=200"`
	PartOfSpeech string `json:"part_of_speech" binding:"omitempty,oneof=noun verb adjective adverb preposition conjunction pronoun interjection other"`
	Example      string `json:"example" binding:"max=500"`
}

// MemoryTransitionRequest mutates a card's memory status.
// Every transition, regardless of direction, stamps last_reviewed.
type MemoryTransitionRequest struct {
	Action string `json:"action" binding:"required,oneof=increment decrement set"`
	Value  *int   `json:"value" binding:"omitempty,min=0,max=3"`
}

// Deck transfer (import/export) payloads

type CardTransfer struct {
	Front        string  `json:"front" binding:"required,min=1,max=200"`
	Back         string  `json:"back" binding:"required,min=1,max=200"`
	PartOfSpeech string  `json:"part_of_speech"`
	Example      *string `json:"example,omitempty"`
	MemoryStatus int     `json:"memory_status"`
}

type DeckTransfer struct {
	Name        string         `json:"name" binding:"required,min=1,max=100"`
	Description *string        `json:"description,omitempty"`
	Cards       []CardTransfer `json:"cards" binding:"dive"`
}

type ImportResult struct {
	Message       string             `json:"message"`
	Deck          DeckDetailResponse `json:"deck"`
	ImportedCards int                `json:"imported_cards"`
}
