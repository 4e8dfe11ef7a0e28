package models

import (
	"time"
)

// StudySession is the persisted record of one review run. It is written
// once at start and finalized exactly once at the end; a finalized session
// is never updated again.
type StudySession struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"not null;index" json:"user_id"`
	DeckID       *uint      `gorm:"index" json:"deck_id,omitempty"` // nil = cross-deck session
	CardCount    int        `gorm:"not null" json:"card_count"`
	CorrectCount int        `gorm:"not null;default:0" json:"correct_count"`
	StartedAt    time.Time  `gorm:"not null" json:"started_at"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// PracticeOption is one selectable answer in a multiple-choice question.
// Options live only as long as the question they belong to.
type PracticeOption struct {
	CardID    uint   `json:"card_id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// Practice modes
const (
	ModeChoice  = "choice"
	ModeWriting = "writing"
	ModeStudy   = "study"
)

// Request/Response Models

type StartPracticeRequest struct {
	Mode         string `json:"mode" binding:"required,oneof=choice writing study"`
	DeckID       *uint  `json:"deck_id"`
	MemoryStatus *int   `json:"memory_status" binding:"omitempty,min=0,max=3"`
	Limit        int    `json:"limit" binding:"omitempty,gt=0"`
}

// AnswerRequest carries the user's response for the current card.
// Choice mode sends card_id, writing mode sends input, study mode sends
// memory_status (0-3).
type AnswerRequest struct {
	CardID       *uint   `json:"card_id"`
	Input        *string `json:"input"`
	MemoryStatus *int    `json:"memory_status" binding:"omitempty,min=0,max=3"`
}

type AnswerResponse struct {
	Correct       bool   `json:"correct"`
	CorrectCardID uint   `json:"correct_card_id"`
	CorrectText   string `json:"correct_text"`
	State         string `json:"state"`
}

type SessionSummary struct {
	Total           int `json:"total"`
	CorrectCount    int `json:"correct_count"`
	AccuracyPercent int `json:"accuracy_percent"`
}

// PracticeView is the client-facing snapshot of a running session
type PracticeView struct {
	Token          string           `json:"token"`
	Mode           string           `json:"mode"`
	State          string           `json:"state"`
	NoCards        bool             `json:"no_cards,omitempty"`
	Position       int              `json:"position,omitempty"` // 1-based
	Total          int              `json:"total"`
	CorrectCount   int              `json:"correct_count"`
	Card           *CardPrompt      `json:"card,omitempty"`
	Options        []PracticeOption `json:"options,omitempty"`
	Answered       bool             `json:"answered"`
	Summary        *SessionSummary  `json:"summary,omitempty"`
	StudySessionID *uint            `json:"study_session_id,omitempty"`
}

// CardPrompt is the question side of the current card. The front term is
// withheld in choice and writing modes since it is the answer.
type CardPrompt struct {
	ID           uint    `json:"id"`
	Front        string  `json:"front,omitempty"`
	Back         string  `json:"back"`
	PartOfSpeech string  `json:"part_of_speech"`
	Example      *string `json:"example,omitempty"`
	MemoryStatus int     `json:"memory_status"`
}

type CreateStudySessionRequest struct {
	DeckID    *uint `json:"deck_id"`
	CardCount int   `json:"card_count" binding:"required,gt=0"`
}

type FinishStudySessionRequest struct {
	CorrectCount int `json:"correct_count" binding:"min=0"`
}

type StatsResponse struct {
	TotalDecks        int64 `json:"total_decks"`
	TotalCards        int64 `json:"total_cards"`
	TotalSessions     int64 `json:"total_sessions"`
	CompletedSessions int   `json:"completed_sessions"`
	AverageScore      int   `json:"average_score"`
}
