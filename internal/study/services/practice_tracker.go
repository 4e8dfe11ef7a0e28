package services

import (
	"sync"
	"time"

	"github.com/githoaitandev/my-flashcard/internal/common/errors"
	"github.com/githoaitandev/my-flashcard/internal/study/models"
	vocabmodels "github.com/githoaitandev/my-flashcard/internal/vocab/models"
)

// Tracker states
const (
	StateLoading   = "loading"
	StateActive    = "active"
	StateCompleted = "completed"
	StateError     = "error"
)

// autoAdvanceDelay is the countdown after a checked multiple-choice answer
const autoAdvanceDelay = 5 * time.Second

// PracticeTracker is the per-session state machine:
// Loading -> Active -> Completed, with Error reachable while loading.
// A session is confined to one client, but the auto-advance timer callback
// can race an HTTP handler, so all state transitions go through the mutex.
type PracticeTracker struct {
	Token  string
	Mode   string
	UserID uint
	DeckID *uint

	// set for study-mode sessions; finalized once on completion
	StudySessionID *uint

	mu           sync.Mutex
	state        string
	noCards      bool
	cards        []vocabmodels.Flashcard
	pool         []vocabmodels.Flashcard
	index        int // 0-based; exposed as 1-based position
	correct      int
	answered     bool
	lastCorrect  bool
	options      []models.PracticeOption
	failure      *errors.AppError
	advanceTimer *time.Timer
	lastTouched  time.Time

	onComplete    func(summary models.SessionSummary)
	completedOnce bool
}

// NewPracticeTracker creates a tracker in the Loading state
func NewPracticeTracker(token, mode string, userID uint, deckID *uint) *PracticeTracker {
	return &PracticeTracker{
		Token:       token,
		Mode:        mode,
		UserID:      userID,
		DeckID:      deckID,
		state:       StateLoading,
		lastTouched: time.Now(),
	}
}

// SetOnComplete registers the one-time completion callback. It fires on the
// first transition to Completed only; a retry run completing again does not
// re-fire it.
func (t *PracticeTracker) SetOnComplete(fn func(summary models.SessionSummary)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onComplete = fn
}

// Activate moves Loading -> Active once the card sequence (and pool, for
// choice mode) is available. An empty sequence activates into the no-cards
// sub-state, which is distinct from Completed.
func (t *PracticeTracker) Activate(cards, pool []vocabmodels.Flashcard) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateLoading {
		return errors.Conflict("session already started")
	}

	t.cards = cards
	t.pool = pool
	t.state = StateActive
	t.lastTouched = time.Now()

	if len(cards) == 0 {
		t.noCards = true
		return nil
	}

	if t.Mode == models.ModeChoice {
		t.options = GenerateOptions(cards[0], pool)
	}
	return nil
}

// Fail moves Loading -> Error when a prerequisite fetch failed
func (t *PracticeTracker) Fail(appErr *errors.AppError) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == StateLoading {
		t.state = StateError
		t.failure = appErr
	}
}

// AnswerChoice evaluates a multiple-choice selection for the current card.
// Exactly one answer is permitted per card; evaluation arms a cancellable
// auto-advance timer.
func (t *PracticeTracker) AnswerChoice(selectedCardID uint) (*models.AnswerResponse, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.answerableLocked(); err != nil {
		return nil, err
	}

	found := false
	for _, option := range t.options {
		if option.CardID == selectedCardID {
			found = true
			break
		}
	}
	if !found {
		return nil, errors.Validation("unknown option", "selected card is not among the current options")
	}

	target := t.cards[t.index]
	t.recordAnswerLocked(EvaluateChoice(selectedCardID, target.ID))

	pos := t.index
	t.advanceTimer = time.AfterFunc(autoAdvanceDelay, func() {
		t.autoAdvance(pos)
	})

	return t.answerResponseLocked(target), nil
}

// AnswerWriting evaluates free-text input for the current card. The caller
// advances explicitly after seeing the result.
func (t *PracticeTracker) AnswerWriting(input string) (*models.AnswerResponse, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.answerableLocked(); err != nil {
		return nil, err
	}

	target := t.cards[t.index]
	t.recordAnswerLocked(EvaluateWriting(input, target.Front))

	return t.answerResponseLocked(target), nil
}

// CurrentCardID returns the id of the card awaiting an answer
func (t *PracticeTracker) CurrentCardID() (uint, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateActive || t.noCards {
		return 0, errors.Conflict("session is not active")
	}
	return t.cards[t.index].ID, nil
}

// RecordReview registers a study-mode status choice for the card the
// caller answered (correct means the card reached Familiar or better) and
// advances immediately. The card id keeps the one-answer-per-card rule
// intact when two submissions race: the loser arrives carrying the id of a
// card the session has already moved past.
func (t *PracticeTracker) RecordReview(cardID uint, status int) (*models.AnswerResponse, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateActive || t.noCards {
		return nil, errors.Conflict("session is not active")
	}

	target := t.cards[t.index]
	if target.ID != cardID {
		return nil, errors.Conflict("current card already answered")
	}
	t.recordAnswerLocked(status >= vocabmodels.MemoryStatusFamiliar)
	t.advanceLocked()

	return &models.AnswerResponse{
		Correct:       t.lastCorrect,
		CorrectCardID: target.ID,
		CorrectText:   target.Front,
		State:         t.state,
	}, nil
}

// Advance moves to the next card or completes the session. Pending
// auto-advance timers are cancelled so no stale callback fires later.
func (t *PracticeTracker) Advance() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateActive || t.noCards {
		return errors.Conflict("session is not active")
	}
	if !t.answered {
		return errors.Validation("no answer submitted", "answer the current card before advancing")
	}

	t.cancelTimerLocked()
	t.advanceLocked()
	return nil
}

// Retry resets a completed session back to Active on the same already
// loaded card sequence, with position 1 and a zeroed score. No refetch.
func (t *PracticeTracker) Retry() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateCompleted {
		return errors.Conflict("only a completed session can be retried")
	}

	t.state = StateActive
	t.index = 0
	t.correct = 0
	t.answered = false
	t.lastTouched = time.Now()
	if t.Mode == models.ModeChoice {
		t.options = GenerateOptions(t.cards[0], t.pool)
	}
	return nil
}

// Teardown cancels any scheduled callback; used on abandon and expiry
func (t *PracticeTracker) Teardown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelTimerLocked()
}

// View renders the client-facing snapshot of the session
func (t *PracticeTracker) View() *models.PracticeView {
	t.mu.Lock()
	defer t.mu.Unlock()

	view := &models.PracticeView{
		Token:          t.Token,
		Mode:           t.Mode,
		State:          t.state,
		NoCards:        t.noCards,
		Total:          len(t.cards),
		CorrectCount:   t.correct,
		Answered:       t.answered,
		StudySessionID: t.StudySessionID,
	}

	switch t.state {
	case StateActive:
		if t.noCards {
			return view
		}
		view.Position = t.index + 1
		view.Card = t.promptLocked()
		if t.Mode == models.ModeChoice {
			view.Options = t.options
		}
	case StateCompleted:
		summary := t.summaryLocked()
		view.Summary = &summary
	}

	return view
}

// Failure returns the loading error, if the session is in the Error state
func (t *PracticeTracker) Failure() *errors.AppError {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.failure
}

// Idle reports whether the session has seen no activity for ttl
func (t *PracticeTracker) Idle(ttl time.Duration) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return time.Since(t.lastTouched) > ttl
}

func (t *PracticeTracker) answerableLocked() error {
	if t.state != StateActive || t.noCards {
		return errors.Conflict("session is not active")
	}
	if t.answered {
		return errors.Conflict("current card already answered")
	}
	return nil
}

func (t *PracticeTracker) recordAnswerLocked(correct bool) {
	t.answered = true
	t.lastCorrect = correct
	if correct {
		t.correct++
	}
	t.lastTouched = time.Now()
}

func (t *PracticeTracker) answerResponseLocked(target vocabmodels.Flashcard) *models.AnswerResponse {
	return &models.AnswerResponse{
		Correct:       t.lastCorrect,
		CorrectCardID: target.ID,
		CorrectText:   target.Front,
		State:         t.state,
	}
}

// autoAdvance fires from the timer; it is a no-op unless the session still
// sits answered on the same card the timer was armed for
func (t *PracticeTracker) autoAdvance(pos int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateActive || t.index != pos || !t.answered {
		return
	}
	t.advanceTimer = nil
	t.advanceLocked()
}

func (t *PracticeTracker) advanceLocked() {
	t.lastTouched = time.Now()

	if t.index < len(t.cards)-1 {
		t.index++
		t.answered = false
		if t.Mode == models.ModeChoice {
			t.options = GenerateOptions(t.cards[t.index], t.pool)
		}
		return
	}

	t.state = StateCompleted
	if t.onComplete != nil && !t.completedOnce {
		t.completedOnce = true
		summary := t.summaryLocked()
		go t.onComplete(summary)
	}
}

func (t *PracticeTracker) cancelTimerLocked() {
	if t.advanceTimer != nil {
		t.advanceTimer.Stop()
		t.advanceTimer = nil
	}
}

func (t *PracticeTracker) summaryLocked() models.SessionSummary {
	return models.SessionSummary{
		Total:           len(t.cards),
		CorrectCount:    t.correct,
		AccuracyPercent: AccuracyPercent(t.correct, len(t.cards)),
	}
}

func (t *PracticeTracker) promptLocked() *models.CardPrompt {
	card := t.cards[t.index]
	prompt := &models.CardPrompt{
		ID:           card.ID,
		Back:         card.Back,
		PartOfSpeech: card.PartOfSpeech,
		Example:      card.Example,
		MemoryStatus: card.MemoryStatus,
	}
	// The front term is the answer in choice and writing modes
	if t.Mode == models.ModeStudy || t.answered {
		prompt.Front = card.Front
	}
	return prompt
}
