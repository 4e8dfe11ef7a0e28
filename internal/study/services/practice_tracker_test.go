package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/githoaitandev/my-flashcard/internal/common/errors"
	"github.com/githoaitandev/my-flashcard/internal/study/models"
	vocabmodels "github.com/githoaitandev/my-flashcard/internal/vocab/models"
)

func threeCards() []vocabmodels.Flashcard {
	return []vocabmodels.Flashcard{
		card(1, "apple", "noun"),
		card(2, "river", "noun"),
		card(3, "run", "verb"),
	}
}

func activeChoiceTracker(t *testing.T) *PracticeTracker {
	cards := threeCards()
	pool := append(cards, card(4, "bridge", "noun"), card(5, "vivid", "adjective"))

	tracker := NewPracticeTracker("tok", models.ModeChoice, 1, nil)
	require.NoError(t, tracker.Activate(cards, pool))
	return tracker
}

func correctOption(t *testing.T, tracker *PracticeTracker) uint {
	view := tracker.View()
	require.NotEmpty(t, view.Options)
	for _, opt := range view.Options {
		if opt.IsCorrect {
			return opt.CardID
		}
	}
	t.Fatal("no correct option in view")
	return 0
}

func wrongOption(t *testing.T, tracker *PracticeTracker) uint {
	view := tracker.View()
	for _, opt := range view.Options {
		if !opt.IsCorrect {
			return opt.CardID
		}
	}
	t.Fatal("no wrong option in view")
	return 0
}

func TestTrackerLifecycleChoice(t *testing.T) {
	tracker := activeChoiceTracker(t)

	view := tracker.View()
	assert.Equal(t, StateActive, view.State)
	assert.Equal(t, 1, view.Position)
	assert.Equal(t, 3, view.Total)
	assert.False(t, view.NoCards)
	require.NotNil(t, view.Card)
	assert.Empty(t, view.Card.Front, "answer term is withheld before answering")

	// correct, wrong, correct
	resp, err := tracker.AnswerChoice(correctOption(t, tracker))
	require.NoError(t, err)
	assert.True(t, resp.Correct)
	require.NoError(t, tracker.Advance())

	resp, err = tracker.AnswerChoice(wrongOption(t, tracker))
	require.NoError(t, err)
	assert.False(t, resp.Correct)
	assert.Equal(t, uint(2), resp.CorrectCardID)
	require.NoError(t, tracker.Advance())

	_, err = tracker.AnswerChoice(correctOption(t, tracker))
	require.NoError(t, err)
	require.NoError(t, tracker.Advance())

	view = tracker.View()
	assert.Equal(t, StateCompleted, view.State)
	require.NotNil(t, view.Summary)
	assert.Equal(t, 3, view.Summary.Total)
	assert.Equal(t, 2, view.Summary.CorrectCount)
	assert.Equal(t, 67, view.Summary.AccuracyPercent)
}

func TestTrackerAnswerTwiceRejected(t *testing.T) {
	tracker := activeChoiceTracker(t)

	_, err := tracker.AnswerChoice(correctOption(t, tracker))
	require.NoError(t, err)

	_, err = tracker.AnswerChoice(1)
	assert.Error(t, err)
}

func TestTrackerAdvanceWithoutAnswerRejected(t *testing.T) {
	tracker := activeChoiceTracker(t)
	assert.Error(t, tracker.Advance())
}

func TestTrackerUnknownOptionRejected(t *testing.T) {
	tracker := activeChoiceTracker(t)
	_, err := tracker.AnswerChoice(999)
	assert.Error(t, err)

	// A rejected selection does not consume the answer
	_, err = tracker.AnswerChoice(correctOption(t, tracker))
	assert.NoError(t, err)
}

func TestTrackerAnswerRevealsFront(t *testing.T) {
	tracker := activeChoiceTracker(t)

	_, err := tracker.AnswerChoice(correctOption(t, tracker))
	require.NoError(t, err)

	view := tracker.View()
	require.NotNil(t, view.Card)
	assert.Equal(t, "apple", view.Card.Front)
	assert.True(t, view.Answered)
}

func TestTrackerNoCards(t *testing.T) {
	tracker := NewPracticeTracker("tok", models.ModeChoice, 1, nil)
	require.NoError(t, tracker.Activate(nil, nil))

	view := tracker.View()
	assert.Equal(t, StateActive, view.State)
	assert.True(t, view.NoCards)
	assert.Nil(t, view.Card)
	assert.Nil(t, view.Summary)

	_, err := tracker.AnswerChoice(1)
	assert.Error(t, err)
	assert.Error(t, tracker.Advance())
}

func TestTrackerFail(t *testing.T) {
	tracker := NewPracticeTracker("tok", models.ModeChoice, 1, nil)
	tracker.Fail(errors.NotFound("Deck"))

	view := tracker.View()
	assert.Equal(t, StateError, view.State)
	require.NotNil(t, tracker.Failure())
}

func TestTrackerWritingMode(t *testing.T) {
	tracker := NewPracticeTracker("tok", models.ModeWriting, 1, nil)
	require.NoError(t, tracker.Activate(threeCards(), nil))

	view := tracker.View()
	assert.Empty(t, view.Options, "writing mode has no options")

	resp, err := tracker.AnswerWriting(" Apple ")
	require.NoError(t, err)
	assert.True(t, resp.Correct)
	require.NoError(t, tracker.Advance())

	resp, err = tracker.AnswerWriting("nonsense")
	require.NoError(t, err)
	assert.False(t, resp.Correct)
	assert.Equal(t, "river", resp.CorrectText)
}

func TestTrackerStudyMode(t *testing.T) {
	tracker := NewPracticeTracker("tok", models.ModeStudy, 1, nil)
	require.NoError(t, tracker.Activate(threeCards(), nil))

	view := tracker.View()
	require.NotNil(t, view.Card)
	assert.Equal(t, "apple", view.Card.Front, "study mode shows the term up front")

	// Familiar and above counts as correct, advancing happens immediately
	resp, err := tracker.RecordReview(1, vocabmodels.MemoryStatusFamiliar)
	require.NoError(t, err)
	assert.True(t, resp.Correct)
	assert.Equal(t, 2, tracker.View().Position)

	resp, err = tracker.RecordReview(2, vocabmodels.MemoryStatusLearning)
	require.NoError(t, err)
	assert.False(t, resp.Correct)

	resp, err = tracker.RecordReview(3, vocabmodels.MemoryStatusMastered)
	require.NoError(t, err)
	assert.True(t, resp.Correct)

	view = tracker.View()
	assert.Equal(t, StateCompleted, view.State)
	assert.Equal(t, 2, view.Summary.CorrectCount)
}

func TestTrackerRecordReviewStaleCard(t *testing.T) {
	tracker := NewPracticeTracker("tok", models.ModeStudy, 1, nil)
	require.NoError(t, tracker.Activate(threeCards(), nil))

	_, err := tracker.RecordReview(1, vocabmodels.MemoryStatusFamiliar)
	require.NoError(t, err)
	assert.Equal(t, 1, tracker.View().CorrectCount)

	// A second submission carrying the already-reviewed card must not
	// consume the next one
	_, err = tracker.RecordReview(1, vocabmodels.MemoryStatusMastered)
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.Status)

	view := tracker.View()
	assert.Equal(t, 2, view.Position, "the stale submission did not advance the session")
	assert.Equal(t, 1, view.CorrectCount)

	// The current card still accepts its answer
	_, err = tracker.RecordReview(2, vocabmodels.MemoryStatusMastered)
	assert.NoError(t, err)
}

func TestTrackerRetry(t *testing.T) {
	tracker := activeChoiceTracker(t)

	assert.Error(t, tracker.Retry(), "retry requires a completed session")

	for i := 0; i < 3; i++ {
		_, err := tracker.AnswerChoice(correctOption(t, tracker))
		require.NoError(t, err)
		require.NoError(t, tracker.Advance())
	}
	require.Equal(t, StateCompleted, tracker.View().State)

	require.NoError(t, tracker.Retry())

	view := tracker.View()
	assert.Equal(t, StateActive, view.State)
	assert.Equal(t, 1, view.Position)
	assert.Equal(t, 0, view.CorrectCount)
	assert.NotEmpty(t, view.Options)
}

func TestTrackerOnCompleteFiresOnce(t *testing.T) {
	tracker := activeChoiceTracker(t)

	done := make(chan models.SessionSummary, 2)
	tracker.SetOnComplete(func(summary models.SessionSummary) {
		done <- summary
	})

	finish := func() {
		for tracker.View().State != StateCompleted {
			_, err := tracker.AnswerChoice(correctOption(t, tracker))
			require.NoError(t, err)
			require.NoError(t, tracker.Advance())
		}
	}

	finish()
	select {
	case summary := <-done:
		assert.Equal(t, 3, summary.Total)
		assert.Equal(t, 3, summary.CorrectCount)
	case <-time.After(time.Second):
		t.Fatal("completion callback did not fire")
	}

	// A retry run completing again must not re-fire the callback
	require.NoError(t, tracker.Retry())
	finish()
	select {
	case <-done:
		t.Fatal("completion callback fired twice")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestTrackerIdle(t *testing.T) {
	tracker := activeChoiceTracker(t)
	assert.False(t, tracker.Idle(time.Hour))
	assert.True(t, tracker.Idle(0))
}
