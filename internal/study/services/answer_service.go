package services

import (
	"math"
	"math/rand"
	"strings"

	"github.com/githoaitandev/my-flashcard/internal/study/models"
	vocabmodels "github.com/githoaitandev/my-flashcard/internal/vocab/models"
)

const wrongAnswerCount = 3

// GenerateOptions builds the answer choices for a multiple-choice question:
// one correct option (the target's front term) plus up to three wrong ones
// drawn from the pool. Candidates sharing the target's grammatical category
// are preferred; the remainder is filled from any other cards. With fewer
// than three usable candidates the option set simply comes out short, which
// is a degraded mode rather than an error. The final set is fully shuffled.
func GenerateOptions(target vocabmodels.Flashcard, pool []vocabmodels.Flashcard) []models.PracticeOption {
	options := []models.PracticeOption{{
		CardID:    target.ID,
		Text:      target.Front,
		IsCorrect: true,
	}}

	shuffled := make([]vocabmodels.Flashcard, 0, len(pool))
	for _, card := range pool {
		if card.ID != target.ID {
			shuffled = append(shuffled, card)
		}
	}
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	var wrong []vocabmodels.Flashcard
	for _, card := range shuffled {
		if card.PartOfSpeech == target.PartOfSpeech && len(wrong) < wrongAnswerCount {
			wrong = append(wrong, card)
		}
	}
	for _, card := range shuffled {
		if len(wrong) >= wrongAnswerCount {
			break
		}
		if card.PartOfSpeech != target.PartOfSpeech {
			wrong = append(wrong, card)
		}
	}

	for _, card := range wrong {
		options = append(options, models.PracticeOption{
			CardID:    card.ID,
			Text:      card.Front,
			IsCorrect: false,
		})
	}

	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return options
}

// EvaluateWriting judges free-text input against the expected front term:
// whitespace-trimmed, case-insensitive exact equality. No fuzzy matching,
// no partial credit.
func EvaluateWriting(input, answer string) bool {
	return strings.EqualFold(strings.TrimSpace(input), strings.TrimSpace(answer))
}

// EvaluateChoice judges a multiple-choice selection by card identity
func EvaluateChoice(selectedCardID, targetCardID uint) bool {
	return selectedCardID == targetCardID
}

// AccuracyPercent computes round(correct/total*100)
func AccuracyPercent(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
