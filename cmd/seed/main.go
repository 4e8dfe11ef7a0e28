package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/githoaitandev/my-flashcard/internal/common/auth"
	"github.com/githoaitandev/my-flashcard/internal/common/database"
	studyModels "github.com/githoaitandev/my-flashcard/internal/study/models"
	vocabModels "github.com/githoaitandev/my-flashcard/internal/vocab/models"
	"github.com/githoaitandev/my-flashcard/pkg/config"
)

var (
	numUsers = flag.Int("users", 3, "Number of users to generate")
	password = flag.String("password", "password123", "Password for all seeded users")
)

type seedCard struct {
	front string
	back  string
	pos   string
}

var sampleDecks = map[string][]seedCard{
	"Basic Nouns": {
		{"apple", "a round fruit with red or green skin", "noun"},
		{"river", "a large natural stream of water", "noun"},
		{"mountain", "a large natural elevation of land", "noun"},
		{"library", "a building where books are kept", "noun"},
		{"bridge", "a structure carrying a road across a river", "noun"},
	},
	"Common Verbs": {
		{"run", "to move at a speed faster than walking", "verb"},
		{"whisper", "to speak very softly", "verb"},
		{"gather", "to bring things together", "verb"},
		{"persuade", "to cause someone to do something through reasoning", "verb"},
	},
	"Descriptive Words": {
		{"fragile", "easily broken or damaged", "adjective"},
		{"vivid", "producing powerful feelings or strong images", "adjective"},
		{"swiftly", "at high speed", "adverb"},
		{"reluctant", "unwilling and hesitant", "adjective"},
	},
}

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := database.InitWithType(cfg.Database.Type, cfg.Database.DSN); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	db := database.GetDB()
	if err := db.AutoMigrate(
		&database.User{},
		&database.Session{},
		&vocabModels.Deck{},
		&vocabModels.Flashcard{},
		&studyModels.StudySession{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Println("Starting data seeding...")

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	now := time.Now()
	totalDecks := 0
	totalCards := 0

	for i := 1; i <= *numUsers; i++ {
		user := database.User{
			Username: fmt.Sprintf("learner_%d", i),
			Email:    fmt.Sprintf("learner%d@example.com", i),
			Password: hash,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("Failed to seed user: %v", err)
		}

		session := database.Session{
			UserID:       user.ID,
			SessionToken: uuid.New().String(),
			ExpiresAt:    now.Add(72 * time.Hour),
			LastActivity: now,
		}
		if err := db.Create(&session).Error; err != nil {
			log.Fatalf("Failed to seed session: %v", err)
		}

		for name, cards := range sampleDecks {
			deck := vocabModels.Deck{Name: name, UserID: user.ID}
			if err := db.Create(&deck).Error; err != nil {
				log.Fatalf("Failed to seed deck: %v", err)
			}
			totalDecks++

			for j, card := range cards {
				// Stagger statuses and review times so the scheduler has
				// something interesting to order
				status := j % 4
				var lastReviewed *time.Time
				if status > 0 {
					t := now.Add(-time.Duration(j+1) * time.Hour)
					lastReviewed = &t
				}
				record := vocabModels.Flashcard{
					DeckID:       deck.ID,
					Front:        card.front,
					Back:         card.back,
					PartOfSpeech: card.pos,
					MemoryStatus: status,
					LastReviewed: lastReviewed,
				}
				if err := db.Create(&record).Error; err != nil {
					log.Fatalf("Failed to seed flashcard: %v", err)
				}
				totalCards++
			}
		}

		log.Printf("Seeded user %s (session token %s)", user.Username, session.SessionToken)
	}

	log.Printf("Seeding complete: %d users, %d decks, %d flashcards", *numUsers, totalDecks, totalCards)
}
