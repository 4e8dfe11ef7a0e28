package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/githoaitandev/my-flashcard/internal/common/database"
	commonHandlers "github.com/githoaitandev/my-flashcard/internal/common/handlers"
	"github.com/githoaitandev/my-flashcard/internal/common/health"
	"github.com/githoaitandev/my-flashcard/internal/common/middleware"
	studyHandlers "github.com/githoaitandev/my-flashcard/internal/study/handlers"
	studyModels "github.com/githoaitandev/my-flashcard/internal/study/models"
	studyServices "github.com/githoaitandev/my-flashcard/internal/study/services"
	userHandlers "github.com/githoaitandev/my-flashcard/internal/users/handlers"
	userServices "github.com/githoaitandev/my-flashcard/internal/users/services"
	vocabHandlers "github.com/githoaitandev/my-flashcard/internal/vocab/handlers"
	vocabModels "github.com/githoaitandev/my-flashcard/internal/vocab/models"
	"github.com/githoaitandev/my-flashcard/pkg/config"
	"github.com/githoaitandev/my-flashcard/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database (SQLite for development, PostgreSQL for production)
	if err := database.InitWithType(cfg.Database.Type, cfg.Database.DSN); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	if err := database.GetDB().AutoMigrate(
		&database.User{},
		&database.Session{},
		&vocabModels.Deck{},
		&vocabModels.Flashcard{},
		&studyModels.StudySession{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	userServices.SetSessionLifetime(time.Duration(cfg.Session.TTLHours) * time.Hour)

	// Expire idle in-memory practice sessions
	studyServices.StartSessionSweeper(10 * time.Minute)

	// Create Gin engine
	router := gin.Default()

	// Apply middleware
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.ErrorHandler())

	// Initialize health checker with database instance
	healthChecker := health.NewHealthChecker(database.GetDB(), "1.0.0")

	// Health check endpoints
	healthHandler := commonHandlers.NewHealthHandler(healthChecker)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/readiness", healthHandler.Readiness)
	router.GET("/health/liveness", healthHandler.Liveness)

	// Prometheus metrics endpoint
	router.GET("/metrics", middleware.MetricsHandler())

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", userHandlers.Register)
			authGroup.POST("/login", userHandlers.Login)
			authGroup.POST("/logout", userHandlers.Logout)
		}

		deckGroup := v1.Group("/decks", middleware.AuthRequired())
		{
			deckGroup.GET("", vocabHandlers.ListDecks)
			deckGroup.POST("", vocabHandlers.CreateDeck)
			deckGroup.GET("/:id", vocabHandlers.GetDeck)
			deckGroup.PUT("/:id", vocabHandlers.UpdateDeck)
			deckGroup.DELETE("/:id", vocabHandlers.DeleteDeck)
			deckGroup.GET("/:id/export", vocabHandlers.ExportDeck)
		}

		cardGroup := v1.Group("/flashcards", middleware.AuthRequired())
		{
			cardGroup.GET("", vocabHandlers.ListFlashcards)
			cardGroup.POST("", vocabHandlers.CreateFlashcard)
			cardGroup.GET("/:id", vocabHandlers.GetFlashcard)
			cardGroup.PUT("/:id", vocabHandlers.UpdateFlashcard)
			cardGroup.DELETE("/:id", vocabHandlers.DeleteFlashcard)
			cardGroup.PATCH("/:id/memory", vocabHandlers.TransitionMemory)
		}

		v1.POST("/decks/import", middleware.AuthRequired(), vocabHandlers.ImportDeck)

		studyGroup := v1.Group("/study", middleware.AuthRequired())
		{
			studyGroup.GET("/cards", studyHandlers.GetStudyCards)
			studyGroup.POST("/sessions", studyHandlers.CreateStudySession)
			studyGroup.PUT("/sessions/:id/finish", studyHandlers.FinishStudySession)
		}

		practiceGroup := v1.Group("/practice", middleware.AuthRequired())
		{
			practiceGroup.POST("/sessions", studyHandlers.StartPractice)
			practiceGroup.GET("/sessions/:token", studyHandlers.GetPracticeSession)
			practiceGroup.POST("/sessions/:token/answer", studyHandlers.AnswerPractice)
			practiceGroup.POST("/sessions/:token/advance", studyHandlers.AdvancePractice)
			practiceGroup.POST("/sessions/:token/retry", studyHandlers.RetryPractice)
			practiceGroup.DELETE("/sessions/:token", studyHandlers.AbandonPractice)
		}

		v1.GET("/stats", middleware.AuthRequired(), studyHandlers.GetStats)
	}

	// Start server
	address := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Starting flashcard server",
		zap.String("address", address),
		zap.String("env", cfg.Server.Env),
	)

	if err := router.Run(address); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
