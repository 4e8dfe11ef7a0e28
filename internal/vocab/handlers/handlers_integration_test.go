package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/githoaitandev/my-flashcard/internal/common/database"
	"github.com/githoaitandev/my-flashcard/internal/vocab/models"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	database.DB = setupTestDB(t)

	router := gin.New()

	// Tests bypass session auth and pin the user directly
	router.Use(func(c *gin.Context) {
		c.Set("user_id", uint(1))
		c.Next()
	})

	deckGroup := router.Group("/api/v1/decks")
	deckGroup.GET("", ListDecks)
	deckGroup.POST("", CreateDeck)
	deckGroup.GET("/:id", GetDeck)
	deckGroup.PUT("/:id", UpdateDeck)
	deckGroup.DELETE("/:id", DeleteDeck)
	deckGroup.GET("/:id/export", ExportDeck)

	cardGroup := router.Group("/api/v1/flashcards")
	cardGroup.GET("", ListFlashcards)
	cardGroup.POST("", CreateFlashcard)
	cardGroup.GET("/:id", GetFlashcard)
	cardGroup.PUT("/:id", UpdateFlashcard)
	cardGroup.DELETE("/:id", DeleteFlashcard)
	cardGroup.PATCH("/:id/memory", TransitionMemory)

	router.POST("/api/v1/decks/import", ImportDeck)

	return router
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&database.User{},
		&models.Deck{},
		&models.Flashcard{},
	))

	user := &database.User{Username: "testuser", Email: "test@example.com", Password: "x"}
	require.NoError(t, db.Create(user).Error)

	return db
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createDeckViaAPI(t *testing.T, router *gin.Engine, name string) models.Deck {
	w := doJSON(t, router, "POST", "/api/v1/decks", models.CreateDeckRequest{Name: name})
	require.Equal(t, http.StatusCreated, w.Code)

	var deck models.Deck
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &deck))
	return deck
}

func createCardViaAPI(t *testing.T, router *gin.Engine, deckID uint, front string) models.Flashcard {
	w := doJSON(t, router, "POST", "/api/v1/flashcards", models.CreateFlashcardRequest{
		DeckID:       deckID,
		Front:        front,
		Back:         front + " meaning",
		PartOfSpeech: "noun",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var card models.Flashcard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &card))
	return card
}

func TestDeckEndpoints(t *testing.T) {
	router := setupTestRouter(t)

	deck := createDeckViaAPI(t, router, "Basic Nouns")
	assert.Equal(t, "Basic Nouns", deck.Name)

	w := doJSON(t, router, "GET", "/api/v1/decks", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var decks []models.DeckResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decks))
	require.Len(t, decks, 1)

	w = doJSON(t, router, "PUT", fmt.Sprintf("/api/v1/decks/%d", deck.ID),
		models.UpdateDeckRequest{Name: "Renamed"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "GET", fmt.Sprintf("/api/v1/decks/%d", deck.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var detail models.DeckDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "Renamed", detail.Name)

	w = doJSON(t, router, "DELETE", fmt.Sprintf("/api/v1/decks/%d", deck.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "GET", fmt.Sprintf("/api/v1/decks/%d", deck.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateDeckValidation(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, "POST", "/api/v1/decks", map[string]string{"name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetDeckInvalidID(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, "GET", "/api/v1/decks/not-a-number", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFlashcardEndpoints(t *testing.T) {
	router := setupTestRouter(t)
	deck := createDeckViaAPI(t, router, "Words")

	card := createCardViaAPI(t, router, deck.ID, "apple")
	assert.Equal(t, models.MemoryStatusNew, card.MemoryStatus)

	w := doJSON(t, router, "GET", fmt.Sprintf("/api/v1/flashcards?deckId=%d", deck.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var cards []models.Flashcard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cards))
	assert.Len(t, cards, 1)

	w = doJSON(t, router, "PUT", fmt.Sprintf("/api/v1/flashcards/%d", card.ID),
		models.UpdateFlashcardRequest{Front: "apple", Back: "a round fruit", PartOfSpeech: "noun"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "DELETE", fmt.Sprintf("/api/v1/flashcards/%d", card.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "GET", fmt.Sprintf("/api/v1/flashcards/%d", card.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateFlashcardUnknownDeck(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, "POST", "/api/v1/flashcards", models.CreateFlashcardRequest{
		DeckID: 9999,
		Front:  "apple",
		Back:   "a fruit",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTransitionMemoryEndpoint(t *testing.T) {
	router := setupTestRouter(t)
	deck := createDeckViaAPI(t, router, "Words")
	card := createCardViaAPI(t, router, deck.ID, "apple")

	path := fmt.Sprintf("/api/v1/flashcards/%d/memory", card.ID)

	w := doJSON(t, router, "PATCH", path, models.MemoryTransitionRequest{Action: "increment"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Card  models.Flashcard `json:"card"`
		Label string           `json:"label"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Card.MemoryStatus)
	assert.Equal(t, "Learning", resp.Label)
	assert.NotNil(t, resp.Card.LastReviewed)

	w = doJSON(t, router, "PATCH", path, models.MemoryTransitionRequest{Action: "bump"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "unknown action fails binding")
}

func TestExportImportEndpoints(t *testing.T) {
	router := setupTestRouter(t)
	deck := createDeckViaAPI(t, router, "Travel Words")
	createCardViaAPI(t, router, deck.ID, "bridge")
	createCardViaAPI(t, router, deck.ID, "harbor")

	w := doJSON(t, router, "GET", fmt.Sprintf("/api/v1/decks/%d/export", deck.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var payload models.DeckTransfer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "Travel Words", payload.Name)
	require.Len(t, payload.Cards, 2)

	w = doJSON(t, router, "POST", "/api/v1/decks/import", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	var result models.ImportResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 2, result.ImportedCards)
	assert.NotEqual(t, deck.ID, result.Deck.ID)
}
