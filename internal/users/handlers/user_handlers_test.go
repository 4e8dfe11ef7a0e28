package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/githoaitandev/my-flashcard/internal/common/database"
	"github.com/githoaitandev/my-flashcard/internal/common/middleware"
	"github.com/githoaitandev/my-flashcard/internal/users/models"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&database.User{}, &database.Session{}))
	database.DB = db

	router := gin.New()
	router.POST("/api/v1/auth/register", Register)
	router.POST("/api/v1/auth/login", Login)
	router.POST("/api/v1/auth/logout", Logout)
	router.GET("/api/v1/whoami", middleware.AuthRequired(), func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)
		c.JSON(200, gin.H{"user_id": userID})
	})

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func register(t *testing.T, router *gin.Engine, username string) {
	w := doJSON(t, router, "POST", "/api/v1/auth/register", models.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "correct horse",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	router := setupTestRouter(t)
	register(t, router, "alice")

	w := doJSON(t, router, "POST", "/api/v1/auth/login", models.LoginRequest{
		Username: "alice",
		Password: "correct horse",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, "alice", resp.User.Username)

	// The issued token authenticates subsequent requests
	w = doJSON(t, router, "GET", "/api/v1/whoami", nil, resp.Token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	router := setupTestRouter(t)
	register(t, router, "alice")

	w := doJSON(t, router, "POST", "/api/v1/auth/register", models.RegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "correct horse",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, router, "POST", "/api/v1/auth/register", models.RegisterRequest{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "correct horse",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterDoesNotLeakPassword(t *testing.T) {
	router := setupTestRouter(t)
	register(t, router, "alice")

	w := doJSON(t, router, "POST", "/api/v1/auth/login", models.LoginRequest{
		Username: "alice",
		Password: "correct horse",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestLoginWrongPassword(t *testing.T) {
	router := setupTestRouter(t)
	register(t, router, "alice")

	w := doJSON(t, router, "POST", "/api/v1/auth/login", models.LoginRequest{
		Username: "alice",
		Password: "wrong horse",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, "POST", "/api/v1/auth/login", models.LoginRequest{
		Username: "nobody",
		Password: "correct horse",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	router := setupTestRouter(t)
	register(t, router, "alice")

	w := doJSON(t, router, "POST", "/api/v1/auth/login", models.LoginRequest{
		Username: "alice",
		Password: "correct horse",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	w = doJSON(t, router, "POST", "/api/v1/auth/logout", nil, resp.Token)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "GET", "/api/v1/whoami", nil, resp.Token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredWithoutToken(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, "GET", "/api/v1/whoami", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
