package server

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
	"go.uber.org/zap"

	"github.com/xaenox/vivaha-bot/internal/chat"
	"github.com/xaenox/vivaha-bot/internal/classifier"
	"github.com/xaenox/vivaha-bot/internal/models"
	"github.com/xaenox/vivaha-bot/internal/responder"
	"github.com/xaenox/vivaha-bot/internal/storage"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	gen := responder.NewGenerator(classifier.NewKeywordClassifier())
	svc := chat.New(storage.NewMemoryStorage(), gen, zap.NewNop())
	return NewRouter(RouterConfig{
		Handler:        NewHandler(svc, zap.NewNop()),
		AllowedOrigins: []string{"http://localhost:3000"},
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

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

func TestLoginEndpoint(t *testing.T) {
	router := newTestRouter()

	w := doJSON(t, router, http.MethodPost, "/api/auth/login",
		gin.H{"email": "couple@example.com", "password": "secret"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool         `json:"success"`
		User    *models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.User)
	assert.Equal(t, "couple@example.com", resp.User.Email)

	// Wrong password once the account exists
	w = doJSON(t, router, http.MethodPost, "/api/auth/login",
		gin.H{"email": "couple@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestQuizEndpoints(t *testing.T) {
	router := newTestRouter()

	// Absent profile reads as JSON null
	w := doJSON(t, router, http.MethodGet, "/api/quiz/u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())

	w = doJSON(t, router, http.MethodPost, "/api/quiz", gin.H{
		"user_id": "u1",
		"quiz": gin.H{
			"style":       "destination",
			"budget":      "over25L",
			"guest_count": "over300",
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/quiz/u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var quiz models.QuizProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quiz))
	assert.Equal(t, models.StyleDestination, quiz.Style)

	// Out-of-set enum values are rejected, not coerced
	w = doJSON(t, router, http.MethodPost, "/api/quiz", gin.H{
		"user_id": "u1",
		"quiz": gin.H{
			"style":       "modern",
			"budget":      "over25L",
			"guest_count": "over300",
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatEndpoints(t *testing.T) {
	router := newTestRouter()

	w := doJSON(t, router, http.MethodPost, "/api/chat/message",
		gin.H{"user_id": "u1", "message": "what is the cost of a venue"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Message models.Turn `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.RoleAssistant, resp.Message.Role)
	assert.Contains(t, resp.Message.Content, "₹20-25 lakhs")

	w = doJSON(t, router, http.MethodGet, "/api/chat/messages/u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var turns []models.Turn
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &turns))
	require.Len(t, turns, 2)
	assert.Equal(t, models.RoleUser, turns[0].Role)
	assert.Equal(t, "what is the cost of a venue", turns[0].Content)
	assert.Equal(t, models.RoleAssistant, turns[1].Role)

	// Empty message is a validation error
	w = doJSON(t, router, http.MethodPost, "/api/chat/message",
		gin.H{"user_id": "u1", "message": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatWelcomeSeeding(t *testing.T) {
	router := newTestRouter()

	w := doJSON(t, router, http.MethodGet, "/api/chat/messages/u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var turns []models.Turn
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &turns))
	require.Len(t, turns, 1)
	assert.Contains(t, turns[0].Content, "Welcome to Vivaha Chat Bot!")

	// Second read returns the same single turn
	w = doJSON(t, router, http.MethodGet, "/api/chat/messages/u1", nil)
	var again []models.Turn
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &again))
	assert.Equal(t, turns, again)
}

func TestItemEndpoints(t *testing.T) {
	router := newTestRouter()

	// Create a turn to save
	w := doJSON(t, router, http.MethodPost, "/api/chat/message",
		gin.H{"user_id": "u1", "message": "vendor recommendations"})
	require.Equal(t, http.StatusOK, w.Code)
	var chatResp struct {
		Message models.Turn `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &chatResp))

	w = doJSON(t, router, http.MethodPost, "/api/items/u1",
		gin.H{"turn_id": chatResp.Message.ID, "kind": "note"})
	require.Equal(t, http.StatusOK, w.Code)
	var item models.SavedItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Equal(t, chatResp.Message.Content, item.Content)
	assert.Equal(t, chatResp.Message.ID, item.SourceTurnID)

	// Kind filter
	w = doJSON(t, router, http.MethodGet, "/api/items/u1?kind=note", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []models.SavedItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)

	w = doJSON(t, router, http.MethodGet, "/api/items/u1?kind=reminder", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Empty(t, items)

	// A patch cannot change the id
	w = doJSON(t, router, http.MethodPatch, fmt.Sprintf("/api/items/u1/%s", item.ID),
		gin.H{"id": "other-id", "kind": "confirmed"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.SavedItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, item.ID, updated.ID)
	assert.Equal(t, models.ItemConfirmed, updated.Kind)

	// Unknown item is a 404, for update and delete both
	w = doJSON(t, router, http.MethodPatch, "/api/items/u1/missing", gin.H{"kind": "note"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/items/u1/%s", item.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/items/u1/%s", item.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProgressEndpoint(t *testing.T) {
	router := newTestRouter()

	w := doJSON(t, router, http.MethodPost, "/api/chat/message",
		gin.H{"user_id": "u1", "message": "timeline please"})
	require.Equal(t, http.StatusOK, w.Code)
	var chatResp struct {
		Message models.Turn `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &chatResp))

	for i := 0; i < 3; i++ {
		w = doJSON(t, router, http.MethodPost, "/api/items/u1",
			gin.H{"turn_id": chatResp.Message.ID, "kind": "confirmed"})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/progress/u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var progress models.Progress
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &progress))
	assert.Equal(t, models.Progress{Score: 30, ConfirmedCount: 3}, progress)
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter()

	w := doJSON(t, router, http.MethodGet, "/healthcheck", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
