package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xaenox/vivaha-bot/internal/chat"
	"github.com/xaenox/vivaha-bot/internal/models"
)

// Handler exposes the chat service over HTTP/JSON.
type Handler struct {
	svc    *chat.Service
	logger *zap.Logger
}

func NewHandler(svc *chat.Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user,omitempty"`
}

// POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	user, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, chat.ErrInvalidCredentials) {
		RespondError(c, http.StatusUnauthorized, "invalid_credentials", err)
		return
	}
	if err != nil {
		h.logger.Error("Login failed", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "login_failed", err)
		return
	}

	RespondOK(c, loginResponse{Success: true, User: user})
}

type saveQuizRequest struct {
	UserID string             `json:"user_id" binding:"required"`
	Quiz   models.QuizProfile `json:"quiz" binding:"required"`
}

// POST /api/quiz
func (h *Handler) SaveQuiz(c *gin.Context) {
	var req saveQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	if err := h.svc.SaveQuiz(c.Request.Context(), req.UserID, req.Quiz); err != nil {
		h.respondServiceError(c, "save_quiz_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

// GET /api/quiz/:userId
// Responds with the profile, or JSON null when the user has none.
func (h *Handler) GetQuiz(c *gin.Context) {
	quiz, err := h.svc.GetQuiz(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.respondServiceError(c, "get_quiz_failed", err)
		return
	}
	RespondOK(c, quiz)
}

// GET /api/chat/messages/:userId
func (h *Handler) ListConversation(c *gin.Context) {
	turns, err := h.svc.ListConversation(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.respondServiceError(c, "list_conversation_failed", err)
		return
	}
	RespondOK(c, turns)
}

type chatRequest struct {
	UserID  string              `json:"user_id" binding:"required"`
	Message string              `json:"message"`
	Quiz    *models.QuizProfile `json:"quiz,omitempty"`
}

type chatResponse struct {
	Message *models.Turn `json:"message"`
}

// POST /api/chat/message
func (h *Handler) SubmitUtterance(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	reply, err := h.svc.SubmitUtterance(c.Request.Context(), req.UserID, req.Message, req.Quiz)
	if err != nil {
		h.respondServiceError(c, "submit_utterance_failed", err)
		return
	}
	RespondOK(c, chatResponse{Message: reply})
}

// GET /api/chat/stream/:userId
// Streams every appended turn as a server-sent event until the client
// disconnects.
func (h *Handler) StreamConversation(c *gin.Context) {
	turns, cancel := h.svc.Subscribe(c.Param("userId"))
	defer cancel()

	c.Stream(func(w io.Writer) bool {
		select {
		case turn, ok := <-turns:
			if !ok {
				return false
			}
			c.SSEvent("turn", turn)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

type saveItemRequest struct {
	TurnID string          `json:"turn_id" binding:"required"`
	Kind   models.ItemKind `json:"kind" binding:"required"`
}

// POST /api/items/:userId
func (h *Handler) SaveTurnAsItem(c *gin.Context) {
	var req saveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	item, err := h.svc.SaveTurnAsItem(c.Request.Context(), c.Param("userId"), req.TurnID, req.Kind)
	if err != nil {
		h.respondServiceError(c, "save_item_failed", err)
		return
	}
	RespondOK(c, item)
}

// GET /api/items/:userId?kind=note
func (h *Handler) ListItems(c *gin.Context) {
	var kind *models.ItemKind
	if raw, ok := c.GetQuery("kind"); ok {
		k := models.ItemKind(raw)
		kind = &k
	}

	items, err := h.svc.ListItems(c.Request.Context(), c.Param("userId"), kind)
	if err != nil {
		h.respondServiceError(c, "list_items_failed", err)
		return
	}
	RespondOK(c, items)
}

// PATCH /api/items/:userId/:itemId
func (h *Handler) UpdateItem(c *gin.Context) {
	var patch models.ItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	item, err := h.svc.UpdateItem(c.Request.Context(), c.Param("userId"), c.Param("itemId"), patch)
	if err != nil {
		h.respondServiceError(c, "update_item_failed", err)
		return
	}
	RespondOK(c, item)
}

// DELETE /api/items/:userId/:itemId
func (h *Handler) DeleteItem(c *gin.Context) {
	err := h.svc.DeleteItem(c.Request.Context(), c.Param("userId"), c.Param("itemId"))
	if err != nil {
		h.respondServiceError(c, "delete_item_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

// GET /api/progress/:userId
func (h *Handler) GetProgress(c *gin.Context) {
	progress, err := h.svc.Progress(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.respondServiceError(c, "get_progress_failed", err)
		return
	}
	RespondOK(c, progress)
}

// GET /healthcheck
func HealthCheck(c *gin.Context) {
	RespondOK(c, gin.H{"status": "ok"})
}

// respondServiceError maps service errors onto HTTP statuses: not-found to
// 404, validation failures to 400, everything else to 500.
func (h *Handler) respondServiceError(c *gin.Context, code string, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case isValidationError(err):
		RespondError(c, http.StatusBadRequest, code, err)
	default:
		h.logger.Error("Request failed", zap.Error(err), zap.String("code", code))
		RespondError(c, http.StatusInternalServerError, code, err)
	}
}

func isValidationError(err error) bool {
	if errors.Is(err, chat.ErrEmptyMessage) {
		return true
	}
	var ve *models.ValidationError
	return errors.As(err, &ve)
}
