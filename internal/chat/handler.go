package chat

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"glance-backend/internal/documents"
	"glance-backend/internal/llm"
	"glance-backend/internal/shared/server/middleware"
	"glance-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the chat service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches chat routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chat/:id", h.chat)
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response      string    `json:"response"`
	DocumentTitle string    `json:"documentTitle"`
	Timestamp     time.Time `json:"timestamp"`
}

func (h *Handler) chat(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	answer, err := h.Svc.Ask(c.Request.Context(), userID, c.Param("id"), req.Message)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyMessage):
			respond.Error(c, http.StatusBadRequest, "validation_error", "message is required", nil)
		case errors.Is(err, documents.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		case errors.Is(err, documents.ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrNoText):
			respond.Error(c, http.StatusUnprocessableEntity, "no_text", "document has no extractable text", nil)
		case errors.Is(err, llm.ErrQuotaExceeded):
			respond.Error(c, http.StatusTooManyRequests, "quota_exceeded", "AI quota exceeded, try again later", nil)
		case errors.Is(err, llm.ErrNotConfigured):
			respond.Error(c, http.StatusServiceUnavailable, "llm_unavailable", "AI provider is not configured", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to answer message", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, chatResponse{
		Response:      answer.Response,
		DocumentTitle: answer.DocumentTitle,
		Timestamp:     answer.Timestamp,
	})
}
