package assist

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"glance-backend/internal/llm"
	"glance-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the assist service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches assist routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ai/analyze", h.analyze)
}

type analyzeRequest struct {
	Prompt string `json:"prompt"`
}

func (h *Handler) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	response, err := h.Svc.Analyze(c.Request.Context(), req.Prompt)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyPrompt):
			respond.Error(c, http.StatusBadRequest, "validation_error", "prompt is required", nil)
		case errors.Is(err, llm.ErrQuotaExceeded):
			respond.Error(c, http.StatusTooManyRequests, "quota_exceeded", "AI quota exceeded, try again later", nil)
		case errors.Is(err, llm.ErrNotConfigured):
			respond.Error(c, http.StatusServiceUnavailable, "llm_unavailable", "AI provider is not configured", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to analyze prompt", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"response": response})
}
