package search

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"glance-backend/internal/shared/server/middleware"
	"glance-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the search service.
type Handler struct {
	Svc     *Service
	Limiter *middleware.UserRateLimiter
}

// NewHandler constructs a Handler. The rate limiter is injected so its
// bounds and clock are owned by the caller, not by package state.
func NewHandler(svc *Service, limiter *middleware.UserRateLimiter) *Handler {
	return &Handler{Svc: svc, Limiter: limiter}
}

// RegisterRoutes attaches search routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/search", middleware.RateLimit(h.Limiter), h.search)
}

type searchRequest struct {
	Query  string `json:"query"`
	Filter string `json:"filter"`
}

func (h *Handler) search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	results, err := h.Svc.Search(c.Request.Context(), req.Query, req.Filter)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyQuery):
			respond.Error(c, http.StatusBadRequest, "validation_error", "query is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "search failed", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"results":  results.Papers,
		"metadata": results.Metadata,
	})
}
