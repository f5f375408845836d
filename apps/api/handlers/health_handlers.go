package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guardian/guardian-api/libs/go/types/api/responses"
)

// Pinger checks a backing dependency, e.g. the database pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	mode   string
	pinger Pinger
}

// NewHealthHandler reports mode in every response. pinger may be nil.
func NewHealthHandler(mode string, pinger Pinger) *HealthHandler {
	return &HealthHandler{mode: mode, pinger: pinger}
}

type HealthResponse = responses.HealthResponse

// Health answers 200 "ok", or 503 "degraded" when the pinger fails.
func (h *HealthHandler) Health(c *gin.Context) {
	if h.pinger != nil {
		if err := h.pinger.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Mode: h.mode, Error: err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
		Mode:   h.mode,
	})
}
