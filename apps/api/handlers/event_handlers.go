package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/guardian/guardian-api/apps/api/constants"
)

type EventHandler struct {
	common *CommonServices
}

func NewEventHandler(common *CommonServices) *EventHandler {
	return &EventHandler{common: common}
}

// ListEvents godoc
// @Summary List the observations recorded for an account, newest first
// @Tags events
// @Produce json
// @Param account path string true "Safe address"
// @Param limit query int false "Maximum number of events (default 50, max 500)"
// @Router /accounts/{account}/events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	account, ok := accountParam(c)
	if !ok {
		return
	}

	var limit int32
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || n < 0 {
			sendError(c, http.StatusBadRequest, constants.InvalidLimit, err)
			return
		}
		limit = int32(n)
	}

	events, err := h.common.Events.List(c.Request.Context(), account, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendList(c, events)
}
