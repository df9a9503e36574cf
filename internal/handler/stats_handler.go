package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumora-labs/coursecraft-api/internal/service"
	"github.com/lumora-labs/coursecraft-api/pkg/response"
)

// StatsHandler exposes the aggregate overview endpoint.
type StatsHandler struct {
	stats *service.StatsService
}

// NewStatsHandler constructs StatsHandler.
func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Overview godoc
// @Summary Aggregate counts for subjects, topics, materials and tasks
// @Tags Stats
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /stats [get]
func (h *StatsHandler) Overview(c *gin.Context) {
	overview, err := h.stats.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, overview, nil)
}
