package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumora-labs/coursecraft-api/internal/service"
	appErrors "github.com/lumora-labs/coursecraft-api/pkg/errors"
	"github.com/lumora-labs/coursecraft-api/pkg/response"
)

// GenerateHandler exposes the synchronous generation endpoint.
type GenerateHandler struct {
	generator *service.GenerationService
	stats     *service.StatsService
}

// NewGenerateHandler constructs GenerateHandler. stats may be nil.
func NewGenerateHandler(generator *service.GenerationService, stats *service.StatsService) *GenerateHandler {
	return &GenerateHandler{generator: generator, stats: stats}
}

// Generate godoc
// @Summary Generate a material synchronously
// @Description Creates the material at v1.0 or bumps the version of an
// @Description existing one; unknown subjects and topics are created on
// @Description the fly.
// @Tags Generation
// @Accept json
// @Produce json
// @Param payload body service.GenerateRequest true "Generation payload"
// @Success 200 {object} response.Envelope
// @Success 201 {object} response.Envelope
// @Router /generate [post]
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req service.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.generator.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.stats != nil {
		h.stats.Invalidate(c.Request.Context())
	}
	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	response.JSON(c, status, result, nil)
}
