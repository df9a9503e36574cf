package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lumora-labs/coursecraft-api/internal/models"
	"github.com/lumora-labs/coursecraft-api/internal/service"
	"github.com/lumora-labs/coursecraft-api/pkg/response"
)

// MaterialHandler exposes the read and delete side of materials.
type MaterialHandler struct {
	materials *service.MaterialService
	stats     *service.StatsService
}

// NewMaterialHandler constructs MaterialHandler. stats may be nil.
func NewMaterialHandler(materials *service.MaterialService, stats *service.StatsService) *MaterialHandler {
	return &MaterialHandler{materials: materials, stats: stats}
}

// List godoc
// @Summary List materials
// @Tags Materials
// @Produce json
// @Param topicId query string false "Filter by topic"
// @Param subjectId query string false "Filter by subject"
// @Param kind query string false "Filter by material kind"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /materials [get]
func (h *MaterialHandler) List(c *gin.Context) {
	var filter models.MaterialFilter
	filter.TopicID = c.Query("topicId")
	filter.SubjectID = c.Query("subjectId")
	filter.MaterialKind = c.Query("kind")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")

	materials, pagination, err := h.materials.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, materials, pagination)
}

// Get godoc
// @Summary Get material detail with CLOs
// @Tags Materials
// @Produce json
// @Param id path string true "Material ID"
// @Success 200 {object} response.Envelope
// @Router /materials/{id} [get]
func (h *MaterialHandler) Get(c *gin.Context) {
	detail, err := h.materials.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// History godoc
// @Summary Get material version history
// @Tags Materials
// @Produce json
// @Param id path string true "Material ID"
// @Success 200 {object} response.Envelope
// @Router /materials/{id}/history [get]
func (h *MaterialHandler) History(c *gin.Context) {
	history, err := h.materials.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, history, nil)
}

// CLOs godoc
// @Summary Get material learning outcomes
// @Tags Materials
// @Produce json
// @Param id path string true "Material ID"
// @Success 200 {object} response.Envelope
// @Router /materials/{id}/clos [get]
func (h *MaterialHandler) CLOs(c *gin.Context) {
	clos, err := h.materials.CLOs(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, clos, nil)
}

// Delete godoc
// @Summary Delete material and its files
// @Tags Materials
// @Produce json
// @Param id path string true "Material ID"
// @Success 204
// @Router /materials/{id} [delete]
func (h *MaterialHandler) Delete(c *gin.Context) {
	if err := h.materials.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	if h.stats != nil {
		h.stats.Invalidate(c.Request.Context())
	}
	response.NoContent(c)
}
