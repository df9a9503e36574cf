package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumora-labs/coursecraft-api/internal/bloom"
	"github.com/lumora-labs/coursecraft-api/internal/render"
	appErrors "github.com/lumora-labs/coursecraft-api/pkg/errors"
	"github.com/lumora-labs/coursecraft-api/pkg/response"
	"github.com/lumora-labs/coursecraft-api/pkg/slug"
	"github.com/lumora-labs/coursecraft-api/pkg/version"
)

// UtilsHandler exposes the pure helper endpoints: slug sanitization, the
// Bloom keyword table, the theme catalogue and version arithmetic.
type UtilsHandler struct{}

// NewUtilsHandler constructs UtilsHandler.
func NewUtilsHandler() *UtilsHandler {
	return &UtilsHandler{}
}

// SanitizeRequest carries a display name to slugify.
type SanitizeRequest struct {
	Name string `json:"name" binding:"required"`
}

// Sanitize godoc
// @Summary Convert a display name to its slug
// @Tags Utils
// @Accept json
// @Produce json
// @Param payload body SanitizeRequest true "Name payload"
// @Success 200 {object} response.Envelope
// @Router /utils/sanitize [post]
func (h *UtilsHandler) Sanitize(c *gin.Context) {
	var req SanitizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	s, err := slug.Sanitize(req.Name)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInvalidName.Code, appErrors.ErrInvalidName.Status, "name cannot be converted to a slug"))
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"name": req.Name, "slug": s}, nil)
}

// BloomKeywords godoc
// @Summary Bloom taxonomy action verbs by complexity level
// @Tags Utils
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /utils/bloom-keywords [get]
func (h *UtilsHandler) BloomKeywords(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{
		"order":    bloom.OrderNames(),
		"keywords": bloom.AllKeywords(),
	}, nil)
}

// Themes godoc
// @Summary Presentation theme catalogue
// @Tags Utils
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /utils/themes [get]
func (h *UtilsHandler) Themes(c *gin.Context) {
	defs := render.ListThemes()
	out := make([]gin.H, 0, len(defs))
	for _, def := range defs {
		out = append(out, gin.H{
			"type":        def.Type,
			"name":        def.Name,
			"description": def.Description,
			"primary":     def.Primary,
			"secondary":   def.Secondary,
			"accent":      def.Accent,
			"text":        def.Text,
			"background":  def.Background,
		})
	}
	response.JSON(c, http.StatusOK, out, nil)
}

// IncrementVersion godoc
// @Summary Bump a material version string
// @Tags Utils
// @Produce json
// @Param version query string true "Current version, e.g. v1.2"
// @Param type query string false "Bump kind: minor (default) or major"
// @Success 200 {object} response.Envelope
// @Router /utils/version/increment [get]
func (h *UtilsHandler) IncrementVersion(c *gin.Context) {
	current := c.Query("version")
	if !version.IsValid(current) {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "version must look like v1.0"))
		return
	}
	kind := c.DefaultQuery("type", version.BumpMinor)
	if kind != version.BumpMinor && kind != version.BumpMajor {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "type must be minor or major"))
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"current": current,
		"type":    kind,
		"next":    version.Increment(current, kind),
	}, nil)
}
