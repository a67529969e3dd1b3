package api

import (
	"net/http"

	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/service"
	"github.com/blog-cms-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// TagHandler handles tag endpoints
type TagHandler struct {
	tags      service.TagService
	validator *validation.Validator
	log       zerolog.Logger
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(services *service.Services, v *validation.Validator, log zerolog.Logger) *TagHandler {
	return &TagHandler{
		tags:      services.Tag,
		validator: v,
		log:       log.With().Str("handler", "tag").Logger(),
	}
}

// List godoc
// @Summary List tags
// @Tags tags
// @Produce json
// @Param page query int false "page number" default(1)
// @Param limit query int false "page size (1-100)" default(10)
// @Param search query string false "name contains"
// @Success 200 {object} models.Page[models.Tag]
// @Router /api/tags [get]
// @Router /api/admin/tags [get]
func (h *TagHandler) List(c *gin.Context) {
	page, err := h.tags.List(c.Request.Context(), listParams(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get godoc
// @Summary Get a tag
// @Tags admin-tags
// @Produce json
// @Security SessionToken
// @Param id path string true "tag id"
// @Success 200 {object} models.Tag
// @Failure 404 {object} ErrorResponse
// @Router /api/admin/tags/{id} [get]
func (h *TagHandler) Get(c *gin.Context) {
	tag, err := h.tags.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

// Create godoc
// @Summary Create a tag
// @Tags admin-tags
// @Accept json
// @Produce json
// @Security SessionToken
// @Param body body models.TagCreateInput true "tag"
// @Success 201 {object} models.Tag
// @Failure 400 {object} ValidationErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/admin/tags [post]
func (h *TagHandler) Create(c *gin.Context) {
	var in models.TagCreateInput
	if !bind(c, h.validator, h.log, &in) {
		return
	}
	tag, err := h.tags.Create(c.Request.Context(), &in)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

// Update godoc
// @Summary Rename a tag
// @Tags admin-tags
// @Accept json
// @Produce json
// @Security SessionToken
// @Param id path string true "tag id"
// @Param body body models.TagUpdateInput true "fields to change"
// @Success 200 {object} models.Tag
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/admin/tags/{id} [put]
// @Router /api/admin/tags/{id} [patch]
func (h *TagHandler) Update(c *gin.Context) {
	var in models.TagUpdateInput
	if !bind(c, h.validator, h.log, &in) {
		return
	}
	tag, err := h.tags.Update(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

// Delete godoc
// @Summary Delete a tag
// @Tags admin-tags
// @Produce json
// @Security SessionToken
// @Param id path string true "tag id"
// @Success 200 {object} models.DeleteResult
// @Router /api/admin/tags/{id} [delete]
func (h *TagHandler) Delete(c *gin.Context) {
	deleteOne(c, h.log, h.tags.Delete)
}

// BulkDelete godoc
// @Summary Delete several tags
// @Tags admin-tags
// @Accept json
// @Produce json
// @Security SessionToken
// @Param body body models.BulkDeleteInput true "ids"
// @Success 200 {object} models.DeleteResult
// @Router /api/admin/tags [delete]
func (h *TagHandler) BulkDelete(c *gin.Context) {
	deleteMany(c, h.validator, h.log, h.tags.Delete)
}
