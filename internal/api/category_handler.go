package api

import (
	"net/http"

	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/service"
	"github.com/blog-cms-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	categories service.CategoryService
	validator  *validation.Validator
	log        zerolog.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(services *service.Services, v *validation.Validator, log zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		categories: services.Category,
		validator:  v,
		log:        log.With().Str("handler", "category").Logger(),
	}
}

// List godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Param page query int false "page number" default(1)
// @Param limit query int false "page size (1-100)" default(10)
// @Param search query string false "name or slug contains"
// @Success 200 {object} models.Page[models.Category]
// @Router /api/categories [get]
// @Router /api/admin/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	page, err := h.categories.List(c.Request.Context(), listParams(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get godoc
// @Summary Get a category
// @Tags admin-categories
// @Produce json
// @Security SessionToken
// @Param id path string true "category id"
// @Success 200 {object} models.Category
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/admin/categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	category, err := h.categories.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// Create godoc
// @Summary Create a category
// @Tags admin-categories
// @Accept json
// @Produce json
// @Security SessionToken
// @Param body body models.CategoryCreateInput true "category"
// @Success 201 {object} models.Category
// @Failure 400 {object} ValidationErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/admin/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var in models.CategoryCreateInput
	if !bind(c, h.validator, h.log, &in) {
		return
	}
	category, err := h.categories.Create(c.Request.Context(), &in)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// Update godoc
// @Summary Update a category
// @Tags admin-categories
// @Accept json
// @Produce json
// @Security SessionToken
// @Param id path string true "category id"
// @Param body body models.CategoryUpdateInput true "fields to change"
// @Success 200 {object} models.Category
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/admin/categories/{id} [put]
// @Router /api/admin/categories/{id} [patch]
func (h *CategoryHandler) Update(c *gin.Context) {
	var in models.CategoryUpdateInput
	if !bind(c, h.validator, h.log, &in) {
		return
	}
	category, err := h.categories.Update(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// Delete godoc
// @Summary Soft-delete a category; its articles become uncategorized
// @Tags admin-categories
// @Produce json
// @Security SessionToken
// @Param id path string true "category id"
// @Success 200 {object} models.DeleteResult
// @Failure 400 {object} ValidationErrorResponse
// @Router /api/admin/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	deleteOne(c, h.log, h.categories.Delete)
}

// BulkDelete godoc
// @Summary Soft-delete several categories
// @Tags admin-categories
// @Accept json
// @Produce json
// @Security SessionToken
// @Param body body models.BulkDeleteInput true "ids"
// @Success 200 {object} models.DeleteResult
// @Failure 400 {object} ValidationErrorResponse
// @Router /api/admin/categories [delete]
func (h *CategoryHandler) BulkDelete(c *gin.Context) {
	deleteMany(c, h.validator, h.log, h.categories.Delete)
}
