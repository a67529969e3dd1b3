package api

import (
	"net/http"

	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/service"
	"github.com/blog-cms-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CommentHandler handles comment endpoints
type CommentHandler struct {
	comments  service.CommentService
	validator *validation.Validator
	log       zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, v *validation.Validator, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		comments:  services.Comment,
		validator: v,
		log:       log.With().Str("handler", "comment").Logger(),
	}
}

// ListForArticle godoc
// @Summary List the comments of an article
// @Tags comments
// @Produce json
// @Param id path string true "article id"
// @Param page query int false "page number" default(1)
// @Param limit query int false "page size (1-100)" default(10)
// @Success 200 {object} models.Page[models.PublicComment]
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/articles/{id}/comments [get]
func (h *CommentHandler) ListForArticle(c *gin.Context) {
	page, err := h.comments.ListForArticle(c.Request.Context(), c.Param("id"), listParams(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Create godoc
// @Summary Post a comment on an article
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "article id"
// @Param body body models.CommentCreateInput true "comment"
// @Success 201 {object} models.PublicComment
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/articles/{id}/comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	var in models.CommentCreateInput
	if !bind(c, h.validator, h.log, &in) {
		return
	}
	comment, err := h.comments.Create(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, comment.Public())
}

// List godoc
// @Summary List comments
// @Tags admin-comments
// @Produce json
// @Security SessionToken
// @Param page query int false "page number" default(1)
// @Param limit query int false "page size (1-100)" default(10)
// @Param search query string false "name or content contains"
// @Param articleId query string false "article id"
// @Success 200 {object} models.Page[models.Comment]
// @Failure 400 {object} ValidationErrorResponse
// @Router /api/admin/comments [get]
func (h *CommentHandler) List(c *gin.Context) {
	filter := models.CommentFilter{ListParams: listParams(c), ArticleID: c.Query("articleId")}
	page, err := h.comments.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get godoc
// @Summary Get a comment
// @Tags admin-comments
// @Produce json
// @Security SessionToken
// @Param id path string true "comment id"
// @Success 200 {object} models.Comment
// @Failure 404 {object} ErrorResponse
// @Router /api/admin/comments/{id} [get]
func (h *CommentHandler) Get(c *gin.Context) {
	comment, err := h.comments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Update godoc
// @Summary Edit a comment
// @Tags admin-comments
// @Accept json
// @Produce json
// @Security SessionToken
// @Param id path string true "comment id"
// @Param body body models.CommentUpdateInput true "fields to change"
// @Success 200 {object} models.Comment
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/admin/comments/{id} [put]
// @Router /api/admin/comments/{id} [patch]
func (h *CommentHandler) Update(c *gin.Context) {
	var in models.CommentUpdateInput
	if !bind(c, h.validator, h.log, &in) {
		return
	}
	comment, err := h.comments.Update(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Delete godoc
// @Summary Delete a comment
// @Tags admin-comments
// @Produce json
// @Security SessionToken
// @Param id path string true "comment id"
// @Success 200 {object} models.DeleteResult
// @Router /api/admin/comments/{id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	deleteOne(c, h.log, h.comments.Delete)
}

// BulkDelete godoc
// @Summary Delete several comments
// @Tags admin-comments
// @Accept json
// @Produce json
// @Security SessionToken
// @Param body body models.BulkDeleteInput true "ids"
// @Success 200 {object} models.DeleteResult
// @Router /api/admin/comments [delete]
func (h *CommentHandler) BulkDelete(c *gin.Context) {
	deleteMany(c, h.validator, h.log, h.comments.Delete)
}
