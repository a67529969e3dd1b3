package api

import (
	"net/http"

	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/service"
	"github.com/blog-cms-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ArticleHandler handles article endpoints
type ArticleHandler struct {
	articles  service.ArticleService
	validator *validation.Validator
	log       zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, v *validation.Validator, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		articles:  services.Article,
		validator: v,
		log:       log.With().Str("handler", "article").Logger(),
	}
}

// ListPublished godoc
// @Summary List published articles
// @Tags articles
// @Produce json
// @Param page query int false "page number" default(1)
// @Param limit query int false "page size (1-100)" default(10)
// @Param search query string false "title or summary contains"
// @Param categoryId query string false "category id"
// @Param tagId query string false "tag id"
// @Success 200 {object} models.Page[models.Article]
// @Failure 400 {object} ValidationErrorResponse
// @Router /api/articles [get]
func (h *ArticleHandler) ListPublished(c *gin.Context) {
	filter := articleFilter(c)
	filter.Status = models.StatusPublished

	page, err := h.articles.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetPublished godoc
// @Summary Get a published article
// @Tags articles
// @Produce json
// @Param id path string true "article id"
// @Success 200 {object} models.Article
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/articles/{id} [get]
func (h *ArticleHandler) GetPublished(c *gin.Context) {
	article, err := h.articles.GetPublished(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// GetBySlug godoc
// @Summary Get a published article by slug
// @Tags articles
// @Produce json
// @Param slug path string true "article slug"
// @Success 200 {object} models.Article
// @Failure 404 {object} ErrorResponse
// @Router /api/articles/slug/{slug} [get]
func (h *ArticleHandler) GetBySlug(c *gin.Context) {
	article, err := h.articles.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// RegisterView godoc
// @Summary Count one view of an article
// @Tags articles
// @Produce json
// @Param id path string true "article id"
// @Success 200 {object} models.ViewResult
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/articles/{id}/view [post]
func (h *ArticleHandler) RegisterView(c *gin.Context) {
	result, err := h.articles.RegisterView(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// List godoc
// @Summary List articles in any status
// @Tags admin-articles
// @Produce json
// @Security SessionToken
// @Param page query int false "page number" default(1)
// @Param limit query int false "page size (1-100)" default(10)
// @Param search query string false "title or summary contains"
// @Param status query string false "draft|published|archived"
// @Param categoryId query string false "category id"
// @Param tagId query string false "tag id"
// @Success 200 {object} models.Page[models.Article]
// @Failure 400 {object} ValidationErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/admin/articles [get]
func (h *ArticleHandler) List(c *gin.Context) {
	filter := articleFilter(c)
	filter.Status = models.ArticleStatus(c.Query("status"))

	page, err := h.articles.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get godoc
// @Summary Get an article
// @Tags admin-articles
// @Produce json
// @Security SessionToken
// @Param id path string true "article id"
// @Success 200 {object} models.Article
// @Failure 400 {object} ValidationErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/admin/articles/{id} [get]
func (h *ArticleHandler) Get(c *gin.Context) {
	article, err := h.articles.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// Create godoc
// @Summary Create an article
// @Tags admin-articles
// @Accept json
// @Produce json
// @Security SessionToken
// @Param body body models.ArticleCreateInput true "article"
// @Success 201 {object} models.Article
// @Failure 400 {object} ValidationErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/admin/articles [post]
func (h *ArticleHandler) Create(c *gin.Context) {
	var in models.ArticleCreateInput
	if !bind(c, h.validator, h.log, &in) {
		return
	}

	session := currentSession(c)
	article, err := h.articles.Create(c.Request.Context(), session.UserID, &in)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	h.log.Info().Str("article_id", article.ID).Str("user_id", session.UserID).Msg("Article created")
	c.JSON(http.StatusCreated, article)
}

// Update godoc
// @Summary Update an article
// @Description Only the fields present in the body change. An empty categoryId or thumbnailUrl clears it.
// @Tags admin-articles
// @Accept json
// @Produce json
// @Security SessionToken
// @Param id path string true "article id"
// @Param body body models.ArticleUpdateInput true "fields to change"
// @Success 200 {object} models.Article
// @Failure 400 {object} ValidationErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/admin/articles/{id} [put]
// @Router /api/admin/articles/{id} [patch]
func (h *ArticleHandler) Update(c *gin.Context) {
	var in models.ArticleUpdateInput
	if !bind(c, h.validator, h.log, &in) {
		return
	}

	article, err := h.articles.Update(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// Delete godoc
// @Summary Soft-delete an article
// @Tags admin-articles
// @Produce json
// @Security SessionToken
// @Param id path string true "article id"
// @Success 200 {object} models.DeleteResult
// @Failure 400 {object} ValidationErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/admin/articles/{id} [delete]
func (h *ArticleHandler) Delete(c *gin.Context) {
	deleteOne(c, h.log, h.articles.Delete)
}

// BulkDelete godoc
// @Summary Soft-delete several articles
// @Tags admin-articles
// @Accept json
// @Produce json
// @Security SessionToken
// @Param body body models.BulkDeleteInput true "ids"
// @Success 200 {object} models.DeleteResult
// @Failure 400 {object} ValidationErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/admin/articles [delete]
func (h *ArticleHandler) BulkDelete(c *gin.Context) {
	deleteMany(c, h.validator, h.log, h.articles.Delete)
}

// Analytics godoc
// @Summary View statistics of an article
// @Tags admin-articles
// @Produce json
// @Security SessionToken
// @Param id path string true "article id"
// @Success 200 {object} models.Analytics
// @Failure 400 {object} ValidationErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/admin/articles/{id}/analytics [get]
func (h *ArticleHandler) Analytics(c *gin.Context) {
	stats, err := h.articles.Analytics(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func articleFilter(c *gin.Context) models.ArticleFilter {
	return models.ArticleFilter{
		ListParams: listParams(c),
		CategoryID: c.Query("categoryId"),
		TagID:      c.Query("tagId"),
	}
}
