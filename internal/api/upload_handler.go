package api

import (
	"net/http"

	"github.com/blog-cms-api/internal/apperr"
	"github.com/blog-cms-api/internal/config"
	"github.com/blog-cms-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// multipartOverhead is allowed on top of the image size for form framing
const multipartOverhead = 1 << 20

// UploadHandler handles image uploads
type UploadHandler struct {
	uploads service.UploadService
	maxSize int64
	log     zerolog.Logger
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		uploads: services.Upload,
		maxSize: cfg.Upload.MaxSize,
		log:     log.With().Str("handler", "upload").Logger(),
	}
}

// UploadResponse is returned after a successful upload
type UploadResponse struct {
	URL string `json:"url" example:"/uploads/articles/3f1c.png"`
}

// UploadErrorResponse is returned when storing the upload fails
type UploadErrorResponse struct {
	Message string `json:"message" example:"Failed to upload image"`
}

// ArticleImage godoc
// @Summary Upload an article image
// @Tags admin-uploads
// @Accept multipart/form-data
// @Produce json
// @Security SessionToken
// @Param file formData file true "JPEG, PNG, GIF or WebP image"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} UploadErrorResponse
// @Router /api/admin/uploads/article-images [post]
func (h *UploadHandler) ArticleImage(c *gin.Context) {
	if h.maxSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxSize+multipartOverhead)
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		writeError(c, h.log, apperr.InvalidField("file", "is required"))
		return
	}
	defer file.Close()

	upload, err := h.uploads.SaveArticleImage(c.Request.Context(), header.Filename, header.Size, file)
	if err != nil {
		if apperr.Is(err, apperr.KindValidation) {
			writeError(c, h.log, err)
			return
		}
		h.log.Error().Err(err).Str("filename", header.Filename).Msg("Failed to upload image")
		c.JSON(http.StatusInternalServerError, UploadErrorResponse{Message: "Failed to upload image"})
		return
	}

	c.JSON(http.StatusOK, UploadResponse{URL: upload.URL})
}
