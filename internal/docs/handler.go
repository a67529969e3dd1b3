package docs

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ContentTypeYAML is the media type of the served document
const ContentTypeYAML = "application/x-yaml"

var ErrEmptyDocument = errors.New("documentation artifact is empty")

// Handler serves the generated OpenAPI document. The artifact is read once;
// a missing one disables this route only.
type Handler struct {
	doc []byte
	err error
	log zerolog.Logger
}

// Load reads the artifact at path
func Load(path string, log zerolog.Logger) *Handler {
	h := &Handler{log: log.With().Str("handler", "docs").Logger()}

	doc, err := os.ReadFile(path)
	switch {
	case err != nil:
		h.err = fmt.Errorf("read %s: %w", path, err)
	case len(doc) == 0:
		h.err = ErrEmptyDocument
	default:
		h.doc = doc
	}

	if h.err != nil {
		h.log.Warn().Err(h.err).Msg("API documentation unavailable; run `cms docs generate`")
	} else {
		h.log.Info().Str("path", path).Int("bytes", len(doc)).Msg("API documentation loaded")
	}
	return h
}

// FromBytes builds a handler around an in-memory document
func FromBytes(doc []byte, log zerolog.Logger) *Handler {
	h := &Handler{doc: doc, log: log}
	if len(doc) == 0 {
		h.err = ErrEmptyDocument
	}
	return h
}

// Available reports whether a document was loaded
func (h *Handler) Available() bool {
	return h.err == nil
}

// ServeYAML godoc
// @Summary OpenAPI document
// @Tags docs
// @Produce application/x-yaml
// @Success 200 {string} string "OpenAPI YAML"
// @Failure 503 {object} map[string]string
// @Router /api/docs [get]
func (h *Handler) ServeYAML(c *gin.Context) {
	if h.err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "API documentation is not available"})
		return
	}
	c.Data(http.StatusOK, ContentTypeYAML, h.doc)
}
