package api

import (
	"context"
	"net/http"

	"github.com/blog-cms-api/internal/apperr"
	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// maxJSONBody bounds request bodies of JSON endpoints
const maxJSONBody = 1 << 20

// ErrorResponse is the body of every non-validation failure
type ErrorResponse struct {
	Error string `json:"error" example:"article not found"`
}

// ValidationErrorResponse is the body of a 400 validation failure
type ValidationErrorResponse struct {
	Error   string              `json:"error" example:"Validation failed"`
	Details []apperr.FieldError `json:"details"`
}

// writeError is the single mapping from the error taxonomy to HTTP.
// Upstream causes are logged and never sent to the client.
func writeError(c *gin.Context, log zerolog.Logger, err error) {
	e, ok := apperr.As(err)
	if !ok {
		e = apperr.Upstream("unhandled error", err)
	}

	switch e.Kind {
	case apperr.KindValidation:
		details := e.Details
		if details == nil {
			details = []apperr.FieldError{}
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, ValidationErrorResponse{Error: e.Message, Details: details})
	case apperr.KindUpstream, apperr.KindUnknown:
		log.Error().
			Err(e.Err).
			Str("op", e.Message).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	default:
		c.AbortWithStatusJSON(e.Kind.Status(), ErrorResponse{Error: e.Message})
	}
}

// bind decodes and validates the JSON body into dst, writing the
// failure response itself. It reports whether the handler may continue.
func bind(c *gin.Context, v *validation.Validator, log zerolog.Logger, dst interface{}) bool {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxJSONBody)
	if err := v.DecodeAndValidate(body, dst); err != nil {
		writeError(c, log, err)
		return false
	}
	return true
}

// listParams reads page, limit and search from the query string
func listParams(c *gin.Context) models.ListParams {
	return validation.ParsePagination(c.Query("page"), c.Query("limit"), c.Query("search"))
}

type deleteFunc func(ctx context.Context, ids []string) (int64, error)

// deleteOne removes the record named by the :id path parameter
func deleteOne(c *gin.Context, log zerolog.Logger, del deleteFunc) {
	id := c.Param("id")
	if err := validation.ParseID(id); err != nil {
		writeError(c, log, err)
		return
	}
	n, err := del(c.Request.Context(), []string{id})
	if err != nil {
		writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, models.DeleteResult{Deleted: n})
}

// deleteMany removes every record listed in the body. Already deleted or
// unknown ids are not an error; they just don't count.
func deleteMany(c *gin.Context, v *validation.Validator, log zerolog.Logger, del deleteFunc) {
	var in models.BulkDeleteInput
	if !bind(c, v, log, &in) {
		return
	}
	n, err := del(c.Request.Context(), in.IDs)
	if err != nil {
		writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, models.DeleteResult{Deleted: n})
}
