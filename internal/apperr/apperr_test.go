package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, KindValidation.Status())
	assert.Equal(t, http.StatusUnauthorized, KindUnauthenticated.Status())
	assert.Equal(t, http.StatusUnauthorized, KindForbidden.Status())
	assert.Equal(t, http.StatusNotFound, KindNotFound.Status())
	assert.Equal(t, http.StatusConflict, KindConflict.Status())
	assert.Equal(t, http.StatusInternalServerError, KindUpstream.Status())
	assert.Equal(t, http.StatusInternalServerError, KindUnknown.Status())
}

func TestKindOf_Wrapped(t *testing.T) {
	base := NotFound("article")
	wrapped := fmt.Errorf("handler: %w", base)

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.True(t, Is(wrapped, KindNotFound))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))

	e, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, "article not found", e.Message)
}

func TestUpstream_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Upstream("list articles", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestInvalidField(t *testing.T) {
	err := InvalidField("id", "must be a valid UUID")
	require.Len(t, err.Details, 1)
	assert.Equal(t, []string{"id"}, err.Details[0].Path)
	assert.Equal(t, MsgValidationFailed, err.Message)
	assert.Equal(t, "id: must be a valid UUID", err.Details[0].String())
}
