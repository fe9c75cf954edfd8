package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_HTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ValidationError("bad").HTTPStatus())
	assert.Equal(t, http.StatusNotFound, NotFoundError("missing").HTTPStatus())
	assert.Equal(t, http.StatusConflict, InvalidStateError("cannot").HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, InternalError("boom", nil).HTTPStatus())
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := InternalError("wrapper", cause)
	assert.ErrorIs(t, err, cause)
}

func TestError_WithField(t *testing.T) {
	err := NotFoundError("entry not found").
		WithField("schedule_id", "abc").
		WithField("entry_id", "def")

	assert.Equal(t, "abc", err.Context["schedule_id"])
	assert.Equal(t, "def", err.Context["entry_id"])
}

func TestError_Message(t *testing.T) {
	err := ValidationError("empty item kind")
	assert.Equal(t, "validation: empty item kind", err.Error())

	cause := errors.New("pg down")
	wrapped := InternalError("query failed", cause)
	assert.Equal(t, "internal: query failed: pg down", wrapped.Error())
}

func TestAsStructuredError(t *testing.T) {
	structured := InvalidStateError("no active entry")
	assert.Same(t, structured, AsStructuredError(structured))

	plain := errors.New("plain")
	converted := AsStructuredError(plain)
	require.NotNil(t, converted)
	assert.Equal(t, TypeInternal, converted.Type)
	assert.ErrorIs(t, converted, plain)

	assert.Nil(t, AsStructuredError(nil))
}

func TestToResponse(t *testing.T) {
	err := InvalidStateError("slide out of range").WithField("index", 5)
	resp := err.ToResponse()
	assert.Equal(t, "slide out of range", resp.Error)
	assert.Equal(t, TypeInvalidState, resp.Type)
	assert.Equal(t, 5, resp.Context["index"])
}
