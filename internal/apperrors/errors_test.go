package apperrors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrNotFound, CodeOf(New(ErrNotFound, "entry missing")))
	assert.Equal(t, ErrInternal, CodeOf(errors.New("plain")))

	// Wrapping preserves the original code.
	wrapped := Wrap(New(ErrInvalidInput, "bad team"), "create failed")
	assert.Equal(t, ErrInvalidInput, CodeOf(wrapped))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "nothing"))
}

func TestToHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ToHTTPStatus(New(ErrInvalidInput, "x")))
	assert.Equal(t, http.StatusNotFound, ToHTTPStatus(New(ErrNotFound, "x")))
	assert.Equal(t, http.StatusServiceUnavailable, ToHTTPStatus(New(ErrStorageUnavailable, "x")))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(New(ErrInternal, "x")))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(errors.New("plain")))
}
