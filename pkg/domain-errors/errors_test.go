package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, CodeInternal, "failed to load deal")

	assert.True(t, HasCode(err, CodeInternal))
	assert.False(t, HasCode(err, CodeNotFound))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to load deal: connection reset", err.Error())

	t.Run("finds inner codes through fmt wrapping", func(t *testing.T) {
		inner := New(CodeForbidden, "not the owner")
		outer := Wrap(fmt.Errorf("approve: %w", inner), CodeInternal, "workflow failed")
		assert.True(t, HasCode(outer, CodeForbidden))
		assert.Equal(t, CodeInternal, CodeOf(outer))
	})

	t.Run("plain errors have no code", func(t *testing.T) {
		assert.False(t, HasCode(cause, CodeInternal))
		assert.Equal(t, CodeInternal, CodeOf(cause))
		assert.Equal(t, "internal error", MessageOf(cause))
	})
}

func TestToHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, ToHTTPStatus(CodeNotFound))
	assert.Equal(t, http.StatusForbidden, ToHTTPStatus(CodeForbidden))
	assert.Equal(t, http.StatusConflict, ToHTTPStatus(CodeInvalidState))
	assert.Equal(t, http.StatusUnauthorized, ToHTTPStatus(CodeUnauthenticated))
	assert.Equal(t, http.StatusBadRequest, ToHTTPStatus(CodeInvalidInput))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(Code("other")))
}
