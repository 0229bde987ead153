package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndWrap(t *testing.T) {
	t.Run("new carries code and message", func(t *testing.T) {
		err := New(CodeNotFound, "member does not exist or no permission")
		assert.True(t, HasCode(err, CodeNotFound))
		assert.Equal(t, "member does not exist or no permission", Message(err))
		assert.Equal(t, CodeNotFound, GetCode(err))
	})

	t.Run("wrap preserves the cause for errors.Is", func(t *testing.T) {
		cause := errors.New("row not found")
		err := Wrap(cause, CodeNotFound, "member not found")
		require.Error(t, err)
		assert.True(t, errors.Is(err, cause))
		assert.True(t, HasCode(err, CodeNotFound))
	})

	t.Run("wrapping nil yields nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, CodeInternal, "unused"))
	})

	t.Run("code is visible through further fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", New(CodeForbidden, "forbidden"))
		assert.True(t, HasCode(err, CodeForbidden))
		assert.False(t, HasCode(err, CodeNotFound))
		assert.Equal(t, "forbidden", Message(err))
	})
}

func TestGetCodeDefaults(t *testing.T) {
	plain := errors.New("boom")
	assert.Equal(t, CodeInternal, GetCode(plain))
	assert.Equal(t, "internal error", Message(plain))
	assert.False(t, HasCode(plain, CodeInternal))
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeUnauthorized: http.StatusUnauthorized,
		CodeForbidden:    http.StatusForbidden,
		CodeNotFound:     http.StatusNotFound,
		CodeInvalidInput: http.StatusUnprocessableEntity,
		CodeBadRequest:   http.StatusBadRequest,
		CodeConflict:     http.StatusConflict,
		CodeInternal:     http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, ToHTTPStatus(code), "code %s", code)
	}
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(Code("mystery")))
}
