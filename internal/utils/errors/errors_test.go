package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without cause",
			err:  NotFoundError("question not found", nil),
			want: "NOT_FOUND: question not found",
		},
		{
			name: "with cause",
			err:  InternalError("failed to insert question", errors.New("conn reset"), nil),
			want: "INTERNAL_ERROR: failed to insert question (caused by: conn reset)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestSentinelMatching(t *testing.T) {
	notFound := NotFoundError("question not found", map[string]interface{}{"id": 7})
	wrapped := fmt.Errorf("get question: %w", notFound)

	assert.True(t, errors.Is(notFound, ErrNotFound))
	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, errors.Is(notFound, ErrInternal))
	assert.False(t, IsInternalError(notFound))

	cause := errors.New("dial tcp: refused")
	internal := InternalError("answer service unavailable", cause, nil)
	assert.True(t, IsInternalError(internal))
	assert.True(t, errors.Is(internal, cause))

	assert.True(t, IsValidationError(ParseError("bad id", nil, nil)))
	assert.True(t, IsValidationError(MissingParametersError("title is required", nil)))
	assert.False(t, IsValidationError(internal))
	assert.True(t, IsParseError(ParseError("bad id", nil, nil)))
}

func TestClassify(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, Classify(nil))
	})

	t.Run("already classified", func(t *testing.T) {
		original := NotFoundError("question not found", nil)
		got := Classify(fmt.Errorf("wrap: %w", original))
		assert.Same(t, original, got)
	})

	t.Run("context deadline", func(t *testing.T) {
		got := Classify(context.DeadlineExceeded)
		require.NotNil(t, got)
		assert.Equal(t, ErrCodeIO, got.Code)
	})

	t.Run("unclassified", func(t *testing.T) {
		got := Classify(errors.New("boom"))
		require.NotNil(t, got)
		assert.Equal(t, ErrCodeUnknown, got.Code)
		assert.True(t, errors.Is(got, ErrUnknown))
	})
}

func TestHTTPStatusCode(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{NotFoundError("x", nil), http.StatusNotFound},
		{ParseError("x", nil, nil), http.StatusBadRequest},
		{MissingParametersError("x", nil), http.StatusBadRequest},
		{IOError("x", nil, nil), http.StatusInternalServerError},
		{InternalError("x", nil, nil), http.StatusInternalServerError},
		{UnknownError("x", nil, nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatusCode())
		})
	}
}

func TestToHTTPResponse_HidesCause(t *testing.T) {
	err := InternalError("failed to list questions", errors.New("password authentication failed"), map[string]interface{}{"backend": "postgres"})

	resp := err.ToHTTPResponse()

	assert.Equal(t, "error", resp.Error)
	assert.Equal(t, "INTERNAL_ERROR", resp.Code)
	assert.Equal(t, "failed to list questions", resp.Message)
	assert.Equal(t, "postgres", resp.Context["backend"])
}
