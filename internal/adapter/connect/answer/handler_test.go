package answer_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"question-service/internal/adapter/connect/answer"
	"question-service/internal/rpc/answerv1"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_GetAnswer(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	handler := answer.NewHandler(logger)

	tests := []struct {
		name     string
		question string
		want     string
	}{
		{name: "plain question", question: "What is Go?", want: "Answer to: What is Go?"},
		{name: "empty question", question: "", want: "Answer to: "},
		{name: "unicode", question: "Goとは?", want: "Answer to: Goとは?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := connect.NewRequest(answerv1.NewGetAnswerRequest(tt.question))

			resp, err := handler.GetAnswer(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Msg.GetValue())
			assert.Contains(t, resp.Msg.GetValue(), tt.question)
		})
	}
}

func TestNewHandler(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	handler := answer.NewHandler(logger)
	assert.NotNil(t, handler)
}
