package answer

import (
	"context"
	"log/slog"

	"question-service/internal/rpc/answerv1"

	"connectrpc.com/connect"
)

// Handler implements answerv1.GptAnswerServiceHandler with a deterministic
// placeholder answer. Callers must only rely on the string-in, string-out shape.
type Handler struct {
	logger *slog.Logger
}

// Ensure Handler implements the interface
var _ answerv1.GptAnswerServiceHandler = (*Handler)(nil)

// NewHandler creates a new GptAnswerService handler
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// Answer returns the placeholder answer for question.
func Answer(question string) string {
	return "Answer to: " + question
}

// GetAnswer implements the unary answer RPC
func (h *Handler) GetAnswer(
	ctx context.Context,
	req *connect.Request[answerv1.GetAnswerRequest],
) (*connect.Response[answerv1.GetAnswerResponse], error) {
	question := req.Msg.GetValue()

	h.logger.InfoContext(ctx, "answer requested",
		slog.String("procedure", req.Spec().Procedure),
		slog.Int("question_length", len(question)))

	return connect.NewResponse(answerv1.NewGetAnswerResponse(Answer(question))), nil
}
