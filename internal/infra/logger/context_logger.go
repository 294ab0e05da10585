package logger

import (
	"context"
	"log/slog"
)

type ContextKey string

const (
	RequestIDKey  ContextKey = "request_id"
	QuestionIDKey ContextKey = "question_id"
)

// WithRequestID adds the request id to ctx. Records logged with ctx carry it.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// RequestIDFromContext returns the request id stored in ctx, if any.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// WithQuestionID adds the question id being handled to ctx.
func WithQuestionID(ctx context.Context, questionID string) context.Context {
	return context.WithValue(ctx, QuestionIDKey, questionID)
}

// WithContext returns logger annotated with the question id in ctx. The request id
// needs no annotation: TraceContextHandler reads it from the context of each record.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if id, ok := ctx.Value(QuestionIDKey).(string); ok && id != "" {
		return logger.With(string(QuestionIDKey), id)
	}
	return logger
}
