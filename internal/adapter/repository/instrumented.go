// Package repository holds the repository decorators shared by every backend.
package repository

import (
	"context"
	"log/slog"
	"time"

	"question-service/internal/domain"
	"question-service/internal/infra/metrics"
	"question-service/internal/port/question_port"
	apperrors "question-service/internal/utils/errors"
)

// Instrumented records metrics and logs failures around another QuestionPort.
type Instrumented struct {
	next    question_port.QuestionPort
	backend string
	logger  *slog.Logger
}

var (
	_ question_port.QuestionPort  = (*Instrumented)(nil)
	_ question_port.HealthChecker = (*Instrumented)(nil)
)

// NewInstrumented wraps next. backend labels the metrics, e.g. "postgres".
func NewInstrumented(next question_port.QuestionPort, backend string, logger *slog.Logger) *Instrumented {
	if logger == nil {
		logger = slog.Default()
	}
	return &Instrumented{next: next, backend: backend, logger: logger}
}

func (i *Instrumented) Get(ctx context.Context, id domain.QuestionID) (*domain.Question, error) {
	start := time.Now()
	q, err := i.next.Get(ctx, id)
	i.observe(ctx, "get", start, err)
	return q, err
}

func (i *Instrumented) List(ctx context.Context, filter domain.QuestionFilter) ([]domain.Question, error) {
	start := time.Now()
	qs, err := i.next.List(ctx, filter)
	i.observe(ctx, "list", start, err)
	return qs, err
}

func (i *Instrumented) Add(ctx context.Context, question domain.Question) (domain.QuestionID, error) {
	start := time.Now()
	id, err := i.next.Add(ctx, question)
	i.observe(ctx, "add", start, err)
	return id, err
}

func (i *Instrumented) Update(ctx context.Context, question domain.Question) error {
	start := time.Now()
	err := i.next.Update(ctx, question)
	i.observe(ctx, "update", start, err)
	return err
}

func (i *Instrumented) Delete(ctx context.Context, id domain.QuestionID) error {
	start := time.Now()
	err := i.next.Delete(ctx, id)
	i.observe(ctx, "delete", start, err)
	return err
}

// Ping delegates to the wrapped backend when it can check its connection.
func (i *Instrumented) Ping(ctx context.Context) error {
	if checker, ok := i.next.(question_port.HealthChecker); ok {
		return checker.Ping(ctx)
	}
	return nil
}

func (i *Instrumented) observe(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		appErr := apperrors.Classify(err)
		status = string(appErr.Code)
		// Missing entities are an expected outcome, not a backend fault.
		if appErr.Code != apperrors.ErrCodeNotFound {
			i.logger.ErrorContext(ctx, "repository operation failed",
				"backend", i.backend,
				"operation", operation,
				"error_code", appErr.Code,
				"error", err)
		}
	}
	metrics.RecordRepositoryOperation(i.backend, operation, status, time.Since(start).Seconds())
}
