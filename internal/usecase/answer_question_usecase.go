package usecase

import (
	"context"
	"log/slog"

	"question-service/internal/domain"
	"question-service/internal/port/answer_port"
	"question-service/internal/port/question_port"
)

// AnswerQuestionUsecase defines the interface for answering a stored question.
type AnswerQuestionUsecase interface {
	Execute(ctx context.Context, id domain.QuestionID) (string, error)
}

type answerQuestionUsecase struct {
	questions question_port.QuestionPort
	answers   answer_port.AnswerPort
	logger    *slog.Logger
}

// NewAnswerQuestionUsecase creates a new AnswerQuestionUsecase.
func NewAnswerQuestionUsecase(
	questions question_port.QuestionPort,
	answers answer_port.AnswerPort,
	logger *slog.Logger,
) AnswerQuestionUsecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &answerQuestionUsecase{
		questions: questions,
		answers:   answers,
		logger:    logger,
	}
}

// Execute loads the question and forwards its content to the answer service.
// Repository and answer errors are returned unchanged.
func (u *answerQuestionUsecase) Execute(ctx context.Context, id domain.QuestionID) (string, error) {
	question, err := u.questions.Get(ctx, id)
	if err != nil {
		return "", err
	}

	answer, err := u.answers.GetAnswer(ctx, question.Content)
	if err != nil {
		return "", err
	}

	u.logger.InfoContext(ctx, "question answered",
		slog.String("question_id", id.String()),
		slog.Int("answer_length", len(answer)))
	return answer, nil
}
