package answer_port

//go:generate mockgen -source=answer_port.go -destination=../../mocks/mock_answer_port.go -package=mocks

import "context"

// AnswerPort produces answer text for a question. Implementations wrap remote model
// services and report failures as InternalError.
type AnswerPort interface {
	GetAnswer(ctx context.Context, question string) (string, error)
}
