package question_port

//go:generate mockgen -source=question_port.go -destination=../../mocks/mock_question_port.go -package=mocks

import (
	"context"

	"question-service/internal/domain"
)

// QuestionPort is the storage boundary for questions. Every implementation returns
// errors from question-service/internal/utils/errors only:
//   - Get, Update and Delete fail with NotFound when the id does not exist.
//   - Add assigns an id when the question has none and returns it.
//   - List with an empty filter returns every stored question.
type QuestionPort interface {
	Get(ctx context.Context, id domain.QuestionID) (*domain.Question, error)
	List(ctx context.Context, filter domain.QuestionFilter) ([]domain.Question, error)
	Add(ctx context.Context, question domain.Question) (domain.QuestionID, error)
	Update(ctx context.Context, question domain.Question) error
	Delete(ctx context.Context, id domain.QuestionID) error
}

// HealthChecker is implemented by backends that can verify their connection.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
