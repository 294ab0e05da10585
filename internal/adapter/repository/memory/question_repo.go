// Package memory provides a process-local QuestionPort. Data does not survive a restart,
// which makes it suitable for development and tests.
package memory

import (
	"context"
	"math"
	"sync"

	"question-service/internal/domain"
	"question-service/internal/port/question_port"
	apperrors "question-service/internal/utils/errors"
)

type questionRepository struct {
	mu        sync.RWMutex
	questions map[domain.QuestionID]domain.Question
	order     []domain.QuestionID
	lastID    domain.QuestionID
}

var _ question_port.QuestionPort = (*questionRepository)(nil)

// NewQuestionRepository creates an in-memory repository pre-populated with seed.
// Generated ids start above the highest seeded id.
func NewQuestionRepository(seed ...domain.Question) question_port.QuestionPort {
	r := &questionRepository{
		questions: make(map[domain.QuestionID]domain.Question, len(seed)),
	}
	for _, q := range seed {
		if q.ID.IsZero() {
			r.lastID++
			q.ID = r.lastID
		}
		r.insert(q)
	}
	return r
}

func (r *questionRepository) Get(_ context.Context, id domain.QuestionID) (*domain.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, ok := r.questions[id]
	if !ok {
		return nil, notFound(id)
	}
	clone := q.Clone()
	return &clone, nil
}

func (r *questionRepository) List(_ context.Context, filter domain.QuestionFilter) ([]domain.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Question, 0, len(r.order))
	for _, id := range r.order {
		q := r.questions[id]
		if filter.Matches(q) {
			result = append(result, q.Clone())
		}
	}
	return result, nil
}

func (r *questionRepository) Add(_ context.Context, question domain.Question) (domain.QuestionID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if question.ID.IsZero() {
		if r.lastID >= math.MaxInt32 {
			return 0, apperrors.InternalError("question id space exhausted", nil, map[string]interface{}{
				"last_id": r.lastID.String(),
			})
		}
		question.ID = r.lastID + 1
	} else {
		if _, err := question.ID.Int32(); err != nil {
			return 0, err
		}
		if _, exists := r.questions[question.ID]; exists {
			return 0, apperrors.InternalError("question already exists", nil, map[string]interface{}{
				"id": question.ID.String(),
			})
		}
	}

	r.insert(question.Clone())
	return question.ID, nil
}

func (r *questionRepository) Update(_ context.Context, question domain.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.questions[question.ID]; !exists {
		return notFound(question.ID)
	}
	r.questions[question.ID] = question.Clone()
	return nil
}

func (r *questionRepository) Delete(_ context.Context, id domain.QuestionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.questions[id]; !exists {
		return notFound(id)
	}
	delete(r.questions, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// insert stores q and advances the id counter past it. Callers hold the write lock.
func (r *questionRepository) insert(q domain.Question) {
	if _, exists := r.questions[q.ID]; !exists {
		r.order = append(r.order, q.ID)
	}
	r.questions[q.ID] = q
	if q.ID > r.lastID {
		r.lastID = q.ID
	}
}

func notFound(id domain.QuestionID) error {
	return apperrors.NotFoundError("question not found", map[string]interface{}{
		"id": id.String(),
	})
}
