package domain

import (
	"math"
	"strconv"

	apperrors "question-service/internal/utils/errors"
)

// QuestionID identifies a persisted question. The zero value means "not assigned yet".
type QuestionID int64

// ParseQuestionID parses the textual form of a question id. The value must be a base-10
// integer that fits the 32-bit storage column.
func ParseQuestionID(s string) (QuestionID, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, apperrors.ParseError("invalid question id", err, map[string]interface{}{
			"id": s,
		})
	}
	return QuestionID(n), nil
}

// String returns the base-10 form of the id.
func (id QuestionID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// IsZero reports whether the id has not been assigned.
func (id QuestionID) IsZero() bool {
	return id == 0
}

// Int32 converts the id to its storage form.
func (id QuestionID) Int32() (int32, error) {
	if int64(id) > math.MaxInt32 || int64(id) < math.MinInt32 {
		return 0, apperrors.ParseError("question id out of range", nil, map[string]interface{}{
			"id": int64(id),
		})
	}
	return int32(id), nil
}

// Question is a user-submitted question.
type Question struct {
	ID      QuestionID `json:"id"`
	Title   string     `json:"title" validate:"required"`
	Content string     `json:"content"`
	Tags    []string   `json:"tags"`
}

// Clone returns a copy that shares no memory with q.
func (q Question) Clone() Question {
	if q.Tags != nil {
		tags := make([]string, len(q.Tags))
		copy(tags, q.Tags)
		q.Tags = tags
	}
	return q
}

// HasTag reports whether tag is one of the question's tags.
func (q Question) HasTag(tag string) bool {
	for _, t := range q.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
