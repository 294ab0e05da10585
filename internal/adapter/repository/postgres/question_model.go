package postgres

import (
	"time"

	"question-service/internal/domain"
)

// questionRow mirrors a row of the questions table.
type questionRow struct {
	ID        int32
	Title     string
	Content   string
	Tags      []*string
	CreatedOn time.Time
}

func newQuestionRow(q domain.Question, id int32, createdOn time.Time) questionRow {
	return questionRow{
		ID:        id,
		Title:     q.Title,
		Content:   q.Content,
		Tags:      wrapTags(q.Tags),
		CreatedOn: createdOn,
	}
}

func (r questionRow) toDomain() domain.Question {
	return domain.Question{
		ID:      domain.QuestionID(r.ID),
		Title:   r.Title,
		Content: r.Content,
		Tags:    unwrapTags(r.Tags),
	}
}

// wrapTags keeps nil distinct from an empty list so a NULL column round-trips.
func wrapTags(tags []string) []*string {
	if tags == nil {
		return nil
	}
	wrapped := make([]*string, len(tags))
	for i := range tags {
		tag := tags[i]
		wrapped[i] = &tag
	}
	return wrapped
}

// unwrapTags drops NULL array elements.
func unwrapTags(tags []*string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag != nil {
			out = append(out, *tag)
		}
	}
	return out
}
