package domain

import (
	"net/url"
	"strings"
)

// Query-string keys understood by NewQuestionFilter.
const (
	FilterKeyTag   = "tag"
	FilterKeyTitle = "title"
)

// QuestionFilter narrows a question listing. Zero values mean the constraint is not
// applied, so the zero QuestionFilter matches every question.
type QuestionFilter struct {
	// Tag must equal one of the question's tags.
	Tag string
	// Title is a case-insensitive substring of the question title.
	Title string
}

// NewQuestionFilter builds a filter from free-form query parameters. Unrecognized keys
// are ignored and blank values are treated as absent.
func NewQuestionFilter(query map[string]string) QuestionFilter {
	return QuestionFilter{
		Tag:   strings.TrimSpace(query[FilterKeyTag]),
		Title: strings.TrimSpace(query[FilterKeyTitle]),
	}
}

// QuestionFilterFromValues builds a filter from url.Values, using the first value of
// each key.
func QuestionFilterFromValues(values url.Values) QuestionFilter {
	query := make(map[string]string, len(values))
	for key := range values {
		query[key] = values.Get(key)
	}
	return NewQuestionFilter(query)
}

// IsEmpty reports whether the filter matches every question.
func (f QuestionFilter) IsEmpty() bool {
	return f.Tag == "" && f.Title == ""
}

// Matches reports whether q satisfies every constraint of the filter.
func (f QuestionFilter) Matches(q Question) bool {
	if f.Tag != "" && !q.HasTag(f.Tag) {
		return false
	}
	if f.Title != "" && !strings.Contains(strings.ToLower(q.Title), strings.ToLower(f.Title)) {
		return false
	}
	return true
}
