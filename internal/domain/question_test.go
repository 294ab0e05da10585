package domain

import (
	"net/url"
	"testing"

	apperrors "question-service/internal/utils/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuestionID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    QuestionID
		wantErr bool
	}{
		{name: "simple", input: "42", want: 42},
		{name: "zero", input: "0", want: 0},
		{name: "max int32", input: "2147483647", want: 2147483647},
		{name: "overflow", input: "2147483648", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "letters", input: "abc", wantErr: true},
		{name: "trailing junk", input: "12a", wantErr: true},
		{name: "whitespace", input: " 1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuestionID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsParseError(err))
				assert.False(t, apperrors.IsNotFound(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestQuestionID_Int32(t *testing.T) {
	v, err := QuestionID(7).Int32()
	require.NoError(t, err)
	assert.Equal(t, int32(7), v)

	_, err = QuestionID(1 << 40).Int32()
	require.Error(t, err)
	assert.True(t, apperrors.IsParseError(err))
}

func TestQuestion_Clone(t *testing.T) {
	original := Question{ID: 1, Title: "T", Tags: []string{"go"}}
	clone := original.Clone()
	clone.Tags[0] = "rust"

	assert.Equal(t, "go", original.Tags[0])

	untagged := Question{ID: 2, Title: "T"}.Clone()
	assert.Nil(t, untagged.Tags)
}

func TestNewQuestionFilter(t *testing.T) {
	f := NewQuestionFilter(map[string]string{
		"tag":   " go ",
		"title": "",
		"start": "1",
	})

	assert.Equal(t, "go", f.Tag)
	assert.Equal(t, "", f.Title)
	assert.False(t, f.IsEmpty())

	assert.True(t, NewQuestionFilter(nil).IsEmpty())
	assert.True(t, NewQuestionFilter(map[string]string{"unknown": "x"}).IsEmpty())
}

func TestQuestionFilterFromValues(t *testing.T) {
	values := url.Values{}
	values.Add("title", "Channels")
	values.Add("title", "ignored")
	values.Add("page", "2")

	f := QuestionFilterFromValues(values)

	assert.Equal(t, QuestionFilter{Title: "Channels"}, f)
}

func TestQuestionFilter_Matches(t *testing.T) {
	q := Question{ID: 1, Title: "How do Go channels work?", Content: "c", Tags: []string{"go", "concurrency"}}

	tests := []struct {
		name   string
		filter QuestionFilter
		want   bool
	}{
		{name: "empty filter", filter: QuestionFilter{}, want: true},
		{name: "tag match", filter: QuestionFilter{Tag: "go"}, want: true},
		{name: "tag is case sensitive", filter: QuestionFilter{Tag: "Go"}, want: false},
		{name: "tag mismatch", filter: QuestionFilter{Tag: "rust"}, want: false},
		{name: "title substring ignores case", filter: QuestionFilter{Title: "CHANNELS"}, want: true},
		{name: "title mismatch", filter: QuestionFilter{Title: "mutex"}, want: false},
		{name: "both constraints", filter: QuestionFilter{Tag: "concurrency", Title: "go"}, want: true},
		{name: "one constraint fails", filter: QuestionFilter{Tag: "concurrency", Title: "mutex"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(q))
		})
	}

	assert.False(t, QuestionFilter{Tag: "go"}.Matches(Question{Title: "untagged"}))
}
