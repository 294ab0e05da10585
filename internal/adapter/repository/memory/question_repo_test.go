package memory

import (
	"context"
	"math"
	"testing"

	"question-service/internal/adapter/repository/repositorytest"
	"question-service/internal/domain"
	"question-service/internal/port/question_port"
	apperrors "question-service/internal/utils/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionRepository_Conformance(t *testing.T) {
	repositorytest.Run(t, func(t *testing.T) question_port.QuestionPort {
		return NewQuestionRepository()
	})
}

func TestNewQuestionRepository_Seed(t *testing.T) {
	ctx := context.Background()
	repo := NewQuestionRepository(
		domain.Question{ID: 10, Title: "seeded", Content: "c"},
		domain.Question{Title: "unnumbered", Content: "c"},
	)

	all, err := repo.List(ctx, domain.QuestionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, domain.QuestionID(10), all[0].ID)
	assert.Equal(t, domain.QuestionID(11), all[1].ID)

	id, err := repo.Add(ctx, domain.Question{Title: "next", Content: "c"})
	require.NoError(t, err)
	assert.Equal(t, domain.QuestionID(12), id)
}

func TestQuestionRepository_ExplicitIDAdvancesCounter(t *testing.T) {
	ctx := context.Background()
	repo := NewQuestionRepository()

	_, err := repo.Add(ctx, domain.Question{ID: 5, Title: "explicit"})
	require.NoError(t, err)

	id, err := repo.Add(ctx, domain.Question{Title: "generated"})
	require.NoError(t, err)
	assert.Equal(t, domain.QuestionID(6), id)
}

func TestQuestionRepository_IDSpaceExhausted(t *testing.T) {
	ctx := context.Background()
	repo := NewQuestionRepository(domain.Question{ID: math.MaxInt32, Title: "last"})

	_, err := repo.Add(ctx, domain.Question{Title: "overflow"})
	require.Error(t, err)
	assert.True(t, apperrors.IsInternalError(err))

	all, err := repo.List(ctx, domain.QuestionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestQuestionRepository_ReturnedValuesAreCopies(t *testing.T) {
	ctx := context.Background()
	tags := []string{"go"}
	repo := NewQuestionRepository()

	id, err := repo.Add(ctx, domain.Question{Title: "T", Tags: tags})
	require.NoError(t, err)
	tags[0] = "mutated-input"

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, got.Tags)

	got.Tags[0] = "mutated-output"
	again, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, again.Tags)
}
