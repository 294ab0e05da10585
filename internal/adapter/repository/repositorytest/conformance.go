// Package repositorytest holds the behavioral contract every QuestionPort must satisfy.
// Backend packages call Run from their tests so all implementations are held to the
// same semantics.
package repositorytest

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"

	"question-service/internal/domain"
	"question-service/internal/port/question_port"
	apperrors "question-service/internal/utils/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty repository. It is called once per sub-test.
type Factory func(t *testing.T) question_port.QuestionPort

// Run executes the conformance suite against repositories produced by newRepo.
func Run(t *testing.T, newRepo Factory) {
	t.Helper()

	cases := []struct {
		name string
		fn   func(t *testing.T, repo question_port.QuestionPort)
	}{
		{"AddThenGetRoundTrips", testAddThenGetRoundTrips},
		{"AddAssignsDistinctIDs", testAddAssignsDistinctIDs},
		{"AddHonorsExplicitID", testAddHonorsExplicitID},
		{"AddDuplicateIDFails", testAddDuplicateIDFails},
		{"AddOutOfRangeIDIsParseError", testAddOutOfRangeIDIsParseError},
		{"GetMissingIsNotFound", testGetMissingIsNotFound},
		{"UpdateReplacesContent", testUpdateReplacesContent},
		{"UpdateMissingIsNotFound", testUpdateMissingIsNotFound},
		{"DeleteThenGetIsNotFound", testDeleteThenGetIsNotFound},
		{"SecondDeleteIsNotFound", testSecondDeleteIsNotFound},
		{"DeletedIDsAreNotReused", testDeletedIDsAreNotReused},
		{"ListEmptyFilterReturnsAll", testListEmptyFilterReturnsAll},
		{"ListEmptyRepositoryIsEmptySlice", testListEmptyRepositoryIsEmptySlice},
		{"ListFiltersByTag", testListFiltersByTag},
		{"ListFiltersByTitle", testListFiltersByTitle},
		{"NilTagsStayNil", testNilTagsStayNil},
		{"ConcurrentAdds", testConcurrentAdds},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.fn(t, newRepo(t))
		})
	}
}

func sampleQuestion(n int) domain.Question {
	return domain.Question{
		Title:   fmt.Sprintf("Question %d", n),
		Content: fmt.Sprintf("Content %d", n),
		Tags:    []string{"sample", fmt.Sprintf("tag-%d", n)},
	}
}

func testAddThenGetRoundTrips(t *testing.T, repo question_port.QuestionPort) {
	ctx := context.Background()
	q := sampleQuestion(1)

	id, err := repo.Add(ctx, q)
	require.NoError(t, err)
	require.False(t, id.IsZero())

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)

	q.ID = id
	assert.Equal(t, q, *got)
}

func testAddAssignsDistinctIDs(t *testing.T, repo question_port.QuestionPort) {
	ctx := context.Background()

	first, err := repo.Add(ctx, sampleQuestion(1))
	require.NoError(t, err)
	second, err := repo.Add(ctx, sampleQuestion(2))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func testAddHonorsExplicitID(t *testing.T, repo question_port.QuestionPort) {
	ctx := context.Background()
	q := sampleQuestion(1)
	q.ID = 500

	id, err := repo.Add(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, domain.QuestionID(500), id)

	got, err := repo.Get(ctx, 500)
	require.NoError(t, err)
	assert.Equal(t, q.Title, got.Title)
}

func testAddDuplicateIDFails(t *testing.T, repo question_port.QuestionPort) {
	ctx := context.Background()
	q := sampleQuestion(1)
	q.ID = 42

	_, err := repo.Add(ctx, q)
	require.NoError(t, err)

	duplicate := sampleQuestion(2)
	duplicate.ID = 42
	_, err = repo.Add(ctx, duplicate)
	require.Error(t, err)
	assert.True(t, apperrors.IsInternalError(err))

	got, err := repo.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, q.Title, got.Title, "failed add must not modify the stored question")
}

func testAddOutOfRangeIDIsParseError(t *testing.T, repo question_port.QuestionPort) {
	ctx := context.Background()

	for _, id := range []domain.QuestionID{math.MaxInt32 + 1, 3000000000} {
		q := sampleQuestion(1)
		q.ID = id
		_, err := repo.Add(ctx, q)
		require.Error(t, err, "id %s", id)
		assert.True(t, apperrors.IsParseError(err), "id %s: %v", id, err)
	}

	all, err := repo.List(ctx, domain.QuestionFilter{})
	require.NoError(t, err)
	assert.Empty(t, all, "rejected ids must not be stored")

	next, err := repo.Add(ctx, sampleQuestion(2))
	require.NoError(t, err)
	_, err = next.Int32()
	assert.NoError(t, err, "generated ids must stay addressable")
}

func testGetMissingIsNotFound(t *testing.T, repo question_port.QuestionPort) {
	_, err := repo.Get(context.Background(), 9999)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func testUpdateReplacesContent(t *testing.T, repo question_port.QuestionPort) {
	ctx := context.Background()
	id, err := repo.Add(ctx, sampleQuestion(1))
	require.NoError(t, err)

	updated := domain.Question{ID: id, Title: "Updated", Content: "Updated content", Tags: []string{"new"}}
	require.NoError(t, repo.Update(ctx, updated))

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, updated, *got)

	cleared := domain.Question{ID: id, Title: "Cleared"}
	require.NoError(t, repo.Update(ctx, cleared))

	got, err = repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, cleared, *got)
}

func testUpdateMissingIsNotFound(t *testing.T, repo question_port.QuestionPort) {
	ctx := context.Background()

	err := repo.Update(ctx, domain.Question{ID: 777, Title: "ghost"})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	_, err = repo.Get(ctx, 777)
	assert.True(t, apperrors.IsNotFound(err), "update must not create the question")

	all, err := repo.List(ctx, domain.QuestionFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func testDeleteThenGetIsNotFound(t *testing.T, repo question_port.QuestionPort) {
	ctx := context.Background()
	id, err := repo.Add(ctx, sampleQuestion(1))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, id))

	_, err = repo.Get(ctx, id)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func testSecondDeleteIsNotFound(t *testing.T, repo question_port.QuestionPort) {
	ctx := context.Background()
	id, err := repo.Add(ctx, sampleQuestion(1))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, id))

	err = repo.Delete(ctx, id)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func testDeletedIDsAreNotReused(t *testing.T, repo question_port.QuestionPort) {
	ctx := context.Background()
	first, err := repo.Add(ctx, sampleQuestion(1))
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, first))

	second, err := repo.Add(ctx, sampleQuestion(2))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func testListEmptyFilterReturnsAll(t *testing.T, repo question_port.QuestionPort) {
	ctx := context.Background()

	var ids []domain.QuestionID
	for i := 1; i <= 4; i++ {
		id, err := repo.Add(ctx, sampleQuestion(i))
		require.NoError(t, err)
		ids = append(ids, id)
	}
	require.NoError(t, repo.Delete(ctx, ids[1]))

	all, err := repo.List(ctx, domain.QuestionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	got := make([]domain.QuestionID, 0, len(all))
	for _, q := range all {
		got = append(got, q.ID)
	}
	assert.Equal(t, []domain.QuestionID{ids[0], ids[2], ids[3]}, got)
}

func testListEmptyRepositoryIsEmptySlice(t *testing.T, repo question_port.QuestionPort) {
	all, err := repo.List(context.Background(), domain.QuestionFilter{})
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Len(t, all, 0)
}

func testListFiltersByTag(t *testing.T, repo question_port.QuestionPort) {
	ctx := context.Background()
	goID, err := repo.Add(ctx, domain.Question{Title: "Go generics", Content: "c", Tags: []string{"go"}})
	require.NoError(t, err)
	_, err = repo.Add(ctx, domain.Question{Title: "Rust traits", Content: "c", Tags: []string{"rust"}})
	require.NoError(t, err)
	_, err = repo.Add(ctx, domain.Question{Title: "Untagged", Content: "c"})
	require.NoError(t, err)

	got, err := repo.List(ctx, domain.QuestionFilter{Tag: "go"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, goID, got[0].ID)
}

func testListFiltersByTitle(t *testing.T, repo question_port.QuestionPort) {
	ctx := context.Background()
	_, err := repo.Add(ctx, domain.Question{Title: "Go generics", Content: "c"})
	require.NoError(t, err)
	channelsID, err := repo.Add(ctx, domain.Question{Title: "Go Channels explained", Content: "c"})
	require.NoError(t, err)

	got, err := repo.List(ctx, domain.QuestionFilter{Title: "channels"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, channelsID, got[0].ID)

	none, err := repo.List(ctx, domain.QuestionFilter{Title: "mutex"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testNilTagsStayNil(t *testing.T, repo question_port.QuestionPort) {
	ctx := context.Background()
	id, err := repo.Add(ctx, domain.Question{Title: "T", Content: "C"})
	require.NoError(t, err)

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got.Tags)
}

func testConcurrentAdds(t *testing.T, repo question_port.QuestionPort) {
	ctx := context.Background()
	const workers = 8

	var wg sync.WaitGroup
	ids := make(chan domain.QuestionID, workers)
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id, err := repo.Add(ctx, sampleQuestion(n))
			if err != nil {
				errs <- err
				return
			}
			ids <- id
		}(i)
	}
	wg.Wait()
	close(ids)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	seen := make(map[domain.QuestionID]bool)
	for id := range ids {
		assert.False(t, seen[id], "id %s assigned twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers)

	all, err := repo.List(ctx, domain.QuestionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, workers)
}
