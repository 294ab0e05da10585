package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"question-service/internal/adapter/answer_client"
	connectadapter "question-service/internal/adapter/connect"
	"question-service/internal/adapter/repository/memory"
	"question-service/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionLifecycle_EndToEnd(t *testing.T) {
	stub := httptest.NewServer(connectadapter.CreateAnswerServer(nil, testLogger()))
	t.Cleanup(stub.Close)

	answers, err := answer_client.New(answer_client.Config{Endpoint: stub.URL}, testLogger())
	require.NoError(t, err)
	t.Cleanup(answers.Close)

	questions := memory.NewQuestionRepository()
	handler := NewHandler(questions, usecase.NewAnswerQuestionUsecase(questions, answers, testLogger()), testLogger())
	e := NewEcho("question-service-e2e", handler, testLogger())

	rec := serve(e, http.MethodPost, "/questions", `{"title":"T","content":"C"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	location := rec.Header().Get(echo.HeaderLocation)
	require.NotEmpty(t, location)

	rec = serve(e, http.MethodGet, location, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "T", got["title"])
	assert.Equal(t, "C", got["content"])
	assert.Contains(t, got, "tags")
	assert.Nil(t, got["tags"])
	assert.NotZero(t, got["id"])

	rec = serve(e, http.MethodGet, location+"/answer", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Answer to: C", rec.Body.String())

	rec = serve(e, http.MethodGet, "/questions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)

	rec = serve(e, http.MethodDelete, location, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(e, http.MethodGet, location, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(e, http.MethodGet, location+"/answer", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnswer_UnreachableServiceIsInternalError(t *testing.T) {
	stub := httptest.NewServer(connectadapter.CreateAnswerServer(nil, testLogger()))
	endpoint := stub.URL
	stub.Close()

	answers, err := answer_client.New(answer_client.Config{Endpoint: endpoint}, testLogger())
	require.NoError(t, err)

	questions := memory.NewQuestionRepository()
	handler := NewHandler(questions, usecase.NewAnswerQuestionUsecase(questions, answers, testLogger()), testLogger())
	e := NewEcho("question-service-e2e", handler, testLogger())

	rec := serve(e, http.MethodPost, "/questions", `{"title":"T","content":"C"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(e, http.MethodGet, rec.Header().Get(echo.HeaderLocation)+"/answer", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", decodeError(t, rec).Code)
}

func TestAddQuestion_OutOfRangeIDIsRejected(t *testing.T) {
	questions := memory.NewQuestionRepository()
	handler := NewHandler(questions, &stubAnswerUsecase{}, testLogger())
	e := NewEcho("question-service-e2e", handler, testLogger())

	rec := serve(e, http.MethodPost, "/questions", `{"id":3000000000,"title":"Big","content":"C"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "PARSE_ERROR", decodeError(t, rec).Code)
	assert.Empty(t, rec.Header().Get(echo.HeaderLocation))

	rec = serve(e, http.MethodPost, "/questions", `{"title":"Next","content":"C"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	location := rec.Header().Get(echo.HeaderLocation)
	assert.Equal(t, "/questions/1", location)

	rec = serve(e, http.MethodGet, location, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
