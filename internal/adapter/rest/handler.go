package rest

import (
	"log/slog"
	"net/http"

	"question-service/internal/domain"
	"question-service/internal/infra/logger"
	"question-service/internal/port/question_port"
	"question-service/internal/usecase"
	apperrors "question-service/internal/utils/errors"

	"github.com/labstack/echo/v4"
)

// Handler serves the question endpoints.
type Handler struct {
	questions question_port.QuestionPort
	answers   usecase.AnswerQuestionUsecase
	logger    *slog.Logger
}

// NewHandler creates a Handler. questions is the backend chosen at startup.
func NewHandler(
	questions question_port.QuestionPort,
	answers usecase.AnswerQuestionUsecase,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		questions: questions,
		answers:   answers,
		logger:    logger,
	}
}

// ListQuestions handles GET /questions?tag=&title=.
func (h *Handler) ListQuestions(c echo.Context) error {
	filter := domain.QuestionFilterFromValues(c.QueryParams())

	questions, err := h.questions.List(c.Request().Context(), filter)
	if err != nil {
		return handleError(c, h.logger, err, "list_questions")
	}
	return c.JSON(http.StatusOK, questions)
}

// GetQuestion handles GET /questions/:id.
func (h *Handler) GetQuestion(c echo.Context) error {
	id, err := h.pathID(c)
	if err != nil {
		return handleError(c, h.logger, err, "get_question")
	}

	question, err := h.questions.Get(c.Request().Context(), id)
	if err != nil {
		return handleError(c, h.logger, err, "get_question")
	}
	return c.JSON(http.StatusOK, question)
}

// AddQuestion handles POST /questions.
func (h *Handler) AddQuestion(c echo.Context) error {
	question, err := h.bindQuestion(c)
	if err != nil {
		return handleError(c, h.logger, err, "add_question")
	}

	id, err := h.questions.Add(c.Request().Context(), question)
	if err != nil {
		return handleError(c, h.logger, err, "add_question")
	}

	c.Response().Header().Set(echo.HeaderLocation, "/questions/"+id.String())
	return c.String(http.StatusOK, "Question added")
}

// UpdateQuestion handles PUT /questions/:id. The path id wins over any id in the body.
func (h *Handler) UpdateQuestion(c echo.Context) error {
	id, err := h.pathID(c)
	if err != nil {
		return handleError(c, h.logger, err, "update_question")
	}

	question, err := h.bindQuestion(c)
	if err != nil {
		return handleError(c, h.logger, err, "update_question")
	}
	question.ID = id

	if err := h.questions.Update(c.Request().Context(), question); err != nil {
		return handleError(c, h.logger, err, "update_question")
	}
	return c.String(http.StatusOK, "Question updated")
}

// DeleteQuestion handles DELETE /questions/:id.
func (h *Handler) DeleteQuestion(c echo.Context) error {
	id, err := h.pathID(c)
	if err != nil {
		return handleError(c, h.logger, err, "delete_question")
	}

	if err := h.questions.Delete(c.Request().Context(), id); err != nil {
		return handleError(c, h.logger, err, "delete_question")
	}
	return c.String(http.StatusOK, "Question deleted")
}

// GetAnswer handles GET /questions/:id/answer.
func (h *Handler) GetAnswer(c echo.Context) error {
	id, err := h.pathID(c)
	if err != nil {
		return handleError(c, h.logger, err, "get_answer")
	}

	answer, err := h.answers.Execute(c.Request().Context(), id)
	if err != nil {
		return handleError(c, h.logger, err, "get_answer")
	}
	return c.String(http.StatusOK, answer)
}

// Healthz reports process liveness.
func (h *Handler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz pings the storage backend when it supports health checks.
func (h *Handler) Readyz(c echo.Context) error {
	if checker, ok := h.questions.(question_port.HealthChecker); ok {
		if err := checker.Ping(c.Request().Context()); err != nil {
			h.logger.WarnContext(c.Request().Context(), "readiness check failed", "error", err)
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}

func (h *Handler) pathID(c echo.Context) (domain.QuestionID, error) {
	raw := c.Param("id")
	id, err := domain.ParseQuestionID(raw)
	if err != nil {
		return 0, err
	}
	c.SetRequest(c.Request().WithContext(logger.WithQuestionID(c.Request().Context(), raw)))
	return id, nil
}

func (h *Handler) bindQuestion(c echo.Context) (domain.Question, error) {
	var question domain.Question
	if err := (&echo.DefaultBinder{}).BindBody(c, &question); err != nil {
		return domain.Question{}, apperrors.ParseError("invalid request body", err, nil)
	}
	if err := c.Validate(&question); err != nil {
		return domain.Question{}, err
	}
	return question, nil
}
