package rest

import (
	"log/slog"
	"net/http"

	"question-service/internal/infra/logger"
	apperrors "question-service/internal/utils/errors"

	"github.com/labstack/echo/v4"
)

// handleError renders err as a JSON error body with the status its code maps to.
func handleError(c echo.Context, log *slog.Logger, err error, operation string) error {
	appErr := apperrors.Classify(err)
	ctx := c.Request().Context()

	status := appErr.HTTPStatusCode()
	if status >= 500 {
		apperrors.LogError(logger.WithContext(ctx, log), appErr, operation)
	}

	return c.JSON(status, appErr.ToHTTPResponse())
}

// errorHandler renders errors that never reached a handler, such as unknown routes
// and panics caught by Recover.
func errorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if he, ok := err.(*echo.HTTPError); ok {
			message, _ := he.Message.(string)
			if message == "" {
				message = "request failed"
			}
			_ = c.JSON(he.Code, apperrors.HTTPErrorResponse{
				Error:   "error",
				Code:    string(codeForStatus(he.Code)),
				Message: message,
			})
			return
		}

		_ = handleError(c, log, err, "http")
	}
}

func codeForStatus(status int) apperrors.ErrorCode {
	switch {
	case status == http.StatusNotFound:
		return apperrors.ErrCodeNotFound
	case status == http.StatusBadRequest:
		return apperrors.ErrCodeParse
	case status >= http.StatusInternalServerError:
		return apperrors.ErrCodeInternal
	default:
		return apperrors.ErrCodeUnknown
	}
}
