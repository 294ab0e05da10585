package rest

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

// NewEcho creates an echo instance with the service's error handling and validation.
func NewEcho(serviceName string, handler *Handler, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = errorHandler(logger)

	RegisterRoutes(e, serviceName, handler, logger)
	return e
}

// RegisterRoutes installs middleware and routes on e.
func RegisterRoutes(e *echo.Echo, serviceName string, handler *Handler, logger *slog.Logger) {
	// 1. Tracing first so every log line below carries the span
	e.Use(otelecho.Middleware(serviceName))

	// 2. Request ID middleware
	e.Use(RequestIDMiddleware())

	// 3. Logging middleware sees the final status, including recovered panics
	e.Use(LoggingMiddleware(logger))

	// 4. Recovery middleware
	e.Use(middleware.Recover())

	e.GET("/healthz", handler.Healthz)
	e.GET("/readyz", handler.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	questions := e.Group("/questions")
	questions.GET("", handler.ListQuestions)
	questions.POST("", handler.AddQuestion)
	questions.GET("/:id", handler.GetQuestion)
	questions.PUT("/:id", handler.UpdateQuestion)
	questions.DELETE("/:id", handler.DeleteQuestion)
	questions.GET("/:id/answer", handler.GetAnswer)
}
