package connect

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"question-service/internal/adapter/connect/answer"
	"question-service/internal/rpc/answerv1"

	"connectrpc.com/connect"
	"connectrpc.com/otelconnect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// SetupConnectHandlers registers all Connect-RPC handlers on the given mux
func SetupConnectHandlers(
	mux *http.ServeMux,
	answerHandler answerv1.GptAnswerServiceHandler,
	logger *slog.Logger,
	opts ...connect.HandlerOption,
) {
	path, handler := answerv1.NewGptAnswerServiceHandler(answerHandler, opts...)
	mux.Handle(path, handler)
	logger.Info("Registered Connect-RPC GptAnswerService", slog.String("path", path))
}

// CreateAnswerServer creates an HTTP handler serving the answer service over
// gRPC, gRPC-Web and Connect. A nil answerHandler uses the placeholder stub.
func CreateAnswerServer(
	answerHandler answerv1.GptAnswerServiceHandler,
	logger *slog.Logger,
	opts ...connect.HandlerOption,
) http.Handler {
	if answerHandler == nil {
		answerHandler = answer.NewHandler(logger)
	}

	mux := http.NewServeMux()

	// Health check for Connect-RPC server
	mux.HandleFunc("/connect/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"healthy","service":"gpt-answer"}`))
	})

	SetupConnectHandlers(mux, answerHandler, logger, opts...)

	// gRPC clients speak HTTP/2 without TLS (h2c)
	return h2c.NewHandler(mux, &http2.Server{})
}

// NewAnswerHTTPServer returns an http.Server for the placeholder answer service with
// RPC tracing enabled. The caller owns ListenAndServe and Shutdown.
func NewAnswerHTTPServer(addr string, logger *slog.Logger) (*http.Server, error) {
	interceptor, err := otelconnect.NewInterceptor()
	if err != nil {
		return nil, fmt.Errorf("failed to create otelconnect interceptor: %w", err)
	}

	return &http.Server{
		Addr:              addr,
		Handler:           CreateAnswerServer(nil, logger, connect.WithInterceptors(interceptor)),
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}
