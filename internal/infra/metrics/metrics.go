// Package metrics provides Prometheus metrics for question-service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RepositoryOperationsTotal counts repository calls by outcome.
	RepositoryOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "question_service",
			Name:      "repository_operations_total",
			Help:      "Total number of repository operations",
		},
		[]string{"backend", "operation", "status"},
	)

	// RepositoryOperationDuration measures repository call latency.
	RepositoryOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "question_service",
			Name:      "repository_operation_duration_seconds",
			Help:      "Duration of repository operations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"backend", "operation"},
	)

	// AnswerRequestsTotal counts answer RPCs by outcome.
	AnswerRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "question_service",
			Name:      "answer_requests_total",
			Help:      "Total number of answer service calls",
		},
		[]string{"protocol", "status"},
	)

	// AnswerRequestDuration measures answer RPC latency.
	AnswerRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "question_service",
			Name:      "answer_request_duration_seconds",
			Help:      "Duration of answer service calls in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"protocol"},
	)

	// AnswerClientConnected tracks the answer client channel (1 = connected, 0 = disconnected).
	AnswerClientConnected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "question_service",
			Name:      "answer_client_connected",
			Help:      "Answer client connection state (1 = connected, 0 = disconnected)",
		},
	)

	// HTTPRequestsTotal counts HTTP requests by route and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "question_service",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "code"},
	)
)

// RecordRepositoryOperation records one repository call.
func RecordRepositoryOperation(backend, operation, status string, duration float64) {
	RepositoryOperationsTotal.WithLabelValues(backend, operation, status).Inc()
	RepositoryOperationDuration.WithLabelValues(backend, operation).Observe(duration)
}

// RecordAnswerRequest records one answer RPC.
func RecordAnswerRequest(protocol, status string, duration float64) {
	AnswerRequestsTotal.WithLabelValues(protocol, status).Inc()
	AnswerRequestDuration.WithLabelValues(protocol).Observe(duration)
}

// SetAnswerClientConnected sets the answer client state.
func SetAnswerClientConnected(connected bool) {
	if connected {
		AnswerClientConnected.Set(1)
		return
	}
	AnswerClientConnected.Set(0)
}

// RecordHTTPRequest records one served HTTP request.
func RecordHTTPRequest(method, route, code string) {
	HTTPRequestsTotal.WithLabelValues(method, route, code).Inc()
}
