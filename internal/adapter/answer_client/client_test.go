package answer_client

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http/httptest"
	"testing"
	"time"

	connectadapter "question-service/internal/adapter/connect"
	apperrors "question-service/internal/utils/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func startStub(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(connectadapter.CreateAnswerServer(nil, testLogger()))
	t.Cleanup(server.Close)
	return server
}

// closedAddress returns an address nothing listens on.
func closedAddress(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestClient_GetAnswer_Reachable(t *testing.T) {
	server := startStub(t)

	for _, protocol := range []string{ProtocolGRPC, ProtocolConnect} {
		t.Run(protocol, func(t *testing.T) {
			client, err := New(Config{Endpoint: server.URL, Protocol: protocol}, testLogger())
			require.NoError(t, err)
			defer client.Close()

			assert.False(t, client.Connected())

			answer, err := client.GetAnswer(context.Background(), "X")
			require.NoError(t, err)
			assert.Contains(t, answer, "X")
			assert.Equal(t, "Answer to: X", answer)
			assert.True(t, client.Connected())
		})
	}
}

func TestClient_GetAnswer_Unreachable(t *testing.T) {
	client, err := New(Config{
		Endpoint:       "http://" + closedAddress(t),
		ConnectTimeout: 500 * time.Millisecond,
	}, testLogger())
	require.NoError(t, err)

	start := time.Now()
	_, err = client.GetAnswer(context.Background(), "X")
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.True(t, apperrors.IsInternalError(err))
	assert.Less(t, elapsed, 5*time.Second)
	assert.False(t, client.Connected())
}

func TestClient_GetAnswer_ReconnectsAfterFailure(t *testing.T) {
	server := startStub(t)
	client, err := New(Config{Endpoint: server.URL, Protocol: ProtocolConnect}, testLogger())
	require.NoError(t, err)

	_, err = client.GetAnswer(context.Background(), "first")
	require.NoError(t, err)
	require.True(t, client.Connected())

	server.Close()

	_, err = client.GetAnswer(context.Background(), "second")
	require.Error(t, err)
	assert.True(t, apperrors.IsInternalError(err))
	assert.False(t, client.Connected())
}

func TestClient_GetAnswer_RequestTimeout(t *testing.T) {
	server := startStub(t)
	client, err := New(Config{Endpoint: server.URL, RequestTimeout: time.Second}, testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.GetAnswer(ctx, "X")
	require.Error(t, err)
	assert.True(t, apperrors.IsInternalError(err))
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "empty endpoint", cfg: Config{}},
		{name: "missing scheme", cfg: Config{Endpoint: "0.0.0.0:50051"}},
		{name: "unsupported scheme", cfg: Config{Endpoint: "ftp://localhost:50051"}},
		{name: "missing host", cfg: Config{Endpoint: "http://"}},
		{name: "unparsable", cfg: Config{Endpoint: "http://[::1"}},
		{name: "query string", cfg: Config{Endpoint: "http://localhost:50051?token=x"}},
		{name: "empty query", cfg: Config{Endpoint: "http://localhost:50051/?"}},
		{name: "fragment", cfg: Config{Endpoint: "http://localhost:50051#answers"}},
		{name: "unknown protocol", cfg: Config{Endpoint: "http://localhost:50051", Protocol: "soap"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.cfg, testLogger())
			require.Error(t, err)
			assert.Nil(t, client)
			assert.True(t, apperrors.IsInternalError(err))
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	client, err := New(Config{Endpoint: "http://localhost:50051"}, nil)
	require.NoError(t, err)

	assert.Equal(t, ProtocolGRPC, client.protocol)
	assert.Equal(t, defaultRequestTimeout, client.requestTimeout)
	assert.Equal(t, "http://localhost:50051", client.endpoint)
}
