package connect_test

import (
	"context"
	"crypto/tls"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	connectadapter "question-service/internal/adapter/connect"
	"question-service/internal/rpc/answerv1"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/http2"
)

func newTestServer(t *testing.T, handler answerv1.GptAnswerServiceHandler) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	server := httptest.NewServer(connectadapter.CreateAnswerServer(handler, logger))
	t.Cleanup(server.Close)
	return server
}

func h2cClient() *http.Client {
	return &http.Client{
		Transport: &http2.Transport{
			AllowHTTP: true,
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				var d net.Dialer
				return d.DialContext(ctx, network, addr)
			},
		},
	}
}

func TestCreateAnswerServer_Health(t *testing.T) {
	server := newTestServer(t, nil)

	resp, err := http.Get(server.URL + "/connect/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"healthy"`)
}

func TestCreateAnswerServer_Protocols(t *testing.T) {
	server := newTestServer(t, nil)

	tests := []struct {
		name   string
		client *http.Client
		opts   []connect.ClientOption
	}{
		{name: "connect", client: server.Client()},
		{name: "grpc over h2c", client: h2cClient(), opts: []connect.ClientOption{connect.WithGRPC()}},
		{name: "grpc-web", client: server.Client(), opts: []connect.ClientOption{connect.WithGRPCWeb()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := answerv1.NewGptAnswerServiceClient(tt.client, server.URL, tt.opts...)

			resp, err := client.GetAnswer(context.Background(), connect.NewRequest(answerv1.NewGetAnswerRequest("X")))
			require.NoError(t, err)
			assert.Equal(t, "Answer to: X", resp.Msg.GetValue())
		})
	}
}

func TestCreateAnswerServer_CustomHandler(t *testing.T) {
	server := newTestServer(t, answerv1.UnimplementedGptAnswerServiceHandler{})
	client := answerv1.NewGptAnswerServiceClient(server.Client(), server.URL)

	_, err := client.GetAnswer(context.Background(), connect.NewRequest(answerv1.NewGetAnswerRequest("X")))
	require.Error(t, err)
	assert.Equal(t, connect.CodeUnimplemented, connect.CodeOf(err))
}

func TestCreateAnswerServer_UnknownProcedure(t *testing.T) {
	server := newTestServer(t, nil)

	resp, err := http.Post(server.URL+"/gpt_answer.GptAnswerService/Missing", "application/proto", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNewAnswerHTTPServer(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	srv, err := connectadapter.NewAnswerHTTPServer("127.0.0.1:0", logger)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:0", srv.Addr)

	server := httptest.NewServer(srv.Handler)
	t.Cleanup(server.Close)

	client := answerv1.NewGptAnswerServiceClient(server.Client(), server.URL)
	resp, err := client.GetAnswer(context.Background(), connect.NewRequest(answerv1.NewGetAnswerRequest("why?")))
	require.NoError(t, err)
	assert.Equal(t, "Answer to: why?", resp.Msg.GetValue())
}
