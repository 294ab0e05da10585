// Package answer_client implements answer_port.AnswerPort over the GptAnswerService RPC.
package answer_client

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"question-service/internal/infra/metrics"
	"question-service/internal/port/answer_port"
	"question-service/internal/rpc/answerv1"
	apperrors "question-service/internal/utils/errors"

	"connectrpc.com/connect"
	"connectrpc.com/otelconnect"
	"golang.org/x/net/http2"
)

const (
	ProtocolGRPC    = "grpc"
	ProtocolConnect = "connect"
)

const (
	defaultConnectTimeout = 3 * time.Second
	defaultRequestTimeout = 30 * time.Second
)

// Config describes how to reach the answer service.
type Config struct {
	// Endpoint is an http or https base URL. A path prefix is kept; a query or
	// fragment is rejected.
	Endpoint       string
	Protocol       string
	ConnectTimeout time.Duration
	RequestTimeout time.Duration
}

type state int

const (
	stateDisconnected state = iota
	stateConnected
)

func (s state) String() string {
	if s == stateConnected {
		return "connected"
	}
	return "disconnected"
}

// Client calls the answer service through a pooled HTTP transport. Connections are
// opened lazily on the first call and dropped after any transport failure, so the
// next call dials again.
type Client struct {
	rpc            answerv1.GptAnswerServiceClient
	transport      interface{ CloseIdleConnections() }
	protocol       string
	endpoint       string
	requestTimeout time.Duration
	logger         *slog.Logger

	mu    sync.Mutex
	state state
}

var _ answer_port.AnswerPort = (*Client)(nil)

// New validates cfg and builds a client. No connection is made until GetAnswer.
func New(cfg Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	endpoint, err := parseEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, err
	}

	protocol := cfg.Protocol
	if protocol == "" {
		protocol = ProtocolGRPC
	}
	if protocol != ProtocolGRPC && protocol != ProtocolConnect {
		return nil, apperrors.InternalError("unsupported answer protocol", nil, map[string]interface{}{
			"protocol": protocol,
		})
	}

	connectTimeout := cfg.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = defaultConnectTimeout
	}
	requestTimeout := cfg.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	dialer := &net.Dialer{Timeout: connectTimeout, KeepAlive: 30 * time.Second}

	var httpClient *http.Client
	var transport interface{ CloseIdleConnections() }
	if protocol == ProtocolGRPC && endpoint.Scheme == "http" {
		// gRPC requires HTTP/2; plaintext endpoints use prior-knowledge h2c.
		h2 := &http2.Transport{
			AllowHTTP: true,
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return dialer.DialContext(ctx, network, addr)
			},
		}
		httpClient = &http.Client{Transport: h2}
		transport = h2
	} else {
		t := &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			DialContext:         dialer.DialContext,
			TLSHandshakeTimeout: connectTimeout,
			ForceAttemptHTTP2:   true,
			MaxIdleConns:        16,
			IdleConnTimeout:     90 * time.Second,
		}
		httpClient = &http.Client{Transport: t}
		transport = t
	}

	var opts []connect.ClientOption
	if protocol == ProtocolGRPC {
		opts = append(opts, connect.WithGRPC())
	}
	interceptor, err := otelconnect.NewInterceptor()
	if err != nil {
		return nil, apperrors.InternalError("failed to create rpc tracing interceptor", err, nil)
	}
	opts = append(opts, connect.WithInterceptors(interceptor))

	metrics.SetAnswerClientConnected(false)

	return &Client{
		rpc:            answerv1.NewGptAnswerServiceClient(httpClient, endpoint.String(), opts...),
		transport:      transport,
		protocol:       protocol,
		endpoint:       endpoint.String(),
		requestTimeout: requestTimeout,
		logger:         logger,
		state:          stateDisconnected,
	}, nil
}

// GetAnswer sends question to the answer service. Every failure is an InternalError.
func (c *Client) GetAnswer(ctx context.Context, question string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	start := time.Now()
	resp, err := c.rpc.GetAnswer(ctx, connect.NewRequest(answerv1.NewGetAnswerRequest(question)))
	duration := time.Since(start).Seconds()
	if err != nil {
		metrics.RecordAnswerRequest(c.protocol, "error", duration)
		return "", c.fail(ctx, err)
	}

	metrics.RecordAnswerRequest(c.protocol, "success", duration)
	c.setState(stateConnected)
	return resp.Msg.GetValue(), nil
}

// Close releases pooled connections.
func (c *Client) Close() {
	c.transport.CloseIdleConnections()
	c.setState(stateDisconnected)
}

// Connected reports whether the last call reached the service.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == stateConnected
}

func (c *Client) fail(ctx context.Context, err error) error {
	code := connect.CodeOf(err)

	// Application errors come back over a healthy channel; anything else means the
	// channel is unusable and must be re-dialed.
	var connectErr *connect.Error
	transportFailure := !errors.As(err, &connectErr) || code == connect.CodeUnavailable ||
		code == connect.CodeDeadlineExceeded || code == connect.CodeCanceled || code == connect.CodeUnknown
	if transportFailure {
		c.transport.CloseIdleConnections()
		c.setState(stateDisconnected)
	}

	c.logger.WarnContext(ctx, "answer service call failed",
		slog.String("endpoint", c.endpoint),
		slog.String("protocol", c.protocol),
		slog.String("code", code.String()),
		slog.Bool("reconnect", transportFailure),
		slog.String("error", err.Error()))

	return apperrors.InternalError("answer service call failed", err, map[string]interface{}{
		"endpoint": c.endpoint,
		"code":     code.String(),
	})
}

func (c *Client) setState(next state) {
	c.mu.Lock()
	prev := c.state
	c.state = next
	c.mu.Unlock()

	if prev != next {
		metrics.SetAnswerClientConnected(next == stateConnected)
		c.logger.Debug("answer client state changed",
			slog.String("from", prev.String()),
			slog.String("to", next.String()))
	}
}

func parseEndpoint(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, apperrors.InternalError("malformed answer endpoint", err, map[string]interface{}{
			"endpoint": raw,
		})
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, apperrors.InternalError("malformed answer endpoint", nil, map[string]interface{}{
			"endpoint": raw,
		})
	}
	if u.RawQuery != "" || u.ForceQuery || u.Fragment != "" {
		return nil, apperrors.InternalError("answer endpoint must not carry a query or fragment", nil, map[string]interface{}{
			"endpoint": raw,
		})
	}
	return u, nil
}
