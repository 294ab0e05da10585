// Package answerv1 is the Go binding of proto/answer/v1/answer.proto.
//
// GetAnswerRequest and GetAnswerResponse each carry a single string in field 1,
// which is the wire layout of google.protobuf.StringValue. The binding reuses
// wrapperspb.StringValue as the message type, so peers generated from the proto
// file interoperate with this package over gRPC, gRPC-Web and Connect.
package answerv1

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	// GptAnswerServiceName is the fully-qualified name of the service.
	GptAnswerServiceName = "gpt_answer.GptAnswerService"
)

const (
	// GptAnswerServiceGetAnswerProcedure is the fully-qualified name of the GetAnswer RPC.
	GptAnswerServiceGetAnswerProcedure = "/gpt_answer.GptAnswerService/GetAnswer"
)

type (
	// GetAnswerRequest carries the question text in field 1.
	GetAnswerRequest = wrapperspb.StringValue
	// GetAnswerResponse carries the answer text in field 1.
	GetAnswerResponse = wrapperspb.StringValue
)

// NewGetAnswerRequest builds a request for question.
func NewGetAnswerRequest(question string) *GetAnswerRequest {
	return wrapperspb.String(question)
}

// NewGetAnswerResponse builds a response carrying answer.
func NewGetAnswerResponse(answer string) *GetAnswerResponse {
	return wrapperspb.String(answer)
}

// GptAnswerServiceClient is a client for the gpt_answer.GptAnswerService service.
type GptAnswerServiceClient interface {
	GetAnswer(context.Context, *connect.Request[GetAnswerRequest]) (*connect.Response[GetAnswerResponse], error)
}

// NewGptAnswerServiceClient constructs a client for the gpt_answer.GptAnswerService
// service. By default it uses the Connect protocol with the binary Protobuf codec;
// use connect.WithGRPC() for gRPC.
//
// The URL supplied here should be the base URL for the server (for example,
// http://api.acme.com or https://acme.com/grpc).
func NewGptAnswerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GptAnswerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	return &gptAnswerServiceClient{
		getAnswer: connect.NewClient[GetAnswerRequest, GetAnswerResponse](
			httpClient,
			baseURL+GptAnswerServiceGetAnswerProcedure,
			opts...,
		),
	}
}

type gptAnswerServiceClient struct {
	getAnswer *connect.Client[GetAnswerRequest, GetAnswerResponse]
}

// GetAnswer calls gpt_answer.GptAnswerService.GetAnswer.
func (c *gptAnswerServiceClient) GetAnswer(ctx context.Context, req *connect.Request[GetAnswerRequest]) (*connect.Response[GetAnswerResponse], error) {
	return c.getAnswer.CallUnary(ctx, req)
}

// GptAnswerServiceHandler is an implementation of the gpt_answer.GptAnswerService service.
type GptAnswerServiceHandler interface {
	GetAnswer(context.Context, *connect.Request[GetAnswerRequest]) (*connect.Response[GetAnswerResponse], error)
}

// NewGptAnswerServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewGptAnswerServiceHandler(svc GptAnswerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	getAnswerHandler := connect.NewUnaryHandler(
		GptAnswerServiceGetAnswerProcedure,
		svc.GetAnswer,
		opts...,
	)
	return "/" + GptAnswerServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case GptAnswerServiceGetAnswerProcedure:
			getAnswerHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedGptAnswerServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedGptAnswerServiceHandler struct{}

func (UnimplementedGptAnswerServiceHandler) GetAnswer(context.Context, *connect.Request[GetAnswerRequest]) (*connect.Response[GetAnswerResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("gpt_answer.GptAnswerService.GetAnswer is not implemented"))
}
