package lambdatransport

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/awmpietro/algoviz/internal/app"
	"github.com/awmpietro/algoviz/internal/logging"
	"github.com/awmpietro/algoviz/internal/transport/gendto"
)

type Handler struct {
	svc    app.GenerateService
	logger *slog.Logger
}

func NewHandler(svc app.GenerateService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{svc: svc, logger: logging.Component(logger, "lambda")}
}

// Handle routes an API Gateway v2 event by method and path.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	method := req.RequestContext.HTTP.Method
	path := strings.TrimSuffix(req.RawPath, "/")

	switch {
	case path == "/algorithms" && method == http.MethodGet:
		return jsonResp(http.StatusOK, gendto.FromAlgorithms(h.svc.Algorithms())), nil
	case path == "/generate/batch" && method == http.MethodPost:
		return h.GenerateBatch(ctx, req)
	case path == "/generate" && method == http.MethodPost:
		return h.Generate(ctx, req)
	case path == "/algorithms" || path == "/generate" || path == "/generate/batch":
		return jsonResp(http.StatusMethodNotAllowed, gendto.ErrorBody{Error: "method not allowed"}), nil
	default:
		return jsonResp(http.StatusNotFound, gendto.ErrorBody{Error: "not found", Details: req.RawPath}), nil
	}
}

// Generate assumes API Gateway already routed POST /generate.
func (h *Handler) Generate(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	var in gendto.GenerateRequest
	if resp, ok := decode(req, &in); !ok {
		return resp, nil
	}

	res, err := h.svc.Generate(ctx, in.App())
	if err != nil {
		return h.fail(err), nil
	}
	return jsonResp(http.StatusOK, gendto.FromResult(*res)), nil
}

func (h *Handler) GenerateBatch(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	var in gendto.BatchRequest
	if resp, ok := decode(req, &in); !ok {
		return resp, nil
	}

	res, err := h.svc.GenerateBatch(ctx, in.App())
	if err != nil {
		return h.fail(err), nil
	}
	return jsonResp(http.StatusOK, gendto.FromResults(res)), nil
}

func (h *Handler) fail(err error) events.APIGatewayV2HTTPResponse {
	status, body := gendto.Error(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("generate_failed", "error", err)
	}
	return jsonResp(status, body)
}

func decode(req events.APIGatewayV2HTTPRequest, dst any) (events.APIGatewayV2HTTPResponse, bool) {
	body, err := readBody(req)
	if err != nil {
		return jsonResp(http.StatusBadRequest, gendto.ErrorBody{Error: "invalid body", Details: err.Error()}), false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return jsonResp(http.StatusBadRequest, gendto.ErrorBody{Error: "invalid json", Details: err.Error()}), false
	}
	return events.APIGatewayV2HTTPResponse{}, true
}

func readBody(req events.APIGatewayV2HTTPRequest) ([]byte, error) {
	if req.IsBase64Encoded {
		return base64.StdEncoding.DecodeString(req.Body)
	}
	return []byte(req.Body), nil
}

func jsonResp(status int, body any) events.APIGatewayV2HTTPResponse {
	b, _ := json.Marshal(body)
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    map[string]string{"content-type": "application/json"},
		Body:       string(b),
	}
}
