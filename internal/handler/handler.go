package handler

import (
	_ "embed"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"github.com/xeipuuv/gojsonschema"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"retirement-planner/internal/engine"
	"retirement-planner/internal/model"
)

//go:embed request.schema.json
var requestSchema []byte

type Handler struct {
	engine  *engine.Engine
	logger  *zap.Logger
	schema  *gojsonschema.Schema
	tracer  trace.Tracer
	metrics fasthttp.RequestHandler
}

func New(e *engine.Engine, logger *zap.Logger) (*Handler, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(requestSchema))
	if err != nil {
		return nil, fmt.Errorf("load request schema: %w", err)
	}
	return &Handler{
		engine:  e,
		logger:  logger,
		schema:  schema,
		tracer:  otel.Tracer("retirement-planner/handler"),
		metrics: fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler()),
	}, nil
}

// Route dispatches on path. It is the fasthttp.RequestHandler for the server.
func (h *Handler) Route(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/calculate":
		h.HandleCalculation(ctx)
	case "/profiles":
		if !ctx.IsGet() {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed", nil)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, h.engine.Profiles())
	case "/health":
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
	case "/metrics":
		h.metrics(ctx)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found", nil)
	}
}

func (h *Handler) HandleCalculation(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed", nil)
		return
	}

	_, span := h.tracer.Start(ctx, "calculate")
	defer span.End()

	body := ctx.PostBody()
	result, err := h.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		span.SetStatus(codes.Error, "invalid body")
		h.logger.Warn("unparseable calculation request", zap.Error(err))
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}
	if !result.Valid() {
		fieldErrors := make([]model.FieldError, 0, len(result.Errors()))
		for _, re := range result.Errors() {
			fieldErrors = append(fieldErrors, model.FieldError{
				Field:   re.Field(),
				Message: re.Description(),
			})
		}
		span.SetStatus(codes.Error, "schema validation failed")
		h.logger.Warn("calculation request rejected", zap.Int("violations", len(fieldErrors)))
		writeError(ctx, fasthttp.StatusBadRequest, "Request does not match schema", fieldErrors)
		return
	}

	var req model.CalculationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		span.SetStatus(codes.Error, "decode failed")
		h.logger.Warn("calculation request decode failed", zap.Error(err))
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}

	resp := h.engine.Process(&req)
	span.SetAttributes(
		attribute.String("calculation.id", resp.CalculationMetadata.CalculationID),
		attribute.String("calculation.profile", resp.CalculationMetadata.Profile),
		attribute.String("calculation.outcome", resp.CalculationMetadata.CalculationOutcome),
	)

	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		ctx.Error("internal error", fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(b)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string, fields []model.FieldError) {
	writeJSON(ctx, status, model.ErrorResponse{
		Status:  status,
		Message: message,
		Errors:  fields,
	})
}
