package observability

import (
	"context"
	"net/http"

	"laser-compare/internal/handlers"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RecordError centralises failure handling for instrumented handlers: it
// records err on the span, increments counter, logs with trace context and
// writes body as the JSON error response. body.RequestID is filled in from
// ctx.
func RecordError(ctx context.Context, span trace.Span, logger *zap.Logger, counter metric.Int64Counter, opName string, err error, status int, w http.ResponseWriter, body handlers.ErrorBody) {
	span.RecordError(err)
	span.SetStatus(codes.Error, body.Error)

	counter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", opName),
		attribute.Int("status", status),
	))

	requestID := RequestIDFromContext(ctx)

	log := logger.Warn
	if status >= http.StatusInternalServerError {
		log = logger.Error
	}
	log(body.Error,
		zap.String("operation", opName),
		zap.Int("status", status),
		zap.Error(err),
		zap.String("request_id", requestID),
	)

	body.RequestID = requestID
	handlers.WriteJSON(w, status, body)
}
