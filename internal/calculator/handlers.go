package calculator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"laser-compare/internal/export"
	"laser-compare/internal/handlers"
	"laser-compare/internal/laser"
	"laser-compare/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// maxBodyBytes bounds calculator request bodies; inputs are a handful of
// numbers.
const maxBodyBytes = 64 << 10

// calculation binds one laser calculator to its HTTP name and report layout.
type calculation[In, Out any] struct {
	name    string
	title   string
	compute func(In) (Out, error)
	report  func(In, Out) export.Report
}

// Handler serves the calculator API. shareBaseURL, when set, is used to
// build the permalink printed as a QR code on reports.
type Handler struct {
	shareBaseURL string
}

func NewHandler(shareBaseURL string) *Handler {
	return &Handler{shareBaseURL: shareBaseURL}
}

// List handles GET /api/calculators.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	handlers.WriteJSON(w, http.StatusOK, laser.Schemas())
}

// serveCalculation handles POST /api/calculators/{name}. It demonstrates the
// full request path: child span, decode, validation mapped to 422, metrics
// and a trace-correlated completion log.
func serveCalculation[In, Out any](c calculation[In, Out]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span, logger := startSpan(r, c.name)
		defer span.End()

		var in In
		if err := decodeJSON(w, r, &in); err != nil {
			observability.RecordError(ctx, span, logger, errorCounter, c.name, err, http.StatusBadRequest, w, handlers.ErrorBody{Error: "invalid request body"})
			return
		}

		out, ok := execute(ctx, span, logger, w, c, in)
		if !ok {
			return
		}

		handlers.WriteJSON(w, http.StatusOK, Response[In, Out]{
			Calculator: c.name,
			Input:      in,
			Result:     out,
		})
	}
}

// serveReport handles POST /api/calculators/{name}/report and answers with
// a PDF rendering of the same calculation.
func serveReport[In, Out any](h *Handler, c calculation[In, Out]) http.HandlerFunc {
	opName := c.name + ".report"

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span, logger := startSpan(r, opName)
		defer span.End()

		var req ReportRequest[In]
		if err := decodeJSON(w, r, &req); err != nil {
			observability.RecordError(ctx, span, logger, errorCounter, opName, err, http.StatusBadRequest, w, handlers.ErrorBody{Error: "invalid request body"})
			return
		}

		out, ok := execute(ctx, span, logger, w, c, req.Input)
		if !ok {
			return
		}

		rep := c.report(req.Input, out)
		rep.Title = c.title
		if req.Title != "" {
			rep.Title = req.Title
		}
		rep.ShareURL = h.shareURL(c.name, req.Input)
		rep.GeneratedAt = time.Now()

		var buf bytes.Buffer
		if err := export.Render(&buf, rep); err != nil {
			observability.RecordError(ctx, span, logger, errorCounter, opName, err, http.StatusInternalServerError, w, handlers.ErrorBody{Error: "report rendering failed"})
			return
		}

		reportsCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", c.name)))
		span.SetAttributes(attribute.Int("report.bytes", buf.Len()))

		logger.Info("report rendered",
			zap.String("calculator", c.name),
			zap.Int("bytes", buf.Len()),
			zap.String("request_id", observability.RequestIDFromContext(ctx)),
		)

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", c.name+"-report.pdf"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}

func startSpan(r *http.Request, opName string) (context.Context, trace.Span, *zap.Logger) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "calculator."+opName,
		trace.WithAttributes(
			attribute.String("calculator.operation", opName),
			attribute.String("request.id", observability.RequestIDFromContext(ctx)),
		),
	)
	return ctx, span, logger
}

// execute runs the calculator, recording metrics on success and writing the
// error response on failure. ok is false when a response has been written.
func execute[In, Out any](ctx context.Context, span trace.Span, logger *zap.Logger, w http.ResponseWriter, c calculation[In, Out], in In) (out Out, ok bool) {
	start := time.Now()
	out, err := c.compute(in)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		status, body := errorResponse(err)
		observability.RecordError(ctx, span, logger, errorCounter, c.name, err, status, w, body)
		return out, false
	}

	attrs := metric.WithAttributes(attribute.String("operation", c.name))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculation completed",
		zap.String("calculator", c.name),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
		zap.Float64("duration_ms", elapsed),
	)
	return out, true
}

// errorResponse maps a calculator error to its HTTP status and body.
func errorResponse(err error) (int, handlers.ErrorBody) {
	var verr *laser.ValidationError
	if errors.As(err, &verr) {
		return http.StatusUnprocessableEntity, handlers.ErrorBody{
			Error: verr.Error(),
			Field: verr.Field,
			Min:   bound(verr.Min),
			Max:   bound(verr.Max),
		}
	}
	return http.StatusInternalServerError, handlers.ErrorBody{Error: "calculation failed"}
}

func bound(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	return nil
}
