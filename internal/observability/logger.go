package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Logger is the process-wide logger. It is a no-op until InitLogger runs.
var Logger = zap.NewNop()

// InitLogger replaces Logger with a JSON production logger, or a
// human-readable development logger when format is "console".
func InitLogger(format string) error {
	var (
		l   *zap.Logger
		err error
	)

	switch format {
	case "", "json":
		l, err = zap.NewProduction()
	case "console":
		l, err = zap.NewDevelopment()
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	if err != nil {
		return err
	}

	Logger = l
	return nil
}

func SyncLogger() {
	_ = Logger.Sync()
}

// LoggerWithTrace returns a child logger carrying trace_id and span_id from
// the active span in ctx.
//
// ctx itself is attached as a zap.Any("context", ctx) field: the otelzap
// core recognises context.Context values and uses them when emitting, so
// exported OTLP log records get native TraceID/SpanID and can be joined to
// their traces. The string fields keep stdout JSON greppable.
func LoggerWithTrace(ctx context.Context) *zap.Logger {
	span := trace.SpanContextFromContext(ctx)

	if !span.IsValid() {
		return Logger
	}

	return Logger.With(
		zap.Any("context", ctx),
		zap.String("trace_id", span.TraceID().String()),
		zap.String("span_id", span.SpanID().String()),
	)
}
