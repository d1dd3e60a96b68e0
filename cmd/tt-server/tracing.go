package main

import (
	"context"

	log "github.com/sirupsen/logrus"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// logSpanExporter は終了したスパンをdebugレベルのログとして出力する。
type logSpanExporter struct {
	logger *log.Logger
}

func newLogSpanExporter(logger *log.Logger) *logSpanExporter {
	return &logSpanExporter{logger: logger}
}

func (e *logSpanExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	if !e.logger.IsLevelEnabled(log.DebugLevel) {
		return nil
	}
	for _, span := range spans {
		fields := log.Fields{
			"span":        span.Name(),
			"trace_id":    span.SpanContext().TraceID().String(),
			"span_id":     span.SpanContext().SpanID().String(),
			"duration_ms": span.EndTime().Sub(span.StartTime()).Milliseconds(),
			"status":      span.Status().Code.String(),
		}
		if desc := span.Status().Description; desc != "" {
			fields["status_description"] = desc
		}
		for _, attr := range span.Attributes() {
			fields[string(attr.Key)] = attr.Value.Emit()
		}
		e.logger.WithFields(fields).Debug("span finished")
	}
	return nil
}

func (e *logSpanExporter) Shutdown(ctx context.Context) error {
	return nil
}

func newTracerProvider(logger *log.Logger) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(newLogSpanExporter(logger)),
	)
}
