package main

import (
	"context"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func finishedSpans() []sdktrace.ReadOnlySpan {
	start := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return tracetest.SpanStubs{
		{
			Name:       "TaskService.CreateTask",
			StartTime:  start,
			EndTime:    start.Add(15 * time.Millisecond),
			Attributes: []attribute.KeyValue{attribute.String("task.title", "Some Task")},
			Status:     sdktrace.Status{Code: codes.Error, Description: "project not found"},
		},
	}.Snapshots()
}

func TestLogSpanExporter(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)

	if err := newLogSpanExporter(logger).ExportSpans(context.Background(), finishedSpans()); err != nil {
		t.Fatalf("export: %v", err)
	}

	entry := hook.LastEntry()
	if entry == nil || entry.Message != "span finished" {
		t.Fatalf("expected span log, got %#v", entry)
	}
	if entry.Data["span"] != "TaskService.CreateTask" {
		t.Errorf("unexpected span name: %v", entry.Data["span"])
	}
	if entry.Data["duration_ms"] != int64(15) {
		t.Errorf("unexpected duration: %v", entry.Data["duration_ms"])
	}
	if entry.Data["status"] != "Error" || entry.Data["status_description"] != "project not found" {
		t.Errorf("unexpected status fields: %#v", entry.Data)
	}
	if entry.Data["task.title"] != "Some Task" {
		t.Errorf("missing span attribute: %#v", entry.Data)
	}
}

func TestLogSpanExporterSilentAboveDebug(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.InfoLevel)

	if err := newLogSpanExporter(logger).ExportSpans(context.Background(), finishedSpans()); err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(hook.AllEntries()) != 0 {
		t.Fatalf("expected no entries at info level, got %d", len(hook.AllEntries()))
	}
}

func TestTracerProviderExportsToLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)

	tp := newTracerProvider(logger)
	_, span := tp.Tracer("test").Start(context.Background(), "work")
	span.End()
	if err := tp.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	entry := hook.LastEntry()
	if entry == nil || entry.Data["span"] != "work" {
		t.Fatalf("expected exported span on shutdown, got %#v", entry)
	}
}
