package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const validTraceparent = "00-ab42124a3c573678d4d8b21ba52df3bf-d21f7bc17caa5aba-01"

func TestTraceFields(t *testing.T) {
	fields := traceFields(validTraceparent, "proj")
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}
	if fields[0].String != "projects/proj/traces/ab42124a3c573678d4d8b21ba52df3bf" {
		t.Fatalf("unexpected trace resource: %s", fields[0].String)
	}
	if fields[1].String != "d21f7bc17caa5aba" {
		t.Fatalf("unexpected span: %s", fields[1].String)
	}
	if fields[2].Integer != 1 {
		t.Fatalf("expected sampled=true, got %+v", fields[2])
	}
}

func TestTraceFieldsRejectsInvalidInput(t *testing.T) {
	if fields := traceFields("not-a-trace", "proj"); fields != nil {
		t.Fatalf("expected nil fields, got %v", fields)
	}
	if fields := traceFields(validTraceparent, ""); fields != nil {
		t.Fatalf("expected nil fields without project, got %v", fields)
	}
	if got := traceResource("bad", "proj"); got != "" {
		t.Fatalf("expected empty resource, got %q", got)
	}
}

func TestLoggerWithTraceAddsRequestID(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	logger := loggerWithTrace(zap.New(core), "", "", "req-1")
	logger.Info("hello")

	fields := fieldMap(recorded.All()[0])
	if f := fields["requestId"]; f.String != "req-1" {
		t.Fatalf("expected requestId req-1, got %+v", f)
	}
}

func TestLoggerWithTraceNilBase(t *testing.T) {
	if loggerWithTrace(nil, "", "", "") == nil {
		t.Fatal("expected a no-op logger for nil base")
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "b", "c"); got != "b" {
		t.Fatalf("expected b, got %q", got)
	}
	if got := firstNonEmpty(); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
