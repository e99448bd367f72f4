package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/jrazmi/tasker/sdk/logger"
)

type ctxKey struct{}

func TestLogger_TraceID(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewDefault(
		logger.WithOutput(&buf),
		logger.WithTraceIDFn(func(ctx context.Context) string {
			v, _ := ctx.Value(ctxKey{}).(string)
			return v
		}),
	)

	ctx := context.WithValue(context.Background(), ctxKey{}, "trace-123")
	log.InfoContext(ctx, "hello", "k", "v")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("Expected JSON record, got %q: %v", buf.String(), err)
	}
	if record["trace_id"] != "trace-123" {
		t.Errorf("Expected trace_id 'trace-123', got %v", record["trace_id"])
	}
	if record["msg"] != "hello" {
		t.Errorf("Expected msg 'hello', got %v", record["msg"])
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewDefault(logger.WithOutput(&buf), logger.WithLevel("error"))

	log.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("Expected info record to be filtered, got %q", buf.String())
	}

	log.Error("kept")
	if buf.Len() == 0 {
		t.Fatal("Expected error record to be written")
	}
}

func TestLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewDefault(logger.WithOutput(&buf), logger.WithFormat("text"))
	log.Info("plain")

	if !bytes.Contains(buf.Bytes(), []byte("msg=plain")) {
		t.Errorf("Expected text record, got %q", buf.String())
	}
}
