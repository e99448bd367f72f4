package telemetry_test

import (
	"context"
	"testing"

	"github.com/jrazmi/tasker/sdk/telemetry"
)

func TestTraceID(t *testing.T) {
	tel := telemetry.NewTelemetry()
	ctx := context.Background()

	if got := tel.GetTraceID(ctx); got != telemetry.NoTraceID {
		t.Errorf("Expected NoTraceID, got %q", got)
	}
	if got := telemetry.TraceID(ctx); got != "" {
		t.Errorf("Expected empty trace id, got %q", got)
	}

	ctx = tel.SetTraceID(ctx)
	id := tel.GetTraceID(ctx)
	if id == "" || id == telemetry.NoTraceID {
		t.Fatalf("Expected a trace id, got %q", id)
	}
	if telemetry.TraceID(ctx) != id {
		t.Error("TraceID and GetTraceID disagree")
	}
	if other := tel.GetTraceID(tel.SetTraceID(context.Background())); other == id {
		t.Error("Expected distinct trace ids per request")
	}
}
