// Package telemetry provides request trace ids.
package telemetry

import (
	"context"

	"github.com/jrazmi/tasker/sdk/cryptids"
)

type telKey int

const traceIDKey telKey = iota + 1

// NoTraceID is reported when a context carries no trace id.
const NoTraceID = "--------NOTRACE--------"

// Telemetry stamps request contexts with a random trace id.
type Telemetry struct{}

func NewTelemetry() Telemetry {
	return Telemetry{}
}

// SetTraceID returns a copy of ctx carrying a fresh trace id.
func (t Telemetry) SetTraceID(ctx context.Context) context.Context {
	tid, err := cryptids.GenerateID()
	if err != nil {
		return context.WithValue(ctx, traceIDKey, NoTraceID)
	}
	return context.WithValue(ctx, traceIDKey, tid)
}

// GetTraceID returns the trace id in ctx or NoTraceID.
func (t Telemetry) GetTraceID(ctx context.Context) string {
	v, ok := ctx.Value(traceIDKey).(string)
	if !ok {
		return NoTraceID
	}
	return v
}

// TraceID is GetTraceID as a plain function, for logger.WithTraceIDFn.
// Contexts without a trace id yield the empty string.
func TraceID(ctx context.Context) string {
	v, _ := ctx.Value(traceIDKey).(string)
	return v
}
