package logging

import (
	"context"

	"github.com/oklog/ulid/v2"
)

// traceIDKey is the context key for the per-invocation trace ID.
type traceIDKey struct{}

// ContextWithTraceID stores a trace ID in ctx for retrieval by downstream
// components.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceIDFromContext returns the trace ID stored in ctx, or "" when absent.
func TraceIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(traceIDKey{}).(string); ok {
		return id
	}
	return ""
}

// GetOrGenerateTraceID returns the trace ID from ctx, minting a new ULID
// when the context carries none. ULIDs sort by creation time, which keeps
// interleaved log files greppable per invocation.
func GetOrGenerateTraceID(ctx context.Context) string {
	if id := TraceIDFromContext(ctx); id != "" {
		return id
	}
	return ulid.Make().String()
}
