package ports

import (
	"context"

	"github.com/google/uuid"
)

// Logger is the structured logging contract every handle returned by the
// logging core satisfies. All calls are key/value pairs, must be safe for
// concurrent use, and should automatically enrich entries with a correlation
// ID when present in context. Common fields include:
//   - correlation_id (UUIDv4, generated once per job launch)
//   - pipeline / stage / step
//   - duration_ms for timed operations
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...interface{})
	Info(ctx context.Context, msg string, fields ...interface{})
	Warn(ctx context.Context, msg string, fields ...interface{})
	Error(ctx context.Context, msg string, fields ...interface{})
	With(fields ...interface{}) Logger
}

type correlationIDKey struct{}

// WithCorrelationID attaches the provided correlation ID to the context so
// downstream layers can emit correlated logs, metrics, and resource samples.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// GetCorrelationID extracts a correlation ID from context. It returns an
// empty string when none has been set — callers should treat that as
// "uncorrelated".
func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return id
	}
	return ""
}

// GenerateCorrelationID produces a new UUIDv4 string suitable for log
// correlation and execution IDs. cmd/pipeforge calls it once for the
// invocation's correlation ID and once more for each run's execution ID.
func GenerateCorrelationID() string {
	return uuid.New().String()
}
