package logging

import (
	"context"

	"github.com/pipeforge/core/internal/ports"
)

// Handle is the ports.Logger a caller obtains from Core.GetLogger. It is
// cheap to copy (With returns a new value sharing the same Core) and safe
// for concurrent use.
type Handle struct {
	core        *Core
	name        string
	persistent  map[string]interface{}
}

var _ ports.Logger = (*Handle)(nil)

func (h *Handle) Debug(ctx context.Context, msg string, fields ...interface{}) {
	h.log(ctx, LevelDebug, msg, fields...)
}

func (h *Handle) Info(ctx context.Context, msg string, fields ...interface{}) {
	h.log(ctx, LevelInfo, msg, fields...)
}

func (h *Handle) Warn(ctx context.Context, msg string, fields ...interface{}) {
	h.log(ctx, LevelWarn, msg, fields...)
}

func (h *Handle) Error(ctx context.Context, msg string, fields ...interface{}) {
	h.log(ctx, LevelError, msg, fields...)
}

// With returns a derived Handle carrying additional persistent fields.
func (h *Handle) With(fields ...interface{}) ports.Logger {
	merged := make(map[string]interface{}, len(h.persistent)+len(fields)/2)
	for k, v := range h.persistent {
		merged[k] = v
	}
	for i := 0; i+1 < len(fields); i += 2 {
		if key, ok := fields[i].(string); ok {
			merged[key] = fields[i+1]
		}
	}
	return &Handle{core: h.core, name: h.name, persistent: merged}
}

func (h *Handle) log(ctx context.Context, level Level, msg string, fields ...interface{}) {
	e := h.core.pool.get()
	e.TimestampMs = nowMs()
	e.Level = level
	e.LoggerName = h.name
	e.Message = msg
	e.CorrelationID = ports.GetCorrelationID(ctx)
	e.Source = SourceLogger

	for k, v := range h.persistent {
		e.Context[k] = v
	}
	for k, v := range contextFields(ctx) {
		e.Context[k] = v
	}
	for i := 0; i+1 < len(fields); i += 2 {
		if key, ok := fields[i].(string); ok {
			e.Context[key] = fields[i+1]
		}
	}

	h.core.emit(e)
}
