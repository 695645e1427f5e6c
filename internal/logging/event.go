package logging

import "time"

// Level is a log severity (spec 3, "Log event").
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Source identifies where a log event originated (spec 3).
type Source int

const (
	SourceLogger Source = iota
	SourceStdout
	SourceStderr
)

// MutableLogEvent is the pooled, writable event emitters fill before
// enqueuing (spec 3, "Log event (mutable, pooled)"). Once enqueued it is
// conceptually immutable until the consumer loop releases it back to the
// pool — consumers must not retain a reference past their callback.
type MutableLogEvent struct {
	TimestampMs   int64
	Level         Level
	LoggerName    string
	Message       string
	CorrelationID string
	Context       map[string]interface{}
	Exception     error
	Source        Source
}

// reset clears an event for reuse, keeping the backing Context map allocated
// so steady-state dispatch performs no further heap allocation for it.
func (e *MutableLogEvent) reset() {
	e.TimestampMs = 0
	e.Level = LevelInfo
	e.LoggerName = ""
	e.Message = ""
	e.CorrelationID = ""
	for k := range e.Context {
		delete(e.Context, k)
	}
	e.Exception = nil
	e.Source = SourceLogger
}

func nowMs() int64 {
	return time.Now().UnixMilli()
}
