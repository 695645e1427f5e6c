package logging

import (
	"fmt"
	"io"
	"os"
	"sort"

	cblog "github.com/charmbracelet/log"
)

// CharmConsumer renders drained events through charmbracelet/log — the
// reference Consumer this core ships, grounded directly on the teacher's
// internal/infrastructure/logging.Logger adapter (same library, same
// level mapping, same sorted-field rendering).
type CharmConsumer struct {
	logger *cblog.Logger
}

// NewCharmConsumer constructs a CharmConsumer writing to w (os.Stdout if
// nil) at the given level ("debug", "info", "warn", "error").
func NewCharmConsumer(w io.Writer, level string) (*CharmConsumer, error) {
	if w == nil {
		w = os.Stdout
	}
	parsed := cblog.InfoLevel
	if level != "" {
		lvl, err := cblog.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		parsed = lvl
	}
	return &CharmConsumer{
		logger: cblog.NewWithOptions(w, cblog.Options{Level: parsed, ReportTimestamp: true}),
	}, nil
}

func (c *CharmConsumer) OnEvent(e *MutableLogEvent) {
	fields := make([]interface{}, 0, len(e.Context)*2+4)
	fields = append(fields, "logger", e.LoggerName)
	if e.CorrelationID != "" {
		fields = append(fields, "correlation_id", e.CorrelationID)
	}

	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fields = append(fields, k, e.Context[k])
	}
	if e.Exception != nil {
		fields = append(fields, "error", e.Exception.Error())
	}

	switch e.Level {
	case LevelDebug:
		c.logger.Debug(e.Message, fields...)
	case LevelWarn:
		c.logger.Warn(e.Message, fields...)
	case LevelError:
		c.logger.Error(e.Message, fields...)
	default:
		c.logger.Info(e.Message, fields...)
	}
}

func (c *CharmConsumer) OnError(e *MutableLogEvent, err error) {
	c.logger.Error("log consumer failed", "logger", e.LoggerName, "error", err)
}

func (c *CharmConsumer) OnRemoved() {}

var _ Consumer = (*CharmConsumer)(nil)
