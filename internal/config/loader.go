package config

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pipeforge/core/internal/pipeline"
	"github.com/pipeforge/core/internal/ports"
)

// Loader is the concrete ports.ConfigurationLoader: a generic YAML document
// loader consumers can layer their own schema over (spec 6). Engine callers
// that specifically want the engine's own tuning document should use
// ParseConfig instead, which additionally validates against EngineConfig.
type Loader struct{}

// NewLoader constructs a Loader.
func NewLoader() *Loader { return &Loader{} }

var _ ports.ConfigurationLoader = (*Loader)(nil)

// Load reads path and decodes it into a generic string-keyed document
// (spec 6, "loads a structured configuration from a path").
func (l *Loader) Load(ctx context.Context, path string) (map[string]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pipeline.NewEngineError(pipeline.ErrCodeValidation, fmt.Sprintf("cannot read %s", path), err, map[string]interface{}{"phase": "read"})
	}

	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, pipeline.NewEngineError(pipeline.ErrCodeValidation, fmt.Sprintf("%s: malformed document", path), err, map[string]interface{}{
			"phase": "parse",
			"line":  extractLine(err),
		})
	}

	return doc, nil
}
