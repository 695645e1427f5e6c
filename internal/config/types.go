// Package config implements the engine's own configuration document: the
// resource monitor tuning, logging level, workspace root, and plugin
// search paths an operator hands to the launcher at startup (spec 6,
// ConfigurationLoader: "loads a structured configuration from a path").
// This is distinct from a pipeline script, which the core never parses
// itself (spec 6, ScriptEvaluator).
//
// Grounded on the teacher's internal/config package: yaml.v3 struct tags,
// a shared go-playground/validator/v10 instance with custom-registered
// tags, and a parse-then-validate ParseConfig entry point. Narrowed from
// the teacher's step-DAG document (steps, dependencies, per-step schemas)
// down to engine tuning, since this engine's pipelines are opaque to the
// ConfigurationLoader's caller — cycle detection over a task graph
// already lives in internal/runtime's parallel combinator.
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// EngineConfig is the full document loaded from a configuration file.
type EngineConfig struct {
	Workspace WorkspaceConfig `yaml:"workspace" validate:"required"`
	Resource  ResourceConfig  `yaml:"resource,omitempty"`
	Logging   LoggingConfig   `yaml:"logging,omitempty"`
	Plugins   PluginsConfig   `yaml:"plugins,omitempty"`
}

// WorkspaceConfig locates the pipeline's working directory.
type WorkspaceConfig struct {
	Root string `yaml:"root" validate:"required"`
}

// ResourceConfig tunes the Resource Monitor (spec 4.C).
type ResourceConfig struct {
	SampleInterval  Duration `yaml:"sample_interval,omitempty"`
	CPUThresholdPct float64  `yaml:"cpu_threshold_pct,omitempty" validate:"omitempty,resource_limit"`
	MemThresholdPct float64  `yaml:"mem_threshold_pct,omitempty" validate:"omitempty,resource_limit"`
	WallClockLimit  Duration `yaml:"wall_clock_limit,omitempty"`
}

// LoggingConfig tunes the Logging Core (spec 4.A).
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	BufferSize int    `yaml:"buffer_size,omitempty" validate:"omitempty,min=1"`
}

// PluginsConfig holds plugin search paths parsed from the engine config
// (spec 4.F). Nothing reads SearchPaths: the Step Registry does no directory
// scanning and registers only the steps passed to Register/RegisterAll.
type PluginsConfig struct {
	SearchPaths []string `yaml:"search_paths,omitempty"`
}

// Duration wraps time.Duration so it can be expressed as a human string
// ("30s", "5m") in YAML, the way the teacher's step types customize
// UnmarshalYAML to apply parsing and defaults a plain struct tag can't
// express.
type Duration struct {
	time.Duration
}

// UnmarshalYAML decodes a duration string into the wrapped time.Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw == "" {
		return nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	d.Duration = parsed
	return nil
}

// MarshalYAML renders the duration back to its string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}
