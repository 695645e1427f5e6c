package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipeforge/core/internal/pipeline"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseConfigLoadsAFullDocument(t *testing.T) {
	path := writeConfig(t, `
workspace:
  root: /tmp/work
resource:
  sample_interval: 500ms
  cpu_threshold_pct: 90
  mem_threshold_pct: 85
  wall_clock_limit: 10m
logging:
  level: info
  buffer_size: 1024
plugins:
  search_paths:
    - /opt/plugins
`)

	cfg, err := ParseConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/work", cfg.Workspace.Root)
	assert.Equal(t, 500*time.Millisecond, cfg.Resource.SampleInterval.Duration)
	assert.Equal(t, 10*time.Minute, cfg.Resource.WallClockLimit.Duration)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, []string{"/opt/plugins"}, cfg.Plugins.SearchPaths)
}

func TestParseConfigRejectsMissingWorkspaceRoot(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: info
`)
	_, err := ParseConfig(path)
	require.Error(t, err)

	var engineErr *pipeline.EngineError
	require.ErrorAs(t, err, &engineErr)
	assert.Equal(t, pipeline.ErrCodeValidation, engineErr.Code)
}

func TestParseConfigRejectsUnknownLogLevel(t *testing.T) {
	path := writeConfig(t, `
workspace:
  root: /tmp/work
logging:
  level: chatty
`)
	_, err := ParseConfig(path)
	require.Error(t, err)
}

func TestParseConfigRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "workspace: [unterminated")
	_, err := ParseConfig(path)
	require.Error(t, err)

	var engineErr *pipeline.EngineError
	require.ErrorAs(t, err, &engineErr)
	assert.Equal(t, "parse", engineErr.Context["phase"])
}

func TestParseConfigRejectsMissingFile(t *testing.T) {
	_, err := ParseConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestParseConfigRejectsInvalidDuration(t *testing.T) {
	path := writeConfig(t, `
workspace:
  root: /tmp/work
resource:
  sample_interval: "not-a-duration"
`)
	_, err := ParseConfig(path)
	require.Error(t, err)
}

func TestParseConfigRejectsOutOfRangeThreshold(t *testing.T) {
	path := writeConfig(t, `
workspace:
  root: /tmp/work
resource:
  cpu_threshold_pct: 150
`)
	_, err := ParseConfig(path)
	require.Error(t, err)
}
