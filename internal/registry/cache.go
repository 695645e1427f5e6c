package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// statsCacheFile is the on-disk JSON shape a StatsCache persists.
type statsCacheFile struct {
	Version string                       `json:"version"`
	Steps   map[string]PersistedStepStats `json:"steps"`
}

// PersistedStepStats is the subset of StepStats worth carrying across CLI
// invocations — enough to show cumulative history on the dashboard without
// re-running every step.
type PersistedStepStats struct {
	Total     uint64 `json:"total"`
	Successes uint64 `json:"successes"`
	Failures  uint64 `json:"failures"`
}

// StatsCache persists step execution stats between CLI invocations.
// Adapted from the teacher's registry.StatusCache — identical atomic
// load/save-to-temp-then-rename shape — generalized from "cached pipeline
// drift status" to "cumulative step execution counters".
type StatsCache struct {
	path    string
	mu      sync.RWMutex
	version string
	steps   map[string]PersistedStepStats
}

// NewStatsCache constructs a StatsCache backed by path, loading any existing
// contents immediately.
func NewStatsCache(path string) (*StatsCache, error) {
	c := &StatsCache{path: path, version: "1.0", steps: make(map[string]PersistedStepStats)}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create stats cache directory: %w", err)
	}

	if err := c.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return c, nil
}

// Load reads the cache from disk.
func (c *StatsCache) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.path)
	if err != nil {
		return err
	}

	var file statsCacheFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse stats cache: %w", err)
	}

	c.version = file.Version
	c.steps = file.Steps
	if c.steps == nil {
		c.steps = make(map[string]PersistedStepStats)
	}
	return nil
}

// Save writes the cache to disk atomically.
func (c *StatsCache) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	file := statsCacheFile{Version: c.version, Steps: c.steps}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal stats cache: %w", err)
	}

	tmpPath := c.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp stats cache: %w", err)
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp stats cache: %w", err)
	}
	return nil
}

// Record merges fresh in-memory counters for name into the cached totals.
func (c *StatsCache) Record(name string, fresh StepStats) {
	c.mu.Lock()
	defer c.mu.Unlock()

	existing := c.steps[name]
	existing.Total += fresh.Total
	existing.Successes += fresh.Successes
	existing.Failures += fresh.Failures
	c.steps[name] = existing
}

// Get returns the persisted cumulative stats for name, if any.
func (c *StatsCache) Get(name string) (PersistedStepStats, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.steps[name]
	return s, ok
}
