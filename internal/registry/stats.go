package registry

import (
	"sync"
	"time"
)

// StepStats is mutated by Dispatch only (spec 3, "Step execution stats").
type StepStats struct {
	Total         uint64
	Successes     uint64
	Failures      uint64
	TotalDuration time.Duration
	MinDuration   time.Duration
	MaxDuration   time.Duration
	LastError     error
	LastStartedAt time.Time
	LastEndedAt   time.Time
}

// Snapshot returns a value copy safe to hand to a caller without exposing
// the mutex guarding the live counters.
func (s StepStats) Snapshot() StepStats { return s }

type statsBucket struct {
	mu    sync.Mutex
	stats StepStats
}

func (b *statsBucket) recordStart() time.Time {
	return time.Now()
}

func (b *statsBucket) recordResult(start time.Time, err error) {
	elapsed := time.Since(start)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.stats.Total++
	b.stats.TotalDuration += elapsed
	b.stats.LastStartedAt = start
	b.stats.LastEndedAt = start.Add(elapsed)
	if b.stats.MinDuration == 0 || elapsed < b.stats.MinDuration {
		b.stats.MinDuration = elapsed
	}
	if elapsed > b.stats.MaxDuration {
		b.stats.MaxDuration = elapsed
	}
	if err != nil {
		b.stats.Failures++
		b.stats.LastError = err
	} else {
		b.stats.Successes++
	}
}

func (b *statsBucket) snapshot() StepStats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats.Snapshot()
}

// AggregateStats is the registry-level rollup (spec 4.F, "Stats").
type AggregateStats struct {
	TotalSteps         int
	PerCategory        map[string]int
	PerSecurityLevel   map[string]int
	TotalExecutions    uint64
	TotalFailures      uint64
	OverallSuccessRate float64
}

// ToSnapshot converts AggregateStats to its JSON-serializable form for the
// dashboard and metrics export.
func (a AggregateStats) ToSnapshot() AggregateSnapshot {
	return AggregateSnapshot{
		TotalSteps:         a.TotalSteps,
		PerCategory:        a.PerCategory,
		PerSecurityLevel:   a.PerSecurityLevel,
		TotalExecutions:    a.TotalExecutions,
		TotalFailures:      a.TotalFailures,
		OverallSuccessRate: a.OverallSuccessRate,
	}
}
