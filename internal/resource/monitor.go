package resource

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pipeforge/core/internal/eventbus"
	"github.com/pipeforge/core/internal/ports"
)

// DefaultInterval is the sampling cadence spec 4.C specifies absent
// configuration.
const DefaultInterval = 100 * time.Millisecond

// DefaultThresholdPct is the fraction of a limit that triggers a warning
// before a hard violation occurs.
const DefaultThresholdPct = 0.8

// Monitor periodically samples a running operation's resource usage,
// publishes warnings/violations on the event bus, and records gauges
// through a MetricsCollector. Grounded on the teacher's habit of wrapping
// ambient concerns (logging, events) behind ports interfaces rather than
// depending on a concrete backend directly.
type Monitor struct {
	publisher    ports.EventPublisher
	metrics      ports.MetricsCollector
	interval     time.Duration
	thresholdPct float64
}

// NewMonitor constructs a Monitor. interval <= 0 defaults to
// DefaultInterval; thresholdPct <= 0 defaults to DefaultThresholdPct.
func NewMonitor(publisher ports.EventPublisher, metrics ports.MetricsCollector, interval time.Duration, thresholdPct float64) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if thresholdPct <= 0 {
		thresholdPct = DefaultThresholdPct
	}
	return &Monitor{publisher: publisher, metrics: metrics, interval: interval, thresholdPct: thresholdPct}
}

// Execute runs fn under the monitor for the duration of executionID,
// sampling every interval, and short-circuits with a Failure the instant a
// hard limit is exceeded (spec 4.C, "Result wrapping" — "the engine
// short-circuits on first violation"). fn must observe ctx cancellation
// promptly to honor the short-circuit.
//
// Execute is a free function rather than a *Monitor method because Go
// methods cannot introduce their own type parameters.
func Execute[T any](ctx context.Context, m *Monitor, executionID string, limits Limits, fn func(context.Context) (T, error)) Result[T] {
	if executionID == "" {
		executionID = uuid.New().String()
	}

	smp, err := newSampler()
	if err != nil {
		return runWithoutSampling(ctx, executionID, limits, fn)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := time.Now()
	baseline, _ := smp.read()

	type outcome struct {
		value T
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		v, err := fn(runCtx)
		done <- outcome{value: v, err: err}
	}()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case out := <-done:
			final := m.snapshot(executionID, smp, limits, start, baseline)
			if out.err != nil {
				cancel()
				return Failure[T](eventbus.ResourceLimitViolated{Type: eventbus.ViolationExecutionError})
			}
			return Success(out.value, final)

		case <-ticker.C:
			usage := m.snapshot(executionID, smp, limits, start, baseline)
			m.recordMetrics(ctx, usage)
			if violation := firstViolation(usage, limits); violation != nil {
				m.publish(ctx, executionID, nil, violation)
				cancel()
				<-done
				return Failure[T](*violation)
			}
			if warning := firstWarning(usage, limits, m.thresholdPct); warning != nil {
				m.publish(ctx, executionID, warning, nil)
			}
		}
	}
}

func runWithoutSampling[T any](ctx context.Context, executionID string, limits Limits, fn func(context.Context) (T, error)) Result[T] {
	start := time.Now()
	v, err := fn(ctx)
	stats := UsageUpdate{ExecutionID: executionID, WallMs: time.Since(start).Milliseconds(), AppliedLimits: limits, Timestamp: nowUTC()}
	if err != nil {
		return Failure[T](eventbus.ResourceLimitViolated{Type: eventbus.ViolationExecutionError})
	}
	return Success(v, stats)
}

func (m *Monitor) snapshot(executionID string, smp *sampler, limits Limits, start time.Time, baseline sample) UsageUpdate {
	s, _ := smp.read()
	threadsCreated := s.threads - baseline.threads
	if threadsCreated < 0 {
		threadsCreated = 0
	}
	return UsageUpdate{
		ExecutionID:     executionID,
		WallMs:          time.Since(start).Milliseconds(),
		CpuMs:           s.cpuMs,
		PeakMemoryMB:    s.memMB,
		ThreadsCreated:  threadsCreated,
		OpenFileHandles: s.fds,
		AppliedLimits:   limits,
		Timestamp:       nowUTC(),
	}
}

func (m *Monitor) recordMetrics(ctx context.Context, usage UsageUpdate) {
	if m.metrics == nil {
		return
	}
	labels := map[string]string{"execution_id": usage.ExecutionID}
	m.metrics.SetGauge(ctx, "pipeforge_resource_wall_ms", float64(usage.WallMs), labels)
	m.metrics.SetGauge(ctx, "pipeforge_resource_cpu_ms", float64(usage.CpuMs), labels)
	m.metrics.SetGauge(ctx, "pipeforge_resource_memory_mb", usage.PeakMemoryMB, labels)
	m.metrics.SetGauge(ctx, "pipeforge_resource_threads", float64(usage.ThreadsCreated), labels)
}

func (m *Monitor) publish(ctx context.Context, executionID string, warning *eventbus.ResourceLimitWarning, violation *eventbus.ResourceLimitViolated) {
	if m.publisher == nil {
		return
	}
	_ = m.publisher.Publish(ctx, eventbus.ResourceAlert{
		ExecutionID: executionID,
		At:          nowUTC(),
		Warning:     warning,
		Violation:   violation,
	})
}

func firstViolation(usage UsageUpdate, limits Limits) *eventbus.ResourceLimitViolated {
	if limits.MaxMemoryMB != nil && usage.PeakMemoryMB > *limits.MaxMemoryMB {
		return &eventbus.ResourceLimitViolated{Type: eventbus.ViolationMemory, Current: usage.PeakMemoryMB, Limit: *limits.MaxMemoryMB}
	}
	if limits.MaxCPUTimeMs != nil && usage.CpuMs > *limits.MaxCPUTimeMs {
		return &eventbus.ResourceLimitViolated{Type: eventbus.ViolationCpuTime, Current: float64(usage.CpuMs), Limit: float64(*limits.MaxCPUTimeMs)}
	}
	if limits.MaxWallTimeMs != nil && usage.WallMs > *limits.MaxWallTimeMs {
		return &eventbus.ResourceLimitViolated{Type: eventbus.ViolationWallTime, Current: float64(usage.WallMs), Limit: float64(*limits.MaxWallTimeMs)}
	}
	if limits.MaxThreads != nil && usage.ThreadsCreated > *limits.MaxThreads {
		return &eventbus.ResourceLimitViolated{Type: eventbus.ViolationThreads, Current: float64(usage.ThreadsCreated), Limit: float64(*limits.MaxThreads)}
	}
	if limits.MaxFileHandles != nil && usage.OpenFileHandles > *limits.MaxFileHandles {
		return &eventbus.ResourceLimitViolated{Type: eventbus.ViolationFileHandles, Current: float64(usage.OpenFileHandles), Limit: float64(*limits.MaxFileHandles)}
	}
	return nil
}

func firstWarning(usage UsageUpdate, limits Limits, thresholdPct float64) *eventbus.ResourceLimitWarning {
	check := func(vt eventbus.ViolationType, current, limit float64) *eventbus.ResourceLimitWarning {
		if limit <= 0 {
			return nil
		}
		if current/limit >= thresholdPct {
			return &eventbus.ResourceLimitWarning{Type: vt, Current: current, Limit: limit, ThresholdPct: thresholdPct}
		}
		return nil
	}
	if limits.MaxMemoryMB != nil {
		if w := check(eventbus.ViolationMemory, usage.PeakMemoryMB, *limits.MaxMemoryMB); w != nil {
			return w
		}
	}
	if limits.MaxCPUTimeMs != nil {
		if w := check(eventbus.ViolationCpuTime, float64(usage.CpuMs), float64(*limits.MaxCPUTimeMs)); w != nil {
			return w
		}
	}
	if limits.MaxWallTimeMs != nil {
		if w := check(eventbus.ViolationWallTime, float64(usage.WallMs), float64(*limits.MaxWallTimeMs)); w != nil {
			return w
		}
	}
	if limits.MaxThreads != nil {
		if w := check(eventbus.ViolationThreads, float64(usage.ThreadsCreated), float64(*limits.MaxThreads)); w != nil {
			return w
		}
	}
	if limits.MaxFileHandles != nil {
		if w := check(eventbus.ViolationFileHandles, float64(usage.OpenFileHandles), float64(*limits.MaxFileHandles)); w != nil {
			return w
		}
	}
	return nil
}
