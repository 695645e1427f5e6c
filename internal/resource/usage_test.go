package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEfficiencyOnlyReportsConfiguredLimits(t *testing.T) {
	usage := UsageUpdate{
		WallMs:       500,
		CpuMs:        200,
		PeakMemoryMB: 128,
		AppliedLimits: Limits{}.WithMaxMemoryMB(256).WithMaxWallTimeMs(1000),
	}

	ratios := Efficiency(usage)

	assert.InDelta(t, 0.5, ratios["memory"], 1e-9)
	assert.InDelta(t, 0.5, ratios["wall_time"], 1e-9)
	assert.NotContains(t, ratios, "cpu_time")
	assert.NotContains(t, ratios, "threads")
}

func TestEfficiencyEmptyWhenNoLimitsConfigured(t *testing.T) {
	ratios := Efficiency(UsageUpdate{WallMs: 100, CpuMs: 50, PeakMemoryMB: 10})
	assert.Empty(t, ratios)
}
