package resource

import "time"

// UsageUpdate is a single sample of an execution's resource consumption
// (spec 3, "Resource-usage stats").
type UsageUpdate struct {
	ExecutionID    string
	WallMs         int64
	CpuMs          int64
	PeakMemoryMB   float64
	ThreadsCreated int
	OpenFileHandles int
	AppliedLimits  Limits
	Timestamp      time.Time
}

// Efficiency computes, per resource dimension with a configured limit, the
// actual/limit ratio (spec 4.C, "Efficiency metric"). Dimensions without a
// configured limit are omitted rather than reported as zero or infinite.
func Efficiency(usage UsageUpdate) map[string]float64 {
	out := make(map[string]float64, 4)
	lim := usage.AppliedLimits
	if lim.MaxMemoryMB != nil && *lim.MaxMemoryMB > 0 {
		out["memory"] = usage.PeakMemoryMB / *lim.MaxMemoryMB
	}
	if lim.MaxCPUTimeMs != nil && *lim.MaxCPUTimeMs > 0 {
		out["cpu_time"] = float64(usage.CpuMs) / float64(*lim.MaxCPUTimeMs)
	}
	if lim.MaxWallTimeMs != nil && *lim.MaxWallTimeMs > 0 {
		out["wall_time"] = float64(usage.WallMs) / float64(*lim.MaxWallTimeMs)
	}
	if lim.MaxThreads != nil && *lim.MaxThreads > 0 {
		out["threads"] = float64(usage.ThreadsCreated) / float64(*lim.MaxThreads)
	}
	if lim.MaxFileHandles != nil && *lim.MaxFileHandles > 0 {
		out["file_handles"] = float64(usage.OpenFileHandles) / float64(*lim.MaxFileHandles)
	}
	return out
}
