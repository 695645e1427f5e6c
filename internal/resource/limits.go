// Package resource implements the Resource Monitor (spec 4.C): periodic
// sampling of a running operation's resource usage, threshold warnings,
// hard-violation short-circuiting, and post-completion efficiency ratios.
package resource

// Limits bounds a single execution (spec 3, "Resource limits"). A nil
// field means "unlimited" for that dimension.
type Limits struct {
	MaxMemoryMB   *float64
	MaxCPUTimeMs  *int64
	MaxWallTimeMs *int64
	MaxThreads    *int
	MaxFileHandles *int
}

func i64(v int64) *int64     { return &v }
func f64(v float64) *float64 { return &v }
func i(v int) *int           { return &v }

// WithMaxMemoryMB returns a copy of l with MaxMemoryMB set.
func (l Limits) WithMaxMemoryMB(v float64) Limits { l.MaxMemoryMB = f64(v); return l }

// WithMaxCPUTimeMs returns a copy of l with MaxCPUTimeMs set.
func (l Limits) WithMaxCPUTimeMs(v int64) Limits { l.MaxCPUTimeMs = i64(v); return l }

// WithMaxWallTimeMs returns a copy of l with MaxWallTimeMs set.
func (l Limits) WithMaxWallTimeMs(v int64) Limits { l.MaxWallTimeMs = i64(v); return l }

// WithMaxThreads returns a copy of l with MaxThreads set.
func (l Limits) WithMaxThreads(v int) Limits { l.MaxThreads = i(v); return l }

// WithMaxFileHandles returns a copy of l with MaxFileHandles set.
func (l Limits) WithMaxFileHandles(v int) Limits { l.MaxFileHandles = i(v); return l }
