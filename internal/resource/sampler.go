package resource

import (
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// sample is a point-in-time reading taken from the current OS process.
type sample struct {
	cpuMs   int64
	memMB   float64
	threads int
	fds     int
}

// sampler reads live process stats via gopsutil. Grounded on the rest of
// the reference pack's observability layers (which lean on
// prometheus/client_golang for derived metrics, never on raw /proc
// parsing), gopsutil is the one library in the pack's dependency set that
// actually targets "read this process's CPU/memory/thread/fd usage"
// directly, so it is used here instead of hand-parsing /proc or shelling
// out to ps.
type sampler struct {
	proc *process.Process
}

func newSampler() (*sampler, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}
	return &sampler{proc: p}, nil
}

func (s *sampler) read() (sample, error) {
	var out sample

	if times, err := s.proc.Times(); err == nil {
		out.cpuMs = int64((times.User + times.System) * 1000)
	} else {
		return out, err
	}

	if mem, err := s.proc.MemoryInfo(); err == nil && mem != nil {
		out.memMB = float64(mem.RSS) / (1024 * 1024)
	}

	if threads, err := s.proc.NumThreads(); err == nil {
		out.threads = int(threads)
	}

	if fds, err := s.proc.NumFDs(); err == nil {
		out.fds = int(fds)
	}

	return out, nil
}

func nowUTC() time.Time { return time.Now().UTC() }
