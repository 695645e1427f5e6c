// Package registry implements the Step Registry & Dispatch core (spec
// section 4.F): a name-keyed table of callable steps, each carrying a
// parameter schema and security level, with dispatch performing argument
// validation, pipeline-context bridging, and execution-stats recording.
// Grounded on the teacher's registry.go (itself a sync.RWMutex-guarded,
// name-keyed store with duplicate-ID rejection and atomic on-disk
// persistence) — adapted from "named pipeline registrations on disk" to
// "named step implementations in memory plus a persisted stats cache"
// (cache.go).
package registry

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/pipeforge/core/internal/pipeline"
	"github.com/pipeforge/core/internal/pipelinectx"
	"github.com/pipeforge/core/internal/ports"
)

type entry struct {
	step         ports.Step
	metadata     ports.StepMetadata
	registeredAt time.Time
	stats        *statsBucket
}

// Registry is the concrete ports.StepRegistry implementation.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
	sandbox ports.SandboxManager
}

var _ ports.StepRegistry = (*Registry)(nil)

// New constructs an empty Registry. sandbox may be nil, in which case
// Restricted/Isolated steps dispatch without sandbox enforcement — useful in
// tests, but production wiring should always supply one.
func New(sandbox ports.SandboxManager) *Registry {
	return &Registry{entries: make(map[string]*entry), sandbox: sandbox}
}

// Register adds s to the registry, failing if its name is already taken
// (spec 4.F, "fails with duplicate step if name is already used").
func (r *Registry) Register(s ports.Step) error {
	meta := s.Metadata()
	if err := ValidateStepName(meta.Name); err != nil {
		return pipeline.NewBadArgsError(meta.Name, err.Error())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[meta.Name]; exists {
		return pipeline.NewDuplicateStepError(meta.Name)
	}

	r.entries[meta.Name] = &entry{
		step:         s,
		metadata:     meta,
		registeredAt: time.Now(),
		stats:        &statsBucket{},
	}
	return nil
}

// RegisterAll discovers every Step in steps and registers each one — the
// auto-discovery mechanism spec 4.F calls for, simplified from a
// reflection-based package scan (Go has no runtime annotation scanning) to
// an explicit slice the caller assembles at startup, mirroring the
// teacher's own explicit-registration entry point (cmd/streamy's plugin
// import list).
func (r *Registry) RegisterAll(steps []ports.Step) error {
	for _, s := range steps {
		if err := r.Register(s); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the Step registered under name.
func (r *Registry) Get(name string) (ports.Step, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return nil, pipeline.NewUnknownStepError(name)
	}
	return e.step, nil
}

// List returns the metadata of every registered step, sorted by name.
func (r *Registry) List() []ports.StepMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]ports.StepMetadata, 0, len(names))
	for _, name := range names {
		out = append(out, r.entries[name].metadata)
	}
	return out
}

// Dispatch executes the named step against pc, implementing spec 4.F's
// five-step contract: lookup, argument validation, context-bridge install,
// invoke, stats recording.
func (r *Registry) Dispatch(ctx context.Context, pc *pipelinectx.Context, name string, args map[string]interface{}) (interface{}, error) {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return nil, pipeline.NewUnknownStepError(name)
	}

	if err := validateArgs(e.metadata, args); err != nil {
		return nil, err
	}

	dispatchCtx := ctx
	if pc != nil {
		dispatchCtx = pipelinectx.WithPipelineContext(ctx, pc)
	}

	if r.sandbox != nil && pc != nil {
		switch e.metadata.SecurityLevel {
		case ports.SecurityLevelRestricted:
			guarded, err := r.sandbox.EnforceRestricted(dispatchCtx, pc.WorkspaceRoot)
			if err != nil {
				return nil, err
			}
			dispatchCtx = guarded
		case ports.SecurityLevelIsolated:
			guarded, err := r.sandbox.EnforceIsolated(dispatchCtx, pc.WorkspaceRoot)
			if err != nil {
				return nil, err
			}
			dispatchCtx = guarded
		}
	}

	start := e.stats.recordStart()
	result, err := e.step.Run(dispatchCtx, args)
	e.stats.recordResult(start, err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Stats returns a snapshot of the execution stats for one step.
func (r *Registry) Stats(name string) (StepStats, error) {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return StepStats{}, pipeline.NewUnknownStepError(name)
	}
	return e.stats.snapshot(), nil
}

// AggregateStats rolls up every registered step's metadata and execution
// stats into the registry-level summary spec 4.F calls for.
func (r *Registry) AggregateStats() AggregateStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	agg := AggregateStats{
		TotalSteps:       len(r.entries),
		PerCategory:      make(map[string]int),
		PerSecurityLevel: make(map[string]int),
	}

	for _, e := range r.entries {
		agg.PerCategory[string(e.metadata.Category)]++
		agg.PerSecurityLevel[string(e.metadata.SecurityLevel)]++

		s := e.stats.snapshot()
		agg.TotalExecutions += s.Total
		agg.TotalFailures += s.Failures
	}

	if agg.TotalExecutions > 0 {
		succeeded := agg.TotalExecutions - agg.TotalFailures
		agg.OverallSuccessRate = float64(succeeded) / float64(agg.TotalExecutions)
	}
	return agg
}

// validateArgs checks argument count against schema arity and, where
// possible, type assignability (spec 4.F step 2).
func validateArgs(meta ports.StepMetadata, args map[string]interface{}) error {
	allowed := make(map[string]ports.ParameterSpec, len(meta.Parameters))
	for _, p := range meta.Parameters {
		allowed[p.Name] = p
	}

	for key := range args {
		if _, ok := allowed[key]; !ok {
			return pipeline.NewBadArgsError(meta.Name, fmt.Sprintf("unknown argument %q", key))
		}
	}

	for _, p := range meta.Parameters {
		v, present := args[p.Name]
		if !present {
			if !p.HasDefault {
				return pipeline.NewBadArgsError(meta.Name, fmt.Sprintf("missing required argument %q", p.Name))
			}
			continue
		}
		if p.Type != "" && !assignable(v, p.Type) {
			return pipeline.NewBadArgsError(meta.Name, fmt.Sprintf("argument %q: expected %s, got %T", p.Name, p.Type, v))
		}
	}

	return nil
}

// assignable performs a best-effort kind check between a runtime value and a
// declared parameter type name. Go has no structural type system to consult
// at registration time the way a dynamically-typed host would, so this is
// intentionally permissive: it only rejects values whose reflect.Kind
// clearly disagrees with the declared type.
func assignable(v interface{}, declaredType string) bool {
	if v == nil {
		return true
	}
	kind := reflect.TypeOf(v).Kind().String()
	switch declaredType {
	case "string":
		return kind == "string"
	case "int", "int64", "int32":
		return kind == "int" || kind == "int64" || kind == "int32"
	case "float", "float64", "float32":
		return kind == "float64" || kind == "float32"
	case "bool":
		return kind == "bool"
	case "map":
		return kind == "map"
	case "slice", "list":
		return kind == "slice"
	default:
		return true
	}
}
