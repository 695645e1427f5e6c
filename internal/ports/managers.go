// Package ports declares the external interfaces the core consumes (spec
// section 6). Concrete agent runtimes, SCM retrievers, YAML grammar parsers,
// the textual DSL, CLI argument parsing and LSP integration are pluggable
// adapters behind these interfaces — the core only ever depends on the
// interface, never a concrete implementation, mirroring the teacher's own
// internal/ports package (itself a hexagonal "driven ports" layer).
package ports

import "context"

// ParameterManager stores typed pipeline parameters (spec 6).
type ParameterManager interface {
	Set(key string, value interface{})
	Get(key string, defaultValue interface{}) interface{}
}

// EnvironmentManager is the scoped key/value environment a pipeline
// execution observes and mutates (spec 6). SecretManager publishes derived
// entries into it on Bind and removes them on Unbind.
type EnvironmentManager interface {
	Get(name string, defaultValue string) string
	Set(name, value string)
	Remove(name string)
	Snapshot() map[string]string
}

// WorkspaceManager exposes the current workspace root and a filesystem
// event stream for it (spec 6).
type WorkspaceManager interface {
	Exists(path string) bool
	Resolve(relative string) (string, error)
	Events() <-chan FileEvent
}

// FileEvent is a filesystem change observed under the workspace root,
// forwarded onto the Event Bus (spec 4.B).
type FileEvent struct {
	Kind         FileEventKind
	Path         string
	Size         int64
	CreatedTime  int64
	ModifiedTime int64
}

// FileEventKind enumerates filesystem event variants (spec 4.B).
type FileEventKind string

const (
	FileCreated  FileEventKind = "created"
	FileModified FileEventKind = "modified"
	FileDeleted  FileEventKind = "deleted"
)

// SandboxManager enforces the security-level policy the Step Registry
// consults before dispatch (spec 4.F): Trusted steps bypass it entirely,
// Restricted steps are wrapped in the resource monitor and confined to the
// workspace root, Isolated steps additionally forbid thread creation and
// network access. The core never implements sandboxing itself — it only
// calls this interface and fails dispatch if it returns an error.
type SandboxManager interface {
	EnforceRestricted(ctx context.Context, workspaceRoot string) (context.Context, error)
	EnforceIsolated(ctx context.Context, workspaceRoot string) (context.Context, error)
}

// ScriptEvaluator evaluates a script path to a pipeline description (spec 6).
// The core never parses scripts itself (spec 1, Non-goals).
type ScriptEvaluator interface {
	Evaluate(ctx context.Context, scriptPath string) (EvaluatedPipeline, error)
}

// EvaluatedPipeline is the opaque result of evaluation; the launcher adapts
// it into a *pipeline.Pipeline via a caller-supplied conversion, keeping the
// core decoupled from whatever DSL runtime produced the value.
type EvaluatedPipeline interface {
	// IsPipeline reports whether evaluation actually produced a pipeline
	// value, as opposed to some other script result (spec 7, "Evaluation
	// error").
	IsPipeline() bool
}

// ConfigurationLoader loads a structured configuration document from a path
// (spec 6). This is distinct from the pipeline description grammar, which
// the core never parses.
type ConfigurationLoader interface {
	Load(ctx context.Context, path string) (map[string]interface{}, error)
}
