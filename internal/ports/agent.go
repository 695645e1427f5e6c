package ports

import (
	"context"

	"github.com/pipeforge/core/internal/pipeline"
)

// AgentManager adapts a single Agent kind to a concrete execution
// environment (spec 6). The core ships no implementations — Docker image
// building and Kubernetes pod orchestration are explicitly out of scope
// (spec 1) and live behind this interface only.
type AgentManager interface {
	CanHandle(agent pipeline.Agent) bool
	Execute(ctx context.Context, p *pipeline.Pipeline, config interface{}, files []string) (AgentResult, error)
}

// AgentResult is the outcome an AgentManager hands back to the Job Launcher.
type AgentResult struct {
	ExitCode int
	Output   string
}

// SourceRetriever fetches a library/SCM dependency declared by a pipeline
// and returns a local artifact path (spec 6). Error kinds are named, not
// typed, per spec 6: LibraryNotFound, SourceNotFound, JarFileNotFound.
type SourceRetriever interface {
	Retrieve(ctx context.Context, libraryConfig LibraryConfig) (string, error)
}

// LibraryConfig describes a single source dependency to retrieve.
type LibraryConfig struct {
	Name string
	URL  string
	Ref  string
}

// RetrievalErrorKind enumerates the named fatal-to-the-stage error kinds a
// SourceRetriever may report (spec 6, 7).
type RetrievalErrorKind string

const (
	LibraryNotFound RetrievalErrorKind = "LibraryNotFound"
	SourceNotFound  RetrievalErrorKind = "SourceNotFound"
	JarFileNotFound RetrievalErrorKind = "JarFileNotFound"
)

// RetrievalError wraps a RetrievalErrorKind with the underlying cause.
type RetrievalError struct {
	Kind  RetrievalErrorKind
	Cause error
}

func (e *RetrievalError) Error() string {
	if e.Cause != nil {
		return string(e.Kind) + ": " + e.Cause.Error()
	}
	return string(e.Kind)
}

func (e *RetrievalError) Unwrap() error { return e.Cause }
