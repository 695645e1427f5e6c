// Package scm implements the Source Retriever (spec section 6): fetching a
// library/SCM dependency declared by a pipeline and returning a local
// artifact path. Grounded on the teacher's internal/plugins/repo plugin
// (the only pack component that uses go-git), generalized from a
// evaluate-then-apply config-drift plugin into a direct
// clone-or-update-then-return-path adapter, and wrapped in a
// sony/gobreaker circuit breaker per spec 7's "bubble up... fatal to the
// affected stage only" — a tripped breaker should fail fast rather than
// let every stage in a pipeline individually pay a clone timeout against a
// downed remote.
package scm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/sony/gobreaker"

	"github.com/pipeforge/core/internal/pipeline"
	"github.com/pipeforge/core/internal/ports"
)

// Retriever is a concrete ports.SourceRetriever backed by go-git. It clones
// a library's repository into baseDir on first retrieval and fetches plus
// checks out the requested ref on subsequent ones, returning the local
// path either way.
type Retriever struct {
	baseDir string
	breaker *gobreaker.CircuitBreaker
}

// New constructs a Retriever rooted at baseDir, wrapped in a circuit
// breaker named "source-retriever" that trips after 5 consecutive
// failures and stays open for resetTimeout before probing again.
func New(baseDir string, resetTimeout time.Duration) *Retriever {
	settings := gobreaker.Settings{
		Name:        "source-retriever",
		MaxRequests: 1,
		Timeout:     resetTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &Retriever{
		baseDir: baseDir,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

var _ ports.SourceRetriever = (*Retriever)(nil)

// Retrieve fetches libraryConfig and returns the local path it was
// materialized at (spec 6). Errors are wrapped in *ports.RetrievalError
// carrying one of the three named kinds.
func (r *Retriever) Retrieve(ctx context.Context, libraryConfig ports.LibraryConfig) (string, error) {
	if libraryConfig.URL == "" {
		return "", &ports.RetrievalError{Kind: ports.LibraryNotFound, Cause: fmt.Errorf("library %q has no source URL configured", libraryConfig.Name)}
	}

	dest := filepath.Join(r.baseDir, libraryConfig.Name)

	path, err := r.breaker.Execute(func() (interface{}, error) {
		return dest, r.retrieve(ctx, dest, libraryConfig)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", &ports.RetrievalError{Kind: ports.SourceNotFound, Cause: err}
		}
		return "", classify(err)
	}
	return path.(string), nil
}

func (r *Retriever) retrieve(ctx context.Context, dest string, cfg ports.LibraryConfig) error {
	repo, err := git.PlainOpen(dest)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return r.clone(ctx, dest, cfg)
	}
	if err != nil {
		return r.clone(ctx, dest, cfg)
	}
	return r.checkout(ctx, repo, cfg)
}

func (r *Retriever) clone(ctx context.Context, dest string, cfg ports.LibraryConfig) error {
	opts := &git.CloneOptions{URL: cfg.URL}
	if cfg.Ref != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(cfg.Ref)
	}
	if _, err := git.PlainCloneContext(ctx, dest, false, opts); err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return fmt.Errorf("source retrieval: ref %q: %w", cfg.Ref, err)
		}
		if errors.Is(err, transport.ErrRepositoryNotFound) {
			return fmt.Errorf("source retrieval: repository: %w", err)
		}
		return fmt.Errorf("source retrieval: clone: %w", err)
	}
	return nil
}

func (r *Retriever) checkout(ctx context.Context, repo *git.Repository, cfg ports.LibraryConfig) error {
	remote, err := repo.Remote("origin")
	if err != nil || len(remote.Config().URLs) == 0 || remote.Config().URLs[0] != cfg.URL {
		return fmt.Errorf("source retrieval: remote drifted from %q", cfg.URL)
	}

	if err := repo.FetchContext(ctx, &git.FetchOptions{RemoteName: "origin"}); err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("source retrieval: fetch: %w", err)
	}

	if cfg.Ref == "" {
		return nil
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("source retrieval: worktree: %w", err)
	}
	if err := wt.Checkout(&git.CheckoutOptions{Branch: plumbing.NewBranchReferenceName(cfg.Ref)}); err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return fmt.Errorf("source retrieval: ref %q: %w", cfg.Ref, err)
		}
		return fmt.Errorf("source retrieval: checkout: %w", err)
	}
	return nil
}

// classify maps an underlying go-git error to the named RetrievalErrorKind
// spec 6 calls for. JarFileNotFound is defined in ports for completeness
// with spec 6's enumeration but is never produced by this adapter: it
// describes a built-artifact lookup (e.g. a Maven-style jar) that a
// git-backed retriever has no equivalent of — no JVM-artifact client
// exists anywhere in the corpus for a jar-retrieving adapter to be
// grounded on.
func classify(err error) error {
	var existing *ports.RetrievalError
	if errors.As(err, &existing) {
		return existing
	}
	if errors.Is(err, transport.ErrRepositoryNotFound) {
		return &ports.RetrievalError{Kind: ports.SourceNotFound, Cause: err}
	}
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return &ports.RetrievalError{Kind: ports.SourceNotFound, Cause: err}
	}
	if os.IsPermission(err) {
		return &ports.RetrievalError{Kind: ports.LibraryNotFound, Cause: err}
	}
	return &ports.RetrievalError{Kind: ports.SourceNotFound, Cause: err}
}

// ToEngineError converts a retrieval failure into the stage-fatal
// *pipeline.EngineError the runtime records (spec 7, "fatal to the
// affected stage only").
func ToEngineError(stepName string, err error) *pipeline.EngineError {
	var re *ports.RetrievalError
	kind := "unknown"
	if errors.As(err, &re) {
		kind = string(re.Kind)
	}
	return pipeline.NewEngineError(pipeline.ErrCodeSourceRetrieval, "source retrieval failed", err, map[string]interface{}{
		"step": stepName,
		"kind": kind,
	})
}
