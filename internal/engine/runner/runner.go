// Package runner implements the Runner: one recipe execution in isolation,
// enforcing the recipe contract (unchanged working directory, declared
// outputs exist), cleaning up partial outputs on failure.
package runner

import (
	"context"
	"os"
	"time"

	"go.trai.ch/exmake/internal/core/domain"
	"go.trai.ch/exmake/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner executes a single rule or task vertex's recipe.
type Runner struct {
	registry ports.RecipeRegistry
	logger   ports.Logger
}

// New creates a Runner backed by registry for recipe lookups and logger for
// diagnostics.
func New(registry ports.RecipeRegistry, logger ports.Logger) *Runner {
	return &Runner{registry: registry, logger: logger}
}

// Result is the outcome the Runner reports back to the Coordinator: either
// nil on success or a non-nil error describing why the vertex failed.
type Result struct {
	Err error
}

// Run executes v's recipe to completion, synchronously. Callers (the
// Coordinator's worker goroutines) are expected to run this inside its own
// goroutine, bounded by the semaphore.
func (r *Runner) Run(ctx context.Context, v *domain.Vertex) Result {
	if err := r.checkSourcesExist(v); err != nil {
		return Result{Err: err}
	}

	if !r.isStale(v) {
		r.logger.Debug(v.String() + " is up to date")
		return Result{Err: nil}
	}

	before, err := os.Getwd()
	if err != nil {
		return Result{Err: zerr.Wrap(domain.ErrScript, err.Error())}
	}

	invocation := domain.RecipeInvocation{
		Directory: v.Directory().String(),
	}
	switch v.Kind {
	case domain.VertexKindTask:
		invocation.Name = v.Task.Name.String()
		invocation.Sources = stringsOf(v.Task.Sources)
	case domain.VertexKindRule:
		invocation.Sources = stringsOf(v.Rule.Sources)
		invocation.Targets = stringsOf(v.Rule.Targets)
	}

	invokeErr := r.registry.Invoke(ctx, v.Recipe(), invocation)

	after, err := os.Getwd()
	if err != nil {
		return Result{Err: zerr.Wrap(domain.ErrScript, err.Error())}
	}
	if after != before {
		r.cleanup(v)
		return Result{Err: zerr.With(
			zerr.With(zerr.Wrap(domain.ErrScript, "recipe for rule '"+v.String()+"' changed directory from '"+before+"' to '"+after+"'"), "from", before),
			"to", after,
		)}
	}

	if invokeErr != nil {
		r.cleanup(v)
		return Result{Err: zerr.Wrap(domain.ErrThrow, invokeErr.Error())}
	}

	if v.Kind == domain.VertexKindRule {
		for _, target := range v.Rule.Targets {
			if !exists(target.String()) {
				r.cleanup(v)
				return Result{Err: zerr.With(
					zerr.Wrap(domain.ErrScript, "recipe for rule '"+v.String()+"' did not produce '"+target.String()+"' as expected"),
					"target", target.String(),
				)}
			}
		}
	}

	return Result{Err: nil}
}

// checkSourcesExist enforces the existence check: every source of a rule,
// or every real source of a task, must exist on disk.
func (r *Runner) checkSourcesExist(v *domain.Vertex) error {
	var sources []domain.InternedString
	switch v.Kind {
	case domain.VertexKindTask:
		sources = v.Task.RealSources
	case domain.VertexKindRule:
		sources = v.Rule.Sources
	}
	for _, src := range sources {
		if !exists(src.String()) {
			return zerr.With(zerr.Wrap(domain.ErrUsage, "No rule to make target '"+src.String()+"'"), "source", src.String())
		}
	}
	return nil
}

// isStale applies the staleness rule of §4.5: tasks and fallbacks always
// run; a rule runs iff its newest source is newer than its oldest target,
// and a missing target forces a build (epoch mtime).
func (r *Runner) isStale(v *domain.Vertex) bool {
	if v.Kind == domain.VertexKindTask {
		return true
	}
	return IsRuleStale(v.Rule)
}

// IsRuleStale reports whether rule must run, applying the same timestamp
// comparison the Runner and the --question pre-check both use.
func IsRuleStale(rule domain.Rule) bool {
	if len(rule.Targets) == 0 {
		return true
	}
	newestSource := epoch()
	for _, s := range rule.Sources {
		if t := mtime(s.String()); t.After(newestSource) {
			newestSource = t
		}
	}
	oldestTarget := time.Now()
	hasTarget := false
	for _, tgt := range rule.Targets {
		if !exists(tgt.String()) {
			return true
		}
		t := mtime(tgt.String())
		if !hasTarget || t.Before(oldestTarget) {
			oldestTarget = t
			hasTarget = true
		}
	}
	return newestSource.After(oldestTarget)
}

// cleanup deletes every declared target file, best effort, ignoring I/O
// failures per the failure-cleanup contract.
func (r *Runner) cleanup(v *domain.Vertex) {
	if v.Kind != domain.VertexKindRule {
		return
	}
	for _, target := range v.Rule.Targets {
		_ = os.Remove(target.String())
	}
}

func stringsOf(ss []domain.InternedString) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = s.String()
	}
	return out
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func mtime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return epoch()
	}
	return info.ModTime()
}

func epoch() time.Time {
	return time.Unix(0, 0)
}
