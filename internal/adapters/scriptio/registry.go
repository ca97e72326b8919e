package scriptio

import (
	"context"
	"encoding/json"
	"sync"

	"go.trai.ch/exmake/internal/core/domain"
	"go.trai.ch/exmake/internal/core/ports"
	"go.trai.ch/exmake/internal/engine/environment"
	"go.trai.ch/zerr"
)

// Registry implements ports.RecipeRegistry and ports.RecipeLoader for the
// bundled YAML recipes: a map of module identifier to recipe name to an
// ordered list of shell command lines, each run through env's Reduce before
// being handed to the Executor.
type Registry struct {
	mu    sync.RWMutex
	table map[string]map[string][]string
	env   *environment.Table
	exec  ports.Executor
}

// NewRegistry creates a Registry. env is the shared environment table
// recipe command lines expand ${NAME} references against; exec runs each
// expanded command line.
func NewRegistry(env *environment.Table, exec ports.Executor) *Registry {
	return &Registry{
		table: make(map[string]map[string][]string),
		env:   env,
		exec:  exec,
	}
}

// LoadModules decodes every module's CompiledArtifact and installs its
// recipes: map under the module's identifier, replacing whatever was
// previously registered for that module.
func (r *Registry) LoadModules(mods []domain.ScriptMetadata) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, mod := range mods {
		var payload artifactPayload
		if len(mod.CompiledArtifact) == 0 {
			continue
		}
		if err := json.Unmarshal(mod.CompiledArtifact, &payload); err != nil {
			return zerr.Wrap(domain.ErrLoad, err.Error())
		}
		r.table[mod.ModuleIdentifier] = payload.Recipes
	}
	return nil
}

// Invoke runs each command line of the recipe named by ref in order,
// stopping at the first error. Every command line is expanded through the
// shared environment table before it reaches the Executor, and run as a
// shell script so that pipes, redirections, and globs work as authored.
func (r *Registry) Invoke(ctx context.Context, ref domain.RecipeRef, invocation domain.RecipeInvocation) error {
	r.mu.RLock()
	recipes, ok := r.table[ref.ModuleID]
	r.mu.RUnlock()
	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrLoad, "no recipes registered for module"), "module", ref.ModuleID)
	}

	lines, ok := recipes[ref.Name]
	if !ok {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrLoad, "recipe not found"), "module", ref.ModuleID), "recipe", ref.Name)
	}

	env := invocationEnv(ref.Arity, invocation)
	for _, line := range lines {
		expanded := r.env.Reduce(line)
		if err := r.exec.Run(ctx, invocation.Directory, env, "sh", "-c", expanded); err != nil {
			return err
		}
	}
	return nil
}

// invocationEnv exposes the invocation's arguments as SOURCES/TARGETS/NAME
// environment variables, in addition to the process environment, so that a
// shell recipe can reach $SOURCES/$TARGETS/$NAME the way a Makefile recipe
// reaches $< and $@.
func invocationEnv(arity domain.RecipeArity, inv domain.RecipeInvocation) []string {
	if arity == domain.RecipeArityLibrary {
		env := []string{"ARGS=" + joinSpace(inv.LibArgs), "TAIL_ARGS=" + joinSpace(inv.TailArgs)}
		if inv.Directory != "" {
			env = append(env, "DIRECTORY="+inv.Directory)
		}
		return env
	}

	env := []string{"SOURCES=" + joinSpace(inv.Sources)}
	switch arity {
	case domain.RecipeArityRule, domain.RecipeArityRuleDir:
		env = append(env, "TARGETS="+joinSpace(inv.Targets))
	case domain.RecipeArityTask:
		env = append(env, "NAME="+inv.Name)
	}
	if inv.Directory != "" {
		env = append(env, "DIRECTORY="+inv.Directory)
	}
	return env
}

func joinSpace(items []string) string {
	out := ""
	for i, s := range items {
		if i > 0 {
			out += " "
		}
		out += s
	}
	return out
}
