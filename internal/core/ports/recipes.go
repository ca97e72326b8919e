package ports

import (
	"context"

	"go.trai.ch/exmake/internal/core/domain"
)

// RecipeRegistry looks up and invokes the recipe function a rule or task
// names, keyed by {module_identifier, recipe_name} rather than holding a
// live function value — the graph and its vertices stay comparable and
// serializable across a cache round trip.
//
//go:generate go run go.uber.org/mock/mockgen -source=recipes.go -destination=mocks/mock_recipes.go -package=mocks
type RecipeRegistry interface {
	// Invoke runs the recipe named by ref with the given invocation
	// arguments, returning any error the recipe raised or threw.
	Invoke(ctx context.Context, ref domain.RecipeRef, invocation domain.RecipeInvocation) error
}

// RecipeLoader populates a RecipeRegistry's lookup table from the compiled
// artifacts a ScriptEvaluator attached to each loaded module. The Worker
// driver calls this once per build, on both the stale and fresh cache
// paths, before any vertex is enqueued.
type RecipeLoader interface {
	LoadModules(mods []domain.ScriptMetadata) error
}
