package scriptio

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/exmake/internal/adapters/shell"
	"go.trai.ch/exmake/internal/core/ports"
	"go.trai.ch/exmake/internal/engine/environment"
)

// EvaluatorNodeID identifies the bundled ScriptEvaluator in the graft DI
// graph.
const EvaluatorNodeID graft.ID = "adapter.script_evaluator"

// RegistryNodeID identifies the bundled recipe registry, which doubles as
// ports.RecipeLoader.
const RegistryNodeID graft.ID = "adapter.recipe_registry"

// EnvNodeID identifies the process-wide environment table shared between
// the registry and the Worker driver.
const EnvNodeID graft.ID = "engine.environment_table"

// RecipeRegistryNodeID and RecipeLoaderNodeID expose the same *Registry
// under ports.RecipeRegistry and ports.RecipeLoader respectively.
const (
	RecipeRegistryNodeID graft.ID = "adapter.recipe_registry.as_registry"
	RecipeLoaderNodeID   graft.ID = "adapter.recipe_registry.as_loader"
)

func init() {
	graft.Register(graft.Node[ports.ScriptEvaluator]{
		ID:        EvaluatorNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ScriptEvaluator, error) {
			return New(), nil
		},
	})

	graft.Register(graft.Node[*environment.Table]{
		ID:        EnvNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*environment.Table, error) {
			return environment.New(), nil
		},
	})

	graft.Register(graft.Node[*Registry]{
		ID:        RegistryNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{EnvNodeID, shell.NodeID},
		Run: func(ctx context.Context) (*Registry, error) {
			env, err := graft.Dep[*environment.Table](ctx)
			if err != nil {
				return nil, err
			}
			exec, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			return NewRegistry(env, exec), nil
		},
	})

	// RecipeRegistryNodeID and RecipeLoaderNodeID wrap the same *Registry
	// instance under its two port interfaces, since graft.Dep resolves by
	// concrete type parameter and Invoke/LoadModules must share state.
	graft.Register(graft.Node[ports.RecipeRegistry]{
		ID:        RecipeRegistryNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{RegistryNodeID},
		Run: func(ctx context.Context) (ports.RecipeRegistry, error) {
			return graft.Dep[*Registry](ctx)
		},
	})

	graft.Register(graft.Node[ports.RecipeLoader]{
		ID:        RecipeLoaderNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{RegistryNodeID},
		Run: func(ctx context.Context) (ports.RecipeLoader, error) {
			return graft.Dep[*Registry](ctx)
		},
	})
}
