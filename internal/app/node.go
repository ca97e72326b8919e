package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/exmake/internal/adapters/cache"
	"go.trai.ch/exmake/internal/adapters/logger"
	"go.trai.ch/exmake/internal/adapters/scriptio"
	"go.trai.ch/exmake/internal/adapters/telemetry"
	"go.trai.ch/exmake/internal/core/ports"
	"go.trai.ch/exmake/internal/engine/environment"
	"go.trai.ch/exmake/internal/engine/loader"
	"go.trai.ch/exmake/internal/engine/runner"
	"go.trai.ch/exmake/internal/engine/worker"
)

// NodeID is the unique identifier for the main App Graft node.
const NodeID graft.ID = "app.main"

func init() {
	graft.Register(graft.Node[*App]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			cache.NodeID,
			scriptio.EvaluatorNodeID,
			scriptio.EnvNodeID,
			scriptio.RecipeRegistryNodeID,
			scriptio.RecipeLoaderNodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: runAppNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	store, err := graft.Dep[ports.CacheStore](ctx)
	if err != nil {
		return nil, err
	}
	evaluator, err := graft.Dep[ports.ScriptEvaluator](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}
	env, err := graft.Dep[*environment.Table](ctx)
	if err != nil {
		return nil, err
	}
	registry, err := graft.Dep[ports.RecipeRegistry](ctx)
	if err != nil {
		return nil, err
	}
	recipeLoader, err := graft.Dep[ports.RecipeLoader](ctx)
	if err != nil {
		return nil, err
	}

	ld := loader.New(evaluator)
	rn := runner.New(registry, log)
	driver := worker.New(store, ld, rn, tracer, log, env)
	driver.Recipes = recipeLoader
	driver.Registry = registry

	return New(driver), nil
}
