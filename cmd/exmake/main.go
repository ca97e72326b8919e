// Package main is the entry point for the exmake CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"go.trai.ch/exmake/cmd/exmake/commands"
	"go.trai.ch/exmake/internal/adapters/cache"
	"go.trai.ch/exmake/internal/adapters/logger"
	"go.trai.ch/exmake/internal/adapters/scriptio"
	"go.trai.ch/exmake/internal/adapters/shell"
	"go.trai.ch/exmake/internal/adapters/telemetry"
	"go.trai.ch/exmake/internal/adapters/telemetry/progrock"
	"go.trai.ch/exmake/internal/adapters/terminalfmt"
	"go.trai.ch/exmake/internal/app"
	"go.trai.ch/exmake/internal/build"
	"go.trai.ch/exmake/internal/core/domain"
	"go.trai.ch/exmake/internal/engine/environment"
	"go.trai.ch/exmake/internal/engine/loader"
	"go.trai.ch/exmake/internal/engine/runner"
	"go.trai.ch/exmake/internal/engine/worker"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	head, tail := commands.SplitTailArgs(args)

	if commands.WantsHelp(head) {
		commands.PrintUsage(os.Stdout)
		return worker.ExitUsage
	}
	if commands.WantsVersion(head) {
		fmt.Fprintln(os.Stdout, build.Version)
		return worker.ExitUsage
	}

	log := logger.New()
	env := environment.New()
	exec := shell.NewExecutor(log)
	registry := scriptio.NewRegistry(env, exec)
	evaluator := scriptio.New()
	store := cache.NewStore(domain.CacheDirName)
	ld := loader.New(evaluator)
	rn := runner.New(registry, log)

	driver := worker.New(store, ld, rn, telemetry.NewNoOpTracer(), log, env)
	driver.Recipes = registry
	driver.Registry = registry

	cli := commands.New()
	cfg, err := cli.Parse(head, tail)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return worker.ExitError
	}

	if cfg.Options.Time {
		rec := progrock.New()
		defer rec.Close() //nolint:errcheck // best-effort tape flush on exit
		driver.Tracer = rec
	}
	driver.Status = terminalfmt.New(cfg.Options.Loud)

	a := app.New(driver)
	return a.Run(context.Background(), cfg)
}
