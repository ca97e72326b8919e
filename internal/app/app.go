// Package app is the composition root's handle to one configured build: it
// glues a fully wired Worker driver to the parsed CLI Config and exposes
// the single Run entry point the command layer calls.
package app

import (
	"context"

	"go.trai.ch/exmake/internal/core/domain"
	"go.trai.ch/exmake/internal/engine/worker"
)

// App wraps a *worker.Driver. The command layer may still reach Driver
// directly (e.g. to set Driver.Status from a parsed --loud flag) before
// calling Run.
type App struct {
	Driver *worker.Driver
}

// New creates an App around driver.
func New(driver *worker.Driver) *App {
	return &App{Driver: driver}
}

// Run executes one build for cfg and returns the process exit code.
func (a *App) Run(ctx context.Context, cfg domain.Config) int {
	return a.Driver.Run(ctx, cfg)
}
