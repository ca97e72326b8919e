// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/exmake/internal/adapters/cache"
	_ "go.trai.ch/exmake/internal/adapters/logger"
	_ "go.trai.ch/exmake/internal/adapters/scriptio"
	_ "go.trai.ch/exmake/internal/adapters/shell"
	_ "go.trai.ch/exmake/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/exmake/internal/app"
)
