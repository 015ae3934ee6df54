// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/pipgen/internal/adapters/buildfiles"
	_ "go.trai.ch/pipgen/internal/adapters/config"
	_ "go.trai.ch/pipgen/internal/adapters/fs"
	_ "go.trai.ch/pipgen/internal/adapters/lockfile"
	_ "go.trai.ch/pipgen/internal/adapters/logger"
	_ "go.trai.ch/pipgen/internal/adapters/requirements"
	_ "go.trai.ch/pipgen/internal/adapters/resolver"
	// Register app and engine nodes.
	_ "go.trai.ch/pipgen/internal/app"
	_ "go.trai.ch/pipgen/internal/engine/merge"
)
