// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/npmwrap/internal/adapters/config"
	_ "go.trai.ch/npmwrap/internal/adapters/logger"
	_ "go.trai.ch/npmwrap/internal/adapters/nix"
	_ "go.trai.ch/npmwrap/internal/adapters/shell"
	_ "go.trai.ch/npmwrap/internal/adapters/telemetry"
	// Register the app node.
	_ "go.trai.ch/npmwrap/internal/app"
)
