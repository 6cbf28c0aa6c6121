// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/chore/internal/adapters/config"
	_ "go.trai.ch/chore/internal/adapters/dotenv"
	_ "go.trai.ch/chore/internal/adapters/history"
	_ "go.trai.ch/chore/internal/adapters/logger"
	_ "go.trai.ch/chore/internal/adapters/shell"
	// Register app nodes.
	_ "go.trai.ch/chore/internal/app"
)
