// Command dashctl administers a dashboard deployment against the stores
// configured through the same environment as the server.
package main

import (
	"context"
	"os"

	"github.com/founderdash/dashboard/internal/app"
	"github.com/founderdash/dashboard/internal/config"
	"github.com/founderdash/dashboard/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level)
	defer logger.Sync()

	ctx := context.Background()
	a, err := app.Open(ctx, cfg)
	if err != nil {
		logger.Fatalf("open backends: %v", err)
	}
	defer a.Close(ctx)

	if cfg.Storage.Backend == "memory" || cfg.Session.Store == "memory" {
		logger.Warnf("storage=%s sessions=%s: in-memory data is lost when dashctl exits", cfg.Storage.Backend, cfg.Session.Store)
	}

	root := SetupCommands(a, cfg)
	root.SetOut(os.Stdout)
	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
