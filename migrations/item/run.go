package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ghuser/laundry-inventory/migrations"
	"github.com/ghuser/laundry-inventory/pkg/config"
	"github.com/ghuser/laundry-inventory/pkg/logger"
	"github.com/ghuser/laundry-inventory/pkg/migrator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg)
	if err := migrator.RunMigrations(context.Background(), cfg.DatabaseURL, migrations.Item(), log); err != nil {
		log.Error("migrations failed", "error", err)
		os.Exit(1)
	}
}
