package main

import (
	"context"
	"log"

	"moodle-bridge/internal/config"
	"moodle-bridge/internal/database"
	"moodle-bridge/internal/logger"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	dir := pflag.String("dir", "database/migrations", "directory containing *.up.sql / *.down.sql files")
	down := pflag.Bool("down", false, "apply down migrations in reverse order")
	pflag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	ctx := context.Background()
	db, err := database.NewMigrateOracleDB(ctx, cfg.GetDSN())
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	direction := database.Up
	if *down {
		direction = database.Down
	}
	if err := database.RunMigrations(ctx, db, *dir, direction); err != nil {
		l.Fatal("Failed to run migrations", zap.Error(err), zap.String("direction", string(direction)))
	}
	l.Info("Migrations applied", zap.String("dir", *dir), zap.String("direction", string(direction)))
}
