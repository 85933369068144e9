package main

import (
	"context"
	"flag"
	"time"

	"todo_backend/internal/config"
	"todo_backend/internal/platform/db"
	"todo_backend/internal/platform/logger"
	"todo_backend/internal/platform/migrate"
)

func main() {
	command := flag.String("command", "up", "migrate command (up|status|down)")
	timeout := flag.Duration("timeout", time.Minute, "command timeout")
	target := flag.Int64("target", 0, "target version for down command (optional)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat).With("component", "migrate")

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	gdb, err := db.Open(db.Config{
		Driver:         cfg.Database.Driver,
		DSN:            cfg.Database.DSN,
		ConnectTimeout: cfg.Database.ConnectTimeout,
	})
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	sqlDB, err := db.SQLDB(gdb)
	if err != nil {
		logger.Fatal("failed to access database pool", "error", err)
	}
	defer sqlDB.Close()

	runner, err := migrate.New(sqlDB, cfg.Database.Driver, log)
	if err != nil {
		logger.Fatal("failed to configure migration runner", "error", err)
	}

	switch *command {
	case "up":
		err = runner.Ensure(ctx)
	case "status":
		err = runner.Status(ctx)
	case "down":
		err = runner.Down(ctx, *target)
	default:
		logger.Fatal("unsupported command", "command", *command)
	}
	if err != nil {
		logger.Fatal("migration command failed", "command", *command, "error", err)
	}

	log.Info("migration command completed", "command", *command)
}
