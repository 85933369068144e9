package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"

	"todo_backend/internal/app/di"
	"todo_backend/internal/config"
	"todo_backend/internal/platform/db"
	"todo_backend/internal/platform/logger"
	"todo_backend/internal/platform/metrics"
	"todo_backend/internal/platform/migrate"
	infraredis "todo_backend/internal/platform/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.UsesDevSecret() {
		log.Warn("JWT_SECRET is not set; using the development secret. Set a strong secret in production.")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	gdb, err := db.Open(db.Config{
		Driver:         cfg.Database.Driver,
		DSN:            cfg.Database.DSN,
		ConnectTimeout: cfg.Database.ConnectTimeout,
	})
	if err != nil {
		logger.Fatal("failed to connect database", "error", err)
	}
	sqlDB, err := db.SQLDB(gdb)
	if err != nil {
		logger.Fatal("failed to access database pool", "error", err)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			log.Error("failed to close database", "error", err)
		}
	}()

	if cfg.Database.AutoMigrate {
		runner, err := migrate.New(sqlDB, cfg.Database.Driver, log)
		if err != nil {
			logger.Fatal("failed to configure migrations", "error", err)
		}
		if err := runner.Ensure(ctx); err != nil {
			logger.Fatal("failed to apply migrations", "error", err)
		}
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(ctx, infraredis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}); err != nil {
		log.Warn("Redis unavailable. Running without cache.", "error", err)
	} else if tmp != nil {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	engine, err := di.NewEngine(cfg, di.Deps{
		DB:      gdb,
		Redis:   rdb,
		Metrics: metrics.New(),
		Logger:  log,
	})
	if err != nil {
		logger.Fatal("failed to build router", "error", err)
	}

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTP.Addr, "env", cfg.AppEnv, "db_driver", cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server failed", "error", err)
			return
		}
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		return
	}
	log.Info("server stopped")
}
