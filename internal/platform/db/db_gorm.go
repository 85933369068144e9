// Package db opens the gorm connection used by every repository.
package db

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	gmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// retryInterval is the pause between connection attempts.
var retryInterval = 3 * time.Second

// Config selects the SQL backend.
type Config struct {
	Driver         string // sqlite, postgres or mysql
	DSN            string
	ConnectTimeout time.Duration
}

// Opener opens a gorm connection for a DSN. Tests substitute it.
type Opener func(dsn string) (*gorm.DB, error)

// BuildDSN normalizes the DSN for the selected driver.
//   - sqlite: foreign keys are switched on for every pooled connection.
//   - mysql: parseTime, utf8mb4 and local time are forced so timestamps scan into time.Time.
//   - postgres: passed through unchanged.
func BuildDSN(cfg Config) (string, error) {
	switch cfg.Driver {
	case "sqlite":
		if strings.Contains(cfg.DSN, "_foreign_keys") || strings.Contains(cfg.DSN, "_fk=") {
			return cfg.DSN, nil
		}
		sep := "?"
		if strings.Contains(cfg.DSN, "?") {
			sep = "&"
		}
		return cfg.DSN + sep + "_foreign_keys=on", nil
	case "mysql":
		mc, err := mysql.ParseDSN(cfg.DSN)
		if err != nil {
			return "", fmt.Errorf("invalid mysql dsn: %w", err)
		}
		mc.ParseTime = true
		mc.Loc = time.Local
		if mc.Params == nil {
			mc.Params = map[string]string{}
		}
		mc.Params["charset"] = "utf8mb4"
		return mc.FormatDSN(), nil
	case "postgres":
		return cfg.DSN, nil
	default:
		return "", fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
}

// Dialector returns the gorm dialector for driver.
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite":
		return sqlite.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return gmysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
}

// GormConfig is shared by the server and repository tests.
// TranslateError maps driver unique violations to gorm.ErrDuplicatedKey.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         NewGormLogger(nil),
	}
}

// NewGormLogger sends gorm's warnings, errors and slow queries to log
// (slog.Default when nil). Lookups that find nothing are not logged.
func NewGormLogger(log *slog.Logger) gormlogger.Interface {
	return gormlogger.New(slogWriter{log: log}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

type slogWriter struct {
	log *slog.Logger
}

func (w slogWriter) Printf(format string, args ...any) {
	log := w.log
	if log == nil {
		log = slog.Default()
	}
	log.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)), "component", "gorm")
}

// ConnectWithRetry calls open until it succeeds or timeout elapses.
// Databases started alongside the API (docker compose) are often not ready on the first attempt.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("db connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// Open connects to the configured database.
func Open(cfg Config) (*gorm.DB, error) {
	dsn, err := BuildDSN(cfg)
	if err != nil {
		return nil, err
	}
	opener := func(dsn string) (*gorm.DB, error) {
		dialector, err := Dialector(cfg.Driver, dsn)
		if err != nil {
			return nil, err
		}
		return gorm.Open(dialector, GormConfig())
	}
	db, err := ConnectWithRetry(dsn, cfg.ConnectTimeout, opener)
	if err != nil {
		return nil, err
	}
	if cfg.Driver == "sqlite" {
		// sqlite allows one writer; a single connection also keeps :memory: databases shared.
		sqlDB, err := SQLDB(db)
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	slog.Info("database connected", "driver", cfg.Driver)
	return db, nil
}

// SQLDB exposes the pooled *sql.DB behind a gorm handle.
func SQLDB(db *gorm.DB) (*sql.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql.DB: %w", err)
	}
	return sqlDB, nil
}
