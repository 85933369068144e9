package di

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"todo_backend/internal/app/router"
	"todo_backend/internal/config"
	authadapters "todo_backend/internal/feature/auth/adapters"
	authhandler "todo_backend/internal/feature/auth/transport/handler"
	authusecase "todo_backend/internal/feature/auth/usecase"
	todohandler "todo_backend/internal/feature/todo/transport/handler"
	todousecase "todo_backend/internal/feature/todo/usecase"
	"todo_backend/internal/platform/db"
	jwtmw "todo_backend/internal/platform/jwt"
	"todo_backend/internal/platform/metrics"
)

// Deps are the already-opened external resources. Redis may be nil.
type Deps struct {
	DB      *gorm.DB
	Redis   *redis.Client
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// NewEngine wires repositories, usecases and handlers into a router.
func NewEngine(cfg *config.Config, deps Deps) (*gin.Engine, error) {
	sqlDB, err := db.SQLDB(deps.DB)
	if err != nil {
		return nil, fmt.Errorf("readiness probe: %w", err)
	}

	// Repository
	userRepo := authadapters.NewUserGorm(deps.DB)
	todoRepo := NewTodoRepository(deps.DB, deps.Redis, cfg.Redis.CacheTTL, deps.Metrics)

	// Token
	tokens := jwtmw.NewGenerator(cfg.JWT.Secret, cfg.JWT.TTL)
	verifier := jwtmw.NewVerifier(cfg.JWT.Secret)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, tokens, cfg.BcryptCost)
	todoUC := todousecase.NewTodoUsecase(todoRepo)

	// Handler
	handlers := router.Handlers{
		Auth: authhandler.NewAuthHandler(authUC),
		Todo: todohandler.NewTodoHandler(todoUC),
	}

	return router.NewRouter(handlers, router.Options{
		Verifier:    verifier,
		DB:          sqlDB,
		Metrics:     deps.Metrics,
		Logger:      deps.Logger,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	}), nil
}
