// Package router assembles the Gin engine and its routes.
package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "todo_backend/internal/feature/auth/transport/handler"
	todohandler "todo_backend/internal/feature/todo/transport/handler"
	"todo_backend/internal/platform/http/handler"
	"todo_backend/internal/platform/http/middleware"
	"todo_backend/internal/platform/http/respond"
	jwtmw "todo_backend/internal/platform/jwt"
	"todo_backend/internal/platform/metrics"
)

// Handlers groups the feature handlers mounted under /api.
type Handlers struct {
	Auth *authhandler.AuthHandler
	Todo *todohandler.TodoHandler
}

// Options carries the cross-cutting dependencies of the engine.
type Options struct {
	Verifier    jwtmw.TokenVerifier
	DB          handler.Pinger
	Metrics     *metrics.Metrics
	Logger      *slog.Logger
	CORSOrigins []string
}

func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(opts.Logger),
		gin.CustomRecovery(func(c *gin.Context, rec any) {
			slog.Error("panic recovered", "panic", rec, "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusInternalServerError, respond.Message{Message: "Internal server error"})
		}),
		cors.New(corsConfig(opts.CORSOrigins)),
	)
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, respond.Message{Message: "Not found"})
	})

	// operational, no auth
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	if opts.DB != nil {
		r.GET("/readyz", handler.Ready(opts.DB))
	}

	api := r.Group("/api")

	api.POST("/register", h.Auth.Register)
	api.POST("/login", h.Auth.Login)

	todos := api.Group("/todos")
	todos.Use(jwtmw.AuthRequired(opts.Verifier))
	{
		todos.GET("", h.Todo.List)
		todos.POST("", h.Todo.Create)
		todos.GET("/:id", h.Todo.Get)
		todos.PUT("/:id", h.Todo.Update)
		todos.DELETE("/:id", h.Todo.Delete)
	}

	return r
}

// corsConfig allows every origin for "*" and otherwise only the listed ones.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
