// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	todoadapters "todo_backend/internal/feature/todo/adapters"
	"todo_backend/internal/feature/todo/usecase"
	"todo_backend/internal/platform/cache"
	"todo_backend/internal/platform/metrics"
)

// NewTodoRepository creates a TodoRepository implementation.
// If Redis is available, the GORM repository is wrapped with the list cache.
func NewTodoRepository(db *gorm.DB, rdb *redis.Client, ttl time.Duration, m *metrics.Metrics) usecase.TodoRepository {
	repo := todoadapters.NewTodoRepository(db)
	if rdb == nil {
		return repo
	}

	var opts []cache.Option
	if m != nil {
		opts = append(opts, cache.WithLookupCounter(m.CacheLookups))
	}
	return cache.NewCachingTodoRepository(rdb, ttl, repo, "todos", opts...)
}
