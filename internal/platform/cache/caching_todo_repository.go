// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"todo_backend/internal/feature/todo/domain/entity"
	"todo_backend/internal/feature/todo/usecase"
)

// CachingTodoRepository decorates a TodoRepository with a Redis cache of
// each user's todo list. Single-todo reads go straight to the store.
// Every successful write deletes the owner's list entry before returning.
type CachingTodoRepository struct {
	inner     usecase.TodoRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
	lookups   *prometheus.CounterVec
}

var _ usecase.TodoRepository = (*CachingTodoRepository)(nil)

// Option configures a CachingTodoRepository.
type Option func(*CachingTodoRepository)

// WithLookupCounter counts cache lookups by result ("hit" or "miss").
func WithLookupCounter(c *prometheus.CounterVec) Option {
	return func(r *CachingTodoRepository) { r.lookups = c }
}

// NewCachingTodoRepository decorates a TodoRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "todos".
func NewCachingTodoRepository(rdb *redis.Client, ttl time.Duration, inner usecase.TodoRepository, namespace string, opts ...Option) *CachingTodoRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "todos"
	}
	r := &CachingTodoRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ListByUser checks the cache first and falls back to the store.
func (c *CachingTodoRepository) ListByUser(ctx context.Context, userID uint) ([]entity.Todo, error) {
	if c.rdb == nil {
		return c.inner.ListByUser(ctx, userID)
	}

	key := c.listKey(userID)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Todo
		if err := json.Unmarshal(b, &out); err == nil {
			c.count("hit")
			return out, nil
		}
		// corrupted entry
		_ = c.rdb.Del(ctx, key).Err()
	}
	c.count("miss")

	out, err := c.inner.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
			slog.Warn("todo list cache store failed", "user_id", userID, "error", err)
		}
	}
	return out, nil
}

func (c *CachingTodoRepository) FindByID(ctx context.Context, userID, id uint) (*entity.Todo, error) {
	return c.inner.FindByID(ctx, userID, id)
}

func (c *CachingTodoRepository) Create(ctx context.Context, todo *entity.Todo) error {
	if err := c.inner.Create(ctx, todo); err != nil {
		return err
	}
	c.invalidate(ctx, todo.UserID)
	return nil
}

func (c *CachingTodoRepository) Update(ctx context.Context, userID, id uint, patch entity.Patch) (*entity.Todo, error) {
	todo, err := c.inner.Update(ctx, userID, id, patch)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, userID)
	return todo, nil
}

func (c *CachingTodoRepository) Delete(ctx context.Context, userID, id uint) error {
	if err := c.inner.Delete(ctx, userID, id); err != nil {
		return err
	}
	c.invalidate(ctx, userID)
	return nil
}

// invalidate is best effort: the write already succeeded, and the TTL
// bounds how long a stale list can be served if the delete fails.
func (c *CachingTodoRepository) invalidate(ctx context.Context, userID uint) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, c.listKey(userID)).Err(); err != nil {
		slog.Warn("todo list cache invalidation failed", "user_id", userID, "error", err)
	}
}

func (c *CachingTodoRepository) listKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d", c.namespace, userID)
}

func (c *CachingTodoRepository) count(result string) {
	if c.lookups != nil {
		c.lookups.WithLabelValues(result).Inc()
	}
}
