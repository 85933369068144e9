//go:build integration

package migrate_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	authadapters "todo_backend/internal/feature/auth/adapters"
	authentity "todo_backend/internal/feature/auth/domain/entity"
	authusecase "todo_backend/internal/feature/auth/usecase"
	todoadapters "todo_backend/internal/feature/todo/adapters"
	todoentity "todo_backend/internal/feature/todo/domain/entity"
	todousecase "todo_backend/internal/feature/todo/usecase"
	"todo_backend/internal/platform/db"
	"todo_backend/internal/platform/migrate"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "todos_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/todos_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestPostgres_MigrationsAndRepositories(t *testing.T) {
	ctx := context.Background()

	gdb, err := db.Open(db.Config{Driver: "postgres", DSN: dsn, ConnectTimeout: 30 * time.Second})
	require.NoError(t, err)
	sqlDB, err := db.SQLDB(gdb)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	runner, err := migrate.New(sqlDB, "postgres", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	require.NoError(t, runner.Ensure(ctx))

	users := authadapters.NewUserGorm(gdb)
	todos := todoadapters.NewTodoRepository(gdb)

	alice := &authentity.User{Username: "alice", Email: "a@x.com", Password: "hash"}
	require.NoError(t, users.Create(ctx, alice))

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		err := users.Create(ctx, &authentity.User{Username: "bob", Email: "a@x.com", Password: "hash"})
		assert.ErrorIs(t, err, authusecase.ErrEmailAlreadyExists)
	})

	t.Run("todo lifecycle", func(t *testing.T) {
		todo := &todoentity.Todo{UserID: alice.ID, Title: "buy milk"}
		require.NoError(t, todos.Create(ctx, todo))

		done := true
		updated, err := todos.Update(ctx, alice.ID, todo.ID, todoentity.Patch{Completed: &done})
		require.NoError(t, err)
		assert.True(t, updated.Completed)
		assert.Equal(t, "buy milk", updated.Title)

		list, err := todos.ListByUser(ctx, alice.ID)
		require.NoError(t, err)
		assert.Len(t, list, 1)

		require.NoError(t, todos.Delete(ctx, alice.ID, todo.ID))
		_, err = todos.FindByID(ctx, alice.ID, todo.ID)
		assert.ErrorIs(t, err, todousecase.ErrTodoNotFound)
	})

	t.Run("todo for unknown user violates foreign key", func(t *testing.T) {
		err := todos.Create(ctx, &todoentity.Todo{UserID: 999999, Title: "orphan"})
		assert.Error(t, err)
	})

	t.Run("rollback", func(t *testing.T) {
		require.NoError(t, runner.Down(ctx, 0))
		v, err := runner.Version(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), v)
	})
}
