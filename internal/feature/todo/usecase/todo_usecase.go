// Package usecase implements the business logic for the todo feature.
package usecase

import (
	"context"
	"errors"
	"fmt"

	"todo_backend/internal/feature/todo/domain/entity"
)

// TodoRepository abstracts todo persistence. Every method is scoped to the owner,
// so a todo of another user is indistinguishable from a missing one.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type TodoRepository interface {
	// ListByUser returns the user's todos, newest first.
	ListByUser(ctx context.Context, userID uint) ([]entity.Todo, error)

	// FindByID returns ErrTodoNotFound unless the todo exists and is owned by userID.
	FindByID(ctx context.Context, userID, id uint) (*entity.Todo, error)

	// Create inserts the todo and fills in ID and CreatedAt.
	Create(ctx context.Context, todo *entity.Todo) error

	// Update applies the patch and returns the stored result.
	Update(ctx context.Context, userID, id uint, patch entity.Patch) (*entity.Todo, error)

	// Delete removes the todo. Returns ErrTodoNotFound when nothing was removed.
	Delete(ctx context.Context, userID, id uint) error
}

// TodoUsecase implements per-user todo operations.
type TodoUsecase struct {
	todos TodoRepository
}

// NewTodoUsecase creates a TodoUsecase.
func NewTodoUsecase(todos TodoRepository) *TodoUsecase {
	return &TodoUsecase{todos: todos}
}

// List returns all todos of userID ordered by creation time descending.
func (u *TodoUsecase) List(ctx context.Context, userID uint) ([]entity.Todo, error) {
	todos, err := u.todos.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	if todos == nil {
		todos = []entity.Todo{}
	}
	return todos, nil
}

// Get returns a single todo owned by userID.
func (u *TodoUsecase) Get(ctx context.Context, userID, id uint) (*entity.Todo, error) {
	todo, err := u.todos.FindByID(ctx, userID, id)
	if err != nil {
		return nil, passNotFound(err, "failed to get todo")
	}
	return todo, nil
}

// Create adds a new, not yet completed todo for userID.
func (u *TodoUsecase) Create(ctx context.Context, userID uint, title, description string) (*entity.Todo, error) {
	if title == "" {
		return nil, ErrTitleRequired
	}

	todo := &entity.Todo{
		UserID:      userID,
		Title:       title,
		Description: description,
	}
	if err := u.todos.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	return todo, nil
}

// Update applies a partial update. An explicitly empty title is rejected;
// an empty patch returns the todo unchanged.
func (u *TodoUsecase) Update(ctx context.Context, userID, id uint, patch entity.Patch) (*entity.Todo, error) {
	if patch.Title != nil && *patch.Title == "" {
		return nil, ErrTitleRequired
	}
	if patch.IsEmpty() {
		return u.Get(ctx, userID, id)
	}

	todo, err := u.todos.Update(ctx, userID, id, patch)
	if err != nil {
		return nil, passNotFound(err, "failed to update todo")
	}
	return todo, nil
}

// Delete removes a todo owned by userID.
func (u *TodoUsecase) Delete(ctx context.Context, userID, id uint) error {
	if err := u.todos.Delete(ctx, userID, id); err != nil {
		return passNotFound(err, "failed to delete todo")
	}
	return nil
}

func passNotFound(err error, op string) error {
	if errors.Is(err, ErrTodoNotFound) {
		return ErrTodoNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
