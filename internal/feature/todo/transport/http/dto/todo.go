// Package dto defines data transfer objects for the todo feature's HTTP transport layer.
package dto

import (
	"time"

	"todo_backend/internal/feature/todo/domain/entity"
)

// CreateTodoReq is the body of POST /api/todos. Title is validated by the usecase.
type CreateTodoReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateTodoReq is the body of PUT /api/todos/:id. Absent or null fields are left unchanged.
type UpdateTodoReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// Patch converts the request to a domain patch.
func (r UpdateTodoReq) Patch() entity.Patch {
	return entity.Patch{
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
	}
}

// TodoRes is the JSON view of a todo.
type TodoRes struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewTodoRes converts a todo entity to its JSON view.
func NewTodoRes(t *entity.Todo) TodoRes {
	return TodoRes{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
	}
}

// NewTodoList converts a slice of todos, never returning nil.
func NewTodoList(ts []entity.Todo) []TodoRes {
	out := make([]TodoRes, 0, len(ts))
	for i := range ts {
		out = append(out, NewTodoRes(&ts[i]))
	}
	return out
}

// MessageRes carries a plain confirmation message.
type MessageRes struct {
	Message string `json:"message"`
}
