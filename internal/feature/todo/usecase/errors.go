package usecase

import "todo_backend/internal/shared/apperr"

var (
	// ErrTitleRequired is returned when a todo is created or updated with an empty title.
	ErrTitleRequired = apperr.Validation("Title is required")

	// ErrInvalidBody is returned when the request body is not valid JSON.
	ErrInvalidBody = apperr.Validation("Invalid request body")

	// ErrTodoNotFound is returned when the todo does not exist or belongs to another user.
	ErrTodoNotFound = apperr.NotFound("Todo not found")
)
