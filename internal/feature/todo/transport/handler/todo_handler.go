// Package handler provides HTTP handlers for the todo feature.
package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"todo_backend/internal/feature/todo/domain/entity"
	"todo_backend/internal/feature/todo/transport/http/dto"
	"todo_backend/internal/feature/todo/usecase"
	"todo_backend/internal/platform/http/respond"
	jwtmw "todo_backend/internal/platform/jwt"
	"todo_backend/internal/shared/apperr"
)

// TodoUsecase defines the todo operations used by the handler.
type TodoUsecase interface {
	List(ctx context.Context, userID uint) ([]entity.Todo, error)
	Get(ctx context.Context, userID, id uint) (*entity.Todo, error)
	Create(ctx context.Context, userID uint, title, description string) (*entity.Todo, error)
	Update(ctx context.Context, userID, id uint, patch entity.Patch) (*entity.Todo, error)
	Delete(ctx context.Context, userID, id uint) error
}

// TodoHandler serves /api/todos. All routes require jwtmw.AuthRequired.
type TodoHandler struct {
	uc TodoUsecase
}

// NewTodoHandler creates a TodoHandler.
func NewTodoHandler(uc TodoUsecase) *TodoHandler {
	return &TodoHandler{uc: uc}
}

// List handles GET /api/todos.
func (h *TodoHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	todos, err := h.uc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, err, "Server error fetching todos")
		return
	}
	c.JSON(http.StatusOK, dto.NewTodoList(todos))
}

// Get handles GET /api/todos/:id.
func (h *TodoHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := todoID(c)
	if !ok {
		return
	}

	todo, err := h.uc.Get(c.Request.Context(), userID, id)
	if err != nil {
		respond.Error(c, err, "Server error fetching todo")
		return
	}
	c.JSON(http.StatusOK, dto.NewTodoRes(todo))
}

// Create handles POST /api/todos.
func (h *TodoHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.CreateTodoReq
	if err := bindJSON(c, &req); err != nil {
		respond.Error(c, usecase.ErrInvalidBody, "Server error creating todo")
		return
	}

	todo, err := h.uc.Create(c.Request.Context(), userID, req.Title, req.Description)
	if err != nil {
		respond.Error(c, err, "Server error creating todo")
		return
	}
	c.JSON(http.StatusCreated, dto.NewTodoRes(todo))
}

// Update handles PUT /api/todos/:id.
func (h *TodoHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := todoID(c)
	if !ok {
		return
	}

	var req dto.UpdateTodoReq
	if err := bindJSON(c, &req); err != nil {
		respond.Error(c, usecase.ErrInvalidBody, "Server error updating todo")
		return
	}

	todo, err := h.uc.Update(c.Request.Context(), userID, id, req.Patch())
	if err != nil {
		respond.Error(c, err, "Server error updating todo")
		return
	}
	c.JSON(http.StatusOK, dto.NewTodoRes(todo))
}

// Delete handles DELETE /api/todos/:id.
func (h *TodoHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := todoID(c)
	if !ok {
		return
	}

	if err := h.uc.Delete(c.Request.Context(), userID, id); err != nil {
		respond.Error(c, err, "Server error deleting todo")
		return
	}
	c.JSON(http.StatusOK, dto.MessageRes{Message: "Todo deleted successfully"})
}

// bindJSON decodes the body into req. An empty body binds as {}.
func bindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// currentUser reads the id set by the auth middleware.
func currentUser(c *gin.Context) (uint, bool) {
	userID, ok := jwtmw.UserIDFrom(c)
	if !ok {
		respond.Error(c, jwtmw.ErrTokenMissing, "Unauthorized")
		return 0, false
	}
	return userID, true
}

// todoID parses :id. Anything that is not a positive integer cannot name a
// todo and answers 404.
func todoID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		respond.Error(c, apperr.Wrap(apperr.KindNotFound, usecase.ErrTodoNotFound.Message, err), "Todo not found")
		return 0, false
	}
	return uint(id), true
}
