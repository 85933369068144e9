// Package handler provides HTTP handlers for the auth feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"todo_backend/internal/feature/auth/domain/entity"
	"todo_backend/internal/feature/auth/transport/http/dto"
	"todo_backend/internal/feature/auth/usecase"
	"todo_backend/internal/platform/http/respond"
)

// AuthUsecase defines the use case for authentication operations.
// Following Go convention, the interface is defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	Register(ctx context.Context, username, email, password string) (*entity.User, string, error)
	Login(ctx context.Context, username, password string) (*entity.User, string, error)
}

// AuthHandler handles HTTP requests for authentication operations.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /api/register.
// - 201 with {user, token} on success
// - 400 when a field is missing or the email is taken
// - 500 on store failure
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		respond.Error(c, usecase.ErrMissingFields, "Server error during registration")
		return
	}

	user, token, err := h.auth.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		slog.Warn("register failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		respond.Error(c, err, "Server error during registration")
		return
	}

	slog.Info("user registered", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.AuthRes{User: dto.NewUserRes(user), Token: token})
}

// Login handles POST /api/login.
// - 200 with {user, token} on success
// - 400 when a field is missing
// - 401 for an unknown username or wrong password
// - 500 on store failure
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		respond.Error(c, usecase.ErrMissingCredentials, "Server error during login")
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		slog.Warn("login failed", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
		respond.Error(c, err, "Server error during login")
		return
	}

	slog.Info("user logged in", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.AuthRes{User: dto.NewUserRes(user), Token: token})
}
