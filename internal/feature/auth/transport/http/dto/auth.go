// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

import "todo_backend/internal/feature/auth/domain/entity"

// RegisterReq represents the request body for POST /api/register.
type RegisterReq struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginReq represents the request body for POST /api/login.
type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserRes is the public view of a user. The password hash is never exposed.
type UserRes struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthRes is returned by both register and login.
type AuthRes struct {
	User  UserRes `json:"user"`
	Token string  `json:"token"`
}

// NewUserRes converts a user entity to its public view.
func NewUserRes(u *entity.User) UserRes {
	return UserRes{ID: u.ID, Username: u.Username, Email: u.Email}
}
