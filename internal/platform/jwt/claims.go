// Package jwtmw issues and verifies HS256 session tokens and provides the
// Gin middleware that guards authenticated routes.
package jwtmw

import "github.com/golang-jwt/jwt/v5"

// Claims is the token payload. iat and exp come from the embedded
// RegisteredClaims.
type Claims struct {
	UserID   uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}
