package jwtmw

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"todo_backend/internal/shared/apperr"
)

var (
	// ErrTokenMissing is returned when a request carries no bearer token.
	ErrTokenMissing = apperr.Auth("Unauthorized: No token provided")

	// ErrTokenInvalid is returned for malformed, expired or badly signed tokens.
	ErrTokenInvalid = apperr.Auth("Forbidden: Invalid token")
)

// Verifier validates tokens signed by a Generator with the same secret.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewVerifier creates a Verifier for the given secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
		),
	}
}

// VerifyToken checks the signature and expiry of tokenStr and returns its claims.
// Every failure is reported as ErrTokenInvalid wrapping the parser error.
func (v *Verifier) VerifyToken(tokenStr string) (*Claims, error) {
	if tokenStr == "" {
		return nil, ErrTokenMissing
	}

	claims := &Claims{}
	token, err := v.parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, invalid(err)
	}
	if !token.Valid {
		return nil, invalid(errors.New("token is not valid"))
	}
	if claims.UserID == 0 {
		return nil, invalid(errors.New("token has no user id"))
	}
	return claims, nil
}

func invalid(cause error) error {
	return apperr.Wrap(apperr.KindAuth, ErrTokenInvalid.Message, fmt.Errorf("verify token: %w", cause))
}
