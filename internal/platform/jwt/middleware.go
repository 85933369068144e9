package jwtmw

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextClaims is the gin context key holding the verified *Claims.
const ContextClaims = "authClaims"

// TokenVerifier verifies a raw token string.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*Claims, error)
}

// AuthRequired returns a Gin middleware that admits only requests carrying a
// valid bearer token. A missing token answers 401 and an invalid one 403.
func AuthRequired(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := BearerToken(c.GetHeader("Authorization"))
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": ErrTokenMissing.Message})
			return
		}

		claims, err := v.VerifyToken(tokenStr)
		if err != nil {
			if errors.Is(err, ErrTokenMissing) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": ErrTokenMissing.Message})
				return
			}
			slog.Debug("token rejected", "error", err, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": ErrTokenInvalid.Message})
			return
		}

		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// BearerToken extracts the token from an Authorization header value.
// Anything other than "Bearer <token>" yields "".
func BearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// ClaimsFrom returns the claims stored by AuthRequired.
func ClaimsFrom(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok && claims != nil
}

// UserIDFrom returns the authenticated user's id.
func UserIDFrom(c *gin.Context) (uint, bool) {
	claims, ok := ClaimsFrom(c)
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}
