// Package respond writes the JSON error envelope shared by every handler.
package respond

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"todo_backend/internal/shared/apperr"
)

// Message is the body of every error response.
type Message struct {
	Message string `json:"message"`
}

// Error maps err to a status through its apperr.Kind and writes {"message": ...}.
// Internal errors are logged and answered with fallback so store details never leak.
func Error(c *gin.Context, err error, fallback string) {
	kind := apperr.KindOf(err)
	status := apperr.HTTPStatus(kind)

	if kind == apperr.KindInternal {
		slog.Error(fallback, "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
	} else {
		slog.Debug("request rejected", "kind", kind.String(), "error", err, "path", c.FullPath())
	}

	c.JSON(status, Message{Message: apperr.MessageOf(err, fallback)})
}
