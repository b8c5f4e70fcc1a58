package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotebook/internal/platform/logging"
)

// InjectLogger puts logger in the request context. The ID middleware then
// adds its attributes to this logger rather than to slog.Default.
func InjectLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), logger))
		c.Next()
	}
}

// Logging writes one access line per request once the handler returns. The
// level follows the status class. /-/ routes and skipPaths are silent.
func Logging(logger *slog.Logger, skipPaths ...string) gin.HandlerFunc {
	silent := make(map[string]bool, len(skipPaths))
	for _, p := range skipPaths {
		silent[p] = true
	}

	return func(c *gin.Context) {
		req := c.Request
		if silent[req.URL.Path] || strings.HasPrefix(req.URL.Path, "/-/") {
			c.Next()
			return
		}

		began := time.Now()

		c.Next()

		ctx := c.Request.Context()

		log, ok := logging.Lookup(ctx)
		if !ok {
			log = logger
		}

		elapsed := time.Since(began)
		status := c.Writer.Status()

		log.LogAttrs(ctx, levelFor(status), "request completed",
			slog.String("method", req.Method),
			slog.String("path", req.URL.RequestURI()),
			slog.Int("status", status),
			slog.Duration("latency", elapsed),
			slog.Int64("latency_ms", elapsed.Milliseconds()),
			slog.Int("bytes", c.Writer.Size()),
			slog.String("client_ip", c.ClientIP()),
			slog.String("user_agent", req.UserAgent()),
		)
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
