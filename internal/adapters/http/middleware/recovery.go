package middleware

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotebook/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotebook/internal/platform/logging"
)

// Recovery logs a handler panic with its stack and answers 500 unless the
// handler already started writing. Install it before everything else.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				recovered(c, logger, r)
			}
		}()

		c.Next()
	}
}

func recovered(c *gin.Context, fallback *slog.Logger, r any) {
	log, ok := logging.Lookup(c.Request.Context())
	if !ok {
		log = fallback
	}

	log.ErrorContext(c.Request.Context(), "panic recovered",
		slog.String("panic", fmt.Sprint(r)),
		slog.String("stack", string(debug.Stack())),
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("trace_id", dto.GetTraceID(c)),
	)

	if c.Writer.Written() {
		c.Abort()
		return
	}

	abortWithError(c, dto.ErrorCodeInternal, "an internal error occurred")
}

// abortWithError stops the chain with an error envelope whose status comes
// from code.
func abortWithError(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(dto.HTTPStatusFromCode(code),
		dto.NewErrorResponse(code, message).WithTraceID(dto.GetTraceID(c)))
}

