package middleware

import (
	"time"

	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"weddingdesk/internal/dto"
)

// LoggingMiddleware logs every request with method, path, status and
// latency.
func LoggingMiddleware() ginext.HandlerFunc {
	return func(c *ginext.Context) {
		start := time.Now()
		c.Next()
		zlog.Logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

// AdminAuth gates mutating routes behind the shared admin token. The
// engines downstream assume every call is pre-authorized.
func AdminAuth(token string) ginext.HandlerFunc {
	return func(c *ginext.Context) {
		if token == "" || c.GetHeader("X-Admin-Token") != token {
			c.JSON(401, dto.Response{
				Status: "error",
				Error:  &dto.Error{Code: "UNAUTHORIZED", Desc: "Admin token required"},
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
