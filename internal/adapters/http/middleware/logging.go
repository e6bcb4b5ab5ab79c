package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/networker-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/networker-service/internal/platform/logging"
)

// probePrefix marks the health endpoints, which are not logged.
const probePrefix = "/-/"

// Logging returns middleware that logs one line per API request on
// completion. The level follows the status: error for 5xx, warn for 4xx.
// The caller's subject and the protection group are included when known.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, probePrefix) {
			c.Next()
			return
		}

		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)

		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("route", c.FullPath()),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("latency", latency),
			slog.Int("bytes", c.Writer.Size()),
			slog.String("client_ip", c.ClientIP()),
		}

		if traceID := dto.GetTraceID(c); traceID != "" {
			attrs = append(attrs, slog.String("trace_id", traceID))
		}

		if group := c.Param("group"); group != "" {
			attrs = append(attrs, slog.String("protection_group", group))
		}

		if claims := GetClaims(c); claims != nil && claims.Subject != "" {
			attrs = append(attrs, slog.String("subject", claims.Subject))
		}

		logging.FromContext(c.Request.Context()).LogAttrs(c.Request.Context(), statusLevel(status), "request completed", attrs...)
	}
}

func statusLevel(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
