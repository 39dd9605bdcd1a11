// Package web holds the gin middleware shared by every route group.
package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-wedding/internal/logging"
	"go-wedding/internal/metrics"
)

const RequestIDHeader = "X-Request-ID"

// RequestID propagates or assigns a request id and stores it on the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = logging.NewRequestID()
		}
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Request = c.Request.WithContext(logging.ContextWithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// AccessLog writes one structured line per request and feeds the HTTP metrics.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)
		status := c.Writer.Status()

		metrics.ObserveHTTP(c.Request.Method, c.FullPath(), status, elapsed)

		ev := logging.Ctx(c.Request.Context()).Info()
		if status >= http.StatusInternalServerError {
			ev = logging.Ctx(c.Request.Context()).Error()
		}
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", elapsed).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}

// Recovery turns panics into a logged 500 with the usual error body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logging.Ctx(c.Request.Context()).Error().
			Interface("panic", recovered).
			Str("path", c.Request.URL.Path).
			Msg("handler panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	})
}
