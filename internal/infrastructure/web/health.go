package web

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is any dependency whose liveness can be checked.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Healthz answers 200 when every dependency responds within two seconds and
// 503 otherwise, reporting each one by name.
func Healthz(deps map[string]Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := make(gin.H, len(deps))
		for name, d := range deps {
			if err := d.Ping(ctx); err != nil {
				status = http.StatusServiceUnavailable
				checks[name] = err.Error()
				continue
			}
			checks[name] = "ok"
		}
		state := "ok"
		if status != http.StatusOK {
			state = "degraded"
		}
		c.JSON(status, gin.H{"status": state, "checks": checks})
	}
}
