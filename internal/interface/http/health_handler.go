package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/carehome-admin/pkg/response"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Healthz GET /healthz reports whether the database answers within 2s.
func Healthz(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				response.Error[any](c, http.StatusServiceUnavailable, "database unavailable", nil)
				return
			}
		}
		response.Success[any](c, http.StatusOK, gin.H{"status": "ok"}, "healthy", nil)
	}
}
