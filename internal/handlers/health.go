package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger checks liveness of a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RegisterHealthRoutes wires the liveness endpoint.
func RegisterHealthRoutes(router *gin.Engine, stores map[string]Pinger) {
	router.GET("/healthz", func(c *gin.Context) {
		status := http.StatusOK
		checks := gin.H{}
		for name, store := range stores {
			if err := store.Ping(c.Request.Context()); err != nil {
				checks[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			checks[name] = "ok"
		}
		c.JSON(status, gin.H{"checks": checks})
	})
}
