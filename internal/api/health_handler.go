package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports storage connectivity.
type HealthChecker interface {
	Health() error
}

// HealthHandler handles liveness probes.
type HealthHandler struct {
	db HealthChecker
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db HealthChecker) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check reports service and database health.
// GET /health.
func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.db.Health(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
