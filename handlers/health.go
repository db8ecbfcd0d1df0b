package handlers

import (
	"net/http"
	"time"

	"vetassist/utils"

	"github.com/gin-gonic/gin"
)

type HealthReporter interface {
	Status() utils.HealthStatus
}

// HealthHandler handles GET /health from the monitor's latest snapshot.
func HealthHandler(monitor HealthReporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := monitor.Status()
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"mongo":     status.Mongo,
			"redis":     status.Redis,
		})
	}
}
