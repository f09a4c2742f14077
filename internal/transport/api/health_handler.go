package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health GET RouteGroup + HealthRoute.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"message":   "ledger API is up",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
