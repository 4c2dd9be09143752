package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Root answers the bare test route.
func (h *Handlers) Root(c *gin.Context) {
	c.String(http.StatusOK, "Coastwatch backend API running")
}

// HealthCheck returns the service health status
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "coastwatch",
	})
}
