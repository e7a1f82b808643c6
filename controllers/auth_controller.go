package controllers

import (
	"net/http"
	"time"

	"smart-hotel/utils"

	"github.com/gin-gonic/gin"
)

const (
	serviceName    = "smart-hotel-backend"
	serviceVersion = "1.0.0"
)

// SystemStatus handles GET /api/auth/status.
func SystemStatus(c *gin.Context) {
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"status":    "running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   serviceVersion,
		"service":   serviceName,
	}, "system is running")
}
