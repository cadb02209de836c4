package handlers

import (
	"net/http"

	"carrental/models"
	"carrental/utils"

	"github.com/gin-gonic/gin"
)

// ExtrasHandler lists the add-on catalog.
func ExtrasHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"extras": models.ExtrasCatalog})
}

// HealthHandler reports the latest dependency health snapshot. Before the first
// check completes the service reports ok.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	if status.CheckedAt.IsZero() {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": status})
		return
	}

	healthy := status.Mongo
	for _, ok := range status.Redis {
		healthy = healthy && ok
	}
	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "checks": status})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": status})
}
