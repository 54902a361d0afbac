package routes

import (
	"context"
	"net/http"
	"time"

	"stickyboard/database"

	"github.com/gin-gonic/gin"
)

func RegisterHealthRoutes(group *gin.RouterGroup, db *database.Database) {
	group.GET("/health", func(c *gin.Context) { HealthCheck(c, db) })
}

func HealthCheck(c *gin.Context, db *database.Database) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := db.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
