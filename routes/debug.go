package routes

import (
	"errors"
	"net/http"
	"time"

	"stickyboard/database"
	"stickyboard/models"
	"stickyboard/repository"

	"github.com/gin-gonic/gin"
)

// RegisterDebugRoutes exposes read-only inspection endpoints. Unlike the
// public note listing, none of them create boards.
func RegisterDebugRoutes(group *gin.RouterGroup, db *database.Database) {
	debugGroup := group.Group("/debug")
	{
		debugGroup.GET("/boards/:boardName", func(c *gin.Context) {
			name := c.Param("boardName")

			board, err := repository.NewBoardRepository(db.DB).FindByName(c.Request.Context(), name)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					c.JSON(http.StatusOK, gin.H{"exists": false, "name": name, "time": time.Now()})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}

			var noteCount int64
			if err := db.DB.WithContext(c.Request.Context()).Model(&models.Note{}).Where("board_id = ?", board.ID).Count(&noteCount).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}

			c.JSON(http.StatusOK, gin.H{
				"exists":     true,
				"id":         board.ID,
				"name":       board.Name,
				"created_at": board.CreatedAt,
				"notes":      noteCount,
				"time":       time.Now(),
			})
		})

		debugGroup.GET("/event-queue", func(c *gin.Context) {
			var events []models.Event
			if err := db.DB.WithContext(c.Request.Context()).Where("dispatched = ?", false).Order("timestamp").Find(&events).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}

			c.JSON(http.StatusOK, gin.H{
				"pending_events": len(events),
				"events":         events,
				"time":           time.Now(),
			})
		})
	}
}
