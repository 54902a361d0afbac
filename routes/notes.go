package routes

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"stickyboard/database"
	"stickyboard/models"
	"stickyboard/services"

	"github.com/gin-gonic/gin"
)

func RegisterNoteRoutes(group *gin.RouterGroup, db *database.Database, noteService services.NoteServiceInterface) {
	// Board-scoped collection
	group.GET("/boards/:boardName/notes", func(c *gin.Context) { GetBoardNotes(c, db, noteService) })
	group.POST("/boards/:boardName/notes", func(c *gin.Context) { CreateNote(c, db, noteService) })

	// Resource-specific endpoints
	group.PUT("/notes/:id", func(c *gin.Context) { UpdateNote(c, db, noteService) })
	group.DELETE("/notes/:id", func(c *gin.Context) { DeleteNote(c, db, noteService) })
}

func GetBoardNotes(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	notes, err := noteService.ListNotes(c.Request.Context(), db, c.Param("boardName"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

func CreateNote(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	var note models.Note
	if err := c.ShouldBindJSON(&note); err != nil {
		respondError(c, fmt.Errorf("%w: %v", services.ErrInvalidInput, err))
		return
	}

	createdNote, err := noteService.CreateNote(c.Request.Context(), db, c.Param("boardName"), note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, createdNote)
}

func UpdateNote(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	id, ok := noteID(c)
	if !ok {
		return
	}

	var patch models.NotePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, fmt.Errorf("%w: %v", services.ErrInvalidInput, err))
		return
	}

	updatedNote, err := noteService.UpdateNote(c.Request.Context(), db, id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updatedNote)
}

func DeleteNote(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	id, ok := noteID(c)
	if !ok {
		return
	}

	if err := noteService.DeleteNote(c.Request.Context(), db, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func noteID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, fmt.Errorf("%w: note id %q", services.ErrInvalidInput, c.Param("id")))
		return 0, false
	}
	return uint(id), true
}

// respondError maps service errors to a status. Unexpected errors are
// attached to the context for the request logger and never echoed back.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrBoardNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
	case errors.Is(err, services.ErrNoteNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
