package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"snapnote/backend/internal/models"
	"snapnote/backend/internal/service"
	"snapnote/backend/pkg/logger"
)

type NoteHandler struct {
	noteService service.NoteService
	log         *logger.Logger
}

func NewNoteHandler(noteService service.NoteService, log *logger.Logger) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
		log:         log,
	}
}

type createNoteRequest struct {
	Title   string   `json:"title" binding:"required"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type listNotesQuery struct {
	Limit    int64  `form:"limit,default=10" binding:"min=1"`
	Archived bool   `form:"archived"`
	Search   string `form:"search"`
	Tags     string `form:"tags"`
}

func (h *NoteHandler) Create(c *gin.Context) {
	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	user := CurrentUser(c)
	note, err := h.noteService.Create(c.Request.Context(), user.ID, req.Title, req.Content, req.Tags)
	if err != nil {
		h.log.WithError(err).Error("create note failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, note)
}

func (h *NoteHandler) List(c *gin.Context) {
	var q listNotesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid query parameters"})
		return
	}

	user := CurrentUser(c)
	notes, err := h.noteService.List(c.Request.Context(), user.ID, q.Limit, q.Archived, q.Search, q.Tags)
	if err != nil {
		h.log.WithError(err).Error("list notes failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, notes)
}

func (h *NoteHandler) Get(c *gin.Context) {
	user := CurrentUser(c)
	note, err := h.noteService.Get(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

func (h *NoteHandler) Update(c *gin.Context) {
	var update models.NoteUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	user := CurrentUser(c)
	note, err := h.noteService.Update(c.Request.Context(), user.ID, c.Param("id"), update)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

// Archive is the soft delete behind DELETE /notes/{id}.
func (h *NoteHandler) Archive(c *gin.Context) {
	user := CurrentUser(c)
	if err := h.noteService.Archive(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *NoteHandler) Restore(c *gin.Context) {
	user := CurrentUser(c)
	note, err := h.noteService.Restore(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

// Purge removes the note permanently; there is no way back.
func (h *NoteHandler) Purge(c *gin.Context) {
	user := CurrentUser(c)
	if err := h.noteService.Purge(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *NoteHandler) ClearArchive(c *gin.Context) {
	user := CurrentUser(c)
	count, err := h.noteService.ClearArchive(c.Request.Context(), user.ID)
	if err != nil {
		h.log.WithError(err).Error("clear archive failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Archive cleared", "deleted_count": count})
}

func (h *NoteHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid note ID"})
	case errors.Is(err, service.ErrNoteNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Note not found"})
	default:
		h.log.WithError(err).Error("note operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
	}
}
