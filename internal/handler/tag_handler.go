package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"snapnote/backend/internal/service"
	"snapnote/backend/pkg/logger"
)

type TagHandler struct {
	tagService service.TagService
	log        *logger.Logger
}

func NewTagHandler(tagService service.TagService, log *logger.Logger) *TagHandler {
	return &TagHandler{
		tagService: tagService,
		log:        log,
	}
}

type createTagRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *TagHandler) Create(c *gin.Context) {
	var req createTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	user := CurrentUser(c)
	tag, err := h.tagService.Create(c.Request.Context(), user.ID, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrTagExists) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Tag already exists"})
			return
		}
		h.log.WithError(err).Error("create tag failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, tag)
}

func (h *TagHandler) List(c *gin.Context) {
	user := CurrentUser(c)
	tags, err := h.tagService.List(c.Request.Context(), user.ID)
	if err != nil {
		h.log.WithError(err).Error("list tags failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (h *TagHandler) Delete(c *gin.Context) {
	user := CurrentUser(c)
	err := h.tagService.Delete(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidID):
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid tag ID"})
		case errors.Is(err, service.ErrTagNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": "Tag not found"})
		default:
			h.log.WithError(err).Error("delete tag failed")
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
