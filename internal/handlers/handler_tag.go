package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/granaapp/grana_backend/internal/core/ports/services"
	"github.com/granaapp/grana_backend/internal/dto"
	"github.com/granaapp/grana_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type tagHandler struct {
	tagService portssvc.TagSvcFacade
}

func newTagHandler(ts portssvc.TagSvcFacade) *tagHandler {
	return &tagHandler{tagService: ts}
}

// registerTagRoutes registers routes related to tags.
func registerTagRoutes(rg *gin.RouterGroup, tagService portssvc.TagSvcFacade) {
	h := newTagHandler(tagService)

	tags := rg.Group("/tags")
	{
		tags.POST("", h.createTag)
		tags.GET("", h.listTags)
		tags.GET("/:id", h.getTag)
		tags.PUT("/:id", h.updateTag)
		tags.DELETE("/:id", h.deleteTag)
	}
}

// createTag godoc
// @Summary Create a tag
// @Description Creates a tag. Names are unique per user, compared case-insensitively.
// @Tags tags
// @Accept json
// @Produce json
// @Param tag body dto.CreateTagRequest true "Tag details"
// @Success 201 {object} dto.TagResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Tag name taken"
// @Security BearerAuth
// @Router /tags [post]
func (h *tagHandler) createTag(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTag", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tag, err := h.tagService.CreateTag(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create tag")
		return
	}

	logger.Info("Tag created", slog.String("tag_id", tag.TagID))
	c.JSON(http.StatusCreated, dto.ToTagResponse(tag))
}

// listTags godoc
// @Summary List tags
// @Tags tags
// @Produce json
// @Success 200 {array} dto.TagResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /tags [get]
func (h *tagHandler) listTags(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	tags, err := h.tagService.ListTags(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list tags")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTagResponse(tags))
}

// getTag godoc
// @Summary Get a tag by ID
// @Tags tags
// @Produce json
// @Param id path string true "Tag ID"
// @Success 200 {object} dto.TagResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Tag not found"
// @Security BearerAuth
// @Router /tags/{id} [get]
func (h *tagHandler) getTag(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	tag, err := h.tagService.GetTagByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve tag")
		return
	}
	c.JSON(http.StatusOK, dto.ToTagResponse(tag))
}

// updateTag godoc
// @Summary Update a tag
// @Description Renames or recolors a tag. Renaming to another tag's name fails; changing only the casing of the same tag is allowed.
// @Tags tags
// @Accept json
// @Produce json
// @Param id path string true "Tag ID"
// @Param tag body dto.UpdateTagRequest true "Fields to update"
// @Success 200 {object} dto.TagResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Tag not found"
// @Failure 409 {object} map[string]string "Tag name taken"
// @Security BearerAuth
// @Router /tags/{id} [put]
func (h *tagHandler) updateTag(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTag", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tag, err := h.tagService.UpdateTag(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update tag")
		return
	}
	c.JSON(http.StatusOK, dto.ToTagResponse(tag))
}

// deleteTag godoc
// @Summary Delete a tag
// @Description Removes the tag and detaches it from every transaction.
// @Tags tags
// @Param id path string true "Tag ID"
// @Success 204 "Tag deleted"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Tag not found"
// @Security BearerAuth
// @Router /tags/{id} [delete]
func (h *tagHandler) deleteTag(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.tagService.DeleteTag(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondServiceError(c, logger, err, "Failed to delete tag")
		return
	}
	c.Status(http.StatusNoContent)
}
