package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pacifichome/smarthome-admin/internal/models"
	"github.com/pacifichome/smarthome-admin/internal/uploads"
)

// SaveVideo handles POST /v1/admin/videos (multipart). The video file is
// required; the thumbnail is optional and falls back to the configured
// default.
func (h *Handlers) SaveVideo(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	description := strings.TrimSpace(c.PostForm("description"))

	videoFile, err := c.FormFile("video")
	if err != nil {
		failValidation(c, "No video file uploaded")
		return
	}

	videoName, err := h.Videos.SaveVideo(videoFile, "video")
	if errors.Is(err, uploads.ErrDisallowedType) {
		failValidation(c, "Invalid video file type.")
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	thumbURL := h.Cfg.DefaultThumbURL
	var thumbName string
	if thumbFile, err := c.FormFile("thumbnail"); err == nil {
		thumbName, err = h.Videos.SaveImage(thumbFile, "thumb")
		if errors.Is(err, uploads.ErrDisallowedType) || errors.Is(err, uploads.ErrTooLarge) {
			h.Videos.Remove(videoName)
			failValidation(c, "Invalid thumbnail file type.")
			return
		}
		if err != nil {
			h.Videos.Remove(videoName)
			fail(c, err)
			return
		}
		thumbURL = h.Cfg.BaseVideoURL + thumbName
	}

	v := &models.Video{
		Title:       title,
		Description: description,
		URL:         h.Cfg.BaseVideoURL + videoName,
		Thm:         thumbURL,
	}
	id, err := h.Store.CreateVideo(c.Request.Context(), v)
	if err != nil {
		h.Videos.Remove(videoName)
		if thumbName != "" {
			h.Videos.Remove(thumbName)
		}
		fail(c, err)
		return
	}

	ok(c, "Video saved successfully!", gin.H{"video_id": id})
}

// GetVideos handles GET /v1/videos, newest first.
func (h *Handlers) GetVideos(c *gin.Context) {
	videos, err := h.Store.Videos(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, videos)
}

// UpdateVideo handles POST /v1/admin/videos/update. Only the metadata
// fields change; the stored files stay as they are.
func (h *Handlers) UpdateVideo(c *gin.Context) {
	var input models.UpdateVideoInput
	if err := c.ShouldBindJSON(&input); err != nil || input.ID <= 0 {
		failValidation(c, "ID, title, and description are required")
		return
	}
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" {
		failValidation(c, "Title and description cannot be empty")
		return
	}

	if err := h.Store.UpdateVideo(c.Request.Context(), input.ID, strings.TrimSpace(input.Title), strings.TrimSpace(input.Description)); err != nil {
		fail(c, err)
		return
	}
	ok(c, "Video updated successfully.", gin.H{"video_id": input.ID})
}

// DeleteVideo handles POST /v1/admin/videos/delete.
func (h *Handlers) DeleteVideo(c *gin.Context) {
	var input struct {
		ID int64 `json:"id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.ID <= 0 {
		failValidation(c, "Video ID is required")
		return
	}

	v, err := h.Store.Video(c.Request.Context(), input.ID)
	if err != nil {
		fail(c, err)
		return
	}

	// Stored URLs are absolute; Remove strips them back to bare names.
	h.Videos.Remove(strings.TrimPrefix(v.URL, h.Cfg.BaseVideoURL))
	if v.Thm != h.Cfg.DefaultThumbURL {
		h.Videos.Remove(strings.TrimPrefix(v.Thm, h.Cfg.BaseVideoURL))
	}

	if err := h.Store.DeleteVideo(c.Request.Context(), input.ID); err != nil {
		fail(c, err)
		return
	}
	ok(c, "Video deleted successfully.", gin.H{"video_id": input.ID})
}
