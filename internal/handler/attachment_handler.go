package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"taskboard/internal/service"
)

type AttachmentHandler struct {
	attachments AttachmentService
}

func NewAttachmentHandler(attachments AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachments: attachments}
}

// Upload godoc
// @Summary   Attach a file to a task
// @Tags      Tasks
// @Security  BearerAuth
// @Accept    multipart/form-data
// @Param     id   path     string true "Task ID"
// @Param     file formData file   true "File"
// @Success   201 {object} AttachmentResponse
// @Failure   400 {object} map[string]string
// @Router    /tasks/{id}/attachments [post]
func (h *AttachmentHandler) Upload(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id", "task")
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}
	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}
	defer file.Close()

	attachment, err := h.attachments.Add(c.Request.Context(), taskID, userID, service.Upload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	})
	if err != nil {
		respondError(c, err, "Failed to upload attachment")
		return
	}

	c.JSON(http.StatusCreated, newAttachmentResponse(attachment))
}

func (h *AttachmentHandler) GetByTask(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id", "task")
	if !ok {
		return
	}

	attachments, err := h.attachments.List(c.Request.Context(), taskID, userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve attachments")
		return
	}

	c.JSON(http.StatusOK, newAttachmentResponses(attachments))
}

// Download streams the stored file back with its original name.
func (h *AttachmentHandler) Download(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id", "task")
	if !ok {
		return
	}
	attachmentID, ok := pathID(c, "attachment_id", "attachment")
	if !ok {
		return
	}

	attachment, content, err := h.attachments.Open(c.Request.Context(), taskID, attachmentID, userID)
	if err != nil {
		respondError(c, err, "Failed to open attachment")
		return
	}
	defer func() {
		if err := content.Close(); err != nil {
			log.WithError(err).WithField("attachment_id", attachmentID).Warn("failed to close attachment")
		}
	}()

	contentType := attachment.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, attachment.FileSize, contentType, content, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", attachment.FileName),
	})
}

func (h *AttachmentHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id", "task")
	if !ok {
		return
	}
	attachmentID, ok := pathID(c, "attachment_id", "attachment")
	if !ok {
		return
	}

	if err := h.attachments.Remove(c.Request.Context(), taskID, attachmentID, userID); err != nil {
		respondError(c, err, "Failed to delete attachment")
		return
	}

	c.Status(http.StatusNoContent)
}
