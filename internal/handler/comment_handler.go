package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	comments CommentService
}

func NewCommentHandler(comments CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *CommentHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id", "task")
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	comment, err := h.comments.Add(c.Request.Context(), taskID, userID, req.Content)
	if err != nil {
		respondError(c, err, "Failed to add comment")
		return
	}

	c.JSON(http.StatusCreated, newCommentResponse(comment))
}

// GetByTask returns comments and system-log entries oldest first.
func (h *CommentHandler) GetByTask(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id", "task")
	if !ok {
		return
	}

	comments, err := h.comments.List(c.Request.Context(), taskID, userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve comments")
		return
	}

	c.JSON(http.StatusOK, newCommentResponses(comments))
}
