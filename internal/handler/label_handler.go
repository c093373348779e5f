package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// LabelRequest defines the expected request body for creating or updating a label
type LabelRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color" binding:"required"`
}

// LabelHandler handles label-related HTTP requests
type LabelHandler struct {
	labels LabelService
}

// NewLabelHandler creates a new LabelHandler instance
func NewLabelHandler(labels LabelService) *LabelHandler {
	return &LabelHandler{labels: labels}
}

// Create creates a new label on the board
func (h *LabelHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id", "board")
	if !ok {
		return
	}

	var req LabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	label, err := h.labels.Create(c.Request.Context(), boardID, userID, req.Name, req.Color)
	if err != nil {
		respondError(c, err, "Failed to create label")
		return
	}

	c.JSON(http.StatusCreated, newLabelResponse(label))
}

// GetByID retrieves a label by ID
func (h *LabelHandler) GetByID(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	labelID, ok := pathID(c, "id", "label")
	if !ok {
		return
	}

	label, err := h.labels.Get(c.Request.Context(), labelID, userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve label")
		return
	}

	c.JSON(http.StatusOK, newLabelResponse(label))
}

// GetByBoardID retrieves all labels for a board
func (h *LabelHandler) GetByBoardID(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id", "board")
	if !ok {
		return
	}

	labels, err := h.labels.List(c.Request.Context(), boardID, userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve labels")
		return
	}

	c.JSON(http.StatusOK, newLabelResponses(labels))
}

// Update updates a label
func (h *LabelHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	labelID, ok := pathID(c, "id", "label")
	if !ok {
		return
	}

	var req LabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	label, err := h.labels.Update(c.Request.Context(), labelID, userID, req.Name, req.Color)
	if err != nil {
		respondError(c, err, "Failed to update label")
		return
	}

	c.JSON(http.StatusOK, newLabelResponse(label))
}

// Delete deletes a label and detaches it from every task
func (h *LabelHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	labelID, ok := pathID(c, "id", "label")
	if !ok {
		return
	}

	if err := h.labels.Delete(c.Request.Context(), labelID, userID); err != nil {
		respondError(c, err, "Failed to delete label")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Label deleted successfully"})
}
