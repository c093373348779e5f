package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type TaskListHandler struct {
	lists TaskListService
}

func NewTaskListHandler(lists TaskListService) *TaskListHandler {
	return &TaskListHandler{lists: lists}
}

type ListRequest struct {
	Title string `json:"title" binding:"required"`
}

// MoveListRequest carries a zero-based target index.
type MoveListRequest struct {
	Index *int `json:"index" binding:"required"`
}

func (h *TaskListHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id", "board")
	if !ok {
		return
	}

	var req ListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	list, err := h.lists.Create(c.Request.Context(), boardID, userID, req.Title)
	if err != nil {
		respondError(c, err, "Failed to create list")
		return
	}

	c.JSON(http.StatusCreated, newListResponse(list))
}

func (h *TaskListHandler) GetByBoard(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id", "board")
	if !ok {
		return
	}

	lists, err := h.lists.List(c.Request.Context(), boardID, userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve lists")
		return
	}

	c.JSON(http.StatusOK, newListResponses(lists))
}

func (h *TaskListHandler) GetByID(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	listID, ok := pathID(c, "id", "list")
	if !ok {
		return
	}

	list, err := h.lists.Get(c.Request.Context(), listID, userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve list")
		return
	}

	c.JSON(http.StatusOK, newListResponse(list))
}

func (h *TaskListHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	listID, ok := pathID(c, "id", "list")
	if !ok {
		return
	}

	var req ListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	list, err := h.lists.Rename(c.Request.Context(), listID, userID, req.Title)
	if err != nil {
		respondError(c, err, "Failed to update list")
		return
	}

	c.JSON(http.StatusOK, newListResponse(list))
}

func (h *TaskListHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	listID, ok := pathID(c, "id", "list")
	if !ok {
		return
	}

	if err := h.lists.Delete(c.Request.Context(), listID, userID); err != nil {
		respondError(c, err, "Failed to delete list")
		return
	}

	c.Status(http.StatusNoContent)
}

// Move godoc
// @Summary   Move a list to a new position on its board
// @Tags      Lists
// @Security  BearerAuth
// @Param     id      path string          true "List ID"
// @Param     request body MoveListRequest true "Target index"
// @Success   200 {array} ListResponse
// @Failure   400 {object} map[string]string
// @Router    /lists/{id}/move [post]
func (h *TaskListHandler) Move(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	listID, ok := pathID(c, "id", "list")
	if !ok {
		return
	}

	var req MoveListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	lists, err := h.lists.Move(c.Request.Context(), listID, userID, *req.Index)
	if err != nil {
		respondError(c, err, "Failed to move list")
		return
	}

	c.JSON(http.StatusOK, newListResponses(lists))
}
