package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskboard/internal/model"
	"taskboard/internal/service"
)

type TaskHandler struct {
	tasks TaskService
}

func NewTaskHandler(tasks TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateTaskRequest replaces title, description and due date. Omitting
// is_completed keeps the current state.
type UpdateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	IsCompleted *bool      `json:"is_completed"`
}

type MoveTaskRequest struct {
	ListID string `json:"list_id" binding:"required,uuid"`
	Index  *int   `json:"index" binding:"required"`
}

func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	listID, ok := pathID(c, "id", "list")
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), listID, userID, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondError(c, err, "Failed to create task")
		return
	}

	c.JSON(http.StatusCreated, newTaskResponse(task))
}

// GetByID returns the task with its labels, assignees, comments and attachments.
func (h *TaskHandler) GetByID(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id", "task")
	if !ok {
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), taskID, userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve task")
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *TaskHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id", "task")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), taskID, userID, service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		respondError(c, err, "Failed to update task")
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *TaskHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id", "task")
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), taskID, userID); err != nil {
		respondError(c, err, "Failed to delete task")
		return
	}

	c.Status(http.StatusNoContent)
}

// MoveTask godoc
// @Summary   Move a task within its list or to another list of the same board
// @Tags      Tasks
// @Security  BearerAuth
// @Param     id      path string          true "Task ID"
// @Param     request body MoveTaskRequest true "Target list and zero-based index"
// @Success   200 {object} TaskResponse
// @Failure   400 {object} map[string]string
// @Failure   403 {object} map[string]string
// @Router    /tasks/{id}/move [post]
func (h *TaskHandler) MoveTask(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id", "task")
	if !ok {
		return
	}

	var req MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	listID, err := uuid.Parse(req.ListID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid list ID format"})
		return
	}

	task, err := h.tasks.Move(c.Request.Context(), taskID, userID, listID, *req.Index)
	if err != nil {
		respondError(c, err, "Failed to move task")
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *TaskHandler) AddLabel(c *gin.Context) {
	h.withRelated(c, "label_id", "label", "Failed to add label", h.tasks.AddLabel)
}

func (h *TaskHandler) RemoveLabel(c *gin.Context) {
	h.withRelated(c, "label_id", "label", "Failed to remove label", h.tasks.RemoveLabel)
}

func (h *TaskHandler) AssignUser(c *gin.Context) {
	h.withRelated(c, "user_id", "user", "Failed to assign user", h.tasks.Assign)
}

func (h *TaskHandler) UnassignUser(c *gin.Context) {
	h.withRelated(c, "user_id", "user", "Failed to unassign user", h.tasks.Unassign)
}

// withRelated handles the /tasks/:id/<relation>/:param endpoints.
func (h *TaskHandler) withRelated(
	c *gin.Context,
	param, what, failure string,
	apply func(ctx context.Context, taskID, userID, relatedID uuid.UUID) (*model.Task, error),
) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id", "task")
	if !ok {
		return
	}
	relatedID, ok := pathID(c, param, what)
	if !ok {
		return
	}

	task, err := apply(c.Request.Context(), taskID, userID, relatedID)
	if err != nil {
		respondError(c, err, failure)
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}
