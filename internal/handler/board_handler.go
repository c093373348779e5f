package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/model"
)

type BoardHandler struct {
	boards BoardService
}

func NewBoardHandler(boards BoardService) *BoardHandler {
	return &BoardHandler{boards: boards}
}

type BoardRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// Create godoc
// @Summary   Create a board owned by the caller
// @Tags      Boards
// @Security  BearerAuth
// @Param     request body BoardRequest true "Board"
// @Success   201 {object} BoardResponse
// @Router    /boards [post]
func (h *BoardHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req BoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board, err := h.boards.Create(c.Request.Context(), userID, req.Title, req.Description)
	if err != nil {
		respondError(c, err, "Failed to create board")
		return
	}

	c.JSON(http.StatusCreated, newBoardResponse(board, true))
}

// GetAll returns the boards the caller owns or was shared.
func (h *BoardHandler) GetAll(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	summaries, err := h.boards.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve boards")
		return
	}

	response := make([]BoardResponse, len(summaries))
	for i := range summaries {
		response[i] = newBoardResponse(&summaries[i].Board, summaries[i].IsOwner)
	}
	c.JSON(http.StatusOK, response)
}

func (h *BoardHandler) GetByID(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id", "board")
	if !ok {
		return
	}

	details, err := h.boards.Get(c.Request.Context(), boardID, userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve board")
		return
	}

	c.JSON(http.StatusOK, newBoardDetailsResponse(details))
}

func (h *BoardHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id", "board")
	if !ok {
		return
	}

	var req BoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board, err := h.boards.Update(c.Request.Context(), boardID, userID, req.Title, req.Description)
	if err != nil {
		respondError(c, err, "Failed to update board")
		return
	}

	c.JSON(http.StatusOK, newBoardResponse(board, true))
}

func (h *BoardHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id", "board")
	if !ok {
		return
	}

	if err := h.boards.Delete(c.Request.Context(), boardID, userID); err != nil {
		respondError(c, err, "Failed to delete board")
		return
	}

	c.Status(http.StatusNoContent)
}

// FilterTasks godoc
// @Summary   Filter the board's tasks
// @Tags      Boards
// @Security  BearerAuth
// @Param     id            path   string true  "Board ID"
// @Param     labelIds      query  string false "Comma-separated label ids"
// @Param     memberIds     query  string false "Comma-separated user ids"
// @Param     isCompleted   query  bool   false "Completion state"
// @Param     dueDatePreset query  string false "NoDate, Expired, DueWithinDay, DueWithinWeek or DueWithinMonth"
// @Success   200 {array} ListResponse
// @Router    /boards/{id}/tasks [get]
func (h *BoardHandler) FilterTasks(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id", "board")
	if !ok {
		return
	}

	criteria, err := parseCriteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	groups, err := h.boards.FilterTasks(c.Request.Context(), boardID, userID, criteria)
	if err != nil {
		respondError(c, err, "Failed to filter tasks")
		return
	}

	c.JSON(http.StatusOK, newGroupResponses(groups))
}

func (h *BoardHandler) GetMembers(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id", "board")
	if !ok {
		return
	}

	roster, err := h.boards.ListMembers(c.Request.Context(), boardID, userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve members")
		return
	}

	c.JSON(http.StatusOK, RosterResponse{
		Owner:   newUserResponse(&roster.Owner),
		Members: newMemberResponses(roster.Members),
	})
}

// AddMember shares the board with a user by email.
func (h *BoardHandler) AddMember(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id", "board")
	if !ok {
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	role, err := model.ParseRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	member, err := h.boards.AddMember(c.Request.Context(), boardID, userID, req.Email, role)
	if err != nil {
		respondError(c, err, "Failed to add member")
		return
	}

	c.JSON(http.StatusCreated, newMemberResponses([]model.Member{*member})[0])
}

func (h *BoardHandler) ChangeMemberRole(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id", "board")
	if !ok {
		return
	}
	memberID, ok := pathID(c, "user_id", "user")
	if !ok {
		return
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	role, err := model.ParseRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	member, err := h.boards.ChangeMemberRole(c.Request.Context(), boardID, userID, memberID, role)
	if err != nil {
		respondError(c, err, "Failed to change member role")
		return
	}

	c.JSON(http.StatusOK, newMemberResponses([]model.Member{*member})[0])
}

func (h *BoardHandler) RemoveMember(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id", "board")
	if !ok {
		return
	}
	memberID, ok := pathID(c, "user_id", "user")
	if !ok {
		return
	}

	if err := h.boards.RemoveMember(c.Request.Context(), boardID, userID, memberID); err != nil {
		respondError(c, err, "Failed to remove member")
		return
	}

	c.Status(http.StatusNoContent)
}
