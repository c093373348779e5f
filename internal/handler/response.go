package handler

import (
	"net/http"
	"time"

	"taskboard/internal/filter"
	"taskboard/internal/model"
	"taskboard/internal/service"
)

type UserResponse struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	EmailConfirmed bool   `json:"email_confirmed"`
}

type BoardResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OwnerID     string `json:"owner_id"`
	IsOwner     bool   `json:"is_owner"`
	CreatedAt   string `json:"created_at"`
}

type BoardDetailsResponse struct {
	BoardResponse
	Lists   []ListResponse   `json:"lists"`
	Labels  []LabelResponse  `json:"labels"`
	Members []MemberResponse `json:"members"`
}

type MemberResponse struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	AddedAt string `json:"added_at"`
}

type RosterResponse struct {
	Owner   UserResponse     `json:"owner"`
	Members []MemberResponse `json:"members"`
}

type ListResponse struct {
	ID      string         `json:"id"`
	BoardID string         `json:"board_id"`
	Title   string         `json:"title"`
	Order   int            `json:"order"`
	Tasks   []TaskResponse `json:"tasks,omitempty"`
}

type LabelResponse struct {
	ID      string `json:"id"`
	BoardID string `json:"board_id"`
	Name    string `json:"name"`
	Color   string `json:"color"`
}

type TaskResponse struct {
	ID          string               `json:"id"`
	ListID      string               `json:"list_id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	DueDate     *time.Time           `json:"due_date"`
	IsCompleted bool                 `json:"is_completed"`
	Order       int                  `json:"order"`
	CreatedAt   string               `json:"created_at"`
	Labels      []LabelResponse      `json:"labels"`
	Assignees   []UserResponse       `json:"assignees"`
	Comments    []CommentResponse    `json:"comments,omitempty"`
	Attachments []AttachmentResponse `json:"attachments,omitempty"`
}

type CommentResponse struct {
	ID          string `json:"id"`
	TaskID      string `json:"task_id"`
	AuthorID    string `json:"author_id"`
	AuthorName  string `json:"author_name"`
	Content     string `json:"content"`
	IsSystemLog bool   `json:"is_system_log"`
	CreatedAt   string `json:"created_at"`
}

type AttachmentResponse struct {
	ID          string `json:"id"`
	TaskID      string `json:"task_id"`
	FileName    string `json:"file_name"`
	FileSize    int64  `json:"file_size"`
	ContentType string `json:"content_type"`
	UploadedBy  string `json:"uploaded_by"`
	UploadedAt  string `json:"uploaded_at"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(http.TimeFormat)
}

func newUserResponse(u *model.User) UserResponse {
	return UserResponse{ID: u.ID.String(), Email: u.Email, Name: u.Name, EmailConfirmed: u.EmailConfirmed}
}

func newBoardResponse(b *model.Board, isOwner bool) BoardResponse {
	return BoardResponse{
		ID:          b.ID.String(),
		Title:       b.Title,
		Description: b.Description,
		OwnerID:     b.OwnerID.String(),
		IsOwner:     isOwner,
		CreatedAt:   formatTime(b.CreatedAt),
	}
}

func newBoardDetailsResponse(d *service.BoardDetails) BoardDetailsResponse {
	resp := BoardDetailsResponse{
		BoardResponse: newBoardResponse(&d.Board, d.IsOwner),
		Lists:         make([]ListResponse, len(d.Lists)),
		Labels:        newLabelResponses(d.Labels),
		Members:       newMemberResponses(d.Members),
	}
	for i := range d.Lists {
		resp.Lists[i] = newListResponse(&d.Lists[i])
		if resp.Lists[i].Tasks == nil {
			resp.Lists[i].Tasks = []TaskResponse{}
		}
	}
	return resp
}

func newMemberResponses(members []model.Member) []MemberResponse {
	out := make([]MemberResponse, len(members))
	for i, m := range members {
		out[i] = MemberResponse{
			UserID:  m.UserID.String(),
			Email:   m.User.Email,
			Name:    m.User.Name,
			Role:    string(m.Role),
			AddedAt: formatTime(m.AddedAt),
		}
	}
	return out
}

func newListResponse(l *model.TaskList) ListResponse {
	resp := ListResponse{
		ID:      l.ID.String(),
		BoardID: l.BoardID.String(),
		Title:   l.Title,
		Order:   l.Order,
	}
	if len(l.Tasks) > 0 {
		resp.Tasks = newTaskResponses(l.Tasks)
	}
	return resp
}

func newListResponses(lists []model.TaskList) []ListResponse {
	out := make([]ListResponse, len(lists))
	for i := range lists {
		out[i] = newListResponse(&lists[i])
	}
	return out
}

func newGroupResponses(groups []filter.Group) []ListResponse {
	out := make([]ListResponse, len(groups))
	for i, g := range groups {
		out[i] = newListResponse(&g.List)
		out[i].Tasks = newTaskResponses(g.Tasks)
	}
	return out
}

func newLabelResponse(l *model.Label) LabelResponse {
	return LabelResponse{ID: l.ID.String(), BoardID: l.BoardID.String(), Name: l.Name, Color: l.Color}
}

func newLabelResponses(labels []model.Label) []LabelResponse {
	out := make([]LabelResponse, len(labels))
	for i := range labels {
		out[i] = newLabelResponse(&labels[i])
	}
	return out
}

func newTaskResponse(t *model.Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID.String(),
		ListID:      t.ListID.String(),
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		IsCompleted: t.IsCompleted,
		Order:       t.Order,
		CreatedAt:   formatTime(t.CreatedAt),
		Labels:      newLabelResponses(t.Labels),
		Assignees:   make([]UserResponse, len(t.Assignees)),
	}
	for i := range t.Assignees {
		resp.Assignees[i] = newUserResponse(&t.Assignees[i])
	}
	if len(t.Comments) > 0 {
		resp.Comments = newCommentResponses(t.Comments)
	}
	if len(t.Attachments) > 0 {
		resp.Attachments = newAttachmentResponses(t.Attachments)
	}
	return resp
}

func newTaskResponses(tasks []model.Task) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i := range tasks {
		out[i] = newTaskResponse(&tasks[i])
	}
	return out
}

func newCommentResponse(c *model.Comment) CommentResponse {
	return CommentResponse{
		ID:          c.ID.String(),
		TaskID:      c.TaskID.String(),
		AuthorID:    c.AuthorID.String(),
		AuthorName:  c.Author.Name,
		Content:     c.Content,
		IsSystemLog: c.IsSystemLog,
		CreatedAt:   formatTime(c.CreatedAt),
	}
}

func newCommentResponses(comments []model.Comment) []CommentResponse {
	out := make([]CommentResponse, len(comments))
	for i := range comments {
		out[i] = newCommentResponse(&comments[i])
	}
	return out
}

func newAttachmentResponse(a *model.Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:          a.ID.String(),
		TaskID:      a.TaskID.String(),
		FileName:    a.FileName,
		FileSize:    a.FileSize,
		ContentType: a.ContentType,
		UploadedBy:  a.UploadedByID.String(),
		UploadedAt:  formatTime(a.UploadedAt),
	}
}

func newAttachmentResponses(attachments []model.Attachment) []AttachmentResponse {
	out := make([]AttachmentResponse, len(attachments))
	for i := range attachments {
		out[i] = newAttachmentResponse(&attachments[i])
	}
	return out
}
