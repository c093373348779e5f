package handler

import (
	"context"
	"io"

	"github.com/google/uuid"

	"taskboard/internal/filter"
	"taskboard/internal/model"
	"taskboard/internal/service"
)

type UserService interface {
	Register(ctx context.Context, email, name, password string) (*model.User, error)
	ConfirmEmail(ctx context.Context, email, code string) error
	Login(ctx context.Context, email, password string) (*service.Session, error)
	Refresh(ctx context.Context, refreshToken string) (*service.Session, error)
	Revoke(ctx context.Context, userID uuid.UUID) error
	Profile(ctx context.Context, userID uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, name string) (*model.User, error)
}

type BoardService interface {
	Create(ctx context.Context, userID uuid.UUID, title, description string) (*model.Board, error)
	List(ctx context.Context, userID uuid.UUID) ([]service.BoardSummary, error)
	Get(ctx context.Context, boardID, userID uuid.UUID) (*service.BoardDetails, error)
	Update(ctx context.Context, boardID, userID uuid.UUID, title, description string) (*model.Board, error)
	Delete(ctx context.Context, boardID, userID uuid.UUID) error
	AddMember(ctx context.Context, boardID, userID uuid.UUID, email string, role model.Role) (*model.Member, error)
	ChangeMemberRole(ctx context.Context, boardID, userID, memberUserID uuid.UUID, role model.Role) (*model.Member, error)
	RemoveMember(ctx context.Context, boardID, userID, memberUserID uuid.UUID) error
	ListMembers(ctx context.Context, boardID, userID uuid.UUID) (*service.Roster, error)
	FilterTasks(ctx context.Context, boardID, userID uuid.UUID, criteria filter.Criteria) ([]filter.Group, error)
}

type TaskListService interface {
	Create(ctx context.Context, boardID, userID uuid.UUID, title string) (*model.TaskList, error)
	Get(ctx context.Context, listID, userID uuid.UUID) (*model.TaskList, error)
	List(ctx context.Context, boardID, userID uuid.UUID) ([]model.TaskList, error)
	Rename(ctx context.Context, listID, userID uuid.UUID, title string) (*model.TaskList, error)
	Delete(ctx context.Context, listID, userID uuid.UUID) error
	Move(ctx context.Context, listID, userID uuid.UUID, index int) ([]model.TaskList, error)
}

type TaskService interface {
	Create(ctx context.Context, listID, userID uuid.UUID, in service.CreateTaskInput) (*model.Task, error)
	Get(ctx context.Context, taskID, userID uuid.UUID) (*model.Task, error)
	Update(ctx context.Context, taskID, userID uuid.UUID, in service.UpdateTaskInput) (*model.Task, error)
	Delete(ctx context.Context, taskID, userID uuid.UUID) error
	Move(ctx context.Context, taskID, userID, targetListID uuid.UUID, index int) (*model.Task, error)
	AddLabel(ctx context.Context, taskID, userID, labelID uuid.UUID) (*model.Task, error)
	RemoveLabel(ctx context.Context, taskID, userID, labelID uuid.UUID) (*model.Task, error)
	Assign(ctx context.Context, taskID, userID, assigneeID uuid.UUID) (*model.Task, error)
	Unassign(ctx context.Context, taskID, userID, assigneeID uuid.UUID) (*model.Task, error)
}

type LabelService interface {
	Create(ctx context.Context, boardID, userID uuid.UUID, name, color string) (*model.Label, error)
	Get(ctx context.Context, labelID, userID uuid.UUID) (*model.Label, error)
	List(ctx context.Context, boardID, userID uuid.UUID) ([]model.Label, error)
	Update(ctx context.Context, labelID, userID uuid.UUID, name, color string) (*model.Label, error)
	Delete(ctx context.Context, labelID, userID uuid.UUID) error
}

type CommentService interface {
	Add(ctx context.Context, taskID, userID uuid.UUID, content string) (*model.Comment, error)
	List(ctx context.Context, taskID, userID uuid.UUID) ([]model.Comment, error)
}

type AttachmentService interface {
	Add(ctx context.Context, taskID, userID uuid.UUID, up service.Upload) (*model.Attachment, error)
	Remove(ctx context.Context, taskID, attachmentID, userID uuid.UUID) error
	List(ctx context.Context, taskID, userID uuid.UUID) ([]model.Attachment, error)
	Open(ctx context.Context, taskID, attachmentID, userID uuid.UUID) (*model.Attachment, io.ReadCloser, error)
}

var (
	_ UserService       = (*service.UserService)(nil)
	_ BoardService      = (*service.BoardService)(nil)
	_ TaskListService   = (*service.TaskListService)(nil)
	_ TaskService       = (*service.TaskService)(nil)
	_ LabelService      = (*service.LabelService)(nil)
	_ CommentService    = (*service.CommentService)(nil)
	_ AttachmentService = (*service.AttachmentService)(nil)
)
