package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard/internal/model"
)

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}

type RefreshTokenStore interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.RefreshToken, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type BoardStore interface {
	Create(ctx context.Context, board *model.Board) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Board, error)
	Update(ctx context.Context, board *model.Board) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type MemberStore interface {
	Add(ctx context.Context, member *model.Member) error
	Get(ctx context.Context, boardID, userID uuid.UUID) (*model.Member, error)
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.Member, error)
	UpdateRole(ctx context.Context, boardID, userID uuid.UUID, role model.Role) error
	Remove(ctx context.Context, boardID, userID uuid.UUID) error
}

type TaskListStore interface {
	Create(ctx context.Context, list *model.TaskList) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.TaskList, error)
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.TaskList, error)
	GetMaxOrder(ctx context.Context, boardID uuid.UUID) (int, error)
	Update(ctx context.Context, list *model.TaskList) error
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, lists []*model.TaskList) error
}

type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	// GetByID loads the task with its labels and assignees.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	ListByList(ctx context.Context, listID uuid.UUID) ([]model.Task, error)
	// ListByBoard loads every task on the board with labels and assignees.
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.Task, error)
	GetMaxOrder(ctx context.Context, listID uuid.UUID) (int, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Reorder persists list_id and position of every task given.
	Reorder(ctx context.Context, tasks []*model.Task) error
	AddLabel(ctx context.Context, taskID, labelID uuid.UUID) error
	RemoveLabel(ctx context.Context, taskID, labelID uuid.UUID) error
	AddAssignee(ctx context.Context, taskID, userID uuid.UUID) error
	RemoveAssignee(ctx context.Context, taskID, userID uuid.UUID) error
	RemoveAssigneeFromBoard(ctx context.Context, boardID, userID uuid.UUID) error
	ListDueBetween(ctx context.Context, start, end time.Time) ([]model.Task, error)
	MarkDueDateNotificationSent(ctx context.Context, id uuid.UUID) error
}

type LabelStore interface {
	Create(ctx context.Context, label *model.Label) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Label, error)
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.Label, error)
	Update(ctx context.Context, label *model.Label) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CommentStore interface {
	Create(ctx context.Context, comment *model.Comment) error
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.Comment, error)
}

type AttachmentStore interface {
	Create(ctx context.Context, attachment *model.Attachment) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Attachment, error)
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.Attachment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Store groups the repositories of one unit of work.
type Store interface {
	Users() UserStore
	Boards() BoardStore
	Members() MemberStore
	TaskLists() TaskListStore
	Tasks() TaskStore
	Labels() LabelStore
	Comments() CommentStore
	Attachments() AttachmentStore
	RefreshTokens() RefreshTokenStore

	// Transaction runs fn against a store bound to one database transaction.
	// Any error returned by fn rolls back every write made through tx.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Users() UserStore                 { return NewUserRepository(s.db) }
func (s *GormStore) Boards() BoardStore               { return NewBoardRepository(s.db) }
func (s *GormStore) Members() MemberStore             { return NewMemberRepository(s.db) }
func (s *GormStore) TaskLists() TaskListStore         { return NewTaskListRepository(s.db) }
func (s *GormStore) Tasks() TaskStore                 { return NewTaskRepository(s.db) }
func (s *GormStore) Labels() LabelStore               { return NewLabelRepository(s.db) }
func (s *GormStore) Comments() CommentStore           { return NewCommentRepository(s.db) }
func (s *GormStore) Attachments() AttachmentStore     { return NewAttachmentRepository(s.db) }
func (s *GormStore) RefreshTokens() RefreshTokenStore { return NewRefreshTokenRepository(s.db) }

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}
