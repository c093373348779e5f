package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"taskboard/internal/access"
	"taskboard/internal/metrics"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

type AccessService struct {
	store   repository.Store
	metrics *metrics.Metrics
}

func NewAccessService(store repository.Store, m *metrics.Metrics) *AccessService {
	return &AccessService{store: store, metrics: m}
}

// CheckAccess reports whether userID holds the required role on the board.
// A missing board yields a denied decision, not an error.
func (s *AccessService) CheckAccess(ctx context.Context, boardID, userID uuid.UUID, required model.Role) (access.Decision, error) {
	board, membership, err := s.load(ctx, s.store, boardID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrBoardNotFound) {
			return access.Decision{}, nil
		}
		return access.Decision{}, err
	}
	return access.Check(board, membership, userID, required), nil
}

// authorize loads the board through store and fails with ErrNotFound or
// ErrForbidden unless userID holds the required role.
func (s *AccessService) authorize(ctx context.Context, store repository.Store, boardID, userID uuid.UUID, required model.Role) (*model.Board, access.Decision, error) {
	board, membership, err := s.load(ctx, store, boardID, userID)
	if err != nil {
		return nil, access.Decision{}, err
	}

	decision := access.Check(board, membership, userID, required)
	if !decision.HasAccess {
		s.metrics.RecordAccessDenied(string(required))
		return nil, decision, fmt.Errorf("%w: %s access to the board is required", ErrForbidden, required)
	}
	return board, decision, nil
}

// taskScope is a task loaded together with its list and board.
type taskScope struct {
	task  *model.Task
	list  *model.TaskList
	board *model.Board
}

// authorizeTask resolves the board owning taskID through store and checks
// userID against it like authorize.
func (s *AccessService) authorizeTask(ctx context.Context, store repository.Store, taskID, userID uuid.UUID, required model.Role) (*taskScope, error) {
	task, err := store.Tasks().GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	list, err := store.TaskLists().GetByID(ctx, task.ListID)
	if err != nil {
		return nil, err
	}
	board, _, err := s.authorize(ctx, store, list.BoardID, userID, required)
	if err != nil {
		return nil, err
	}
	return &taskScope{task: task, list: list, board: board}, nil
}

func (s *AccessService) load(ctx context.Context, store repository.Store, boardID, userID uuid.UUID) (*model.Board, *model.Member, error) {
	board, err := store.Boards().GetByID(ctx, boardID)
	if err != nil {
		return nil, nil, err
	}
	if board.OwnerID == userID {
		return board, nil, nil
	}

	membership, err := store.Members().Get(ctx, boardID, userID)
	if errors.Is(err, repository.ErrMemberNotFound) {
		return board, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return board, membership, nil
}
