package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"taskboard/internal/metrics"
	"taskboard/internal/model"
	"taskboard/internal/ordering"
	"taskboard/internal/repository"
)

type TaskListService struct {
	store   repository.Store
	access  *AccessService
	metrics *metrics.Metrics
}

func NewTaskListService(store repository.Store, access *AccessService, m *metrics.Metrics) *TaskListService {
	return &TaskListService{store: store, access: access, metrics: m}
}

// Create appends a list after the board's last one.
func (s *TaskListService) Create(ctx context.Context, boardID, userID uuid.UUID, title string) (*model.TaskList, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	list := &model.TaskList{BoardID: boardID, Title: title}
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, _, err := s.access.authorize(ctx, tx, boardID, userID, model.RoleEditor); err != nil {
			return err
		}
		maxOrder, err := tx.TaskLists().GetMaxOrder(ctx, boardID)
		if err != nil {
			return err
		}
		list.Order = ordering.Next(maxOrder)
		return tx.TaskLists().Create(ctx, list)
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Get returns the list with its tasks in order.
func (s *TaskListService) Get(ctx context.Context, listID, userID uuid.UUID) (*model.TaskList, error) {
	list, err := s.store.TaskLists().GetByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.access.authorize(ctx, s.store, list.BoardID, userID, model.RoleViewer); err != nil {
		return nil, err
	}

	tasks, err := s.store.Tasks().ListByList(ctx, listID)
	if err != nil {
		return nil, err
	}
	list.Tasks = tasks
	return list, nil
}

// List returns the board's lists in order, each with its tasks.
func (s *TaskListService) List(ctx context.Context, boardID, userID uuid.UUID) ([]model.TaskList, error) {
	if _, _, err := s.access.authorize(ctx, s.store, boardID, userID, model.RoleViewer); err != nil {
		return nil, err
	}

	lists, err := s.store.TaskLists().ListByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.store.Tasks().ListByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	for i, g := range groupTasks(lists, tasks) {
		lists[i].Tasks = g.Tasks
	}
	return lists, nil
}

func (s *TaskListService) Rename(ctx context.Context, listID, userID uuid.UUID, title string) (*model.TaskList, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	list, err := s.store.TaskLists().GetByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.access.authorize(ctx, s.store, list.BoardID, userID, model.RoleEditor); err != nil {
		return nil, err
	}

	list.Title = title
	if err := s.store.TaskLists().Update(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Delete removes the list with its tasks and renumbers the remaining lists.
func (s *TaskListService) Delete(ctx context.Context, listID, userID uuid.UUID) error {
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		list, err := tx.TaskLists().GetByID(ctx, listID)
		if err != nil {
			return err
		}
		if _, _, err := s.access.authorize(ctx, tx, list.BoardID, userID, model.RoleEditor); err != nil {
			return err
		}
		if err := tx.TaskLists().Delete(ctx, listID); err != nil {
			return err
		}

		remaining, err := tx.TaskLists().ListByBoard(ctx, list.BoardID)
		if err != nil {
			return err
		}
		siblings := listPointers(remaining)
		ordering.Renumber(siblings)
		return tx.TaskLists().Reorder(ctx, siblings)
	})
}

// Move places the list at the zero-based index among the board's lists
// and returns the board's lists in their new order.
func (s *TaskListService) Move(ctx context.Context, listID, userID uuid.UUID, index int) ([]model.TaskList, error) {
	var moved []*model.TaskList
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		list, err := tx.TaskLists().GetByID(ctx, listID)
		if err != nil {
			return err
		}
		if _, _, err := s.access.authorize(ctx, tx, list.BoardID, userID, model.RoleEditor); err != nil {
			return err
		}

		all, err := tx.TaskLists().ListByBoard(ctx, list.BoardID)
		if err != nil {
			return err
		}
		siblings := ordering.Without(listPointers(all), func(l *model.TaskList) bool { return l.ID == listID })

		moved, err = ordering.Move(siblings, list, index)
		if err != nil {
			return moveError(err)
		}
		return tx.TaskLists().Reorder(ctx, moved)
	})
	s.metrics.RecordMove("list", err == nil)
	if err != nil {
		return nil, err
	}

	out := make([]model.TaskList, len(moved))
	for i, l := range moved {
		out[i] = *l
	}
	return out, nil
}

func moveError(err error) error {
	if errors.Is(err, ordering.ErrOutOfRange) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return err
}

func listPointers(lists []model.TaskList) []*model.TaskList {
	slices.SortStableFunc(lists, func(a, b model.TaskList) int { return cmp.Compare(a.Order, b.Order) })
	out := make([]*model.TaskList, len(lists))
	for i := range lists {
		out[i] = &lists[i]
	}
	return out
}

func taskPointers(tasks []model.Task) []*model.Task {
	sortByOrder(tasks)
	out := make([]*model.Task, len(tasks))
	for i := range tasks {
		out[i] = &tasks[i]
	}
	return out
}

func sortByOrder(tasks []model.Task) {
	slices.SortStableFunc(tasks, func(a, b model.Task) int { return cmp.Compare(a.Order, b.Order) })
}
