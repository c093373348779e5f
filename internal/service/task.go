package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"taskboard/internal/audit"
	"taskboard/internal/identity"
	"taskboard/internal/metrics"
	"taskboard/internal/model"
	"taskboard/internal/ordering"
	"taskboard/internal/repository"
)

type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
}

// UpdateTaskInput replaces the task's editable fields. A nil IsCompleted
// keeps the current completion state.
type UpdateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	IsCompleted *bool
}

type TaskService struct {
	store    repository.Store
	access   *AccessService
	people   *identity.Directory
	recorder *audit.Recorder
	metrics  *metrics.Metrics
}

func NewTaskService(store repository.Store, access *AccessService, people *identity.Directory, recorder *audit.Recorder, m *metrics.Metrics) *TaskService {
	return &TaskService{
		store:    store,
		access:   access,
		people:   people,
		recorder: recorder,
		metrics:  m,
	}
}

func (s *TaskService) Create(ctx context.Context, listID, userID uuid.UUID, in CreateTaskInput) (*model.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	task := &model.Task{
		ListID:      listID,
		Title:       title,
		Description: in.Description,
		DueDate:     in.DueDate,
	}
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		list, err := tx.TaskLists().GetByID(ctx, listID)
		if err != nil {
			return err
		}
		if _, _, err := s.access.authorize(ctx, tx, list.BoardID, userID, model.RoleEditor); err != nil {
			return err
		}
		actor, err := s.people.Resolve(ctx, userID)
		if err != nil {
			return err
		}

		maxOrder, err := tx.Tasks().GetMaxOrder(ctx, listID)
		if err != nil {
			return err
		}
		task.Order = ordering.Next(maxOrder)
		if err := tx.Tasks().Create(ctx, task); err != nil {
			return err
		}
		return s.recorder.Record(ctx, tx.Comments(), task.ID, actor.ID, audit.CreatedTask(actor.Name))
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Get returns the task with labels, assignees, comments and attachments.
func (s *TaskService) Get(ctx context.Context, taskID, userID uuid.UUID) (*model.Task, error) {
	scope, err := s.access.authorizeTask(ctx, s.store, taskID, userID, model.RoleViewer)
	if err != nil {
		return nil, err
	}

	task := scope.task
	if task.Comments, err = s.store.Comments().ListByTask(ctx, taskID); err != nil {
		return nil, err
	}
	if task.Attachments, err = s.store.Attachments().ListByTask(ctx, taskID); err != nil {
		return nil, err
	}
	return task, nil
}

// Update writes the new field values and appends one audit entry per field
// that actually changed, in title, description, due date, completion order.
func (s *TaskService) Update(ctx context.Context, taskID, userID uuid.UUID, in UpdateTaskInput) (*model.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	var updated *model.Task
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		scope, err := s.access.authorizeTask(ctx, tx, taskID, userID, model.RoleEditor)
		if err != nil {
			return err
		}
		task := scope.task

		before := taskFields(task)
		after := audit.TaskFields{
			Title:       title,
			Description: in.Description,
			DueDate:     in.DueDate,
			IsCompleted: task.IsCompleted,
		}
		if in.IsCompleted != nil {
			after.IsCompleted = *in.IsCompleted
		}

		actor, err := s.people.Resolve(ctx, userID)
		if err != nil {
			return err
		}
		changes := audit.Diff(audit.TaskFieldRules, actor.Name, before, after)
		updated = task
		if len(changes) == 0 {
			return nil
		}

		messages := make([]string, 0, len(changes))
		for _, c := range changes {
			if c.Field == "due_date" {
				task.DueDateNotificationSent = false
			}
			messages = append(messages, c.Message)
		}
		task.Title = after.Title
		task.Description = after.Description
		task.DueDate = after.DueDate
		task.IsCompleted = after.IsCompleted
		if err := tx.Tasks().Update(ctx, task); err != nil {
			return err
		}

		return s.recorder.RecordAll(ctx, tx.Comments(), taskID, actor.ID, messages...)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the task and renumbers the rest of its list.
func (s *TaskService) Delete(ctx context.Context, taskID, userID uuid.UUID) error {
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		scope, err := s.access.authorizeTask(ctx, tx, taskID, userID, model.RoleEditor)
		if err != nil {
			return err
		}
		if err := tx.Tasks().Delete(ctx, taskID); err != nil {
			return err
		}

		remaining, err := tx.Tasks().ListByList(ctx, scope.list.ID)
		if err != nil {
			return err
		}
		siblings := taskPointers(remaining)
		ordering.Renumber(siblings)
		return tx.Tasks().Reorder(ctx, siblings)
	})
}

// Move places the task at the zero-based index of the target list. Moving
// across boards is rejected. When the task changes list, the source list is
// renumbered and the move is narrated.
func (s *TaskService) Move(ctx context.Context, taskID, userID, targetListID uuid.UUID, index int) (*model.Task, error) {
	var task *model.Task
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		scope, err := s.access.authorizeTask(ctx, tx, taskID, userID, model.RoleEditor)
		if err != nil {
			return err
		}
		task = scope.task
		source := scope.list

		target, err := tx.TaskLists().GetByID(ctx, targetListID)
		if err != nil {
			return err
		}
		if target.BoardID != source.BoardID {
			return fmt.Errorf("%w: moving tasks between different boards is not allowed", ErrValidation)
		}

		inTarget, err := tx.Tasks().ListByList(ctx, target.ID)
		if err != nil {
			return err
		}
		siblings := ordering.Without(taskPointers(inTarget), func(t *model.Task) bool { return t.ID == taskID })

		moved, err := ordering.Move(siblings, task, index)
		if err != nil {
			return moveError(err)
		}
		task.ListID = target.ID

		changedList := source.ID != target.ID
		if changedList {
			inSource, err := tx.Tasks().ListByList(ctx, source.ID)
			if err != nil {
				return err
			}
			left := ordering.Without(taskPointers(inSource), func(t *model.Task) bool { return t.ID == taskID })
			ordering.Renumber(left)
			moved = append(moved, left...)
		}
		if err := tx.Tasks().Reorder(ctx, moved); err != nil {
			return err
		}

		if !changedList {
			return nil
		}
		actor, err := s.people.Resolve(ctx, userID)
		if err != nil {
			return err
		}
		return s.recorder.Record(ctx, tx.Comments(), taskID, actor.ID, audit.MovedToList(actor.Name, target.Title))
	})
	s.metrics.RecordMove("task", err == nil)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"task_id": taskID, "list_id": targetListID, "order": task.Order}).Debug("task moved")
	return task, nil
}

func (s *TaskService) AddLabel(ctx context.Context, taskID, userID, labelID uuid.UUID) (*model.Task, error) {
	return s.mutate(ctx, taskID, userID, func(tx repository.Store, scope *taskScope, actor identity.Actor) (string, error) {
		label, err := tx.Labels().GetByID(ctx, labelID)
		if err != nil {
			return "", err
		}
		if label.BoardID != scope.board.ID {
			return "", fmt.Errorf("%w: label belongs to another board", ErrValidation)
		}
		if scope.task.HasLabel(labelID) {
			return "", fmt.Errorf("%w: label already added to task", ErrValidation)
		}
		if err := tx.Tasks().AddLabel(ctx, taskID, labelID); err != nil {
			return "", err
		}
		scope.task.Labels = append(scope.task.Labels, *label)
		return audit.AddedLabel(actor.Name, label.Name), nil
	})
}

func (s *TaskService) RemoveLabel(ctx context.Context, taskID, userID, labelID uuid.UUID) (*model.Task, error) {
	return s.mutate(ctx, taskID, userID, func(tx repository.Store, scope *taskScope, actor identity.Actor) (string, error) {
		idx := -1
		for i, l := range scope.task.Labels {
			if l.ID == labelID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return "", fmt.Errorf("%w: label not found on this task", ErrNotFound)
		}
		label := scope.task.Labels[idx]

		if err := tx.Tasks().RemoveLabel(ctx, taskID, labelID); err != nil {
			return "", err
		}
		scope.task.Labels = append(scope.task.Labels[:idx], scope.task.Labels[idx+1:]...)
		return audit.RemovedLabel(actor.Name, label.Name), nil
	})
}

// Assign adds a board participant (the owner or a member) to the task.
func (s *TaskService) Assign(ctx context.Context, taskID, userID, assigneeID uuid.UUID) (*model.Task, error) {
	return s.mutate(ctx, taskID, userID, func(tx repository.Store, scope *taskScope, actor identity.Actor) (string, error) {
		if assigneeID != scope.board.OwnerID {
			_, err := tx.Members().Get(ctx, scope.board.ID, assigneeID)
			if errors.Is(err, repository.ErrMemberNotFound) {
				return "", fmt.Errorf("%w: board member not found or does not belong to this board", ErrNotFound)
			}
			if err != nil {
				return "", err
			}
		}
		if scope.task.HasAssignee(assigneeID) {
			return "", fmt.Errorf("%w: user is already assigned to this task", ErrValidation)
		}

		assignee, err := tx.Users().GetByID(ctx, assigneeID)
		if err != nil {
			return "", err
		}
		if err := tx.Tasks().AddAssignee(ctx, taskID, assigneeID); err != nil {
			return "", err
		}
		scope.task.Assignees = append(scope.task.Assignees, *assignee)
		return audit.AssignedUser(actor.Name, identity.DisplayName(assignee)), nil
	})
}

func (s *TaskService) Unassign(ctx context.Context, taskID, userID, assigneeID uuid.UUID) (*model.Task, error) {
	return s.mutate(ctx, taskID, userID, func(tx repository.Store, scope *taskScope, actor identity.Actor) (string, error) {
		idx := -1
		for i, u := range scope.task.Assignees {
			if u.ID == assigneeID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return "", fmt.Errorf("%w: assignee not found", ErrNotFound)
		}
		assignee := scope.task.Assignees[idx]

		if err := tx.Tasks().RemoveAssignee(ctx, taskID, assigneeID); err != nil {
			return "", err
		}
		scope.task.Assignees = append(scope.task.Assignees[:idx], scope.task.Assignees[idx+1:]...)
		return audit.UnassignedUser(actor.Name, identity.DisplayName(&assignee)), nil
	})
}

// mutate runs an Editor-gated change to one task and records the message
// it returns, all in one transaction.
func (s *TaskService) mutate(ctx context.Context, taskID, userID uuid.UUID, apply func(tx repository.Store, scope *taskScope, actor identity.Actor) (string, error)) (*model.Task, error) {
	var task *model.Task
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		scope, err := s.access.authorizeTask(ctx, tx, taskID, userID, model.RoleEditor)
		if err != nil {
			return err
		}
		actor, err := s.people.Resolve(ctx, userID)
		if err != nil {
			return err
		}

		message, err := apply(tx, scope, actor)
		if err != nil {
			return err
		}
		task = scope.task
		return s.recorder.Record(ctx, tx.Comments(), taskID, actor.ID, message)
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// DueSoon returns open, not yet notified tasks due within window of from.
func (s *TaskService) DueSoon(ctx context.Context, from time.Time, window time.Duration) ([]model.Task, error) {
	return s.store.Tasks().ListDueBetween(ctx, from, from.Add(window))
}

func (s *TaskService) MarkNotified(ctx context.Context, taskID uuid.UUID) error {
	return s.store.Tasks().MarkDueDateNotificationSent(ctx, taskID)
}

func taskFields(t *model.Task) audit.TaskFields {
	return audit.TaskFields{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		IsCompleted: t.IsCompleted,
	}
}
