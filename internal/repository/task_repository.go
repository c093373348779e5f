package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskboard/internal/model"
)

type TaskRepository struct {
	db *gorm.DB
}

var _ TaskStore = (*TaskRepository)(nil)

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create adds a new task to the database
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).
		Preload("Labels").
		Preload("Assignees").
		First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

func (r *TaskRepository) ListByList(ctx context.Context, listID uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	result := r.db.WithContext(ctx).
		Preload("Labels").
		Preload("Assignees").
		Where("list_id = ?", listID).
		Order("position").
		Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

func (r *TaskRepository) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.Task, error) {
	lists := r.db.Model(&model.TaskList{}).Select("id").Where("board_id = ?", boardID)

	var tasks []model.Task
	result := r.db.WithContext(ctx).
		Preload("Labels").
		Preload("Assignees").
		Where("list_id IN (?)", lists).
		Order("position").
		Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

func (r *TaskRepository) GetMaxOrder(ctx context.Context, listID uuid.UUID) (int, error) {
	var maxPosition struct {
		Max int
	}
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Select("COALESCE(MAX(position), 0) as max").
		Where("list_id = ?", listID).
		Scan(&maxPosition).Error

	return maxPosition.Max, err
}

// Update writes the task's editable fields. Position and list are only
// changed through Reorder.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	result := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", task.ID).
		Updates(map[string]any{
			"title":                      task.Title,
			"description":                task.Description,
			"due_date":                   task.DueDate,
			"is_completed":               task.IsCompleted,
			"due_date_notification_sent": task.DueDateNotificationSent,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Delete removes a task by its ID
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Reorder(ctx context.Context, tasks []*model.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, task := range tasks {
			if err := tx.Model(&model.Task{}).Where("id = ?", task.ID).
				Updates(map[string]any{
					"list_id":  task.ListID,
					"position": task.Order,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// AddLabel adds a label to a task
func (r *TaskRepository) AddLabel(ctx context.Context, taskID, labelID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		"INSERT INTO task_labels (task_id, label_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		taskID, labelID,
	).Error
}

// RemoveLabel removes a label from a task
func (r *TaskRepository) RemoveLabel(ctx context.Context, taskID, labelID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		"DELETE FROM task_labels WHERE task_id = ? AND label_id = ?",
		taskID, labelID,
	).Error
}

func (r *TaskRepository) AddAssignee(ctx context.Context, taskID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		"INSERT INTO task_assignees (task_id, user_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		taskID, userID,
	).Error
}

func (r *TaskRepository) RemoveAssignee(ctx context.Context, taskID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		"DELETE FROM task_assignees WHERE task_id = ? AND user_id = ?",
		taskID, userID,
	).Error
}

// RemoveAssigneeFromBoard unassigns the user from every task on the board.
func (r *TaskRepository) RemoveAssigneeFromBoard(ctx context.Context, boardID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		`DELETE FROM task_assignees WHERE user_id = ? AND task_id IN (
			SELECT tasks.id FROM tasks
			JOIN task_lists ON task_lists.id = tasks.list_id
			WHERE task_lists.board_id = ?)`,
		userID, boardID,
	).Error
}

// ListDueBetween returns open tasks due in [start, end] that have not been
// notified yet.
func (r *TaskRepository) ListDueBetween(ctx context.Context, start, end time.Time) ([]model.Task, error) {
	var tasks []model.Task
	result := r.db.WithContext(ctx).
		Preload("Assignees").
		Where("due_date BETWEEN ? AND ?", start, end).
		Where("is_completed = ? AND due_date_notification_sent = ?", false, false).
		Order("due_date").
		Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

func (r *TaskRepository) MarkDueDateNotificationSent(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", id).
		Update("due_date_notification_sent", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
