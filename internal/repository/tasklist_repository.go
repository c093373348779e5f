package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard/internal/model"
)

type TaskListRepository struct {
	db *gorm.DB
}

var _ TaskListStore = (*TaskListRepository)(nil)

func NewTaskListRepository(db *gorm.DB) *TaskListRepository {
	return &TaskListRepository{db: db}
}

func (r *TaskListRepository) Create(ctx context.Context, list *model.TaskList) error {
	return r.db.WithContext(ctx).Omit("Tasks").Create(list).Error
}

func (r *TaskListRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TaskList, error) {
	var list model.TaskList
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&list).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskListNotFound
		}
		return nil, err
	}
	return &list, nil
}

func (r *TaskListRepository) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.TaskList, error) {
	var lists []model.TaskList
	err := r.db.WithContext(ctx).Where("board_id = ?", boardID).Order("position").Find(&lists).Error
	return lists, err
}

func (r *TaskListRepository) GetMaxOrder(ctx context.Context, boardID uuid.UUID) (int, error) {
	var maxPosition struct {
		Max int
	}
	err := r.db.WithContext(ctx).Model(&model.TaskList{}).
		Select("COALESCE(MAX(position), 0) as max").
		Where("board_id = ?", boardID).
		Scan(&maxPosition).Error

	return maxPosition.Max, err
}

func (r *TaskListRepository) Update(ctx context.Context, list *model.TaskList) error {
	result := r.db.WithContext(ctx).Model(&model.TaskList{}).
		Where("id = ?", list.ID).
		Update("title", list.Title)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskListNotFound
	}
	return nil
}

// Delete removes the list; its tasks cascade.
func (r *TaskListRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.TaskList{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskListNotFound
	}
	return nil
}

func (r *TaskListRepository) Reorder(ctx context.Context, lists []*model.TaskList) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, list := range lists {
			if err := tx.Model(&model.TaskList{}).Where("id = ?", list.ID).
				Update("position", list.Order).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
