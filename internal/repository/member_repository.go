package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard/internal/model"
)

type MemberRepository struct {
	db *gorm.DB
}

var _ MemberStore = (*MemberRepository)(nil)

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) Add(ctx context.Context, member *model.Member) error {
	return r.db.WithContext(ctx).Omit("User").Create(member).Error
}

func (r *MemberRepository) Get(ctx context.Context, boardID, userID uuid.UUID) (*model.Member, error) {
	var member model.Member
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("board_id = ? AND user_id = ?", boardID, userID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *MemberRepository) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.Member, error) {
	var members []model.Member
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("board_id = ?", boardID).
		Order("added_at").
		Find(&members).Error
	return members, err
}

func (r *MemberRepository) UpdateRole(ctx context.Context, boardID, userID uuid.UUID, role model.Role) error {
	result := r.db.WithContext(ctx).Model(&model.Member{}).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (r *MemberRepository) Remove(ctx context.Context, boardID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Delete(&model.Member{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}
