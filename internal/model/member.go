package model

import (
	"time"

	"github.com/google/uuid"
)

// Member grants a non-owner user a role on a board.
type Member struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_board_members_board_user"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_board_members_board_user;index"`
	Role    Role      `gorm:"type:varchar(16);not null;check:role IN ('viewer', 'editor')"`
	AddedAt time.Time `gorm:"autoCreateTime"`

	User User `gorm:"foreignKey:UserID"`
}

func (Member) TableName() string {
	return "board_members"
}
