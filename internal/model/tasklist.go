package model

import (
	"time"

	"github.com/google/uuid"
)

type TaskList struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Title     string    `gorm:"not null"`
	Order     int       `gorm:"column:position;not null"`
	CreatedAt time.Time

	Tasks []Task `gorm:"foreignKey:ListID"`
}

func (l *TaskList) SetOrder(order int) {
	l.Order = order
}
