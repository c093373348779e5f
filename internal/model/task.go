package model

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID                      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ListID                  uuid.UUID `gorm:"type:uuid;not null;index"`
	Title                   string    `gorm:"not null"`
	Description             string
	DueDate                 *time.Time
	IsCompleted             bool `gorm:"not null;default:false"`
	Order                   int  `gorm:"column:position;not null"`
	DueDateNotificationSent bool `gorm:"not null;default:false"`
	CreatedAt               time.Time

	Labels      []Label      `gorm:"many2many:task_labels"`
	Assignees   []User       `gorm:"many2many:task_assignees"`
	Comments    []Comment    `gorm:"foreignKey:TaskID"`
	Attachments []Attachment `gorm:"foreignKey:TaskID"`
}

func (t *Task) SetOrder(order int) {
	t.Order = order
}

// HasLabel reports whether a label with the given id is attached.
func (t *Task) HasLabel(labelID uuid.UUID) bool {
	for _, l := range t.Labels {
		if l.ID == labelID {
			return true
		}
	}
	return false
}

// HasAssignee reports whether the user is assigned to the task.
func (t *Task) HasAssignee(userID uuid.UUID) bool {
	for _, u := range t.Assignees {
		if u.ID == userID {
			return true
		}
	}
	return false
}
