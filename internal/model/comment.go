package model

import (
	"time"

	"github.com/google/uuid"
)

// Comment is either written by a user or synthesized as a system log entry
// narrating a change to its task. Comments are never edited.
type Comment struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TaskID      uuid.UUID `gorm:"type:uuid;not null;index"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null"`
	Content     string    `gorm:"not null"`
	IsSystemLog bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time

	Author User `gorm:"foreignKey:AuthorID"`
}
