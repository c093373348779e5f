package model

import (
	"time"

	"github.com/google/uuid"
)

type Attachment struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TaskID       uuid.UUID `gorm:"type:uuid;not null;index"`
	FileName     string    `gorm:"not null"`
	StoredName   string    `gorm:"not null"`
	FileSize     int64     `gorm:"not null"`
	ContentType  string
	UploadedByID uuid.UUID `gorm:"type:uuid;not null"`
	UploadedAt   time.Time `gorm:"autoCreateTime"`
}
