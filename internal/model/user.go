package model

import (
	"time"

	"github.com/google/uuid"
)

// User is an account. It can sign in only once EmailConfirmed is set.
type User struct {
	ID                        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email                     string     `gorm:"uniqueIndex;not null" json:"email"`
	HashedPassword            string     `gorm:"not null" json:"-"`
	Name                      string     `gorm:"not null" json:"name"`
	EmailConfirmed            bool       `gorm:"not null" json:"email_confirmed"`
	ConfirmationCode          string     `gorm:"size:6" json:"-"`
	ConfirmationCodeExpiresAt *time.Time `json:"-"`
	CreatedAt                 time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
