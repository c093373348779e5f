package model

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken records an issued refresh token. The token handed to the
// client is a signed JWT whose jti is ID; deleting the row revokes it.
type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

func (t RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
