package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the account record the moderation pipeline enforces against.
// Credentials and sessions live with the auth service.
type User struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email          string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Username       string         `gorm:"not null;size:50;uniqueIndex" json:"username"`
	Role           string         `gorm:"size:20;default:'user'" json:"role"`
	Enabled        bool           `gorm:"not null;default:true" json:"enabled"`
	SuspendedUntil *time.Time     `gorm:"index" json:"suspended_until,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsSuspended(now time.Time) bool {
	return u.SuspendedUntil != nil && u.SuspendedUntil.After(now)
}
