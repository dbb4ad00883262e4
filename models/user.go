package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User account. The bcrypt hash never serializes (json:"-"), so API
// responses carry only the public profile fields.
type User struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	Email          string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	HashedPassword []byte    `gorm:"not null" json:"-"`
	Role           string    `gorm:"size:32;not null;default:user" json:"role"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}
