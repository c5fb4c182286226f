package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile holds the display data of a user. There is exactly one profile
// per user, created on registration.
type Profile struct {
	DefaultModel
	OwnerID   uuid.UUID `gorm:"uniqueIndex"`
	FirstName string
	LastName  string
	AvatarURL string
}

func (p *Profile) BeforeSave(_ *gorm.DB) error {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)

	return nil
}
