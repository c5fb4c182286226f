package models

import (
	"strings"

	"gorm.io/gorm"
)

// User is an authenticated owner of resources. Every other resource carries
// the ID of its user as OwnerID and is only ever visible to that user.
type User struct {
	DefaultModel
	Email        string `gorm:"uniqueIndex"`
	PasswordHash []byte `json:"-"`
}

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return nil
}
