package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PushSubscription is a browser push endpoint registered by a user.
// The endpoint and keys are exactly what the browser's PushManager hands
// out, they are stored verbatim and passed to the push service on send.
type PushSubscription struct {
	DefaultModel
	OwnerID  uuid.UUID `gorm:"uniqueIndex:push_endpoint_owner"`
	Endpoint string    `gorm:"uniqueIndex:push_endpoint_owner"`
	P256dh   string
	Auth     string
}

func (s *PushSubscription) BeforeSave(_ *gorm.DB) error {
	s.Endpoint = strings.TrimSpace(s.Endpoint)
	if s.Endpoint == "" {
		return ErrSubscriptionEndpointNotSet
	}

	return nil
}
