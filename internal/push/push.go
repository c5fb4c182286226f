// Package push delivers Web Push notifications to registered browser
// subscriptions.
package push

import (
	"encoding/json"
	"fmt"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/rs/zerolog/log"

	"github.com/pocketfolio/backend/internal/models"
)

// Payload is the notification document the service worker displays.
type Payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Icon  string `json:"icon,omitempty"`
	URL   string `json:"url,omitempty"`
}

// Sender pushes payloads to subscriptions with VAPID authentication.
type Sender struct {
	options webpush.Options
}

// NewSender creates a Sender. subscriber is the contact address the push
// service may use to reach the operator, usually a mailto: URL.
func NewSender(vapidPublicKey, vapidPrivateKey, subscriber string) *Sender {
	return &Sender{
		options: webpush.Options{
			Subscriber:      subscriber,
			VAPIDPublicKey:  vapidPublicKey,
			VAPIDPrivateKey: vapidPrivateKey,
			TTL:             3600,
		},
	}
}

// Send pushes the payload to a single subscription.
//
// A 404 or 410 from the push service means the browser dropped the
// subscription. Those are reported as models.ErrResourceNotFound so the
// caller can remove the stale registration.
func (s *Sender) Send(subscription models.PushSubscription, payload Payload) error {
	message, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	response, err := webpush.SendNotification(message, &webpush.Subscription{
		Endpoint: subscription.Endpoint,
		Keys: webpush.Keys{
			P256dh: subscription.P256dh,
			Auth:   subscription.Auth,
		},
	}, &s.options)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode == http.StatusNotFound, response.StatusCode == http.StatusGone:
		return models.ErrResourceNotFound
	case response.StatusCode >= 400:
		return fmt.Errorf("the push service rejected the notification with status %d", response.StatusCode)
	}

	return nil
}

// Broadcast pushes the payload to all of a user's subscriptions and
// removes registrations the push service reports as gone.
func (s *Sender) Broadcast(subscriptions []models.PushSubscription, payload Payload) {
	for _, subscription := range subscriptions {
		err := s.Send(subscription, payload)
		if err == nil {
			continue
		}

		if err == models.ErrResourceNotFound {
			err := models.DB.Delete(&subscription).Error
			if err != nil {
				log.Error().Err(err).Str("endpoint", subscription.Endpoint).Msg("could not remove stale push subscription")
			}
			continue
		}

		log.Warn().Err(err).Str("endpoint", subscription.Endpoint).Msg("could not deliver push notification")
	}
}
