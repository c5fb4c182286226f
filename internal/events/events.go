// Package events implements a small in-process bus that notifies connected
// clients when a user's data changed, so that open views can refresh.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Topic identifies the data set an event refers to.
type Topic string

const (
	TopicTransactions Topic = "transactions"
	TopicCategories   Topic = "categories"
	TopicAccounts     Topic = "accounts"
	TopicBudgets      Topic = "budgets"
	TopicRecurring    Topic = "recurring-transactions"
	TopicDashboard    Topic = "dashboard"
)

// Event tells a subscriber that one of its data sets changed.
type Event struct {
	Topic     Topic     `json:"topic"`
	Timestamp time.Time `json:"timestamp"`
}

// Subscription is a registered listener for one user's events.
//
// Events are delivered on C. Delivery is best-effort: when the subscriber
// does not drain the channel in time, events are dropped rather than
// blocking the publisher.
type Subscription struct {
	C chan Event

	bus   *Bus
	owner uuid.UUID
	id    uint64
}

// Bus fans out change events to per-user subscriptions.
type Bus struct {
	mu            sync.RWMutex
	subscriptions map[uuid.UUID]map[uint64]*Subscription
	nextID        uint64
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{
		subscriptions: make(map[uuid.UUID]map[uint64]*Subscription),
	}
}

// Subscribe registers a listener for the given user's events.
func (b *Bus) Subscribe(owner uuid.UUID) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	subscription := &Subscription{
		C:     make(chan Event, 16),
		bus:   b,
		owner: owner,
		id:    b.nextID,
	}

	if b.subscriptions[owner] == nil {
		b.subscriptions[owner] = make(map[uint64]*Subscription)
	}
	b.subscriptions[owner][subscription.id] = subscription

	return subscription
}

// Unsubscribe removes the subscription from its bus and closes its channel.
func (s *Subscription) Unsubscribe() {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()

	subscriptions := s.bus.subscriptions[s.owner]
	if _, ok := subscriptions[s.id]; !ok {
		return
	}

	delete(subscriptions, s.id)
	if len(subscriptions) == 0 {
		delete(s.bus.subscriptions, s.owner)
	}

	close(s.C)
}

// Publish sends an event for each topic to all of the user's subscriptions.
func (b *Bus) Publish(owner uuid.UUID, topics ...Topic) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	now := time.Now().UTC()
	for _, subscription := range b.subscriptions[owner] {
		for _, topic := range topics {
			select {
			case subscription.C <- Event{Topic: topic, Timestamp: now}:
			default:
				// Slow subscriber, drop the event
			}
		}
	}
}
