// Package offline implements the write queue that buffers new transactions
// in local durable storage while the backing data service is unreachable
// and replays them once connectivity returns.
//
// The queue is best-effort with at most one attempt per reconnect: there is
// no retry backoff, no ordering guarantee beyond enumeration order of the
// store, and no idempotency token. If a replay is interrupted after the
// remote write succeeded but before the local key is deleted, the record is
// submitted again on the next pass and produces a duplicate.
package offline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/pocketfolio/backend/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Status tags a queued record with the remote operation it is waiting for.
type Status string

const (
	StatusPendingInsert Status = "pending-insert"
	StatusPendingUpdate Status = "pending-update"
	StatusPendingDelete Status = "pending-delete"
)

// ErrOfflineEdit is returned when a change to an already-remote record is
// queued. Offline mode only supports creating new records: there is no
// conflict resolution strategy for concurrent edits, so edits must fail
// instead of being replayed blindly.
var ErrOfflineEdit = errors.New("editing an existing transaction is not supported offline")

// PendingTransaction is a transaction payload queued for replay.
type PendingTransaction struct {
	// RemoteID is the ID of the already-remote record. Only set for
	// pending updates.
	RemoteID string `json:"id,omitempty"`

	Status        Status                 `json:"local_status"`
	OwnerID       uuid.UUID              `json:"user_id"`
	Date          time.Time              `json:"date"`
	Amount        decimal.Decimal        `json:"amount"`
	Type          models.TransactionType `json:"type"`
	Description   string                 `json:"description"`
	CategoryID    *uuid.UUID             `json:"category_id,omitempty"`
	ReceiptURL    string                 `json:"receipt_url,omitempty"`
	Vendor        string                 `json:"vendor,omitempty"`
	PaymentMethod string                 `json:"payment_method,omitempty"`
}

// Store is the local durable key-value storage the queue lives in.
// Keys returns all keys of the namespace; the order of the returned keys
// is the replay order.
type Store interface {
	Put(key string, value []byte) error
	Get(key string) ([]byte, error)
	Delete(key string) error
	Keys() ([]string, error)
}

// Writer is the remote write surface queued records are replayed against.
type Writer interface {
	Insert(ctx context.Context, pending PendingTransaction) error
	Update(ctx context.Context, pending PendingTransaction) error
}

// Result are the aggregate counts of one sync pass.
type Result struct {
	Synced int `json:"synced" example:"3"`
	Failed int `json:"failed" example:"0"`
}

// keyPrefix namespaces queue entries in the store.
const keyPrefix = "offline-"

// Queue buffers transaction writes and replays them.
type Queue struct {
	store      Store
	writer     Writer
	invalidate func(owner uuid.UUID)

	now func() time.Time
	seq atomic.Uint64
}

// NewQueue returns a queue over the given store and writer.
//
// invalidate is called after every sync pass that replayed at least one
// record, so that cached transaction and dashboard views can be refreshed.
// It may be nil.
func NewQueue(store Store, writer Writer, invalidate func(owner uuid.UUID)) *Queue {
	return &Queue{
		store:      store,
		writer:     writer,
		invalidate: invalidate,
		now:        time.Now,
	}
}

// Enqueue stores the payload under a fresh timestamp-derived key and
// reports success immediately. No remote call is attempted.
//
// Only new records can be queued. Queuing a pending update or delete is
// rejected with ErrOfflineEdit.
func (q *Queue) Enqueue(pending PendingTransaction) (string, error) {
	if pending.Status == "" {
		pending.Status = StatusPendingInsert
	}

	if pending.Status != StatusPendingInsert {
		return "", ErrOfflineEdit
	}

	data, err := json.Marshal(pending)
	if err != nil {
		return "", err
	}

	// Zero-padding keeps the keys in insertion order for stores that
	// enumerate lexicographically. The sequence number breaks ties
	// between records queued within the same clock tick.
	key := fmt.Sprintf("%s%020d-%06d", keyPrefix, q.now().UnixNano(), q.seq.Add(1))

	err = q.store.Put(key, data)
	if err != nil {
		return "", err
	}

	return key, nil
}

// Sync replays all queued records for the given owner, one attempt each.
//
// Records owned by a different user are discarded without a remote call:
// after a user switch, another account's queued writes must never be
// synced. Malformed records are discarded as well. Records whose remote
// write fails stay queued for the next pass.
func (q *Queue) Sync(ctx context.Context, owner uuid.UUID) (Result, error) {
	var result Result

	keys, err := q.store.Keys()
	if err != nil {
		return Result{}, err
	}

	for _, key := range keys {
		data, err := q.store.Get(key)
		if err != nil {
			result.Failed++
			continue
		}

		var pending PendingTransaction
		if err := json.Unmarshal(data, &pending); err != nil {
			// Malformed records can never be replayed, drop them
			_ = q.store.Delete(key)
			continue
		}

		if pending.OwnerID != owner {
			_ = q.store.Delete(key)
			continue
		}

		switch pending.Status {
		case StatusPendingInsert:
			err = q.writer.Insert(ctx, pending)
		case StatusPendingUpdate:
			if pending.RemoteID == "" {
				// An update without a remote ID can never succeed
				_ = q.store.Delete(key)
				result.Failed++
				continue
			}
			err = q.writer.Update(ctx, pending)
		default:
			log.Warn().Str("key", key).Str("status", string(pending.Status)).Msg("offline: unsupported pending status, keeping record")
			continue
		}

		if err != nil {
			log.Error().Err(err).Str("key", key).Msg("offline: replay failed")
			result.Failed++
			continue
		}

		_ = q.store.Delete(key)
		result.Synced++
	}

	if result.Synced > 0 && q.invalidate != nil {
		q.invalidate(owner)
	}

	return result, nil
}

// Run triggers a sync pass on every offline-to-online transition, as long
// as a user is signed in. current reports the signed-in user; when it
// returns false, the transition is ignored.
//
// Run blocks until the context is cancelled or the channel is closed.
func (q *Queue) Run(ctx context.Context, transitions <-chan bool, current func() (uuid.UUID, bool)) {
	online := false

	for {
		select {
		case <-ctx.Done():
			return
		case next, ok := <-transitions:
			if !ok {
				return
			}

			if next && !online {
				if owner, signedIn := current(); signedIn {
					result, err := q.Sync(ctx, owner)
					if err != nil {
						log.Error().Err(err).Msg("offline: sync pass failed")
					} else if result.Synced > 0 || result.Failed > 0 {
						log.Info().Int("synced", result.Synced).Int("failed", result.Failed).Msg("offline: sync pass finished")
					}
				}
			}

			online = next
		}
	}
}
