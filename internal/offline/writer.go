package offline

import (
	"context"

	"github.com/google/uuid"
	"github.com/pocketfolio/backend/internal/models"
)

// DatabaseWriter replays queued records against the backend database.
type DatabaseWriter struct{}

func (p PendingTransaction) model() models.Transaction {
	return models.Transaction{
		OwnerID:       p.OwnerID,
		Date:          p.Date,
		Amount:        p.Amount,
		Type:          p.Type,
		Description:   p.Description,
		CategoryID:    p.CategoryID,
		ReceiptURL:    p.ReceiptURL,
		Vendor:        p.Vendor,
		PaymentMethod: p.PaymentMethod,
	}
}

func (DatabaseWriter) Insert(ctx context.Context, pending PendingTransaction) error {
	transaction := pending.model()
	return models.DB.WithContext(ctx).Create(&transaction).Error
}

// Update replays a pending update, scoped by owner so that a queued update
// can never touch another user's row.
func (DatabaseWriter) Update(ctx context.Context, pending PendingTransaction) error {
	id, err := uuid.Parse(pending.RemoteID)
	if err != nil {
		return err
	}

	var transaction models.Transaction
	err = models.DB.WithContext(ctx).First(&transaction, "id = ? AND owner_id = ?", id, pending.OwnerID).Error
	if err != nil {
		return err
	}

	return models.DB.WithContext(ctx).Model(&transaction).Updates(pending.model()).Error
}
