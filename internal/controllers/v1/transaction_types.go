package v1

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketfolio/backend/internal/models"
	"github.com/pocketfolio/backend/internal/offline"
	pf_uuid "github.com/pocketfolio/backend/internal/uuid"
)

type TransactionEditable struct {
	Date time.Time `json:"date" example:"2024-03-17T00:00:00Z"` // Date of the transaction. Defaults to the current time

	// The maximum value is "999999999999.99999999", swagger unfortunately rounds this.
	Amount decimal.Decimal `json:"amount" example:"14.03" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The amount for the transaction

	Type          models.TransactionType `json:"type" example:"expense"`                                    // Direction of the transaction, "income" or "expense"
	Description   string                 `json:"description" example:"Lunch" default:""`                    // A description
	CategoryID    *uuid.UUID             `json:"categoryId" example:"2649c965-7999-4873-ae16-89d5d5fa972e"` // ID of the category
	Vendor        string                 `json:"vendor" example:"Some Cafe" default:""`                     // Where the money was spent or received
	PaymentMethod string                 `json:"paymentMethod" example:"card" default:""`                   // How the transaction was paid
}

// model returns the database resource for the API representation of the editable fields
func (editable TransactionEditable) model(owner uuid.UUID) models.Transaction {
	return models.Transaction{
		OwnerID:       owner,
		Date:          editable.Date,
		Amount:        editable.Amount,
		Type:          editable.Type,
		Description:   editable.Description,
		CategoryID:    editable.CategoryID,
		Vendor:        editable.Vendor,
		PaymentMethod: editable.PaymentMethod,
	}
}

// pending returns the offline queue payload for the editable fields
func (editable TransactionEditable) pending(owner uuid.UUID) offline.PendingTransaction {
	return offline.PendingTransaction{
		Status:        offline.StatusPendingInsert,
		OwnerID:       owner,
		Date:          editable.Date,
		Amount:        editable.Amount,
		Type:          editable.Type,
		Description:   editable.Description,
		CategoryID:    editable.CategoryID,
		Vendor:        editable.Vendor,
		PaymentMethod: editable.PaymentMethod,
	}
}

// Transaction is the representation of a Transaction in API v1.
type Transaction struct {
	models.DefaultModel
	TransactionEditable
	ReceiptURL string `json:"receiptUrl" example:"/files/receipts/d430d7c3-d14c-4712-9336-ee56965a6673/b8239e9d.png"` // URL of the uploaded receipt, if any
}

// newTransaction returns the API v1 representation of the resource
func newTransaction(model models.Transaction) Transaction {
	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			Date:          model.Date,
			Amount:        model.Amount,
			Type:          model.Type,
			Description:   model.Description,
			CategoryID:    model.CategoryID,
			Vendor:        model.Vendor,
			PaymentMethod: model.PaymentMethod,
		},
		ReceiptURL: model.ReceiptURL,
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`                                                          // Data for the transaction
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// QueuedTransaction is returned when a transaction could not be written and
// was queued for a later sync instead.
type QueuedTransaction struct {
	Key string `json:"key" example:"offline-00001718196854000000-000001"` // Key of the record in the offline queue
}

type TransactionQueuedResponse struct {
	Data  *QueuedTransaction `json:"data"`  // The queued record
	Error *string            `json:"error"` // The error, if any occurred
}

// SyncResult reports the outcome of an offline queue sync pass.
type SyncResult struct {
	Synced int `json:"synced" example:"2"` // Number of records written successfully
	Failed int `json:"failed" example:"0"` // Number of records that failed and stay queued
}

type SyncResponse struct {
	Data  *SyncResult `json:"data"`  // The sync pass outcome
	Error *string     `json:"error"` // The error, if any occurred
}

type TransactionQueryFilter struct {
	Type              string          `form:"type" filterField:"false"`                                       // By direction, "income" or "expense"
	CategoryID        pf_uuid.UUID    `form:"category"`                                                       // By ID of the category
	Description       string          `form:"description" filterField:"false"`                                // By text in the description
	Vendor            string          `form:"vendor" filterField:"false"`                                     // By text in the vendor
	From              time.Time       `form:"from" filterField:"false" time_format:"2006-01-02" time_utc:"1"` // Transactions on or after this date
	To                time.Time       `form:"to" filterField:"false" time_format:"2006-01-02" time_utc:"1"`   // Transactions on or before this date
	AmountLessOrEqual decimal.Decimal `form:"amountLessOrEqual" filterField:"false"`                          // Amount less than or equal to this
	AmountMoreOrEqual decimal.Decimal `form:"amountMoreOrEqual" filterField:"false"`                          // Amount more than or equal to this
	Offset            uint            `form:"offset" filterField:"false"`                                     // The offset of the first Transaction returned. Defaults to 0.
	Limit             int             `form:"limit" filterField:"false"`                                      // Maximum number of Transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() (models.Transaction, error) {
	var categoryID *uuid.UUID
	if f.CategoryID.UUID != uuid.Nil {
		id := f.CategoryID.UUID
		categoryID = &id
	}

	return models.Transaction{
		CategoryID: categoryID,
	}, nil
}
