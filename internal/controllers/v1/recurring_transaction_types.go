package v1

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketfolio/backend/internal/models"
)

// RecurringTransactionEditable represents all user configurable parameters
type RecurringTransactionEditable struct {
	Amount      decimal.Decimal        `json:"amount" example:"9.99" minimum:"0.00000001"`                // The amount for each occurrence
	Type        models.TransactionType `json:"type" example:"expense"`                                    // Direction, "income" or "expense"
	Description string                 `json:"description" example:"Streaming subscription"`              // A description
	CategoryID  *uuid.UUID             `json:"categoryId" example:"2649c965-7999-4873-ae16-89d5d5fa972e"` // ID of the category
	Frequency   models.Frequency       `json:"frequency" example:"monthly"`                               // How often the transaction recurs
	StartDate   time.Time              `json:"startDate" example:"2024-01-01T00:00:00Z"`                  // First occurrence
	EndDate     *time.Time             `json:"endDate" example:"2024-12-31T00:00:00Z"`                    // Last occurrence, unset for open-ended
}

func (editable RecurringTransactionEditable) model(owner uuid.UUID) models.RecurringTransaction {
	return models.RecurringTransaction{
		OwnerID:     owner,
		Amount:      editable.Amount,
		Type:        editable.Type,
		Description: editable.Description,
		CategoryID:  editable.CategoryID,
		Frequency:   editable.Frequency,
		StartDate:   editable.StartDate,
		EndDate:     editable.EndDate,
	}
}

type RecurringTransaction struct {
	models.DefaultModel
	RecurringTransactionEditable
}

func newRecurringTransactionResource(model models.RecurringTransaction) RecurringTransaction {
	return RecurringTransaction{
		DefaultModel: model.DefaultModel,
		RecurringTransactionEditable: RecurringTransactionEditable{
			Amount:      model.Amount,
			Type:        model.Type,
			Description: model.Description,
			CategoryID:  model.CategoryID,
			Frequency:   model.Frequency,
			StartDate:   model.StartDate,
			EndDate:     model.EndDate,
		},
	}
}

type RecurringTransactionListResponse struct {
	Data  []RecurringTransaction `json:"data"`                                                          // List of recurring transactions
	Error *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type RecurringTransactionResponse struct {
	Data  *RecurringTransaction `json:"data"`                                                          // Data for the recurring transaction
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
