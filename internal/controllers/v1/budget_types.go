package v1

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketfolio/backend/internal/models"
)

// BudgetEditable represents all user configurable parameters
type BudgetEditable struct {
	Name       string          `json:"name" example:"Groceries March"`                            // Name of the budget
	Amount     decimal.Decimal `json:"amount" example:"450" minimum:"0.00000001"`                 // Spending limit for the period
	StartDate  time.Time       `json:"startDate" example:"2024-03-01T00:00:00Z"`                  // First day of the period, inclusive
	EndDate    time.Time       `json:"endDate" example:"2024-03-31T00:00:00Z"`                    // Last day of the period, inclusive
	CategoryID *uuid.UUID      `json:"categoryId" example:"2649c965-7999-4873-ae16-89d5d5fa972e"` // Category the budget is scoped to. When unset, all expenses count
}

func (editable BudgetEditable) model(owner uuid.UUID) models.Budget {
	return models.Budget{
		OwnerID:    owner,
		Name:       editable.Name,
		Amount:     editable.Amount,
		StartDate:  editable.StartDate,
		EndDate:    editable.EndDate,
		CategoryID: editable.CategoryID,
	}
}

type Budget struct {
	models.DefaultModel
	BudgetEditable

	// These fields are computed
	Spent     decimal.Decimal `json:"spent" example:"117.23"`     // Expenses in the period that count against the budget
	Remaining decimal.Decimal `json:"remaining" example:"332.77"` // Amount minus Spent, negative when the budget is exceeded
}

func newBudgetResource(model models.Budget, spent decimal.Decimal) Budget {
	return Budget{
		DefaultModel: model.DefaultModel,
		BudgetEditable: BudgetEditable{
			Name:       model.Name,
			Amount:     model.Amount,
			StartDate:  model.StartDate,
			EndDate:    model.EndDate,
			CategoryID: model.CategoryID,
		},
		Spent:     spent,
		Remaining: model.Amount.Sub(spent),
	}
}

type BudgetListResponse struct {
	Data  []Budget `json:"data"`                                                          // List of budgets
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type BudgetResponse struct {
	Data  *Budget `json:"data"`                                                          // Data for the budget
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
