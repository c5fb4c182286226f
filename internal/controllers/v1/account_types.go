package v1

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketfolio/backend/internal/models"
)

// AccountEditable represents all user configurable parameters
type AccountEditable struct {
	Name    string             `json:"name" example:"Joint checking"` // Name of the account, unique per user
	Type    models.AccountType `json:"type" example:"checking"`       // Kind of account
	Balance decimal.Decimal    `json:"balance" example:"2710.41"`     // Current balance, maintained by the user
}

func (editable AccountEditable) model(owner uuid.UUID) models.Account {
	return models.Account{
		OwnerID: owner,
		Name:    editable.Name,
		Type:    editable.Type,
		Balance: editable.Balance,
	}
}

type Account struct {
	models.DefaultModel
	AccountEditable
}

func newAccountResource(model models.Account) Account {
	return Account{
		DefaultModel: model.DefaultModel,
		AccountEditable: AccountEditable{
			Name:    model.Name,
			Type:    model.Type,
			Balance: model.Balance,
		},
	}
}

type AccountListResponse struct {
	Data  []Account `json:"data"`                                                          // List of accounts
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type AccountResponse struct {
	Data  *Account `json:"data"`                                                          // Data for the account
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
