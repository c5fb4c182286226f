package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AccountType categorizes an account.
type AccountType string

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountCreditCard AccountType = "credit_card"
	AccountCash       AccountType = "cash"
	AccountInvestment AccountType = "investment"
	AccountLoan       AccountType = "loan"
	AccountOther      AccountType = "other"
)

// Valid reports whether the type is a member of the enum.
func (t AccountType) Valid() bool {
	switch t {
	case AccountChecking, AccountSavings, AccountCreditCard, AccountCash, AccountInvestment, AccountLoan, AccountOther:
		return true
	}

	return false
}

// Account represents a place money is kept, e.g. a bank account.
//
// Accounts are not linked to transactions: the balance is edited by the
// user, not derived.
type Account struct {
	DefaultModel
	OwnerID uuid.UUID       `gorm:"uniqueIndex:account_name_owner"`
	Name    string          `gorm:"uniqueIndex:account_name_owner"`
	Balance decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Type    AccountType
}

// BeforeSave validates the account and normalizes its fields.
func (a *Account) BeforeSave(_ *gorm.DB) error {
	if !a.Type.Valid() {
		return ErrAccountTypeInvalid
	}

	a.Name = strings.TrimSpace(a.Name)

	return nil
}
