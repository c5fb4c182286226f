package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType is the direction of a transaction from the point of
// view of the user: money coming in or money going out.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Valid reports whether the type is a member of the enum.
func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Transaction represents a single income or expense entry of a user.
type Transaction struct {
	DefaultModel
	OwnerID       uuid.UUID `gorm:"index"`
	Date          time.Time
	Amount        decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Type          TransactionType
	Description   string
	CategoryID    *uuid.UUID
	Category      Category `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	ReceiptURL    string
	Vendor        string
	PaymentMethod string
}

// BeforeSave validates the transaction and normalizes its fields.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	if !t.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if !t.Type.Valid() {
		return ErrTransactionTypeInvalid
	}

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	t.Description = strings.TrimSpace(t.Description)
	t.Vendor = strings.TrimSpace(t.Vendor)
	t.PaymentMethod = strings.TrimSpace(t.PaymentMethod)

	return nil
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Transaction)
	return t.checkIntegrity(tx, *toSave)
}

// BeforeUpdate verifies the state of the transaction before
// committing an update to the database.
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	// Column updates set Dest to a map, only struct updates can change
	// the category
	toSave, ok := tx.Statement.Dest.(Transaction)
	if ok && tx.Statement.Changed("CategoryID") {
		return t.checkIntegrity(tx, toSave)
	}

	return nil
}

// checkIntegrity verifies that the referenced category exists and belongs
// to the same owner as the transaction.
func (t *Transaction) checkIntegrity(tx *gorm.DB, toSave Transaction) error {
	if toSave.CategoryID == nil {
		return nil
	}

	err := tx.First(&Category{}, "id = ? AND owner_id = ?", toSave.CategoryID, toSave.OwnerID).Error
	if err != nil {
		return ErrReferencedResource
	}

	return nil
}

// AfterFind updates the date to use UTC as timezone, not +0000.
func (t *Transaction) AfterFind(tx *gorm.DB) error {
	_ = t.DefaultModel.AfterFind(tx)

	t.Date = t.Date.In(time.UTC)
	return nil
}
