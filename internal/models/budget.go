package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget limits spending over an inclusive date range, optionally scoped
// to a single category.
//
// How much of the budget is spent is always computed at read time by
// summing the matching transactions, it is never stored.
type Budget struct {
	DefaultModel
	OwnerID    uuid.UUID `gorm:"index"`
	Name       string
	Amount     decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	StartDate  time.Time
	EndDate    time.Time
	CategoryID *uuid.UUID
	Category   Category `json:"-" gorm:"constraint:OnDelete:SET NULL"`
}

// BeforeSave validates the budget and normalizes its fields.
func (b *Budget) BeforeSave(_ *gorm.DB) error {
	if !b.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	b.StartDate = b.StartDate.In(time.UTC)
	b.EndDate = b.EndDate.In(time.UTC)

	if b.EndDate.Before(b.StartDate) {
		return ErrBudgetPeriodInvalid
	}

	b.Name = strings.TrimSpace(b.Name)

	return nil
}

func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	_ = b.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Budget)
	return b.checkIntegrity(tx, *toSave)
}

func (b *Budget) BeforeUpdate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(Budget)
	if tx.Statement.Changed("CategoryID") {
		return b.checkIntegrity(tx, toSave)
	}

	return nil
}

// checkIntegrity verifies that the referenced category exists and belongs
// to the same owner as the budget.
func (b *Budget) checkIntegrity(tx *gorm.DB, toSave Budget) error {
	if toSave.CategoryID == nil {
		return nil
	}

	err := tx.First(&Category{}, "id = ? AND owner_id = ?", toSave.CategoryID, toSave.OwnerID).Error
	if err != nil {
		return ErrReferencedResource
	}

	return nil
}

// AfterFind updates the dates to use UTC as timezone, not +0000.
func (b *Budget) AfterFind(tx *gorm.DB) error {
	_ = b.DefaultModel.AfterFind(tx)

	b.StartDate = b.StartDate.In(time.UTC)
	b.EndDate = b.EndDate.In(time.UTC)
	return nil
}
