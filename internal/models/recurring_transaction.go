package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Frequency is the interval at which a recurring transaction repeats.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// Valid reports whether the frequency is a member of the enum.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}

	return false
}

// RecurringTransaction is a template for a transaction that repeats at a
// fixed frequency. It only stores the template, transactions are never
// materialized from it.
type RecurringTransaction struct {
	DefaultModel
	OwnerID     uuid.UUID       `gorm:"index"`
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Type        TransactionType
	Description string
	CategoryID  *uuid.UUID `gorm:"constraint:OnDelete:SET NULL"`
	Category    Category   `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	Frequency   Frequency
	StartDate   time.Time
	EndDate     *time.Time
}

// BeforeSave validates the recurring transaction and normalizes its fields.
func (r *RecurringTransaction) BeforeSave(_ *gorm.DB) error {
	if !r.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if !r.Type.Valid() {
		return ErrTransactionTypeInvalid
	}

	if !r.Frequency.Valid() {
		return ErrFrequencyInvalid
	}

	r.StartDate = r.StartDate.In(time.UTC)
	if r.EndDate != nil {
		end := r.EndDate.In(time.UTC)
		r.EndDate = &end

		if end.Before(r.StartDate) {
			return ErrRecurrenceEndBeforeStart
		}
	}

	r.Description = strings.TrimSpace(r.Description)

	return nil
}

func (r *RecurringTransaction) BeforeCreate(tx *gorm.DB) error {
	_ = r.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*RecurringTransaction)
	return r.checkIntegrity(tx, *toSave)
}

func (r *RecurringTransaction) BeforeUpdate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(RecurringTransaction)
	if tx.Statement.Changed("CategoryID") {
		return r.checkIntegrity(tx, toSave)
	}

	return nil
}

func (r *RecurringTransaction) checkIntegrity(tx *gorm.DB, toSave RecurringTransaction) error {
	if toSave.CategoryID == nil {
		return nil
	}

	err := tx.First(&Category{}, "id = ? AND owner_id = ?", toSave.CategoryID, toSave.OwnerID).Error
	if err != nil {
		return ErrReferencedResource
	}

	return nil
}
