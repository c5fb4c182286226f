package models_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pocketfolio/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) createTestUser(email string) models.User {
	user := models.User{Email: email}
	err := models.DB.Create(&user).Error
	suite.Require().Nil(err)

	return user
}

func (suite *TestSuiteStandard) TestTransactionCreate() {
	user := suite.createTestUser("transaction@example.com")

	transaction := models.Transaction{
		OwnerID:     user.ID,
		Amount:      decimal.NewFromFloat(17.23),
		Type:        models.TransactionExpense,
		Description: "Groceries",
	}

	err := models.DB.Create(&transaction).Error
	suite.Require().Nil(err)

	suite.Assert().NotEqual(uuid.Nil, transaction.ID)
	suite.Assert().False(transaction.Date.IsZero(), "Date must default to the current time")
}

func (suite *TestSuiteStandard) TestTransactionAmountNotPositive() {
	user := suite.createTestUser("negative@example.com")

	tests := []struct {
		name   string
		amount decimal.Decimal
	}{
		{"Zero", decimal.Zero},
		{"Negative", decimal.NewFromFloat(-10)},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			transaction := models.Transaction{
				OwnerID: user.ID,
				Amount:  tt.amount,
				Type:    models.TransactionExpense,
			}

			err := models.DB.Create(&transaction).Error
			assert.ErrorIs(t, err, models.ErrAmountNotPositive)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionTypeInvalid() {
	user := suite.createTestUser("type@example.com")

	transaction := models.Transaction{
		OwnerID: user.ID,
		Amount:  decimal.NewFromFloat(10),
		Type:    "donation",
	}

	err := models.DB.Create(&transaction).Error
	suite.Assert().ErrorIs(err, models.ErrTransactionTypeInvalid)
}

func (suite *TestSuiteStandard) TestTransactionCategoryOtherOwner() {
	user := suite.createTestUser("owner-a@example.com")
	other := suite.createTestUser("owner-b@example.com")

	category := models.Category{
		OwnerID: other.ID,
		Name:    "Groceries",
		Type:    models.TransactionExpense,
	}
	suite.Require().Nil(models.DB.Create(&category).Error)

	transaction := models.Transaction{
		OwnerID:    user.ID,
		Amount:     decimal.NewFromFloat(10),
		Type:       models.TransactionExpense,
		CategoryID: &category.ID,
	}

	err := models.DB.Create(&transaction).Error
	suite.Assert().ErrorIs(err, models.ErrReferencedResource, "Categories of other users must not be referencable")
}

func (suite *TestSuiteStandard) TestTransactionDateUTC() {
	user := suite.createTestUser("utc@example.com")

	berlin, err := time.LoadLocation("Europe/Berlin")
	suite.Require().Nil(err)

	transaction := models.Transaction{
		OwnerID: user.ID,
		Amount:  decimal.NewFromFloat(10),
		Type:    models.TransactionIncome,
		Date:    time.Date(2024, 3, 17, 13, 37, 0, 0, berlin),
	}

	suite.Require().Nil(models.DB.Create(&transaction).Error)
	suite.Assert().Equal(time.UTC, transaction.Date.Location())
}

func (suite *TestSuiteStandard) TestTransactionUpdateSingleColumn() {
	user := suite.createTestUser("column@example.com")

	transaction := models.Transaction{
		OwnerID: user.ID,
		Amount:  decimal.NewFromFloat(12.00),
		Type:    models.TransactionExpense,
	}
	suite.Require().Nil(models.DB.Create(&transaction).Error)

	// Column updates pass a map to the update hook, not a struct
	err := models.DB.Model(&transaction).Update("ReceiptURL", "/files/receipts/none.png").Error
	suite.Require().Nil(err)

	var reloaded models.Transaction
	suite.Require().Nil(models.DB.First(&reloaded, "id = ?", transaction.ID).Error)
	suite.Assert().Equal("/files/receipts/none.png", reloaded.ReceiptURL)
}
