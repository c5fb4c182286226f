package models_test

import (
	"github.com/shopspring/decimal"

	"github.com/pocketfolio/backend/internal/models"
)

func (suite *TestSuiteStandard) TestCategoryNameNotUnique() {
	user := suite.createTestUser("category@example.com")

	category := models.Category{
		OwnerID: user.ID,
		Name:    "Groceries",
		Type:    models.TransactionExpense,
	}
	suite.Require().Nil(models.DB.Create(&category).Error)

	duplicate := models.Category{
		OwnerID: user.ID,
		Name:    "Groceries",
		Type:    models.TransactionExpense,
	}
	err := models.DB.Create(&duplicate).Error
	suite.Assert().ErrorIs(err, models.ErrCategoryNameNotUnique)
}

func (suite *TestSuiteStandard) TestCategoryNameUniquePerOwner() {
	first := suite.createTestUser("first@example.com")
	second := suite.createTestUser("second@example.com")

	for _, user := range []models.User{first, second} {
		category := models.Category{
			OwnerID: user.ID,
			Name:    "Groceries",
			Type:    models.TransactionExpense,
		}
		suite.Assert().Nil(models.DB.Create(&category).Error, "The same name must be usable by different users")
	}
}

func (suite *TestSuiteStandard) TestCategoryIconInvalid() {
	user := suite.createTestUser("icon@example.com")

	category := models.Category{
		OwnerID: user.ID,
		Name:    "Groceries",
		Type:    models.TransactionExpense,
		Icon:    "flux-capacitor",
	}

	err := models.DB.Create(&category).Error
	suite.Assert().ErrorIs(err, models.ErrCategoryIconInvalid)
}

func (suite *TestSuiteStandard) TestCategoryIconEmpty() {
	user := suite.createTestUser("no-icon@example.com")

	category := models.Category{
		OwnerID: user.ID,
		Name:    "Misc",
		Type:    models.TransactionExpense,
	}

	suite.Assert().Nil(models.DB.Create(&category).Error, "A category without an icon must be valid")
}

func (suite *TestSuiteStandard) TestCategoryIconLabel() {
	suite.Assert().Equal("Food", models.IconUtensils.Label())
	suite.Assert().True(models.IconPiggyBank.Valid())
	suite.Assert().False(models.CategoryIcon("flux-capacitor").Valid())
}

func (suite *TestSuiteStandard) TestCategoryTransactions() {
	user := suite.createTestUser("category-transactions@example.com")

	category := models.Category{
		OwnerID: user.ID,
		Name:    "Transport",
		Type:    models.TransactionExpense,
	}
	suite.Require().Nil(models.DB.Create(&category).Error)

	categorized := models.Transaction{
		OwnerID:    user.ID,
		Amount:     decimal.NewFromFloat(2.80),
		Type:       models.TransactionExpense,
		CategoryID: &category.ID,
	}
	suite.Require().Nil(models.DB.Create(&categorized).Error)

	uncategorized := models.Transaction{
		OwnerID: user.ID,
		Amount:  decimal.NewFromFloat(9.50),
		Type:    models.TransactionExpense,
	}
	suite.Require().Nil(models.DB.Create(&uncategorized).Error)

	transactions := category.Transactions(models.DB)
	suite.Require().Len(transactions, 1)
	suite.Assert().Equal(categorized.ID, transactions[0].ID)

	// Deleting the category detaches its transactions
	suite.Require().Nil(models.DB.Delete(&category).Error)
	suite.Assert().Len(category.Transactions(models.DB), 0)

	var reloaded models.Transaction
	suite.Require().Nil(models.DB.First(&reloaded, "id = ?", categorized.ID).Error)
	suite.Assert().Nil(reloaded.CategoryID)
}
