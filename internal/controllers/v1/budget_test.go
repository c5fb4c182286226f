package v1_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	v1 "github.com/pocketfolio/backend/internal/controllers/v1"
	"github.com/pocketfolio/backend/internal/models"
	"github.com/pocketfolio/backend/test"
)

func (suite *TestSuiteStandard) createTestBudget(session v1.Session, editable v1.BudgetEditable) v1.Budget {
	if editable.Name == "" {
		editable.Name = "March groceries"
	}
	if editable.Amount.IsZero() {
		editable.Amount = decimal.NewFromInt(450)
	}
	if editable.StartDate.IsZero() {
		editable.StartDate = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	}
	if editable.EndDate.IsZero() {
		editable.EndDate = time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	}

	recorder := suite.authedRequest(session, http.MethodPost, "/v1/budgets", editable)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	return *response.Data
}

func (suite *TestSuiteStandard) TestBudgetCreate() {
	session := suite.register("jane@example.com")
	budget := suite.createTestBudget(session, v1.BudgetEditable{})

	suite.Assert().True(budget.Spent.IsZero())
	suite.Assert().True(budget.Remaining.Equal(decimal.NewFromInt(450)))
}

func (suite *TestSuiteStandard) TestBudgetCreateInvalidPeriod() {
	session := suite.register("jane@example.com")

	recorder := suite.authedRequest(session, http.MethodPost, "/v1/budgets", v1.BudgetEditable{
		Name:      "Backwards",
		Amount:    decimal.NewFromInt(100),
		StartDate: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

// Spent counts expenses in the period. With a category scope, only that
// category's expenses count. Without one, all expenses count.
func (suite *TestSuiteStandard) TestBudgetSpent() {
	session := suite.register("jane@example.com")

	groceries := suite.createTestCategory(session, v1.CategoryEditable{Name: "Groceries"})
	groceriesID := groceries.ID

	_ = suite.createTestTransaction(session, v1.TransactionEditable{
		Amount:     decimal.NewFromInt(50),
		Type:       models.TransactionExpense,
		CategoryID: &groceriesID,
		Date:       time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	_ = suite.createTestTransaction(session, v1.TransactionEditable{
		Amount: decimal.NewFromInt(30),
		Type:   models.TransactionExpense,
		Date:   time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
	})

	// Outside the period
	_ = suite.createTestTransaction(session, v1.TransactionEditable{
		Amount:     decimal.NewFromInt(99),
		Type:       models.TransactionExpense,
		CategoryID: &groceriesID,
		Date:       time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	})

	// Income never counts
	_ = suite.createTestTransaction(session, v1.TransactionEditable{
		Amount: decimal.NewFromInt(1000),
		Type:   models.TransactionIncome,
		Date:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	})

	scoped := suite.createTestBudget(session, v1.BudgetEditable{
		Name:       "Groceries March",
		CategoryID: &groceriesID,
	})
	suite.Assert().True(scoped.Spent.Equal(decimal.NewFromInt(50)), "Scoped spent is %s", scoped.Spent)

	unscoped := suite.createTestBudget(session, v1.BudgetEditable{Name: "All March"})
	suite.Assert().True(unscoped.Spent.Equal(decimal.NewFromInt(80)), "Unscoped spent is %s", unscoped.Spent)
}

// Transactions on the period boundary days count.
func (suite *TestSuiteStandard) TestBudgetSpentInclusiveBounds() {
	session := suite.register("jane@example.com")

	_ = suite.createTestTransaction(session, v1.TransactionEditable{
		Amount: decimal.NewFromInt(10),
		Type:   models.TransactionExpense,
		Date:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	_ = suite.createTestTransaction(session, v1.TransactionEditable{
		Amount: decimal.NewFromInt(20),
		Type:   models.TransactionExpense,
		Date:   time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC),
	})

	budget := suite.createTestBudget(session, v1.BudgetEditable{})
	suite.Assert().True(budget.Spent.Equal(decimal.NewFromInt(30)), "Spent is %s", budget.Spent)
}

func (suite *TestSuiteStandard) TestBudgetUpdate() {
	session := suite.register("jane@example.com")
	budget := suite.createTestBudget(session, v1.BudgetEditable{})

	recorder := suite.authedRequest(session, http.MethodPatch, fmt.Sprintf("/v1/budgets/%s", budget.ID), map[string]string{
		"amount": "500",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().True(response.Data.Amount.Equal(decimal.NewFromInt(500)))
}

func (suite *TestSuiteStandard) TestBudgetDelete() {
	session := suite.register("jane@example.com")
	budget := suite.createTestBudget(session, v1.BudgetEditable{})

	recorder := suite.authedRequest(session, http.MethodDelete, fmt.Sprintf("/v1/budgets/%s", budget.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = suite.authedRequest(session, http.MethodGet, fmt.Sprintf("/v1/budgets/%s", budget.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}
