package v1_test

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	v1 "github.com/pocketfolio/backend/internal/controllers/v1"
	"github.com/pocketfolio/backend/internal/models"
	"github.com/pocketfolio/backend/test"
)

func (suite *TestSuiteStandard) createTestCategory(session v1.Session, editable v1.CategoryEditable) v1.Category {
	if editable.Name == "" {
		editable.Name = "Groceries"
	}
	if editable.Type == "" {
		editable.Type = models.TransactionExpense
	}

	recorder := suite.authedRequest(session, http.MethodPost, "/v1/categories", editable)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.CategoryResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	return *response.Data
}

func (suite *TestSuiteStandard) TestCategoryCreate() {
	session := suite.register("jane@example.com")

	category := suite.createTestCategory(session, v1.CategoryEditable{
		Name:  "Transport",
		Type:  models.TransactionExpense,
		Color: "#0ea5e9",
		Icon:  models.IconCar,
	})

	suite.Assert().Equal("Transport", category.Name)
	suite.Assert().Equal(models.IconCar, category.Icon)
}

// Category names are unique per user, but not across users.
func (suite *TestSuiteStandard) TestCategoryNameUniquePerUser() {
	jane := suite.register("jane@example.com")
	john := suite.register("john@example.com")

	_ = suite.createTestCategory(jane, v1.CategoryEditable{Name: "Groceries"})
	_ = suite.createTestCategory(john, v1.CategoryEditable{Name: "Groceries"})

	recorder := suite.authedRequest(jane, http.MethodPost, "/v1/categories", v1.CategoryEditable{
		Name: "Groceries",
		Type: models.TransactionExpense,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCategoryCreateInvalidIcon() {
	session := suite.register("jane@example.com")

	recorder := suite.authedRequest(session, http.MethodPost, "/v1/categories", v1.CategoryEditable{
		Name: "Groceries",
		Type: models.TransactionExpense,
		Icon: "flux-capacitor",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCategoryList() {
	session := suite.register("jane@example.com")

	_ = suite.createTestCategory(session, v1.CategoryEditable{Name: "Salary", Type: models.TransactionIncome})
	_ = suite.createTestCategory(session, v1.CategoryEditable{Name: "Groceries", Type: models.TransactionExpense})

	recorder := suite.authedRequest(session, http.MethodGet, "/v1/categories", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().Len(response.Data, 2)

	// Sorted by name
	suite.Assert().Equal("Groceries", response.Data[0].Name)

	recorder = suite.authedRequest(session, http.MethodGet, "/v1/categories?type=income", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal("Salary", response.Data[0].Name)
}

func (suite *TestSuiteStandard) TestCategoryUpdate() {
	session := suite.register("jane@example.com")
	category := suite.createTestCategory(session, v1.CategoryEditable{Name: "Groceries"})

	recorder := suite.authedRequest(session, http.MethodPatch, fmt.Sprintf("/v1/categories/%s", category.ID), map[string]string{
		"color": "#f43f5e",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CategoryResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Equal("#f43f5e", response.Data.Color)
	suite.Assert().Equal("Groceries", response.Data.Name)
}

// Deleting a category detaches it from transactions instead of deleting them.
func (suite *TestSuiteStandard) TestCategoryDeleteDetachesTransactions() {
	session := suite.register("jane@example.com")
	category := suite.createTestCategory(session, v1.CategoryEditable{Name: "Groceries"})

	id := category.ID
	transaction := suite.createTestTransaction(session, v1.TransactionEditable{
		Amount:     decimal.NewFromInt(42),
		CategoryID: &id,
	})

	recorder := suite.authedRequest(session, http.MethodDelete, fmt.Sprintf("/v1/categories/%s", category.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = suite.authedRequest(session, http.MethodGet, fmt.Sprintf("/v1/transactions/%s", transaction.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Nil(response.Data.CategoryID)
}
