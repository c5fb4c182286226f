package v1_test

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	v1 "github.com/pocketfolio/backend/internal/controllers/v1"
	"github.com/pocketfolio/backend/internal/models"
	"github.com/pocketfolio/backend/test"
)

func (suite *TestSuiteStandard) TestNotificationSubscriptionCreate() {
	session := suite.register("jane@example.com")

	recorder := suite.authedRequest(session, http.MethodPost, "/v1/notifications/subscriptions", v1.SubscriptionEditable{
		Endpoint: "https://push.example.com/send/abc",
		P256dh:   "BNc...",
		Auth:     "k9d...",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.SubscriptionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Equal("https://push.example.com/send/abc", response.Data.Endpoint)
}

func (suite *TestSuiteStandard) TestNotificationSubscriptionDuplicateEndpoint() {
	session := suite.register("jane@example.com")

	editable := v1.SubscriptionEditable{
		Endpoint: "https://push.example.com/send/abc",
		P256dh:   "BNc...",
		Auth:     "k9d...",
	}

	recorder := suite.authedRequest(session, http.MethodPost, "/v1/notifications/subscriptions", editable)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	recorder = suite.authedRequest(session, http.MethodPost, "/v1/notifications/subscriptions", editable)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestNotificationSubscriptionDelete() {
	session := suite.register("jane@example.com")

	editable := v1.SubscriptionEditable{
		Endpoint: "https://push.example.com/send/abc",
		P256dh:   "BNc...",
		Auth:     "k9d...",
	}

	recorder := suite.authedRequest(session, http.MethodPost, "/v1/notifications/subscriptions", editable)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	recorder = suite.authedRequest(session, http.MethodDelete, "/v1/notifications/subscriptions", editable)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	// The subscription is gone
	recorder = suite.authedRequest(session, http.MethodDelete, "/v1/notifications/subscriptions", editable)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestVAPIDPublicKey() {
	session := suite.register("jane@example.com")

	recorder := suite.authedRequest(session, http.MethodGet, "/v1/notifications/vapid-public-key", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.VAPIDPublicKeyResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
}

// checkBudgets runs the evaluation and returns the alerts. No notifier is
// configured in tests, so nothing is actually pushed.
func (suite *TestSuiteStandard) checkBudgets(session v1.Session) []v1.BudgetAlert {
	recorder := suite.authedRequest(session, http.MethodPost, "/v1/notifications/check-budgets", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CheckBudgetsResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	return response.Data
}

func (suite *TestSuiteStandard) TestCheckBudgets() {
	session := suite.register("jane@example.com")

	today := time.Now().UTC()
	start := today.AddDate(0, 0, -10)
	end := today.AddDate(0, 0, 10)

	_ = suite.createTestBudget(session, v1.BudgetEditable{
		Name:      "Warning",
		Amount:    decimal.NewFromInt(100),
		StartDate: start,
		EndDate:   end,
	})
	_ = suite.createTestBudget(session, v1.BudgetEditable{
		Name:      "Exceeded",
		Amount:    decimal.NewFromInt(50),
		StartDate: start,
		EndDate:   end,
	})
	_ = suite.createTestBudget(session, v1.BudgetEditable{
		Name:      "Comfortable",
		Amount:    decimal.NewFromInt(10000),
		StartDate: start,
		EndDate:   end,
	})

	// 85% of "Warning", 170% of "Exceeded", under 1% of "Comfortable"
	_ = suite.createTestTransaction(session, v1.TransactionEditable{
		Amount: decimal.NewFromInt(85),
		Type:   models.TransactionExpense,
		Date:   today,
	})

	alerts := suite.checkBudgets(session)
	suite.Require().Len(alerts, 2)

	byName := make(map[string]v1.BudgetAlert, len(alerts))
	for _, alert := range alerts {
		byName[alert.Name] = alert
	}

	warning, ok := byName["Warning"]
	suite.Require().True(ok, "No alert for the budget at 85%%")
	suite.Assert().False(warning.Exceeded)
	suite.Assert().True(warning.Usage.Equal(decimal.NewFromInt(85)), "Usage is %s", warning.Usage)

	exceeded, ok := byName["Exceeded"]
	suite.Require().True(ok, "No alert for the budget at 170%%")
	suite.Assert().True(exceeded.Exceeded)
	suite.Assert().True(exceeded.Spent.Equal(decimal.NewFromInt(85)))
}

// Budgets whose period does not include today are not evaluated.
func (suite *TestSuiteStandard) TestCheckBudgetsPeriodScoped() {
	session := suite.register("jane@example.com")

	today := time.Now().UTC()

	_ = suite.createTestBudget(session, v1.BudgetEditable{
		Name:      "Last year",
		Amount:    decimal.NewFromInt(10),
		StartDate: today.AddDate(-1, 0, -10),
		EndDate:   today.AddDate(-1, 0, 10),
	})

	_ = suite.createTestTransaction(session, v1.TransactionEditable{
		Amount: decimal.NewFromInt(500),
		Type:   models.TransactionExpense,
		Date:   today.AddDate(-1, 0, 0),
	})

	suite.Assert().Empty(suite.checkBudgets(session))
}
