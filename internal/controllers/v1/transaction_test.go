package v1_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	v1 "github.com/pocketfolio/backend/internal/controllers/v1"
	"github.com/pocketfolio/backend/internal/models"
	"github.com/pocketfolio/backend/test"
)

func (suite *TestSuiteStandard) createTestTransaction(session v1.Session, editable v1.TransactionEditable) v1.Transaction {
	if editable.Type == "" {
		editable.Type = models.TransactionExpense
	}
	if editable.Amount.IsZero() {
		editable.Amount = decimal.NewFromFloat(17.23)
	}

	recorder := suite.authedRequest(session, http.MethodPost, "/v1/transactions", editable)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	return *response.Data
}

func (suite *TestSuiteStandard) TestTransactionCreate() {
	session := suite.register("jane@example.com")

	transaction := suite.createTestTransaction(session, v1.TransactionEditable{
		Amount:      decimal.NewFromFloat(14.03),
		Type:        models.TransactionExpense,
		Description: "Lunch",
		Vendor:      "Some Cafe",
	})

	suite.Assert().Equal("Lunch", transaction.Description)
	suite.Assert().True(transaction.Amount.Equal(decimal.NewFromFloat(14.03)))
	suite.Assert().NotEqual("00000000-0000-0000-0000-000000000000", transaction.ID.String())
}

func (suite *TestSuiteStandard) TestTransactionCreateInvalid() {
	session := suite.register("jane@example.com")

	tests := []struct {
		name     string
		editable v1.TransactionEditable
	}{
		{"zero amount", v1.TransactionEditable{Type: models.TransactionExpense}},
		{"negative amount", v1.TransactionEditable{Amount: decimal.NewFromInt(-1), Type: models.TransactionExpense}},
		{"invalid type", v1.TransactionEditable{Amount: decimal.NewFromInt(10), Type: "transfer"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := suite.authedRequest(session, http.MethodPost, "/v1/transactions", tt.editable)
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
		})
	}
}

// Resources of other users must behave as if they did not exist.
func (suite *TestSuiteStandard) TestTransactionOwnerScoping() {
	jane := suite.register("jane@example.com")
	john := suite.register("john@example.com")

	transaction := suite.createTestTransaction(jane, v1.TransactionEditable{Description: "Jane's"})

	recorder := suite.authedRequest(john, http.MethodGet, fmt.Sprintf("/v1/transactions/%s", transaction.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	recorder = suite.authedRequest(john, http.MethodGet, "/v1/transactions", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var list v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &recorder, &list)
	suite.Assert().Empty(list.Data)
}

func (suite *TestSuiteStandard) TestTransactionGetFiltered() {
	session := suite.register("jane@example.com")

	_ = suite.createTestTransaction(session, v1.TransactionEditable{
		Amount:      decimal.NewFromInt(3000),
		Type:        models.TransactionIncome,
		Description: "Salary",
		Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	_ = suite.createTestTransaction(session, v1.TransactionEditable{
		Type:        models.TransactionExpense,
		Description: "Rent March",
		Date:        time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
	})
	_ = suite.createTestTransaction(session, v1.TransactionEditable{
		Type:        models.TransactionExpense,
		Description: "Rent April",
		Date:        time.Date(2024, 4, 3, 0, 0, 0, 0, time.UTC),
	})

	tests := []struct {
		query string
		count int
	}{
		{"type=expense", 2},
		{"type=income", 1},
		{"description=Rent", 2},
		{"from=2024-03-01&to=2024-03-31", 2},
		{"from=2024-04-01", 1},
		{"type=expense&from=2024-03-01&to=2024-03-31", 1},
		{"amountMoreOrEqual=1000", 1},
		{"amountLessOrEqual=100", 2},
		{"limit=1", 1},
		{"offset=2", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.query, func(t *testing.T) {
			recorder := suite.authedRequest(session, http.MethodGet, "/v1/transactions?"+tt.query, nil)
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response v1.TransactionListResponse
			test.DecodeResponse(t, &recorder, &response)
			suite.Assert().Len(response.Data, tt.count, "Wrong number of results for %s", tt.query)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionGetFilterInvalidType() {
	session := suite.register("jane@example.com")

	recorder := suite.authedRequest(session, http.MethodGet, "/v1/transactions?type=transfer", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestTransactionSorting() {
	session := suite.register("jane@example.com")

	_ = suite.createTestTransaction(session, v1.TransactionEditable{
		Description: "Older",
		Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	_ = suite.createTestTransaction(session, v1.TransactionEditable{
		Description: "Newest",
		Date:        time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	})

	recorder := suite.authedRequest(session, http.MethodGet, "/v1/transactions", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal("Newest", response.Data[0].Description)
}

func (suite *TestSuiteStandard) TestTransactionUpdate() {
	session := suite.register("jane@example.com")
	transaction := suite.createTestTransaction(session, v1.TransactionEditable{Description: "Lunhc"})

	recorder := suite.authedRequest(session, http.MethodPatch, fmt.Sprintf("/v1/transactions/%s", transaction.ID), map[string]string{
		"description": "Lunch",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Equal("Lunch", response.Data.Description)

	// The amount is unchanged
	suite.Assert().True(response.Data.Amount.Equal(decimal.NewFromFloat(17.23)))
}

func (suite *TestSuiteStandard) TestTransactionDelete() {
	session := suite.register("jane@example.com")
	transaction := suite.createTestTransaction(session, v1.TransactionEditable{})

	recorder := suite.authedRequest(session, http.MethodDelete, fmt.Sprintf("/v1/transactions/%s", transaction.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = suite.authedRequest(session, http.MethodGet, fmt.Sprintf("/v1/transactions/%s", transaction.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestTransactionCategoryOfOtherUser() {
	jane := suite.register("jane@example.com")
	john := suite.register("john@example.com")

	category := suite.createTestCategory(john, v1.CategoryEditable{Name: "John's"})

	id := category.ID
	recorder := suite.authedRequest(jane, http.MethodPost, "/v1/transactions", v1.TransactionEditable{
		Amount:     decimal.NewFromInt(10),
		Type:       models.TransactionExpense,
		CategoryID: &id,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

// When the database is unavailable, creating a transaction queues it and
// a later sync writes it.
func (suite *TestSuiteStandard) TestTransactionOfflineQueue() {
	session := suite.register("jane@example.com")

	suite.CloseDB()

	recorder := suite.authedRequest(session, http.MethodPost, "/v1/transactions", v1.TransactionEditable{
		Amount:      decimal.NewFromFloat(12.30),
		Type:        models.TransactionExpense,
		Description: "Queued while offline",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusAccepted)

	var queued v1.TransactionQueuedResponse
	test.DecodeResponse(suite.T(), &recorder, &queued)
	suite.Assert().NotEmpty(queued.Data.Key)

	suite.ReconnectDB()

	recorder = suite.authedRequest(session, http.MethodPost, "/v1/transactions/sync", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var sync v1.SyncResponse
	test.DecodeResponse(suite.T(), &recorder, &sync)
	suite.Assert().Equal(1, sync.Data.Synced)
	suite.Assert().Equal(0, sync.Data.Failed)

	recorder = suite.authedRequest(session, http.MethodGet, "/v1/transactions", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var list v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &recorder, &list)
	suite.Require().Len(list.Data, 1)
	suite.Assert().Equal("Queued while offline", list.Data[0].Description)

	// The queue is empty, another pass syncs nothing
	recorder = suite.authedRequest(session, http.MethodPost, "/v1/transactions/sync", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &sync)
	suite.Assert().Equal(0, sync.Data.Synced)
}

func (suite *TestSuiteStandard) TestTransactionReceiptUpload() {
	session := suite.register("receipt@example.com")
	transaction := suite.createTestTransaction(session, v1.TransactionEditable{Description: "Team lunch"})

	body, headers := multipartFile(suite, "receipt.png", "not really a PNG")
	recorder := suite.authedRequest(session, http.MethodPost, fmt.Sprintf("/v1/transactions/%s/receipt", transaction.ID), body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotEmpty(response.Data.ReceiptURL)
	suite.Assert().True(strings.HasPrefix(response.Data.ReceiptURL, "/files/receipts/"), "Receipt URL is %s", response.Data.ReceiptURL)
	suite.Assert().True(strings.HasSuffix(response.Data.ReceiptURL, ".png"))

	// Replacing the receipt yields a new URL
	body, headers = multipartFile(suite, "scan.jpg", "different bytes")
	recorder = suite.authedRequest(session, http.MethodPost, fmt.Sprintf("/v1/transactions/%s/receipt", transaction.ID), body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var replaced v1.TransactionResponse
	test.DecodeResponse(suite.T(), &recorder, &replaced)
	suite.Assert().NotEqual(response.Data.ReceiptURL, replaced.Data.ReceiptURL)
}

func (suite *TestSuiteStandard) TestTransactionReceiptUploadInvalid() {
	session := suite.register("receipt-invalid@example.com")
	transaction := suite.createTestTransaction(session, v1.TransactionEditable{Description: "Hardware"})

	// No file part
	recorder := suite.authedRequest(session, http.MethodPost, fmt.Sprintf("/v1/transactions/%s/receipt", transaction.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	// Unsupported file type
	body, headers := multipartFile(suite, "receipt.exe", "MZ")
	recorder = suite.authedRequest(session, http.MethodPost, fmt.Sprintf("/v1/transactions/%s/receipt", transaction.ID), body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
