package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/pocketfolio/backend/internal/controllers/v1"
	"github.com/pocketfolio/backend/test"
)

func (suite *TestSuiteStandard) TestRegister() {
	session := suite.register("jane@example.com")

	suite.Assert().NotEmpty(session.Token)
	suite.Assert().Equal("jane@example.com", session.Email)
}

func (suite *TestSuiteStandard) TestRegisterEmailTaken() {
	_ = suite.register("jane@example.com")

	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/auth/register", v1.Credentials{
		Email:    "jane@example.com",
		Password: "another password",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestRegisterInvalid() {
	tests := []struct {
		name        string
		credentials v1.Credentials
	}{
		{"no email", v1.Credentials{Password: "correct horse"}},
		{"short password", v1.Credentials{Email: "jane@example.com", Password: "hunter2"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, suite.router, http.MethodPost, "/v1/auth/register", tt.credentials)
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestLogin() {
	_ = suite.register("jane@example.com")

	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/auth/login", v1.Credentials{
		Email:    "jane@example.com",
		Password: "correct horse",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.SessionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().NotEmpty(response.Data.Token)
}

// Login must not reveal whether the email or the password was wrong.
func (suite *TestSuiteStandard) TestLoginWrongCredentials() {
	_ = suite.register("jane@example.com")

	for _, credentials := range []v1.Credentials{
		{Email: "jane@example.com", Password: "wrong password"},
		{Email: "nobody@example.com", Password: "correct horse"},
	} {
		recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/auth/login", credentials)
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)
	}
}

// All resource endpoints reject requests without a bearer token.
func (suite *TestSuiteStandard) TestAuthenticationRequired() {
	for _, url := range []string{
		"/v1/transactions",
		"/v1/categories",
		"/v1/accounts",
		"/v1/budgets",
		"/v1/recurring-transactions",
		"/v1/profile",
		"/v1/reports/dashboard",
		"/v1/export/transactions",
	} {
		recorder := test.Request(suite.T(), suite.router, http.MethodGet, url, nil)
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)
	}
}

func (suite *TestSuiteStandard) TestAuthenticationGarbageToken() {
	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/v1/transactions", nil, map[string]string{
		"Authorization": "Bearer not-a-token",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)
}
