package v1_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	v1 "github.com/pocketfolio/backend/internal/controllers/v1"
	"github.com/pocketfolio/backend/internal/events"
)

func (suite *TestSuiteStandard) dialEvents(session v1.Session) (*websocket.Conn, func()) {
	server := httptest.NewServer(suite.router)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/v1/events"
	header := http.Header{"Authorization": {"Bearer " + session.Token}}

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	suite.Require().NoError(err)

	return conn, func() {
		resp.Body.Close()
		conn.Close()
		server.Close()
	}
}

func (suite *TestSuiteStandard) TestEventStream() {
	session := suite.register("jane@example.com")

	conn, teardown := suite.dialEvents(session)
	defer teardown()

	_ = suite.createTestTransaction(session, v1.TransactionEditable{})

	suite.Require().NoError(conn.SetReadDeadline(time.Now().Add(5 * time.Second)))

	// A transaction write touches the transaction list and the dashboard
	topics := make(map[events.Topic]bool)
	for range 2 {
		var event events.Event
		suite.Require().NoError(conn.ReadJSON(&event))
		topics[event.Topic] = true
	}

	suite.Assert().True(topics[events.TopicTransactions])
	suite.Assert().True(topics[events.TopicDashboard])
}

func (suite *TestSuiteStandard) TestEventStreamRequiresToken() {
	server := httptest.NewServer(suite.router)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/v1/events"

	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	suite.Require().Error(err)
	suite.Require().NotNil(resp)
	defer resp.Body.Close()

	suite.Assert().Equal(http.StatusUnauthorized, resp.StatusCode)
}
