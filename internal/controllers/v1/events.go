package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,

	// Cross-origin access is controlled by the CORS middleware and the
	// bearer token, not by the websocket handshake.
	CheckOrigin: func(_ *http.Request) bool { return true },
}

const (
	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second
)

// RegisterEventRoutes registers the routes for the change feed with
// the RouterGroup that is passed.
func RegisterEventRoutes(r *gin.RouterGroup) {
	r.GET("", StreamEvents)
}

// @Summary		Change feed
// @Description	Upgrades to a websocket and streams change events for the user's data. Each message names the data set that changed.
// @Tags			Events
// @Success		101
// @Failure		401	{object}	httpError
// @Router			/v1/events [get]
func StreamEvents(c *gin.Context) {
	me, ok := owner(c)
	if !ok {
		return
	}

	connection, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the error response
		return
	}
	defer connection.Close()

	subscription := bus.Subscribe(me.UserID)
	defer subscription.Unsubscribe()

	// Drain client messages so that close frames and pongs are processed
	go func() {
		for {
			_, _, err := connection.ReadMessage()
			if err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case event, open := <-subscription.C:
			if !open {
				return
			}

			_ = connection.SetWriteDeadline(time.Now().Add(writeTimeout))
			err := connection.WriteJSON(event)
			if err != nil {
				log.Debug().Err(err).Msg("change feed connection closed")
				return
			}
		case <-ticker.C:
			_ = connection.SetWriteDeadline(time.Now().Add(writeTimeout))
			err := connection.WriteMessage(websocket.PingMessage, nil)
			if err != nil {
				return
			}
		case <-c.Request.Context().Done():
			return
		}
	}
}
