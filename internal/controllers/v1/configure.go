// Package v1 implements the API v1 endpoints.
//
// All resource endpoints are scoped to the authenticated user: every query
// filters on the owner ID from the bearer token and resources of other
// users behave as if they did not exist.
package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pocketfolio/backend/internal/auth"
	"github.com/pocketfolio/backend/internal/events"
	"github.com/pocketfolio/backend/internal/offline"
	"github.com/pocketfolio/backend/internal/push"
	"github.com/pocketfolio/backend/internal/storage"
)

// Options carries the collaborators the endpoints need beyond the database.
type Options struct {
	Queue    *offline.Queue
	Bus      *events.Bus
	Files    *storage.Store
	Notifier *push.Sender

	TokenSecret    string
	TokenLifetime  time.Duration
	VAPIDPublicKey string
}

var (
	queue    *offline.Queue
	bus      *events.Bus
	files    *storage.Store
	notifier *push.Sender

	tokenSecret    string
	tokenLifetime  time.Duration
	vapidPublicKey string
)

// Configure sets the package collaborators. It must be called once before
// any route is registered.
func Configure(options Options) {
	queue = options.Queue
	bus = options.Bus
	files = options.Files
	notifier = options.Notifier
	tokenSecret = options.TokenSecret
	tokenLifetime = options.TokenLifetime
	vapidPublicKey = options.VAPIDPublicKey
}

// owner returns the authenticated user for the request. When the request
// carries no valid token, it writes a 401 response and returns false.
func owner(c *gin.Context) (auth.Context, bool) {
	identity, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httpError{
			Error: auth.ErrTokenInvalid.Error(),
		})
		return auth.Context{}, false
	}

	return identity, true
}
