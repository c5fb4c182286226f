package router

import (
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/google/uuid"

	docs "github.com/pocketfolio/backend/api"
	"github.com/pocketfolio/backend/internal/auth"
	"github.com/pocketfolio/backend/internal/config"
	v1 "github.com/pocketfolio/backend/internal/controllers/v1"
	"github.com/pocketfolio/backend/internal/events"
	"github.com/pocketfolio/backend/internal/httputil"
	"github.com/pocketfolio/backend/internal/offline"
)

// This is set at build time, see Makefile.
var version = "0.0.0"

// New builds the gin engine with all middlewares and routes.
//
// The events bus and the offline queue are constructed here so that the
// queue's sync passes invalidate exactly the views the endpoints publish
// changes for.
func New(cfg config.Config, options v1.Options, store offline.Store) (*gin.Engine, error) {
	bus := events.NewBus()
	options.Bus = bus

	if store != nil {
		options.Queue = offline.NewQueue(store, offline.DatabaseWriter{}, func(owner uuid.UUID) {
			bus.Publish(owner, events.TopicTransactions, events.TopicDashboard)
		})
	}

	v1.Configure(options)

	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, logger zerolog.Logger) zerolog.Logger {
			return logger.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	if len(cfg.CORS.AllowOrigins) != 0 {
		log.Debug().Strs("allowOrigins", cfg.CORS.AllowOrigins).Msg("CORS")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowOrigins,
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	/*
	 *  Route setup
	 */
	r.GET("", GetRoot)
	r.OPTIONS("", OptionsRoot)

	r.GET("/version", GetVersion)
	r.OPTIONS("/version", OptionsVersion)

	r.GET("/healthz", GetHealth)

	// pprof performance profiles
	enablePprof, ok := os.LookupEnv("ENABLE_PPROF")
	if ok && enablePprof == "true" {
		pprof.RouteRegister(&r.RouterGroup, "debug/pprof")
	}

	docs.SwaggerInfo.Title = "Pocketfolio"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Description = "The backend for Pocketfolio, a personal finance tracker."

	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Uploaded avatars and receipts
	if options.Files != nil {
		r.Static("/files", options.Files.Root())
	}

	// API v1 setup
	group := r.Group("/v1")
	{
		group.GET("", GetV1)
		group.OPTIONS("", OptionsV1)
	}

	v1.RegisterAuthRoutes(group.Group("/auth"))

	// Everything else requires a bearer token
	authenticated := group.Group("")
	authenticated.Use(auth.Middleware(cfg.Auth.Secret))

	v1.RegisterTransactionRoutes(authenticated.Group("/transactions"))
	v1.RegisterCategoryRoutes(authenticated.Group("/categories"))
	v1.RegisterAccountRoutes(authenticated.Group("/accounts"))
	v1.RegisterBudgetRoutes(authenticated.Group("/budgets"))
	v1.RegisterRecurringTransactionRoutes(authenticated.Group("/recurring-transactions"))
	v1.RegisterProfileRoutes(authenticated.Group("/profile"))
	v1.RegisterReportRoutes(authenticated.Group("/reports"))
	v1.RegisterExportRoutes(authenticated.Group("/export"))
	v1.RegisterEventRoutes(authenticated.Group("/events"))
	v1.RegisterNotificationRoutes(authenticated.Group("/notifications"))

	log.Info().Msg("backend startup complete")

	return r, nil
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Docs    string `json:"docs" example:"https://example.com/api/docs/index.html"`
	Version string `json:"version" example:"https://example.com/api/version"`
	V1      string `json:"v1" example:"https://example.com/api/v1"`
}

// @Summary		API root
// @Description	Entrypoint for the API, listing all endpoints
// @Tags			General
// @Success		200	{object}	RootResponse
// @Router			/ [get]
func GetRoot(c *gin.Context) {
	url := httputil.RequestHost(c)

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Docs:    url + "/docs/index.html",
			Version: url + "/version",
			V1:      httputil.RequestPathV1(c),
		},
	})
}

type VersionResponse struct {
	Data VersionObject `json:"data"`
}
type VersionObject struct {
	Version string `json:"version" example:"1.1.0"`
}

// @Summary		API version
// @Description	Returns the software version of the API
// @Tags			General
// @Success		200	{object}	VersionResponse
// @Router			/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

// GetHealth returns 204 as long as the process is serving requests.
func GetHealth(c *gin.Context) {
	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/ [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/version [options]
func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}

type V1Response struct {
	Links V1Links `json:"links"`
}

type V1Links struct {
	Auth                  string `json:"auth" example:"https://example.com/api/v1/auth"`
	Transactions          string `json:"transactions" example:"https://example.com/api/v1/transactions"`
	Categories            string `json:"categories" example:"https://example.com/api/v1/categories"`
	Accounts              string `json:"accounts" example:"https://example.com/api/v1/accounts"`
	Budgets               string `json:"budgets" example:"https://example.com/api/v1/budgets"`
	RecurringTransactions string `json:"recurringTransactions" example:"https://example.com/api/v1/recurring-transactions"`
	Profile               string `json:"profile" example:"https://example.com/api/v1/profile"`
	Reports               string `json:"reports" example:"https://example.com/api/v1/reports"`
	Export                string `json:"export" example:"https://example.com/api/v1/export"`
	Events                string `json:"events" example:"https://example.com/api/v1/events"`
	Notifications         string `json:"notifications" example:"https://example.com/api/v1/notifications"`
}

// @Summary		v1 API
// @Description	Returns general information about the v1 API
// @Tags			General
// @Success		200	{object}	V1Response
// @Router			/v1 [get]
func GetV1(c *gin.Context) {
	url := httputil.RequestPathV1(c)

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Auth:                  url + "/auth",
			Transactions:          url + "/transactions",
			Categories:            url + "/categories",
			Accounts:              url + "/accounts",
			Budgets:               url + "/budgets",
			RecurringTransactions: url + "/recurring-transactions",
			Profile:               url + "/profile",
			Reports:               url + "/reports",
			Export:                url + "/export",
			Events:                url + "/events",
			Notifications:         url + "/notifications",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/v1 [options]
func OptionsV1(c *gin.Context) {
	httputil.OptionsGet(c)
}
