package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pocketfolio/backend/internal/config"
	v1 "github.com/pocketfolio/backend/internal/controllers/v1"
	"github.com/pocketfolio/backend/internal/models"
	"github.com/pocketfolio/backend/internal/offline"
	"github.com/pocketfolio/backend/internal/push"
	"github.com/pocketfolio/backend/internal/router"
	"github.com/pocketfolio/backend/internal/storage"
)

func main() {
	// A .env file is optional, the environment may already be set
	_ = godotenv.Load()

	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	cfg, err := config.Load("pocketfolio.yaml")
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	if cfg.Auth.Secret == "" {
		log.Fatal().Msg("auth.secret must be set, e.g. with POCKETFOLIO_AUTH_SECRET")
	}

	// Create data directories
	for _, directory := range []string{filepath.Dir(cfg.Database.Path), filepath.Dir(cfg.Offline.Path)} {
		err := os.MkdirAll(directory, os.ModePerm)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}
	}

	// Connect to the database
	err = models.Connect(cfg.Database.Path)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	files, err := storage.New(cfg.Storage.Root)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	store, err := offline.OpenBolt(cfg.Offline.Path)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	defer store.Close()

	options := v1.Options{
		Files:          files,
		TokenSecret:    cfg.Auth.Secret,
		TokenLifetime:  cfg.Auth.TokenLifetime,
		VAPIDPublicKey: cfg.Push.VAPIDPublicKey,
	}

	if cfg.Push.VAPIDPublicKey != "" && cfg.Push.VAPIDPrivateKey != "" {
		options.Notifier = push.NewSender(cfg.Push.VAPIDPublicKey, cfg.Push.VAPIDPrivateKey, cfg.Push.Subscriber)
	} else {
		log.Info().Msg("VAPID keys are not set, push notifications are disabled")
	}

	r, err := router.New(cfg, options, store)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	if err := r.Run(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
