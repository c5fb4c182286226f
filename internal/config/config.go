// Package config loads the backend configuration from defaults, an
// optional YAML file and POCKETFOLIO_* environment variables, in that
// order of precedence (later sources win).
package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Database Database `koanf:"db"`
	Auth     Auth     `koanf:"auth"`
	Storage  Storage  `koanf:"storage"`
	Offline  Offline  `koanf:"offline"`
	Push     Push     `koanf:"push"`
	CORS     CORS     `koanf:"cors"`
}

type Database struct {
	// Path of the SQLite database file.
	Path string `koanf:"path"`
}

type Auth struct {
	// Secret signs the JWTs issued on login. It must be set.
	Secret string `koanf:"secret"`
	// TokenLifetime is how long an issued token stays valid.
	TokenLifetime time.Duration `koanf:"tokenlifetime"`
}

type Storage struct {
	// Root directory for the file buckets (avatars, receipts).
	Root string `koanf:"root"`
}

type Offline struct {
	// Path of the bbolt file backing the offline write queue.
	Path string `koanf:"path"`
}

type Push struct {
	VAPIDPublicKey  string `koanf:"vapidpublickey"`
	VAPIDPrivateKey string `koanf:"vapidprivatekey"`
	// Subscriber is the contact address sent to the push service.
	Subscriber string `koanf:"subscriber"`
}

type CORS struct {
	AllowOrigins []string `koanf:"alloworigins"`
}

// Load reads the configuration. A missing file is not an error, defaults
// and environment variables are enough to run.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	err := k.Load(structs.Provider(Config{
		Database: Database{
			Path: "data/pocketfolio.db",
		},
		Auth: Auth{
			TokenLifetime: 24 * time.Hour,
		},
		Storage: Storage{
			Root: "data/files",
		},
		Offline: Offline{
			Path: "data/offline.db",
		},
	}, "koanf"), nil)
	if err != nil {
		return Config{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("path", path).Msg("no config file, using defaults and environment variables")
		} else {
			return Config{}, err
		}
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "POCKETFOLIO_",
		TransformFunc: func(key, value string) (string, any) {
			// POCKETFOLIO_AUTH_SECRET becomes auth.secret
			return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, "POCKETFOLIO_")), "_", "."), value
		},
	}), nil)
	if err != nil {
		return Config{}, err
	}

	var config Config
	err = k.Unmarshal("", &config)
	return config, err
}
