// Package config loads runtime settings from the environment.
//
// A .env file in the working directory is honoured when present; real
// environment variables always win over it.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"

	MinTokenTTL = time.Hour
	MaxTokenTTL = 24 * time.Hour
)

type Config struct {
	Port        string `env:"PORT" envDefault:"5000"`
	Environment string `env:"APP_ENV" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	StoreDriver     string `env:"STORE_DRIVER" envDefault:"mongo"`
	MongoURI        string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	DBUser          string `env:"DB_USER"`
	DBPass          string `env:"DB_PASS"`
	DBName          string `env:"DB_NAME" envDefault:"language_app"`
	UseTransactions bool   `env:"MONGO_TRANSACTIONS" envDefault:"true"`

	AccessTokenSecret string        `env:"ACCESS_TOKEN_SECRET"`
	TokenTTL          time.Duration `env:"TOKEN_TTL" envDefault:"1h"`

	AllowedOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	MinioEndpoint  string `env:"MINIO_ENDPOINT"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY" envDefault:"minioadmin"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY" envDefault:"minioadmin"`
	MinioBucket    string `env:"MINIO_BUCKET" envDefault:"profile-images"`
	MinioRegion    string `env:"MINIO_REGION" envDefault:"us-east-1"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`
}

// Load reads the optional .env file and parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded, using process environment")
	}
	return parse(env.Options{})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server must not start with.
func (c *Config) Validate() error {
	var errs []error
	if c.AccessTokenSecret == "" {
		errs = append(errs, errors.New("ACCESS_TOKEN_SECRET is required"))
	}
	if c.TokenTTL < MinTokenTTL || c.TokenTTL > MaxTokenTTL {
		errs = append(errs, fmt.Errorf("TOKEN_TTL must be between %s and %s, got %s", MinTokenTTL, MaxTokenTTL, c.TokenTTL))
	}
	if c.StoreDriver != DriverMongo && c.StoreDriver != DriverMemory {
		errs = append(errs, fmt.Errorf("STORE_DRIVER %q is not supported", c.StoreDriver))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ObjectStorageEnabled reports whether profile-image uploads are configured.
func (c *Config) ObjectStorageEnabled() bool {
	return c.MinioEndpoint != ""
}
