package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver  string        `validate:"required,oneof=sqlite postgres"`
	DBDSN     string        `validate:"required"`
	DBTimeout time.Duration `validate:"gt=0"`
	BaseID    int           `validate:"gte=1"`
	LogLevel  string        `validate:"oneof=debug info warn error"`
	LogFile   string
}

var validate = validator.New()

// LoadEnvFiles reads .env and .env.local without overriding variables
// already set by the runtime.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load builds the configuration from the environment. Every setting has a
// default, so an empty environment yields a local SQLite setup.
func Load() (Config, error) {
	cfg := Config{
		DBDriver: strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBDSN:    getEnv("DB_DSN", "Data/bookstore.db"),
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "warn")),
		LogFile:  os.Getenv("LOG_FILE"),
	}

	var err error
	if cfg.DBTimeout, err = time.ParseDuration(getEnv("DB_TIMEOUT", "5s")); err != nil {
		return Config{}, fmt.Errorf("invalid DB_TIMEOUT: %w", err)
	}
	if cfg.BaseID, err = strconv.Atoi(getEnv("BOOK_BASE_ID", "3001")); err != nil {
		return Config{}, fmt.Errorf("invalid BOOK_BASE_ID: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
