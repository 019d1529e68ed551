package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config is the typed configuration of the validation server and CLI.
type Config struct {
	App    AppConfig
	Log    LogConfig
	Schema SchemaConfig
}

type AppConfig struct {
	Name  string `validate:"required"`
	Env   string `validate:"oneof=local production testing"` // local | production | testing
	Debug bool
	Port  string `validate:"required,numeric"`

	// ShutdownTimeout bounds graceful shutdown of the HTTP server.
	ShutdownTimeout time.Duration `validate:"gte=0"`
}

type LogConfig struct {
	Level string `validate:"oneof=debug info warn error"`
}

// SchemaConfig points at the directory of YAML schema files served by the app.
type SchemaConfig struct {
	Dir string `validate:"required"`
}

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at bootstrap: cfg := config.Load()
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	return &Config{
		App: AppConfig{
			Name:  Get("APP_NAME", "go-serializer"),
			Env:   Get("APP_ENV", "local"),
			Debug: GetBool("APP_DEBUG", false),
			Port:  Get("APP_PORT", "8000"),

			ShutdownTimeout: time.Duration(GetInt("APP_SHUTDOWN_TIMEOUT", 5)) * time.Second,
		},
		Log: LogConfig{
			Level: Get("LOG_LEVEL", "info"),
		},
		Schema: SchemaConfig{
			Dir: Get("SCHEMA_DIR", "./schemas"),
		},
	}
}

var validate = validator.New()

// Validate checks the loaded values, e.g. that APP_ENV and LOG_LEVEL are known.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Get returns a raw env value, falling back to defaultVal when unset or empty.
func Get(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}
