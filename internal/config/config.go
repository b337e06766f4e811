package config

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ErrMissingAPIKey is returned when an analysis is attempted without an
// OpenRouter credential configured.
var ErrMissingAPIKey = errors.New("OPENROUTER_API_KEY is not configured")

type Config struct {
	Server     ServerConfig
	OpenRouter OpenRouterConfig
}

type ServerConfig struct {
	Port        string        `envconfig:"SERVER_PORT" default:"8157"`
	Host        string        `envconfig:"SERVER_HOST" default:"127.0.0.1"`
	ReadTimeout time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"30s"`

	// WriteTimeout defaults to 0 (disabled) because streaming responses
	// stay open for the full upstream call.
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"0s"`

	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type OpenRouterConfig struct {
	APIKey   string        `envconfig:"OPENROUTER_API_KEY"`
	Endpoint string        `envconfig:"OPENROUTER_ENDPOINT" default:"https://openrouter.ai/api/v1/chat/completions"`
	AppURL   string        `envconfig:"APP_URL" default:"http://localhost:3000"`
	Timeout  time.Duration `envconfig:"OPENROUTER_TIMEOUT" default:"90s"`

	DefaultModel  string `envconfig:"OPENROUTER_DEFAULT_MODEL" default:"google/gemini-2.0-flash-exp:free"`
	AdvancedModel string `envconfig:"OPENROUTER_ADVANCED_MODEL" default:"anthropic/claude-3.5-sonnet:beta"`
	FallbackModel string `envconfig:"OPENROUTER_FALLBACK_MODEL" default:"meta-llama/llama-3.2-3b-instruct:free"`

	MaxTokens   int64   `envconfig:"OPENROUTER_MAX_TOKENS" default:"2500"`
	Temperature float64 `envconfig:"OPENROUTER_TEMPERATURE" default:"0.7"`
}

// Configured reports whether an upstream credential is present.
func (c OpenRouterConfig) Configured() bool {
	return c.APIKey != ""
}

func LoadConfig() (*Config, error) {
	loadEnvFile()

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}

	if !cfg.OpenRouter.Configured() {
		slog.Warn("OPENROUTER_API_KEY is not set; analysis calls will fail until it is configured")
	}

	slog.Info("configuration loaded successfully")
	return &cfg, nil
}

// loadEnvFile pulls in a .env file when one exists, preferring the config
// folder used in deployment. Absence is not an error.
func loadEnvFile() {
	for _, path := range []string{"config/.env", "../config/.env", ".env"} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			slog.Warn("could not load .env file", "path", path, "error", err)
			return
		}
		slog.Info("loaded environment variables", "path", path)
		return
	}
	slog.Info("no .env file found; using environment variables")
}
