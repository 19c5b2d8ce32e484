package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr           string
	DatabaseURL        string
	JWTSecret          string
	APIKey             string
	KafkaBrokers       []string
	KafkaTopic         string
	LogLevel           string
	LogFormat          string
	MaxLineQuantity    int
	CORSAllowedOrigins []string
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("godotenv.Load: %w", err)
	}

	maxQty, err := strconv.Atoi(getEnv("MAX_LINE_QUANTITY", "99"))
	if err != nil {
		return Config{}, fmt.Errorf("MAX_LINE_QUANTITY: %w", err)
	}

	cfg := Config{
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		APIKey:             os.Getenv("API_KEY"),
		KafkaBrokers:       splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:         getEnv("KAFKA_TOPIC", "cart-events"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
		MaxLineQuantity:    maxQty,
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if len(c.JWTSecret) < 32 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 32 characters long"))
	}
	if c.APIKey == "" {
		errs = append(errs, errors.New("API_KEY is required"))
	}
	if c.MaxLineQuantity < 1 {
		errs = append(errs, fmt.Errorf("MAX_LINE_QUANTITY[%d] must be positive", c.MaxLineQuantity))
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT[%s] must be json or console", c.LogFormat))
	}

	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
