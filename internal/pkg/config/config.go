// Package config reads the storefront configuration from the environment.
package config

import (
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/jcmexdev/greyden-storefront/internal/cart"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

type Config struct {
	HTTPAddr    string
	BasePath    string
	LogLevel    string
	CatalogPath string

	StorageDriver string
	SQLitePath    string
	RedisAddr     string
	CartKey       string

	TracingEnabled bool
	ServiceName    string
	OTLPEndpoint   string
	Environment    string
}

// Load reads a .env file (outside production) and then the process
// environment, applying defaults for anything unset.
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	tracing, err := getBool("TRACING_ENABLED", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		BasePath:    NormalizeBasePath(getEnv("BASE_PATH", "/")),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CatalogPath: getEnv("CATALOG_PATH", ""),

		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", DriverSQLite)),
		SQLitePath:    getEnv("SQLITE_PATH", "./data/greyden.db"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		CartKey:       getEnv("CART_KEY", cart.DefaultKey),

		TracingEnabled: tracing,
		ServiceName:    getEnv("OTEL_SERVICE_NAME", "storefront"),
		OTLPEndpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		Environment:    getEnv("OTEL_RESOURCE_ATTRIBUTES_ENV", "local"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverSQLite, DriverRedis, DriverMemory:
	default:
		return fmt.Errorf("config: unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.HTTPAddr == "" {
		return fmt.Errorf("config: HTTP_ADDR is empty")
	}
	if strings.TrimSpace(c.CartKey) == "" {
		return fmt.Errorf("config: CART_KEY is empty")
	}
	return nil
}

// NormalizeBasePath turns "shop", "/shop/" and "/shop" into "/shop"; an
// empty value becomes "/".
func NormalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	return path.Clean("/" + p)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("config: %s: %w", key, err)
	}
	return v, nil
}
