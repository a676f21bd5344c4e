// Package config reads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/LuminoLuxx/whatsapp-orders-mvp/internal/clock"
)

const (
	DefaultHost     = "0.0.0.0"
	DefaultPort     = "10000"
	DefaultCacheTTL = 60 * time.Second
)

type StorageBackend string

const (
	BackendSheets   StorageBackend = "sheets"
	BackendPostgres StorageBackend = "postgres"
)

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Config struct {
	Host               string
	Port               string
	StorageBackend     StorageBackend
	SpreadsheetID      string
	ServiceAccountJSON string
	Timezone           string
	Location           *time.Location
	DatabaseURL        string
	Redis              Redis
	CacheTTL           time.Duration
	TwilioAuthToken    string
	PublicBaseURL      string
	LogLevel           string
	LogFormat          string
}

// Addr is the listen address, e.g. "0.0.0.0:10000".
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Load reads configuration from the process environment.
func Load() (Config, error) {
	return LoadFrom(os.Getenv)
}

// LoadFrom reads configuration through getenv. Blank values take defaults.
func LoadFrom(getenv func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Host:               get("HOST", DefaultHost),
		Port:               get("PORT", DefaultPort),
		StorageBackend:     StorageBackend(strings.ToLower(get("STORAGE_BACKEND", string(BackendSheets)))),
		SpreadsheetID:      get("GOOGLE_SHEETS_SPREADSHEET_ID", ""),
		ServiceAccountJSON: getenv("GOOGLE_SERVICE_ACCOUNT_JSON"),
		Timezone:           get("TIMEZONE", "UTC"),
		DatabaseURL:        get("DATABASE_URL", ""),
		Redis: Redis{
			Addr:     get("REDIS_ADDR", ""),
			Password: getenv("REDIS_PASSWORD"),
		},
		TwilioAuthToken: get("TWILIO_AUTH_TOKEN", ""),
		PublicBaseURL:   strings.TrimRight(get("PUBLIC_BASE_URL", ""), "/"),
		LogLevel:        strings.ToLower(get("LOG_LEVEL", "info")),
		LogFormat:       strings.ToLower(get("LOG_FORMAT", "json")),
	}

	var errs []error

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be an integer between 1 and 65535, got %q", cfg.Port))
	}

	switch cfg.StorageBackend {
	case BackendSheets:
		if cfg.SpreadsheetID == "" {
			errs = append(errs, errors.New("GOOGLE_SHEETS_SPREADSHEET_ID is required for the sheets backend"))
		}
		if strings.TrimSpace(cfg.ServiceAccountJSON) == "" {
			errs = append(errs, errors.New("GOOGLE_SERVICE_ACCOUNT_JSON is required for the sheets backend"))
		}
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", BackendSheets, BackendPostgres, cfg.StorageBackend))
	}

	loc, err := clock.LoadLocation(cfg.Timezone)
	if err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE %q: %w", cfg.Timezone, err))
	}
	cfg.Location = loc

	if raw := get("REDIS_DB", ""); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil || db < 0 {
			errs = append(errs, fmt.Errorf("REDIS_DB must be a non-negative integer, got %q", raw))
		}
		cfg.Redis.DB = db
	}

	cfg.CacheTTL = DefaultCacheTTL
	if raw := get("CACHE_TTL", ""); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			errs = append(errs, fmt.Errorf("CACHE_TTL must be a positive duration, got %q", raw))
		}
		cfg.CacheTTL = ttl
	}

	switch cfg.LogFormat {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or console, got %q", cfg.LogFormat))
	}

	if cfg.TwilioAuthToken != "" && cfg.PublicBaseURL == "" {
		errs = append(errs, errors.New("PUBLIC_BASE_URL is required when TWILIO_AUTH_TOKEN is set"))
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}
