// Package config loads server settings from the environment, after applying a local .env file if present.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the settings read at startup.
type Config struct {
	Port                string
	BackendURL          string
	AllowedOrigins      []string
	RequestMaxBytes     int64
	FormIdleTTL         time.Duration
	FormMaxOpen         int
	FormSuccessReset    time.Duration
	CompanyDefaultsFile string
}

// ErrMissingBackendURL is returned when BACKEND_URL is unset.
var ErrMissingBackendURL = errors.New("BACKEND_URL is required")

// Load reads .env (ignored when absent) and then the process environment.
// Real environment variables take precedence over .env entries.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return fromEnv()
}

func fromEnv() (*Config, error) {
	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		BackendURL:          strings.TrimRight(getEnv("BACKEND_URL", ""), "/"),
		AllowedOrigins:      splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
		CompanyDefaultsFile: getEnv("COMPANY_DEFAULTS_FILE", ""),
	}
	if cfg.BackendURL == "" {
		return nil, ErrMissingBackendURL
	}
	if u, err := url.Parse(cfg.BackendURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("BACKEND_URL %q is not an absolute URL", cfg.BackendURL)
	}

	var err error
	if cfg.RequestMaxBytes, err = getEnvInt64("REQUEST_MAX_BYTES", 25<<20); err != nil {
		return nil, err
	}
	if cfg.FormIdleTTL, err = getEnvDuration("FORM_IDLE_TTL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.FormSuccessReset, err = getEnvDuration("FORM_SUCCESS_RESET", 5*time.Second); err != nil {
		return nil, err
	}
	maxOpen, err := getEnvInt64("FORM_MAX_OPEN", 10000)
	if err != nil {
		return nil, err
	}
	cfg.FormMaxOpen = int(maxOpen)
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) (int64, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, value)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, value)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
