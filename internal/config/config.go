// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Port           string
	DatabaseDriver string
	DatabasePath   string
	DatabaseURL    string
	JWTSecret      string
	TokenTTL       time.Duration
	BcryptCost     int
	CORSOrigins    []string
	StaticDir      string
	TrustProxy     bool
	AuthRate       RateLimit
	LogLevel       slog.Level
}

// RateLimit configures the per-IP throttle on the auth endpoints.
type RateLimit struct {
	PerSecond float64
	Burst     float64
}

// Load reads the configuration from environment variables and validates it.
func Load() (Config, error) {
	var errs []error

	cfg := Config{
		Port:           envString("PORT", "3000"),
		DatabaseDriver: envString("DATABASE_DRIVER", DriverSQLite),
		DatabasePath:   envString("DATABASE_PATH", "blog.db"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		StaticDir:      os.Getenv("STATIC_DIR"),
		CORSOrigins:    envList("CORS_ORIGINS", []string{"*"}),
	}

	var err error
	if cfg.TokenTTL, err = envDuration("TOKEN_TTL", 24*time.Hour); err != nil {
		errs = append(errs, err)
	} else if cfg.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}

	if cfg.BcryptCost, err = envInt("BCRYPT_COST", 12); err != nil {
		errs = append(errs, err)
	} else if cfg.BcryptCost < 4 || cfg.BcryptCost > 14 {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", cfg.BcryptCost))
	}

	if cfg.TrustProxy, err = envBool("TRUST_PROXY", false); err != nil {
		errs = append(errs, err)
	}

	if cfg.AuthRate.PerSecond, err = envFloat("AUTH_RATE_PER_SEC", 1); err != nil {
		errs = append(errs, err)
	}
	if cfg.AuthRate.Burst, err = envFloat("AUTH_RATE_BURST", 10); err != nil {
		errs = append(errs, err)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(envString("LOG_LEVEL", "info"))); err != nil {
		errs = append(errs, fmt.Errorf("invalid LOG_LEVEL: %w", err))
	}

	switch cfg.DatabaseDriver {
	case DriverSQLite:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DATABASE_DRIVER %q", cfg.DatabaseDriver))
	}

	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET environment variable is required"))
	} else if len(cfg.JWTSecret) < 32 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security"))
	}

	return cfg, errors.Join(errs...)
}

// LoadDatabase reads only the settings needed to open the database. Commands
// that never issue tokens use it so they do not require JWT_SECRET.
func LoadDatabase() (Config, error) {
	cfg := Config{
		DatabaseDriver: envString("DATABASE_DRIVER", DriverSQLite),
		DatabasePath:   envString("DATABASE_PATH", "blog.db"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
	}
	var err error
	if cfg.BcryptCost, err = envInt("BCRYPT_COST", 12); err != nil {
		return cfg, err
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 14 {
		return cfg, fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", cfg.BcryptCost)
	}
	if cfg.DatabaseDriver == DriverPostgres && cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL is required for the postgres driver")
	}
	if cfg.DatabaseDriver != DriverSQLite && cfg.DatabaseDriver != DriverPostgres {
		return cfg, fmt.Errorf("unknown DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if f <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return f, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
