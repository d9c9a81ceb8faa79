package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	devEnvFile = ".env.dev"
)

type Config struct {
	GinMode string
	Addr    string
	TZ      string

	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPass        string
	DBName        string
	DBSSLMode     string
	SQLitePath    string
	DBMaxAttempts int
	DBRetryDelay  time.Duration

	LogLevel  string
	LogFormat string
}

// findEnvFile walks up from the working directory looking for name.
func findEnvFile(name string) (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}

	for {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Load reads the configuration from the environment. In debug mode a
// .env.dev file is loaded first; it never overrides variables already set.
func Load() (*Config, error) {
	if getenv("GIN_MODE", "debug") == "debug" {
		if path, ok := findEnvFile(devEnvFile); ok {
			if err := godotenv.Load(path); err != nil {
				slog.Warn("could not load env file", "path", path, "error", err)
			} else {
				slog.Info("loaded env file", "path", path)
			}
		}
	}

	maxAttempts, err := getenvInt("DB_MAX_ATTEMPTS", 10)
	if err != nil {
		return nil, err
	}
	retryDelay, err := getenvDuration("DB_RETRY_DELAY", 2*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		GinMode: getenv("GIN_MODE", "debug"),
		Addr:    getenv("APP_ADDR", ":8080"),
		TZ:      getenv("TZ", "UTC"),

		DBDriver:      getenv("DB_DRIVER", DriverPostgres),
		DBHost:        getenv("DB_HOST", "localhost"),
		DBPort:        getenv("DB_PORT", "5432"),
		DBUser:        getenv("DB_USER", "postgres"),
		DBPass:        getenv("DB_PASS", ""),
		DBName:        getenv("DB_NAME", "postgres"),
		DBSSLMode:     os.Getenv("DB_SSLMODE"),
		SQLitePath:    getenv("SQLITE_PATH", "books.db"),
		DBMaxAttempts: maxAttempts,
		DBRetryDelay:  retryDelay,

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "text"),
	}

	if cfg.DBSSLMode == "" {
		if cfg.GinMode == "release" {
			cfg.DBSSLMode = "require"
		} else {
			cfg.DBSSLMode = "disable"
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER: unsupported driver %q", c.DBDriver))
	}

	switch c.GinMode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("GIN_MODE: unsupported mode %q", c.GinMode))
	}

	if c.DBMaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("DB_MAX_ATTEMPTS: must be at least 1, got %d", c.DBMaxAttempts))
	}
	if c.DBRetryDelay < 0 {
		errs = append(errs, fmt.Errorf("DB_RETRY_DELAY: must not be negative, got %s", c.DBRetryDelay))
	}
	if c.DBDriver == DriverSQLite && c.SQLitePath == "" {
		errs = append(errs, errors.New("SQLITE_PATH: required for the sqlite driver"))
	}

	return errors.Join(errs...)
}

func (c *Config) DSN() string {
	if c.DBDriver == DriverSQLite {
		return c.SQLitePath
	}

	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost,
		c.DBUser,
		c.DBPass,
		c.DBName,
		c.DBPort,
		c.DBSSLMode,
		c.TZ,
	)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
