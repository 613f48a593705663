package internal

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Simulator SimulatorConfig `mapstructure:"simulator"`
	Security  SecurityConfig  `mapstructure:"security"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// SimulatorConfig controls how the fake backend answers intercepted requests.
type SimulatorConfig struct {
	// Latency is applied to every response, success and failure alike.
	Latency time.Duration `mapstructure:"latency"`
	// Origin is the base URL embedded in simulated notification emails.
	Origin string `mapstructure:"origin"`
}

type SecurityConfig struct {
	JWTSecret            string        `mapstructure:"jwt_secret"`
	AccessTokenDuration  time.Duration `mapstructure:"access_token_duration"`
	RefreshTokenDuration time.Duration `mapstructure:"refresh_token_duration"`
	ResetTokenDuration   time.Duration `mapstructure:"reset_token_duration"`
	BCryptCost           int           `mapstructure:"bcrypt_cost"`
}

type StorageConfig struct {
	// Driver selects the durable slot backend: sqlite, postgres or memory.
	Driver string `mapstructure:"driver"`
	// Source is the sqlite file path or postgres DSN.
	Source string `mapstructure:"source"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ----------------- DEFAULTS -----------------

func DefaultConfig() *Config {
	return &Config{
		Simulator: SimulatorConfig{
			Latency: 500 * time.Millisecond,
			Origin:  "http://localhost:4200",
		},
		Security: SecurityConfig{
			JWTSecret:            "simulated-backend-secret",
			AccessTokenDuration:  15 * time.Minute,
			RefreshTokenDuration: 7 * 24 * time.Hour,
			ResetTokenDuration:   24 * time.Hour,
			BCryptCost:           10,
		},
		Storage: StorageConfig{
			Driver: "sqlite",
			Source: "hr-management.db",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfigFromEnv builds a config from environment variables, used when no
// config file is present (container deployments).
func LoadConfigFromEnv() *Config {
	cfg := DefaultConfig()

	if v := os.Getenv("SIM_LATENCY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Simulator.Latency = d
		}
	}
	cfg.Simulator.Origin = getEnv("SIM_ORIGIN", cfg.Simulator.Origin)
	cfg.Security.JWTSecret = getEnv("JWT_SECRET", cfg.Security.JWTSecret)
	cfg.Security.BCryptCost = getEnvAsInt("BCRYPT_COST", cfg.Security.BCryptCost)
	cfg.Storage.Driver = getEnv("STORAGE_DRIVER", cfg.Storage.Driver)
	cfg.Storage.Source = getEnv("STORAGE_SOURCE", cfg.Storage.Source)
	cfg.Logging.Level = getEnv("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getEnv("LOG_FORMAT", cfg.Logging.Format)

	return cfg
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Simulator.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("simulator config: %v", err))
	}
	if err := c.Security.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("security config: %v", err))
	}
	if err := c.Storage.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("storage config: %v", err))
	}
	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("logging config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func (c *SimulatorConfig) Validate() error {
	if c.Latency < 0 {
		return errors.New("latency cannot be negative")
	}
	return nil
}

func (c *SecurityConfig) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("jwt_secret is required")
	}
	if c.AccessTokenDuration <= 0 {
		return errors.New("access_token_duration must be positive")
	}
	if c.RefreshTokenDuration <= c.AccessTokenDuration {
		return errors.New("refresh_token_duration must exceed access_token_duration")
	}
	if c.ResetTokenDuration <= 0 {
		return errors.New("reset_token_duration must be positive")
	}
	if c.BCryptCost < 4 || c.BCryptCost > 15 {
		return errors.New("bcrypt_cost must be between 4 and 15")
	}
	return nil
}

func (c *StorageConfig) Validate() error {
	switch c.Driver {
	case "sqlite", "postgres":
		if c.Source == "" {
			return fmt.Errorf("source is required for driver %s", c.Driver)
		}
	case "memory":
	default:
		return fmt.Errorf("unknown storage driver %q", c.Driver)
	}
	return nil
}

func (c *LoggingConfig) Validate() error {
	switch c.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Level)
	}
	switch c.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unknown log format %q", c.Format)
	}
	return nil
}
