package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "RMSHEET_"

// SheetCalc holds all configuration for the sheetcalc tool.
type SheetCalc struct {
	// Logging: debug | info | warn | error
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	// Directory with the rule table YAML files
	DataDir string `yaml:"data_dir" env:"DATA_DIR"`

	// Database
	Database DatabaseConfig `yaml:"database" envPrefix:"DB_"`

	// Rule set options applied to every sheet
	Rules RuleSet `yaml:"rules" envPrefix:"RULES_"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	User     string `yaml:"user" env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	DBName   string `yaml:"dbname" env:"NAME"`
	SSLMode  string `yaml:"sslmode" env:"SSLMODE"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultSheetCalc returns SheetCalc config with sensible defaults.
func DefaultSheetCalc() SheetCalc {
	return SheetCalc{
		LogLevel: "info",
		DataDir:  "data/rules",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "rmsheet",
			Password: "rmsheet",
			DBName:   "rmsheet",
			SSLMode:  "disable",
		},
		Rules: DefaultRuleSet(),
	}
}

// LoadSheetCalc loads sheetcalc config from a YAML file, then applies
// RMSHEET_* environment overrides.
// If the file doesn't exist, the overrides apply to the defaults.
func LoadSheetCalc(path string) (SheetCalc, error) {
	cfg := DefaultSheetCalc()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// defaults
	default:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ParseEnv overlays RMSHEET_* environment variables onto target.
// Unset variables leave the current values untouched.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level; unknown values mean info.
func (c SheetCalc) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
