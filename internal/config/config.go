// Package config provides configuration loading and validation for the service and CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Defaults applied when neither the file nor the environment sets a value.
const (
	DefaultPort           = 7860
	DefaultModelPath      = "models/attrition_forest.json"
	DefaultBatchWorkers   = 4
	DefaultMaxUploadBytes = 10 << 20
	DefaultLogLevel       = "info"
)

// Config is the service configuration. Every field is optional in the YAML file.
type Config struct {
	Port           int           `yaml:"port" validate:"min=1,max=65535"`
	ModelPath      string        `yaml:"model_path" validate:"required"`
	BatchWorkers   int           `yaml:"batch_workers" validate:"min=1,max=256"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes" validate:"min=1"`
	MaxRows        int           `yaml:"max_rows" validate:"min=0"` // 0 = unlimited
	History        HistoryConfig `yaml:"history"`
	Log            LogConfig     `yaml:"log"`
}

// HistoryConfig selects where served predictions are recorded. An empty driver disables
// recording.
type HistoryConfig struct {
	Driver string `yaml:"driver" validate:"omitempty,oneof=postgres sqlite"`
	DSN    string `yaml:"dsn" validate:"required_with=Driver"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
}

// Default returns a configuration with every default filled in.
func Default() *Config {
	return &Config{
		Port:           DefaultPort,
		ModelPath:      DefaultModelPath,
		BatchWorkers:   DefaultBatchWorkers,
		MaxUploadBytes: DefaultMaxUploadBytes,
		Log:            LogConfig{Level: DefaultLogLevel},
	}
}

// LoadConfig reads path (skipped when empty), applies environment overrides and validates
// the result.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		// Resolve path relative to current directory if not absolute
		if !filepath.IsAbs(path) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get current directory: %w", err)
			}
			path = filepath.Join(cwd, path)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields from the environment. DATABASE_URL selects the postgres
// history store unless HISTORY_DRIVER says otherwise.
func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT: %v", err)
		}
		c.Port = port
	}
	if v := os.Getenv("MODEL_PATH"); v != "" {
		c.ModelPath = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.History.Driver = "postgres"
		c.History.DSN = v
	}
	if v := os.Getenv("HISTORY_DRIVER"); v != "" {
		c.History.Driver = strings.ToLower(v)
	}
	if v := os.Getenv("HISTORY_DSN"); v != "" {
		c.History.DSN = v
	}
	if v := os.Getenv("BATCH_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid BATCH_WORKERS: %v", err)
		}
		c.BatchWorkers = n
	}
	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid MAX_UPLOAD_BYTES: %v", err)
		}
		c.MaxUploadBytes = n
	}
	if v := os.Getenv("MAX_ROWS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid MAX_ROWS: %v", err)
		}
		c.MaxRows = n
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	return nil
}

// Validate checks field ranges and reports the first offending field.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' (got %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// HistoryEnabled reports whether predictions should be recorded.
func (c *Config) HistoryEnabled() bool {
	return c.History.Driver != ""
}
