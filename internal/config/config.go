// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-builder/internal/storage"
)

// Environment variables read by ApplyEnv
const (
	EnvStorage     = "RESUME_STORAGE"
	EnvDataDir     = "RESUME_DATA_DIR"
	EnvRedisURL    = "REDIS_URL"
	EnvDatabaseURL = "DATABASE_URL"
	EnvChromePath  = "CHROME_PATH"
	EnvPort        = "PORT"
)

// Config represents the CLI configuration that can be loaded from a JSON or
// YAML file. All fields are optional; missing values use defaults.
type Config struct {
	// Storage
	Storage     string `json:"storage,omitempty" yaml:"storage,omitempty" validate:"omitempty,oneof=file memory redis postgres"` // Persistence backend
	DataDir     string `json:"data_dir,omitempty" yaml:"data_dir,omitempty"`                                                    // Directory for the file backend
	RedisURL    string `json:"redis_url,omitempty" yaml:"redis_url,omitempty" validate:"omitempty,url"`                         // Redis connection URL
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"`                                            // PostgreSQL connection URL

	// Editor
	AutosaveDelayMS int    `json:"autosave_delay_ms,omitempty" yaml:"autosave_delay_ms,omitempty" validate:"gte=0"` // Debounce before autosave
	PresetsFile     string `json:"presets_file,omitempty" yaml:"presets_file,omitempty"`                            // Custom preset catalog
	Watch           bool   `json:"watch,omitempty" yaml:"watch,omitempty"`                                          // Reload on external edits of the data file

	// Server
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	Port int    `json:"port,omitempty" yaml:"port,omitempty" validate:"gte=0,lte=65535"`

	// PDF
	ChromePath        string `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"`                              // Browser binary for PDF export
	PDFTimeoutSeconds int    `json:"pdf_timeout_seconds,omitempty" yaml:"pdf_timeout_seconds,omitempty" validate:"gte=0"` // Bound on one PDF print

	// Behavior
	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"` // Print detailed debug information
}

var validate = validator.New()

// Defaults returns the configuration used when nothing else is set
func Defaults() Config {
	return Config{
		Storage:           storage.BackendFile,
		DataDir:           defaultDataDir(),
		AutosaveDelayMS:   int(storage.DefaultAutosaveDelay / time.Millisecond),
		Host:              "127.0.0.1",
		Port:              8080,
		PDFTimeoutSeconds: 60,
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "resume-builder")
	}
	return ".resume-builder"
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// ApplyEnv overrides fields with any environment variables that are set.
// getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvStorage); v != "" {
		c.Storage = v
	}
	if v := getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := getenv(EnvRedisURL); v != "" {
		c.RedisURL = v
	}
	if v := getenv(EnvDatabaseURL); v != "" {
		c.DatabaseURL = v
	}
	if v := getenv(EnvChromePath); v != "" {
		c.ChromePath = v
	}
	if v := getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: %s must be a number: %w", EnvPort, err)
		}
		c.Port = port
	}
	return nil
}

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' (got %v)", fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("config error: %w", err)
	}

	// Backend specific requirements
	switch c.Storage {
	case storage.BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("config error: 'redis_url' is required for the redis backend")
		}
	case storage.BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for the postgres backend")
		}
	}

	if c.Watch && c.Storage != "" && c.Storage != storage.BackendFile {
		return fmt.Errorf("config error: 'watch' requires the file backend")
	}

	if c.PresetsFile != "" {
		if _, err := os.Stat(c.PresetsFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: presets file not found: %s", c.PresetsFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Storage == "" {
		result.Storage = defaults.Storage
	}
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.PresetsFile == "" {
		result.PresetsFile = defaults.PresetsFile
	}
	if result.Host == "" {
		result.Host = defaults.Host
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}

	// Int fields: use default if zero
	if result.AutosaveDelayMS == 0 {
		result.AutosaveDelayMS = defaults.AutosaveDelayMS
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.PDFTimeoutSeconds == 0 {
		result.PDFTimeoutSeconds = defaults.PDFTimeoutSeconds
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Addr returns host:port for the preview server
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AutosaveDelay returns the autosave debounce as a duration
func (c *Config) AutosaveDelay() time.Duration {
	return time.Duration(c.AutosaveDelayMS) * time.Millisecond
}

// PDFTimeout returns the bound on one PDF print
func (c *Config) PDFTimeout() time.Duration {
	return time.Duration(c.PDFTimeoutSeconds) * time.Second
}

// StorageOptions converts the storage fields for storage.Open
func (c *Config) StorageOptions(logger *slog.Logger) storage.Options {
	return storage.Options{
		Backend:     c.Storage,
		Dir:         c.DataDir,
		RedisURL:    c.RedisURL,
		DatabaseURL: c.DatabaseURL,
		Logger:      logger,
	}
}
