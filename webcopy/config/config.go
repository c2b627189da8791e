// Package config loads webcopy settings from .env files, an optional YAML file,
// and the process environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath    = "webcopy.yml"
	DefaultOutputRoot    = "."
	DefaultLogDir        = "./logs"
	DefaultMaxIterations = 150
)

// ErrMissingAPIKey is returned when no credential can be resolved.
var ErrMissingAPIKey = errors.New("API key not found. Ensure that the .env file contains the 'GOOGLE_API_KEY' variable")

type Config struct {
	GoogleAPIKey  string        `yaml:"google_api_key" env:"GOOGLE_API_KEY"`
	GeminiBaseURL string        `yaml:"gemini_base_url" env:"GEMINI_BASE_URL"`
	OutputRoot    string        `yaml:"output_root" env:"WEBCOPY_OUTPUT_ROOT"`
	MaxIterations int           `yaml:"max_iterations" env:"WEBCOPY_MAX_ITERATIONS"`
	LogDir        string        `yaml:"log_dir" env:"WEBCOPY_LOG_DIR"`
	Models        []ModelConfig `yaml:"models"`
}

// ModelConfig describes one selectable model. Zero DailyLimit means no daily limit.
type ModelConfig struct {
	ID          string           `yaml:"id"`
	Description string           `yaml:"description"`
	RateLimit   *RateLimitConfig `yaml:"rate_limit,omitempty"`
	DailyLimit  int              `yaml:"daily_limit,omitempty"`
}

type RateLimitConfig struct {
	Calls         int `yaml:"calls"`
	WindowSeconds int `yaml:"window_seconds"`
}

// LoadConfig resolves the configuration and validates it. A missing API key is fatal.
func LoadConfig() (Config, error) {
	if err := loadEnvFiles(); err != nil {
		return Config{}, err
	}
	return Load(getEnv("CONFIG_PATH", DefaultConfigPath))
}

// Load reads the YAML file at path (if present), applies env overrides and defaults,
// then validates. .env files are not consulted.
func Load(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return Config{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadEnvFiles loads ENV_FILE if set, otherwise .env.local then .env.
// godotenv never overrides variables already present, so earlier files win.
func loadEnvFiles() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}
	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.OutputRoot == "" {
		c.OutputRoot = DefaultOutputRoot
	}
	if c.MaxIterations <= 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	if c.LogDir == "" {
		c.LogDir = DefaultLogDir
	}
}

func (c Config) Validate() error {
	if c.GoogleAPIKey == "" {
		return ErrMissingAPIKey
	}
	seen := make(map[string]bool, len(c.Models))
	for i, m := range c.Models {
		if m.ID == "" {
			return fmt.Errorf("models[%d]: id is required", i)
		}
		if seen[m.ID] {
			return fmt.Errorf("models[%d]: duplicate id %q", i, m.ID)
		}
		seen[m.ID] = true
		if m.RateLimit != nil && (m.RateLimit.Calls <= 0 || m.RateLimit.WindowSeconds <= 0) {
			return fmt.Errorf("models[%d] %s: rate_limit calls and window_seconds must be positive", i, m.ID)
		}
		if m.DailyLimit < 0 {
			return fmt.Errorf("models[%d] %s: daily_limit must not be negative", i, m.ID)
		}
	}
	return nil
}

// applyEnvOverrides sets string and int fields from the variable named by their `env` tag.
// A value that does not parse into its field is a configuration error.
func applyEnvOverrides(cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()
	for i := range v.NumField() {
		envTag := t.Field(i).Tag.Get("env")
		if envTag == "" {
			continue
		}
		val := os.Getenv(envTag)
		if val == "" {
			continue
		}
		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(val)
		case reflect.Int:
			n, err := strconv.Atoi(strings.TrimSpace(val))
			if err != nil {
				return fmt.Errorf("%s: %q is not an integer", envTag, val)
			}
			field.SetInt(int64(n))
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return fallback
}
