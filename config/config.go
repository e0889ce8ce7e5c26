// Package config loads the service configuration: built-in defaults, then an
// optional YAML file, then environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/charleschoi123/bazi-destiny/bazi"
)

// Config holds all service configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Store   StoreConfig   `yaml:"store"`
	Chart   ChartConfig   `yaml:"chart"`
	Geocode GeocodeConfig `yaml:"geocode"`
	LLM     LLMConfig     `yaml:"llm"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port            string `yaml:"port"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
	AllowOrigin     string `yaml:"allow_origin"` // CORS Access-Control-Allow-Origin
}

// StoreConfig configures the BoltDB geocode cache.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// ChartConfig selects the calculator conventions.
type ChartConfig struct {
	Precision  string `yaml:"precision"` // yearly, fixed-day
	ZiHour     string `yaml:"zi_hour"`   // late, next-day
	LuckCycles int    `yaml:"luck_cycles"`
}

// GeocodeConfig configures the Nominatim fallback for unknown places.
type GeocodeConfig struct {
	Enabled   bool   `yaml:"enabled"`
	BaseURL   string `yaml:"base_url"`
	UserAgent string `yaml:"user_agent"`
}

// LLMConfig configures the interpretation relay.
type LLMConfig struct {
	Provider    string  `yaml:"provider"` // deepseek, openai, gemini
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	Label       string  `yaml:"label"` // shown to users as the AI source
	Temperature float64 `yaml:"temperature"`
	Timeout     string  `yaml:"timeout"`

	GeminiAPIKey string `yaml:"gemini_api_key"`
	GeminiModel  string `yaml:"gemini_model"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			ShutdownTimeout: "10s",
			AllowOrigin:     "*",
		},
		Store: StoreConfig{
			Path: "geocodes.db",
		},
		Chart: ChartConfig{
			Precision:  bazi.PrecisionYearly.String(),
			ZiHour:     bazi.ZiHourLate.String(),
			LuckCycles: bazi.DefaultLuckCycles,
		},
		Geocode: GeocodeConfig{
			Enabled:   true,
			BaseURL:   "https://nominatim.openstreetmap.org",
			UserAgent: "BAZI Destiny/1.0 (https://github.com/charleschoi123/bazi-destiny)",
		},
		LLM: LLMConfig{
			Provider:    "deepseek",
			BaseURL:     "https://api.deepseek.com",
			Model:       "deepseek-chat",
			Label:       "DeepSeek",
			Temperature: 0.7,
			Timeout:     "300s",
			GeminiModel: "gemini-2.5-flash",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from a YAML file. A missing file yields the
// defaults; environment variables override both.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides. The variable
// names match the original deployment's.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		c.Store.Path = v
	}

	if v := os.Getenv("DEEPSEEK_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	// OPENAI_BASE_URL wins over DEEPSEEK_BASE_URL.
	if v := os.Getenv("DEEPSEEK_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("DEEPSEEK_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("AI_SOURCE_LABEL"); v != "" {
		c.LLM.Label = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.LLM.GeminiAPIKey = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = strings.ToLower(v)
	}

	if v := os.Getenv("GEOCODE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Geocode.Enabled = b
		}
	}
	if v := os.Getenv("CHART_PRECISION"); v != "" {
		c.Chart.Precision = v
	}
	if v := os.Getenv("CHART_ZI_HOUR"); v != "" {
		c.Chart.ZiHour = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// ValidProviders lists the supported LLM providers.
var ValidProviders = []string{"deepseek", "openai", "gemini"}

// ValidLogLevels lists the accepted logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration. A missing API key is not an error:
// the relay then streams a notice instead of an interpretation.
func (c *Config) Validate() error {
	if _, err := c.Precision(); err != nil {
		return err
	}
	if _, err := c.ZiHour(); err != nil {
		return err
	}
	if !contains(ValidProviders, c.LLM.Provider) {
		return fmt.Errorf("invalid LLM provider: %s (valid: %v)", c.LLM.Provider, ValidProviders)
	}
	if !contains(ValidLogLevels, c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}
	if c.Chart.LuckCycles < 0 {
		return fmt.Errorf("luck_cycles must not be negative, got %d", c.Chart.LuckCycles)
	}
	if c.Server.Port == "" {
		return fmt.Errorf("server port is empty")
	}
	return nil
}

// Precision returns the configured solar-term precision.
func (c *Config) Precision() (bazi.Precision, error) {
	return bazi.ParsePrecision(c.Chart.Precision)
}

// ZiHour returns the configured 23:00 convention.
func (c *Config) ZiHour() (bazi.ZiHour, error) {
	return bazi.ParseZiHour(c.Chart.ZiHour)
}

// GetShutdownTimeout returns the graceful shutdown timeout as a duration.
func (c *Config) GetShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// GetLLMTimeout returns the LLM request timeout as a duration.
func (c *Config) GetLLMTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil {
		return 300 * time.Second
	}
	return d
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
