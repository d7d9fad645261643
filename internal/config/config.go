// Package config provides configuration management for the ytrend tools.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the tools look for a config file when none is given.
const DefaultPath = "configs/ytrend.yaml"

// APIKeyEnv overrides youtube.api_key when set.
const APIKeyEnv = "YOUTUBE_API_KEY"

// MaxResultsLimit is the largest number of videos one search may request.
const MaxResultsLimit = 500

// Configuration validation errors.
var (
	ErrInvalidRate         = errors.New("youtube.requests_per_second must be positive")
	ErrInvalidTimeout      = errors.New("youtube.timeout_sec must be at least 1")
	ErrInvalidMaxResults   = errors.New("search.max_results must be between 1 and 500")
	ErrInvalidOrder        = errors.New("search.order must be one of: relevance, date, rating, viewCount, title")
	ErrInvalidDuration     = errors.New("search.video_duration must be one of: any, short, medium, long")
	ErrInvalidRegionCode   = errors.New("search.region_code must be a two letter code")
	ErrMissingOutputPath   = errors.New("output.base_path is required")
	ErrNoOutputFormats     = errors.New("output.formats must list at least one format")
	ErrInvalidOutputFormat = errors.New("output.formats entries must be one of: csv, xlsx, json")
	ErrInvalidLogLevel     = errors.New("logging.level must be one of: debug, info, warn, error")
)

var (
	validOrders    = []string{"relevance", "date", "rating", "viewCount", "title"}
	validDurations = []string{"any", "short", "medium", "long"}
	validFormats   = []string{"csv", "xlsx", "json"}
	validLevels    = []string{"debug", "info", "warn", "error"}
)

// Config represents the complete ytrend configuration.
type Config struct {
	YouTube YouTubeConfig `yaml:"youtube"`
	Search  SearchConfig  `yaml:"search"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// YouTubeConfig contains API client settings.
type YouTubeConfig struct {
	APIKey            string  `yaml:"api_key"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	TimeoutSec        int     `yaml:"timeout_sec"`
}

// SearchConfig holds the default search request.
type SearchConfig struct {
	Order         string `yaml:"order"`
	VideoDuration string `yaml:"video_duration"`
	RegionCode    string `yaml:"region_code"`
	AgeGroup      string `yaml:"age_group"`
	MaxResults    int    `yaml:"max_results"`
}

// OutputConfig defines output behavior.
type OutputConfig struct {
	BasePath string   `yaml:"base_path"`
	Formats  []string `yaml:"formats"`
	CSVBOM   bool     `yaml:"csv_bom"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		YouTube: YouTubeConfig{
			RequestsPerSecond: 5,
			TimeoutSec:        30,
		},
		Search: SearchConfig{
			MaxResults:    50,
			Order:         "relevance",
			VideoDuration: "any",
			RegionCode:    "KR",
			AgeGroup:      "전체",
		},
		Output: OutputConfig{
			BasePath: "./output",
			CSVBOM:   true,
			Formats:  []string{"csv"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from a YAML file. Keys missing from the
// file keep their default values.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Load reads path when it exists and falls back to Default otherwise, then
// applies the API key from the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		cfg, err = LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(""); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyEnv loads variables from envFile (".env" when empty) if it exists and
// sets the API key from YOUTUBE_API_KEY. Existing environment variables win
// over the file.
func (c *Config) ApplyEnv(envFile string) error {
	if envFile == "" {
		envFile = ".env"
	}

	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	if key := os.Getenv(APIKeyEnv); key != "" {
		c.YouTube.APIKey = key
	}

	return nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.YouTube.RequestsPerSecond <= 0 {
		return ErrInvalidRate
	}

	if c.YouTube.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if c.Search.MaxResults < 1 || c.Search.MaxResults > MaxResultsLimit {
		return ErrInvalidMaxResults
	}

	if !slices.Contains(validOrders, c.Search.Order) {
		return fmt.Errorf("%w: %q", ErrInvalidOrder, c.Search.Order)
	}

	if !slices.Contains(validDurations, c.Search.VideoDuration) {
		return fmt.Errorf("%w: %q", ErrInvalidDuration, c.Search.VideoDuration)
	}

	if c.Search.RegionCode != "" && len(c.Search.RegionCode) != 2 {
		return fmt.Errorf("%w: %q", ErrInvalidRegionCode, c.Search.RegionCode)
	}

	if c.Output.BasePath == "" {
		return ErrMissingOutputPath
	}

	if len(c.Output.Formats) == 0 {
		return ErrNoOutputFormats
	}

	for _, f := range c.Output.Formats {
		if !slices.Contains(validFormats, f) {
			return fmt.Errorf("%w: %q", ErrInvalidOutputFormat, f)
		}
	}

	if !slices.Contains(validLevels, c.Logging.Level) {
		return ErrInvalidLogLevel
	}

	return nil
}

// GetTimeout returns the API request timeout.
func (c *YouTubeConfig) GetTimeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// HasAPIKey reports whether an API key is configured.
func (c *Config) HasAPIKey() bool {
	return c.YouTube.APIKey != ""
}

// String returns a string representation of the config. The API key is never printed.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{APIKey: %t, MaxResults: %d, Region: %s, Output: %s %v}",
		c.HasAPIKey(),
		c.Search.MaxResults,
		c.Search.RegionCode,
		c.Output.BasePath,
		c.Output.Formats,
	)
}
