package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete symdex configuration
type Config struct {
	Version  int    `json:"version" mapstructure:"version"`
	RepoRoot string `json:"repoRoot" mapstructure:"repoRoot"`

	Cache    CacheConfig    `json:"cache" mapstructure:"cache"`
	Analyzer AnalyzerConfig `json:"analyzer" mapstructure:"analyzer"`
	Logging  LoggingConfig  `json:"logging" mapstructure:"logging"`
}

// CacheConfig contains cache store configuration
type CacheConfig struct {
	// MaxEntries bounds the number of resident file records (LRU-evicted beyond this)
	MaxEntries int `json:"maxEntries" mapstructure:"maxEntries"`
}

// AnalyzerConfig contains symbol extraction configuration
type AnalyzerConfig struct {
	// Extensions lists the file extensions to analyze (with leading dot)
	Extensions []string `json:"extensions" mapstructure:"extensions"`
	// Excludes are glob patterns or directory prefixes to skip
	Excludes []string `json:"excludes" mapstructure:"excludes"`
	// IncludeTests controls whether test files are analyzed
	IncludeTests bool `json:"includeTests" mapstructure:"includeTests"`
	// MaxFileSizeBytes skips files larger than this (0 = no limit)
	MaxFileSizeBytes int64 `json:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		RepoRoot: ".",
		Cache: CacheConfig{
			MaxEntries: 10000,
		},
		Analyzer: AnalyzerConfig{
			Extensions: []string{
				".go", ".js", ".jsx", ".ts", ".tsx",
				".py", ".rs", ".java", ".kt", ".kts",
			},
			Excludes:         []string{"vendor", "node_modules", "dist", "build", "testdata"},
			IncludeTests:     false,
			MaxFileSizeBytes: 1000000,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .symdex/config.json
func LoadConfig(repoRoot string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)
	v.SetDefault("repoRoot", ".")
	v.SetDefault("cache.maxEntries", 10000)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(repoRoot, ".symdex"))

	if err := v.ReadInConfig(); err != nil {
		// If config doesn't exist, return default config
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if cfg.Cache.MaxEntries <= 0 {
		cfg.Cache.MaxEntries = 10000
	}
	if len(cfg.Analyzer.Extensions) == 0 {
		cfg.Analyzer.Extensions = DefaultConfig().Analyzer.Extensions
	}

	return cfg, nil
}

// Save writes the configuration to .symdex/config.json
func (c *Config) Save(repoRoot string) error {
	configDir := filepath.Join(repoRoot, ".symdex")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(configDir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Cache.MaxEntries < 0 {
		return &ConfigError{Field: "cache.maxEntries", Message: "must be non-negative"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
