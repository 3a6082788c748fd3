package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the bottleneck analyzer configuration
type Config struct {
	Input    InputConfig    `yaml:"input" mapstructure:"input"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Analysis AnalysisConfig `yaml:"analysis" mapstructure:"analysis"`
	Logging  LoggingConfig  `yaml:"logging" mapstructure:"logging"`
}

// InputConfig holds the directories scanned for benchmark and profiler artifacts
type InputConfig struct {
	BenchmarkDir string `yaml:"benchmark_dir" mapstructure:"benchmark_dir"`
	ProfileDir   string `yaml:"profile_dir" mapstructure:"profile_dir"`
}

// OutputConfig holds report output settings
type OutputConfig struct {
	Dir     string   `yaml:"dir" mapstructure:"dir"`
	Formats []string `yaml:"formats" mapstructure:"formats"`
	Charts  bool     `yaml:"charts" mapstructure:"charts"`
}

// AnalysisConfig holds bottleneck detection tuning parameters
type AnalysisConfig struct {
	ThresholdPercent float64  `yaml:"threshold_percent" mapstructure:"threshold_percent"`
	Categories       []string `yaml:"categories" mapstructure:"categories"`
	HotspotLimit     int      `yaml:"hotspot_limit" mapstructure:"hotspot_limit"`
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`
	Format     string `yaml:"format" mapstructure:"format"`
	OutputFile string `yaml:"output_file" mapstructure:"output_file"`
}

// Default configuration values
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			BenchmarkDir: "target/benchmark",
			ProfileDir:   "target/profile",
		},
		Output: OutputConfig{
			Dir:     "target/analysis",
			Formats: []string{"all"},
			Charts:  true,
		},
		Analysis: AnalysisConfig{
			ThresholdPercent: 10.0,
			Categories:       []string{"all"},
			HotspotLimit:     5,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputFile: "",
		},
	}
}

// LoadConfig loads configuration from files and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Search for config file in common locations
		v.SetConfigName("shardx-analyze")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.config/shardx")
		v.AddConfigPath("/etc/shardx")
	}

	// Environment variable settings
	v.SetEnvPrefix("SHARDX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to a file
func (c *Config) SaveConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate input config
	if c.Input.BenchmarkDir == "" {
		return fmt.Errorf("benchmark directory cannot be empty")
	}

	if c.Input.ProfileDir == "" {
		return fmt.Errorf("profile directory cannot be empty")
	}

	// Validate output config
	if c.Output.Dir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}

	if len(c.Output.Formats) == 0 {
		return fmt.Errorf("at least one output format must be selected")
	}

	validFormats := map[string]bool{
		"text": true, "json": true, "html": true, "all": true,
	}
	for _, format := range c.Output.Formats {
		if !validFormats[format] {
			return fmt.Errorf("invalid output format: %s (must be text, json, html, or all)", format)
		}
	}

	// Validate analysis config
	if c.Analysis.ThresholdPercent <= 0 || c.Analysis.ThresholdPercent >= 100 {
		return fmt.Errorf("invalid threshold: %.1f (must be between 0 and 100)", c.Analysis.ThresholdPercent)
	}

	if len(c.Analysis.Categories) == 0 {
		return fmt.Errorf("at least one benchmark category must be selected")
	}

	validCategories := map[string]bool{
		"transaction": true, "sharding": true, "storage": true, "network": true, "all": true,
	}
	for _, category := range c.Analysis.Categories {
		if !validCategories[category] {
			return fmt.Errorf("invalid benchmark category: %s (must be transaction, sharding, storage, network, or all)", category)
		}
	}

	if c.Analysis.HotspotLimit < 1 {
		return fmt.Errorf("hotspot limit must be at least 1")
	}

	// Validate logging config
	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logging.Level)
	}

	validLogFormats := map[string]bool{
		"json": true, "text": true, "console": true,
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("invalid log format: %s (must be json, text, or console)", c.Logging.Format)
	}

	return nil
}

// CreateDirectories creates the directories reports are written to
func (c *Config) CreateDirectories() error {
	if err := os.MkdirAll(c.Output.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", c.Output.Dir, err)
	}
	return nil
}

// HasFormat reports whether the given output format was requested,
// either explicitly or via "all".
func (c *Config) HasFormat(format string) bool {
	return containsString(c.Output.Formats, format) || containsString(c.Output.Formats, "all")
}

// HasCategory reports whether the given benchmark category was requested,
// either explicitly or via "all".
func (c *Config) HasCategory(category string) bool {
	return containsString(c.Analysis.Categories, category) || containsString(c.Analysis.Categories, "all")
}

func containsString(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
