package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Test input defaults
	assert.Equal(t, "target/benchmark", cfg.Input.BenchmarkDir)
	assert.Equal(t, "target/profile", cfg.Input.ProfileDir)

	// Test output defaults
	assert.Equal(t, "target/analysis", cfg.Output.Dir)
	assert.Equal(t, []string{"all"}, cfg.Output.Formats)
	assert.True(t, cfg.Output.Charts)

	// Test analysis defaults
	assert.Equal(t, 10.0, cfg.Analysis.ThresholdPercent)
	assert.Equal(t, []string{"all"}, cfg.Analysis.Categories)
	assert.Equal(t, 5, cfg.Analysis.HotspotLimit)

	// Test logging defaults
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Empty(t, cfg.Logging.OutputFile)

	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	tests := []struct {
		name     string
		yamlData string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name: "basic_config",
			yamlData: `
input:
  benchmark_dir: "/data/benchmark"
  profile_dir: "/data/profile"
output:
  dir: "/data/analysis"
  formats: ["text", "json"]
  charts: false
logging:
  level: "debug"
  format: "json"
`,
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/data/benchmark", cfg.Input.BenchmarkDir)
				assert.Equal(t, "/data/profile", cfg.Input.ProfileDir)
				assert.Equal(t, "/data/analysis", cfg.Output.Dir)
				assert.Equal(t, []string{"text", "json"}, cfg.Output.Formats)
				assert.False(t, cfg.Output.Charts)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
			},
		},
		{
			name: "analysis_config",
			yamlData: `
analysis:
  threshold_percent: 25.0
  categories: ["transaction", "sharding"]
  hotspot_limit: 3
`,
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 25.0, cfg.Analysis.ThresholdPercent)
				assert.Equal(t, []string{"transaction", "sharding"}, cfg.Analysis.Categories)
				assert.Equal(t, 3, cfg.Analysis.HotspotLimit)
				// Untouched sections keep their defaults
				assert.Equal(t, "target/benchmark", cfg.Input.BenchmarkDir)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, "test-config.yaml")

			err := os.WriteFile(configPath, []byte(tt.yamlData), 0644)
			require.NoError(t, err)

			cfg, err := LoadConfig(configPath)
			require.NoError(t, err)
			require.NotNil(t, cfg)

			tt.validate(t, cfg)
		})
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	defer os.Chdir(origDir)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "bad.yaml")

	err := os.WriteFile(configPath, []byte("output:\n  formats: [unclosed"), 0644)
	require.NoError(t, err)

	_, err = LoadConfig(configPath)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{
			name:    "empty_benchmark_dir",
			mutate:  func(cfg *Config) { cfg.Input.BenchmarkDir = "" },
			wantErr: "benchmark directory",
		},
		{
			name:    "empty_profile_dir",
			mutate:  func(cfg *Config) { cfg.Input.ProfileDir = "" },
			wantErr: "profile directory",
		},
		{
			name:    "empty_output_dir",
			mutate:  func(cfg *Config) { cfg.Output.Dir = "" },
			wantErr: "output directory",
		},
		{
			name:    "unknown_format",
			mutate:  func(cfg *Config) { cfg.Output.Formats = []string{"pdf"} },
			wantErr: "invalid output format",
		},
		{
			name:    "zero_threshold",
			mutate:  func(cfg *Config) { cfg.Analysis.ThresholdPercent = 0 },
			wantErr: "invalid threshold",
		},
		{
			name:    "threshold_over_100",
			mutate:  func(cfg *Config) { cfg.Analysis.ThresholdPercent = 150 },
			wantErr: "invalid threshold",
		},
		{
			name:    "unknown_category",
			mutate:  func(cfg *Config) { cfg.Analysis.Categories = []string{"consensus"} },
			wantErr: "invalid benchmark category",
		},
		{
			name:    "zero_hotspot_limit",
			mutate:  func(cfg *Config) { cfg.Analysis.HotspotLimit = 0 },
			wantErr: "hotspot limit",
		},
		{
			name:    "bad_log_level",
			mutate:  func(cfg *Config) { cfg.Logging.Level = "verbose" },
			wantErr: "invalid log level",
		},
		{
			name:    "bad_log_format",
			mutate:  func(cfg *Config) { cfg.Logging.Format = "xml" },
			wantErr: "invalid log format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Analysis.ThresholdPercent = 15.0
	cfg.Output.Formats = []string{"html"}

	err := cfg.SaveConfig(configPath)
	require.NoError(t, err)

	loaded, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestHasFormatAndCategory(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.HasFormat("text"))
	assert.True(t, cfg.HasCategory("network"))

	cfg.Output.Formats = []string{"json"}
	cfg.Analysis.Categories = []string{"transaction"}
	assert.True(t, cfg.HasFormat("json"))
	assert.False(t, cfg.HasFormat("html"))
	assert.True(t, cfg.HasCategory("transaction"))
	assert.False(t, cfg.HasCategory("storage"))
}

func TestCreateDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Output.Dir = filepath.Join(tmpDir, "analysis", "run1")

	require.NoError(t, cfg.CreateDirectories())

	info, err := os.Stat(cfg.Output.Dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
