package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/enablerdao/shardx-perf/pkg/analysis"
	"github.com/enablerdao/shardx-perf/pkg/config"
	"github.com/enablerdao/shardx-perf/pkg/report"
)

var (
	// Global flags
	configFile   string
	logLevel     string
	logFormat    string
	benchmarkDir string
	profileDir   string
	outputDir    string
	categoryFlag string
	formatFlag   string
	threshold    float64

	// Build info (set by build system)
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "shardx-analyze",
		Short: "ShardX performance bottleneck analyzer",
		Long: `shardx-analyze ingests benchmark results and profiler reports captured by
the ShardX benchmark runners, derives scalability metrics, classifies
performance bottlenecks, and writes text, JSON, and HTML reports.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		RunE:    runAnalysis,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (json, text, console)")
	rootCmd.PersistentFlags().StringVar(&benchmarkDir, "benchmark-dir", "", "directory containing benchmark result files")
	rootCmd.PersistentFlags().StringVar(&profileDir, "profile-dir", "", "directory containing profiler reports")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output-dir", "o", "", "directory reports are written to")
	rootCmd.PersistentFlags().StringVarP(&categoryFlag, "type", "t", "", "benchmark category to analyze (transaction, sharding, storage, network, all)")
	rootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "", "report format to generate (text, json, html, all)")
	rootCmd.PersistentFlags().Float64Var(&threshold, "threshold", 0, "performance degradation threshold in percent")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigWithFlags()
	if err != nil {
		return err
	}

	logger, err := setupLogging(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	logger.Info().
		Str("version", version).
		Str("benchmark_dir", cfg.Input.BenchmarkDir).
		Str("profile_dir", cfg.Input.ProfileDir).
		Float64("threshold", cfg.Analysis.ThresholdPercent).
		Msg("Starting bottleneck analysis")

	if err := cfg.CreateDirectories(); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	// Allow a signal to cut the run short
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := analysis.NewAnalyzer(cfg, logger).Run(ctx)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	paths, err := report.NewGenerator(cfg, logger).Generate(result)
	if err != nil {
		return fmt.Errorf("report generation failed: %w", err)
	}

	printSummary(result, paths)
	return nil
}

// printSummary echoes the headline findings to stdout once the reports
// are on disk.
func printSummary(result *analysis.Result, paths []string) {
	fmt.Println("\nShardX bottleneck analysis complete.")
	fmt.Printf("Detected bottlenecks: %d\n", len(result.Bottlenecks))

	hasHigh := false
	for i, bottleneck := range result.Bottlenecks {
		if bottleneck.Severity != analysis.SeverityHigh {
			continue
		}
		if !hasHigh {
			fmt.Println("\nCritical bottlenecks:")
			hasHigh = true
		}
		fmt.Printf("  %d. %s\n", i+1, bottleneck.Description)
	}

	fmt.Println("\nGenerated reports:")
	for _, path := range paths {
		fmt.Printf("  - %s\n", path)
	}

	fmt.Println("\nRecommendations:")
	if len(result.Bottlenecks) == 0 {
		fmt.Println("  - Current performance looks good. Keep monitoring regularly.")
		return
	}
	for _, bottleneck := range result.Bottlenecks {
		fmt.Printf("  - %s\n", bottleneck.Recommendation)
	}
}

func loadConfigWithFlags() (*config.Config, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Override config with command line flags
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}
	if benchmarkDir != "" {
		cfg.Input.BenchmarkDir = benchmarkDir
	}
	if profileDir != "" {
		cfg.Input.ProfileDir = profileDir
	}
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}
	if categoryFlag != "" {
		cfg.Analysis.Categories = []string{categoryFlag}
	}
	if formatFlag != "" {
		cfg.Output.Formats = []string{formatFlag}
	}
	if threshold > 0 {
		cfg.Analysis.ThresholdPercent = threshold
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setupLogging(cfg config.LoggingConfig) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)

	var output *os.File
	if cfg.OutputFile != "" {
		logDir := filepath.Dir(cfg.OutputFile)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return zerolog.Logger{}, fmt.Errorf("failed to create log directory: %w", err)
		}

		file, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return zerolog.Logger{}, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	} else {
		output = os.Stderr
	}

	var logger zerolog.Logger
	switch cfg.Format {
	case "console":
		logger = log.Output(zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339})
	case "text":
		logger = zerolog.New(output).With().Timestamp().Logger()
	case "json":
		fallthrough
	default:
		logger = zerolog.New(output).With().Timestamp().Logger()
	}

	return logger, nil
}

func newConfigCmd() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
	}

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()

			if outputPath == "" {
				outputPath = "shardx-analyze.yaml"
			}

			if err := cfg.SaveConfig(outputPath); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			fmt.Printf("Generated default configuration: %s\n", outputPath)
			return nil
		},
	}
	generateCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file path")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			fmt.Printf("Configuration is valid\n")
			fmt.Printf("Benchmark dir: %s\n", cfg.Input.BenchmarkDir)
			fmt.Printf("Profile dir: %s\n", cfg.Input.ProfileDir)
			fmt.Printf("Output dir: %s\n", cfg.Output.Dir)
			fmt.Printf("Threshold: %.1f%%\n", cfg.Analysis.ThresholdPercent)

			return nil
		},
	}

	cmd.AddCommand(generateCmd)
	cmd.AddCommand(validateCmd)

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("ShardX Performance Bottleneck Analyzer\n")
			fmt.Printf("Version: %s\n", version)
			fmt.Printf("Commit: %s\n", commit)
			fmt.Printf("Built: %s\n", date)
		},
	}
}
