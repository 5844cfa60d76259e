package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	Dir         string
	Pattern     string
	TypeFilter  string
	Format      string
	LogLevel    string
	LogFormat   string
	Serve         bool
	ListenAddr    string
	MetricsListen string
	MetricsPath   string
	ShowVersion bool
	ShowHelp    bool
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	// Define flags with environment variable fallback
	flag.StringVar(&cfg.Dir, "dir",
		getEnv("FACTORYKIT_DIR", "."),
		"Directory to scan for registration files (env: FACTORYKIT_DIR)")

	flag.StringVar(&cfg.Pattern, "pattern",
		getEnv("FACTORYKIT_PATTERN", "META-INF/factories/*.factories"),
		"Glob pattern for registration files, relative to -dir (env: FACTORYKIT_PATTERN)")

	flag.StringVar(&cfg.TypeFilter, "type",
		getEnv("FACTORYKIT_TYPE", ""),
		"Show only this factory type (env: FACTORYKIT_TYPE)")

	flag.StringVar(&cfg.Format, "format",
		getEnv("FACTORYKIT_FORMAT", "text"),
		"Output format: text, json (env: FACTORYKIT_FORMAT)")

	flag.StringVar(&cfg.LogLevel, "log-level",
		getEnv("FACTORYKIT_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: FACTORYKIT_LOG_LEVEL)")

	flag.StringVar(&cfg.LogFormat, "log-format",
		getEnv("FACTORYKIT_LOG_FORMAT", "json"),
		"Log format: json, text (env: FACTORYKIT_LOG_FORMAT)")

	flag.BoolVar(&cfg.Serve, "serve",
		getEnvBool("FACTORYKIT_SERVE", false),
		"Serve the factory map over HTTP instead of printing it (env: FACTORYKIT_SERVE)")

	flag.StringVar(&cfg.ListenAddr, "listen",
		getEnv("FACTORYKIT_LISTEN", ":8080"),
		"HTTP listen address in serve mode (env: FACTORYKIT_LISTEN)")

	flag.StringVar(&cfg.MetricsListen, "metrics-listen",
		getEnv("FACTORYKIT_METRICS_LISTEN", ":9090"),
		"Metrics HTTP listen address in serve mode (env: FACTORYKIT_METRICS_LISTEN)")

	flag.StringVar(&cfg.MetricsPath, "metrics-path",
		getEnv("FACTORYKIT_METRICS_PATH", "/metrics"),
		"Metrics endpoint path in serve mode (env: FACTORYKIT_METRICS_PATH)")

	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	flag.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	flag.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")

	// Custom usage
	flag.Usage = func() {
		printDetailedHelp()
	}

	flag.Parse()

	return cfg
}

func validateFlags(cfg *CLIConfig) error {
	// Skip validation for special flags
	if cfg.ShowVersion || cfg.ShowHelp {
		return nil
	}

	// Validate scan directory exists
	info, err := os.Stat(cfg.Dir)
	if err != nil {
		return fmt.Errorf("scan directory not found: %s", cfg.Dir)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", cfg.Dir)
	}

	// Validate output format
	validFormats := []string{"text", "json"}
	if !contains(validFormats, cfg.Format) {
		return fmt.Errorf("invalid output format: %s", cfg.Format)
	}

	// Validate log level
	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	// Validate log format
	validLogFormats := []string{"json", "text"}
	if !contains(validLogFormats, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	return nil
}

func printDetailedHelp() {
	_, _ = fmt.Fprintf(os.Stderr, `%s - Factory Registration Inspector

Usage: %s [options]

Options:
`, appName, os.Args[0])
	flag.PrintDefaults()
	_, _ = fmt.Fprintf(os.Stderr, `
Examples:
  # Print the merged factory map of the current directory
  %s

  # Scan a specific tree with a custom pattern
  %s --dir=/srv/app --pattern="registrations/*.factories"

  # Show only one factory type, as JSON
  %s --type=codec.Decoder --format=json

  # Serve the factory map and metrics over HTTP
  %s --serve --listen=:8080 --metrics-listen=:9090

Version: %s
Build: %s
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], Version, BuildTime)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Utility function to check if slice contains string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
