// Package main implements the factorykit command, a registration inspector
// for factory discovery trees. It scans a directory for registration files,
// merges them into a factory map and either prints the map or serves it over
// HTTP alongside Prometheus metrics.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/c360/factorykit/loader"
	"github.com/c360/factorykit/metric"
	"github.com/c360/factorykit/registration"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "factorykit"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	// Run application with proper error handling
	if err := run(); err != nil {
		slog.Error("Command failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	// Load .env before flag parsing so env fallbacks pick it up; a missing
	// file is not an error
	_ = godotenv.Load()

	cfg := parseFlags()
	if err := validateFlags(cfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	if cfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil
	}

	if cfg.ShowHelp {
		printDetailedHelp()
		return nil
	}

	logger := setupLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	source := registration.
		NewFSSource(os.DirFS(cfg.Dir), cfg.Pattern).
		WithLogger(logger)
	ctx := loader.NewContext(cfg.Dir, nil, source)

	if cfg.Serve {
		return serve(cfg, ctx, logger)
	}
	return printFactoryMap(cfg, ctx)
}

// printFactoryMap scans once and writes the merged factory map to stdout.
func printFactoryMap(cfg *CLIConfig, ctx *loader.Context) error {
	l, err := loader.NewLoader()
	if err != nil {
		return err
	}

	fm, err := l.FactoryMap(ctx)
	if err != nil {
		return err
	}
	if cfg.TypeFilter != "" {
		names := fm[cfg.TypeFilter]
		fm = map[string][]string{}
		if names != nil {
			fm[cfg.TypeFilter] = names
		}
	}

	switch cfg.Format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(fm)
	default:
		keys := make([]string, 0, len(fm))
		for key := range fm {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Printf("%s=%s\n", key, strings.Join(fm[key], ","))
		}
		return nil
	}
}

// serve exposes the factory map and Prometheus metrics over HTTP until
// interrupted.
func serve(cfg *CLIConfig, ctx *loader.Context, logger *slog.Logger) error {
	registry := metric.NewMetricsRegistry()
	l, err := loader.NewLoader(
		loader.WithLogger(logger),
		loader.WithMetrics(registry),
	)
	if err != nil {
		return err
	}

	// Fail fast on malformed registrations before binding the listener
	if _, err := l.FactoryMap(ctx); err != nil {
		return err
	}

	metricsServer := metric.NewServer(cfg.MetricsListen, cfg.MetricsPath, registry)
	if err := metricsServer.Start(); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Stop(stopCtx); err != nil {
			logger.Warn("Metrics server shutdown failed", "error", err)
		}
	}()
	logger.Info("Serving metrics",
		"addr", cfg.MetricsListen,
		"path", cfg.MetricsPath)

	mux := http.NewServeMux()
	mux.HandleFunc("/factories", func(w http.ResponseWriter, r *http.Request) {
		fm, err := l.FactoryMap(ctx)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(fm)
	})

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Serving factory map", "addr", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
