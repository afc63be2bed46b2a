// Package main provides the entry point for the quadra grid splitter.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/imagegrid/quadra/internal/app"
	"github.com/imagegrid/quadra/internal/config"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "quadra [flags] INPUT...",
	Short: "Quadra - 2x2 image grid splitter",
	Long: `Quadra splits composite 2x2 image grids into their four quadrant images.

It scans files, directories, and remote URLs for grid candidates, validates
remote candidates with a content-type probe, and writes the quadrants into
the output directory without ever overwriting an existing quadrant file.

Features:
  - Local files, directories, and http/https/s3/az URLs
  - Remote eligibility checks via Content-Type probes
  - Idempotent quadrant writes
  - Directory watching with debounce
  - Periodic rescans and a status HTTP server
  - Prometheus metrics`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSplit,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("Quadra %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Build Date: %s\n", buildDate)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (json, text)")

	// Processing flags
	rootCmd.Flags().StringP("output", "o", "outputs", "output directory for quadrant files")
	rootCmd.Flags().String("config-dir", "config", "directory holding the directive files")
	rootCmd.Flags().Bool("watch", false, "watch directory inputs for new files")
	rootCmd.Flags().Duration("rescan-interval", 0, "periodic rescan interval (0 disables)")

	// Status server flags
	rootCmd.Flags().String("status-addr", "", "status server listen address (e.g., localhost:8080)")
	rootCmd.Flags().StringSlice("cors", nil, "allowed CORS origins (e.g., https://example.com,*.sub.domain.tld)")

	// Bind flags to viper
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("output.dir", rootCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("directives.dir", rootCmd.Flags().Lookup("config-dir"))
	_ = viper.BindPFlag("watch.enabled", rootCmd.Flags().Lookup("watch"))
	_ = viper.BindPFlag("rescan.interval", rootCmd.Flags().Lookup("rescan-interval"))
	_ = viper.BindPFlag("status.addr", rootCmd.Flags().Lookup("status-addr"))
	_ = viper.BindPFlag("status.cors.allowed_origins", rootCmd.Flags().Lookup("cors"))

	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	config.Defaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

func runSplit(_ *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if verbose {
		cfg.Logging.Level = "debug"
	}

	// Setup logger
	logger := setupLogger(cfg.Logging)
	slog.SetDefault(logger)

	logger.Info("starting quadra",
		"version", version,
		"inputs", len(args),
		"output_dir", cfg.Output.Dir,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Initialize application
	application, err := app.New(ctx, cfg, logger, args)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}

	// Initial pass over the inputs
	if _, err := application.RunOnce(ctx); err != nil {
		return fmt.Errorf("running split pass: %w", err)
	}

	// One-shot mode: no watcher, rescan, or status server configured
	if !application.Resident() {
		return nil
	}

	// Start long-running components in background
	serverErr := make(chan error, 1)
	go func() {
		if err := application.Start(ctx); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Wait for cancellation or server error
	select {
	case err := <-serverErr:
		logger.Error("server error", "error", err)
		cancel()
	case <-ctx.Done():
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Status.ShutdownTimeout)
	defer shutdownCancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		return err
	}

	logger.Info("stopped")
	return nil
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(time.Now().UTC().Format(time.RFC3339))
			}
			return a
		},
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
