// Package app provides application initialization and wiring.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/imagegrid/quadra/internal/adapters/codec"
	"github.com/imagegrid/quadra/internal/adapters/metrics"
	"github.com/imagegrid/quadra/internal/adapters/remote"
	"github.com/imagegrid/quadra/internal/adapters/status"
	"github.com/imagegrid/quadra/internal/adapters/watcher"
	"github.com/imagegrid/quadra/internal/application"
	"github.com/imagegrid/quadra/internal/config"
	"github.com/imagegrid/quadra/internal/domain"
	"github.com/imagegrid/quadra/internal/ports/output"
)

// App holds all application components.
type App struct {
	Config        *config.Config
	Logger        *slog.Logger
	Options       domain.Options
	Inputs        []string
	Pipeline      *application.Pipeline
	HealthService *application.HealthService
	RescanService *application.RescanService
	StatusServer  *status.Server
	Watcher       *watcher.Watcher
	Metrics       *metrics.Collector
}

// New creates and initializes a new application.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, inputs []string) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
		Inputs: inputs,
	}

	// Bootstrap and load the directive files
	if err := config.EnsureDirectives(cfg.Directives.Dir); err != nil {
		return nil, fmt.Errorf("bootstrapping directives: %w", err)
	}

	options, err := config.LoadOptions(cfg.Directives.Dir)
	if err != nil {
		return nil, fmt.Errorf("loading directives: %w", err)
	}
	app.Options = options

	// Create the output directory
	if err := os.MkdirAll(cfg.Output.Dir, 0750); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	// Initialize metrics
	if cfg.Metrics.Enabled {
		app.Metrics = metrics.NewCollector("quadra")
	}

	var metricsCollector output.MetricsCollector
	if app.Metrics != nil {
		metricsCollector = app.Metrics
	} else {
		metricsCollector = &output.NoOpMetrics{}
	}

	// Initialize remote sources
	dispatcher, err := initRemote(ctx, cfg.Remote, metricsCollector)
	if err != nil {
		return nil, fmt.Errorf("initializing remote sources: %w", err)
	}

	// Initialize application services
	imagingCodec := codec.NewImagingCodec()
	eligibility := application.NewEligibilityChecker(dispatcher, logger)
	resolver := application.NewContentTypeResolver(dispatcher, logger)
	acquirer := application.NewAcquirer(imagingCodec, dispatcher, eligibility, metricsCollector, logger)
	enumerator := application.NewEnumerator(eligibility, metricsCollector, logger, cfg.Output.Dir, options)
	splitter := application.NewSplitter(acquirer, resolver, imagingCodec, metricsCollector, logger, cfg.Output.Dir, options)
	app.Pipeline = application.NewPipeline(enumerator, splitter, logger)

	// Initialize health service
	app.HealthService = application.NewHealthService(cfg.Output.Dir, options)

	// Initialize rescan service if an interval is configured
	if cfg.Rescan.Enabled() {
		app.RescanService = application.NewRescanService(app.Pipeline, inputs, cfg.Rescan.Interval, logger)
	}

	// Initialize status server if an address is configured
	if cfg.Status.Enabled() {
		app.StatusServer = status.NewServer(
			cfg.Status,
			cfg.Metrics,
			app.HealthService,
			app.Pipeline,
			app.RescanService,
			app.Metrics,
			logger,
		)
	}

	// Initialize directory watcher
	if cfg.Watch.Enabled {
		dirs := directoryInputs(inputs)
		if len(dirs) == 0 {
			logger.Warn("watch enabled but no directory inputs to watch")
		} else {
			w, err := watcher.New(
				watcher.Config{
					Paths:      dirs,
					Extensions: options.Extensions,
					Debounce:   cfg.Watch.Debounce,
				},
				app.handleFileEvent,
				metricsCollector,
				logger,
			)
			if err != nil {
				logger.Warn("failed to initialize file watcher", "error", err)
			} else {
				app.Watcher = w
			}
		}
	}

	return app, nil
}

// RunOnce executes one full split pass over the configured inputs.
func (a *App) RunOnce(ctx context.Context) (domain.RunSummary, error) {
	return a.Pipeline.Run(ctx, a.Inputs)
}

// Resident reports whether any long-running component is configured.
func (a *App) Resident() bool {
	return a.Watcher != nil || a.RescanService != nil || a.StatusServer != nil
}

// Start starts the long-running components. It blocks until the status
// server stops, or until the context is canceled when no status server is
// configured.
func (a *App) Start(ctx context.Context) error {
	if a.Watcher != nil {
		if err := a.Watcher.Start(ctx); err != nil {
			a.Logger.Warn("failed to start file watcher", "error", err)
		}
	}

	if a.RescanService != nil {
		a.RescanService.Start(ctx)
	}

	if a.StatusServer != nil {
		return a.StatusServer.Start()
	}

	<-ctx.Done()
	return nil
}

// Shutdown gracefully shuts down all components.
func (a *App) Shutdown(ctx context.Context) error {
	a.Logger.Info("shutting down application")

	// Stop watcher
	if a.Watcher != nil {
		_ = a.Watcher.Stop()
	}

	// Stop rescan scheduler
	if a.RescanService != nil {
		a.RescanService.Stop()
	}

	// Shutdown status server
	if a.StatusServer != nil {
		if err := a.StatusServer.Shutdown(ctx); err != nil {
			a.Logger.Error("status server shutdown error", "error", err)
		}
	}

	return nil
}

// handleFileEvent feeds debounced watch events into the pipeline.
func (a *App) handleFileEvent(ctx context.Context, event watcher.Event) error {
	a.Logger.Info("file event", "path", event.Path, "operation", event.Operation.String())

	if event.Operation == watcher.OpDelete {
		return nil
	}

	if _, err := a.Pipeline.SplitOne(ctx, event.Path); err != nil {
		a.Logger.Debug("watched file not processed", "path", event.Path, "error", err)
	}

	return nil
}

// directoryInputs returns the inputs that name existing directories.
func directoryInputs(inputs []string) []string {
	var dirs []string
	for _, input := range inputs {
		if info, err := os.Stat(input); err == nil && info.IsDir() {
			dirs = append(dirs, input)
		}
	}
	return dirs
}

// initRemote wires the remote sources behind a scheme dispatcher. HTTP is
// always available; S3 and Azure join when configured.
func initRemote(ctx context.Context, cfg config.RemoteConfig, metricsCollector output.MetricsCollector) (*remote.Dispatcher, error) {
	dispatcher := remote.NewDispatcher(metricsCollector)

	httpSource := remote.NewHTTPSource(remote.HTTPConfig{
		Timeout:   cfg.HTTP.Timeout,
		UserAgent: cfg.HTTP.UserAgent,
	})
	dispatcher.Register(output.SchemeHTTP, httpSource)
	dispatcher.Register(output.SchemeHTTPS, httpSource)

	if cfg.S3.Configured() {
		s3Source, err := remote.NewS3Source(ctx, remote.S3Config{
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
		})
		if err != nil {
			return nil, fmt.Errorf("initializing S3 source: %w", err)
		}
		dispatcher.Register(output.SchemeS3, s3Source)
	}

	if cfg.Azure.Configured() {
		azureSource, err := remote.NewAzureSource(remote.AzureConfig{
			AccountName:      cfg.Azure.AccountName,
			AccountKey:       cfg.Azure.AccountKey,
			ConnectionString: cfg.Azure.ConnectionString,
		})
		if err != nil {
			return nil, fmt.Errorf("initializing Azure source: %w", err)
		}
		dispatcher.Register(output.SchemeAzure, azureSource)
	}

	return dispatcher, nil
}
