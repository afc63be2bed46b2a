// Package status provides the HTTP status server and handlers.
package status

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/imagegrid/quadra/internal/adapters/metrics"
	"github.com/imagegrid/quadra/internal/application"
	"github.com/imagegrid/quadra/internal/config"
	"github.com/imagegrid/quadra/internal/ports/input"
)

// Server wraps the HTTP server with status handlers.
type Server struct {
	server     *http.Server
	router     *mux.Router
	health     input.HealthChecker
	stats      input.StatsProvider
	rescan     *application.RescanService
	collector  *metrics.Collector
	logger     *slog.Logger
	config     config.StatusConfig
	metricsCfg config.MetricsConfig
}

// NewServer creates a new status server. The rescan service and the
// metrics collector are optional; their routes are omitted when absent.
func NewServer(
	cfg config.StatusConfig,
	metricsCfg config.MetricsConfig,
	health input.HealthChecker,
	stats input.StatsProvider,
	rescan *application.RescanService,
	collector *metrics.Collector,
	logger *slog.Logger,
) *Server {
	s := &Server{
		health:     health,
		stats:      stats,
		rescan:     rescan,
		collector:  collector,
		logger:     logger,
		config:     cfg,
		metricsCfg: metricsCfg,
	}

	s.router = s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *mux.Router {
	r := mux.NewRouter()

	// Add middleware
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)

	// Add CORS middleware if configured
	if s.config.CORS.Enabled() {
		r.Use(s.corsMiddleware)
	}

	// Add request metrics if a collector is wired
	if s.collector != nil {
		r.Use(s.collector.Middleware)
	}

	// Health endpoints
	r.HandleFunc("/healthz", s.handleLiveness).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/health/ready", s.handleReadiness).Methods(http.MethodGet)

	// Processing statistics
	r.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)

	// Rescan trigger (only if rescan service is configured)
	if s.rescan != nil {
		r.HandleFunc("/rescan", s.handleRescan).Methods(http.MethodPost)
	}

	// Prometheus metrics
	if s.collector != nil && s.metricsCfg.Enabled {
		r.Handle(s.metricsCfg.Path, metrics.Handler()).Methods(http.MethodGet)
	}

	// OpenAPI spec
	r.HandleFunc("/openapi.json", s.handleOpenAPI).Methods(http.MethodGet)

	// Status page
	r.HandleFunc("/", s.handleFrontend).Methods(http.MethodGet)

	return r
}

// Router returns the mux router.
func (s *Server) Router() *mux.Router {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting status server", "address", s.config.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down status server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs incoming requests.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap response writer to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.statusCode,
			"duration", time.Since(start),
			"remote_addr", r.RemoteAddr,
		)
	})
}

// recoveryMiddleware recovers from panics.
func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.logger.Error("panic recovered", "error", err, "path", r.URL.Path)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
