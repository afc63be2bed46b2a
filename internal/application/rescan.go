package application

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrRateLimited is returned when the rescan API rate limit is exceeded.
var ErrRateLimited = errors.New("rate limit exceeded")

// RescanResult contains the result of a rescan operation.
type RescanResult struct {
	Qualified        int       `json:"qualified"`
	Split            int       `json:"split"`
	Skipped          int       `json:"skipped"`
	Failed           int       `json:"failed"`
	QuadrantsWritten int       `json:"quadrants_written"`
	ScannedAt        time.Time `json:"scanned_at"`
	NextScheduledAt  time.Time `json:"next_scheduled_at,omitempty"`
}

// RescanService re-runs the pipeline over the configured inputs on a
// fixed interval, picking up files that appeared between watch events.
type RescanService struct {
	pipeline *Pipeline
	inputs   []string
	interval time.Duration
	logger   *slog.Logger

	// Lifecycle management
	stopCh chan struct{}
	wg     sync.WaitGroup

	// Rate limiting for API triggers
	lastAPIRescan time.Time
	apiMutex      sync.Mutex

	// Prevents concurrent rescan operations
	rescanOpMutex sync.Mutex

	// Track next scheduled rescan for reporting
	nextRescan time.Time
	rescanMu   sync.RWMutex
}

// NewRescanService creates a new rescan service.
func NewRescanService(pipeline *Pipeline, inputs []string, interval time.Duration, logger *slog.Logger) *RescanService {
	return &RescanService{
		pipeline: pipeline,
		inputs:   inputs,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
		// Initialize to past time to allow immediate first API call
		lastAPIRescan: time.Now().Add(-31 * time.Second),
	}
}

// Start begins the periodic rescan scheduler.
func (s *RescanService) Start(ctx context.Context) {
	s.logger.Info("starting rescan service", "interval", s.interval)

	s.wg.Add(1)
	go s.run(ctx)
}

// run is the main rescan loop.
func (s *RescanService) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Set initial next rescan time
	s.setNextRescan(time.Now().Add(s.interval))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("rescan service stopped: context canceled")
			return
		case <-s.stopCh:
			s.logger.Info("rescan service stopped")
			return
		case <-ticker.C:
			s.logger.Debug("scheduled rescan triggered")
			s.doRescan(ctx)
			s.setNextRescan(time.Now().Add(s.interval))
		}
	}
}

// Stop gracefully stops the rescan service.
func (s *RescanService) Stop() {
	s.logger.Info("stopping rescan service")
	close(s.stopCh)
	s.wg.Wait()
}

// TriggerRescan manually triggers a rescan with rate limiting.
// Returns ErrRateLimited if called more than 2 times per minute.
func (s *RescanService) TriggerRescan(ctx context.Context) (RescanResult, error) {
	s.apiMutex.Lock()
	defer s.apiMutex.Unlock()

	// Rate limit: 30 seconds cooldown (allows ~2 requests per minute)
	if time.Since(s.lastAPIRescan) < 30*time.Second {
		return RescanResult{}, ErrRateLimited
	}
	s.lastAPIRescan = time.Now()

	return s.doRescanWithResult(ctx)
}

// doRescan performs the rescan without returning detailed results.
func (s *RescanService) doRescan(ctx context.Context) {
	// Prevent concurrent rescan operations
	s.rescanOpMutex.Lock()
	defer s.rescanOpMutex.Unlock()

	summary, err := s.pipeline.Run(ctx, s.inputs)
	if err != nil {
		s.logger.Error("rescan failed", "error", err)
		return
	}
	s.logger.Info("rescan completed",
		"qualified", summary.Qualified,
		"split", summary.Split,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
	)
}

// doRescanWithResult performs the rescan and returns detailed results.
func (s *RescanService) doRescanWithResult(ctx context.Context) (RescanResult, error) {
	// Prevent concurrent rescan operations
	s.rescanOpMutex.Lock()
	defer s.rescanOpMutex.Unlock()

	summary, err := s.pipeline.Run(ctx, s.inputs)
	if err != nil {
		return RescanResult{}, err
	}

	return RescanResult{
		Qualified:        summary.Qualified,
		Split:            summary.Split,
		Skipped:          summary.Skipped,
		Failed:           summary.Failed,
		QuadrantsWritten: summary.QuadrantsWritten,
		ScannedAt:        time.Now(),
		NextScheduledAt:  s.getNextRescan(),
	}, nil
}

// setNextRescan updates the next scheduled rescan time.
func (s *RescanService) setNextRescan(t time.Time) {
	s.rescanMu.Lock()
	defer s.rescanMu.Unlock()
	s.nextRescan = t
}

// getNextRescan returns the next scheduled rescan time.
func (s *RescanService) getNextRescan() time.Time {
	s.rescanMu.RLock()
	defer s.rescanMu.RUnlock()
	return s.nextRescan
}

// Interval returns the rescan interval.
func (s *RescanService) Interval() time.Duration {
	return s.interval
}
