package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/imagegrid/quadra/internal/domain"
)

// Pipeline orchestrates enumeration and splitting for full passes and for
// single watch-event files, and accumulates the cumulative run statistics.
// Processing is sequential: one candidate is acquired and split to
// completion before the next begins.
type Pipeline struct {
	enumerator *Enumerator
	splitter   *Splitter
	logger     *slog.Logger

	statsMu sync.RWMutex
	stats   domain.RunStats
}

// NewPipeline creates a new pipeline.
func NewPipeline(enumerator *Enumerator, splitter *Splitter, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		enumerator: enumerator,
		splitter:   splitter,
		logger:     logger,
	}
}

// Run implements input.Runner. The qualified count is the primary
// progress signal; per-candidate failures never abort the pass and only
// context cancellation returns an error.
func (p *Pipeline) Run(ctx context.Context, inputs []string) (domain.RunSummary, error) {
	start := time.Now()
	summary := domain.RunSummary{Inputs: len(inputs)}

	candidates, err := p.enumerator.Enumerate(ctx, inputs)
	if err != nil {
		return summary, err
	}

	summary.Qualified = len(candidates)
	p.logger.Info("candidates qualified", "count", summary.Qualified)

	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			summary.Duration = time.Since(start)
			return summary, err
		}

		result := p.splitter.Split(ctx, candidate.Spec)
		summary.Add(result)
		p.logResult(result)
	}

	summary.Duration = time.Since(start)
	p.recordRun(summary)

	p.logger.Info("run complete",
		"qualified", summary.Qualified,
		"split", summary.Split,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"quadrants_written", summary.QuadrantsWritten,
		"duration", summary.Duration,
	)

	return summary, nil
}

// SplitOne implements input.Runner for a single local file, applying the
// same qualification rules as a full pass. Files inside the output
// directory are rejected to keep produced quadrants from becoming input.
func (p *Pipeline) SplitOne(ctx context.Context, path string) (domain.SplitResult, error) {
	if p.enumerator.InOutputDir(path) {
		return domain.SplitResult{}, fmt.Errorf("path %q is inside the output directory: %w", path, domain.ErrInvalidInput)
	}
	if domain.Classify(path) != domain.KindLocalFile {
		return domain.SplitResult{}, fmt.Errorf("path %q is not a local file: %w", path, domain.ErrInvalidInput)
	}
	if !p.enumerator.QualifiesFile(path) {
		return domain.SplitResult{}, fmt.Errorf("path %q has an unsupported extension: %w", path, domain.ErrInvalidInput)
	}

	result := p.splitter.Split(ctx, path)
	p.recordResult(result)
	p.logResult(result)

	return result, nil
}

// Stats implements input.StatsProvider.
func (p *Pipeline) Stats(_ context.Context) domain.RunStats {
	p.statsMu.RLock()
	defer p.statsMu.RUnlock()
	return p.stats
}

func (p *Pipeline) recordRun(summary domain.RunSummary) {
	p.statsMu.Lock()
	defer p.statsMu.Unlock()
	p.stats.Merge(summary, time.Now())
}

func (p *Pipeline) recordResult(result domain.SplitResult) {
	p.statsMu.Lock()
	defer p.statsMu.Unlock()
	p.stats.Record(result)
}

func (p *Pipeline) logResult(result domain.SplitResult) {
	switch result.Outcome {
	case domain.SplitOK:
		p.logger.Info("split complete",
			"spec", result.Spec,
			"format", result.Format,
			"written", result.Written,
			"existed", result.AlreadyExisted,
		)
	case domain.SplitSkipped:
		p.logger.Debug("candidate skipped", "spec", result.Spec, "reason", string(result.Reason))
	case domain.SplitFailed:
		p.logger.Debug("candidate failed", "spec", result.Spec, "error", result.Err)
	}
}
