package application

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/imagegrid/quadra/internal/domain"
	"github.com/imagegrid/quadra/internal/ports/output"
)

// Splitter is the terminal pipeline stage: it validates geometry, resolves
// the output format and persists the four quadrant files.
type Splitter struct {
	acquirer  *Acquirer
	resolver  *ContentTypeResolver
	codec     output.ImageCodec
	metrics   output.MetricsCollector
	logger    *slog.Logger
	outputDir string
	options   domain.Options
}

// NewSplitter creates a new quadrant splitter.
func NewSplitter(
	acquirer *Acquirer,
	resolver *ContentTypeResolver,
	codec output.ImageCodec,
	metrics output.MetricsCollector,
	logger *slog.Logger,
	outputDir string,
	options domain.Options,
) *Splitter {
	return &Splitter{
		acquirer:  acquirer,
		resolver:  resolver,
		codec:     codec,
		metrics:   metrics,
		logger:    logger,
		outputDir: outputDir,
		options:   options,
	}
}

// Split processes one candidate through the skip ladder: acquisition,
// geometry, format resolution, then the four quadrant writes in fixed
// order. Every failure before the first write demotes the candidate to a
// skip; a write failure marks the whole file failed but keeps the
// quadrants already on disk.
func (s *Splitter) Split(ctx context.Context, spec string) domain.SplitResult {
	start := time.Now()
	defer func() { s.metrics.ObserveSplitDuration(time.Since(start)) }()

	result := domain.SplitResult{Spec: spec}

	acq := s.acquirer.Acquire(ctx, spec, s.options.Extensions)
	if !acq.Acquired() {
		s.logger.Debug("skipping candidate: not acquired", "spec", spec, "error", acq.Cause())
		return s.finish(skipped(result, domain.SkipAcquisition))
	}

	bounds := acq.Image.Bounds()
	rects, err := domain.QuadrantRects(bounds)
	if err != nil {
		s.logger.Debug("skipping candidate: odd dimensions",
			"spec", spec, "width", bounds.Dx(), "height", bounds.Dy())
		return s.finish(skipped(result, domain.SkipGeometry))
	}

	format, ok := s.resolveFormat(ctx, spec)
	if !ok {
		s.logger.Debug("skipping candidate: unresolved output format",
			"spec", spec, "preference", s.options.Format.String())
		return s.finish(skipped(result, domain.SkipFormat))
	}
	result.Format = format

	base := domain.BaseName(spec)
	for i, quadrant := range domain.Quadrants {
		target := filepath.Join(s.outputDir, fmt.Sprintf("%s_%d.%s", base, quadrant.Index(), format))

		written, err := s.writeQuadrant(acq.Image, rects[i], quadrant, target, format)
		if err != nil {
			s.logger.Debug("aborting candidate: quadrant write failed",
				"spec", spec, "quadrant", quadrant.String(), "error", err)
			result.Outcome = domain.SplitFailed
			result.Err = err
			return s.finish(result)
		}

		if written {
			result.Written++
		} else {
			s.logger.Debug("quadrant exists, skipping", "target", target)
			result.AlreadyExisted++
		}
	}

	result.Outcome = domain.SplitOK
	return s.finish(result)
}

// resolveFormat determines the extension token used for all four outputs.
// The sentinel preference re-resolves the original specifier's content
// type and takes its subtype; a literal preference is used exactly as
// configured. Either way the token must name an encodable format.
func (s *Splitter) resolveFormat(ctx context.Context, spec string) (string, bool) {
	token := s.options.Format.String()
	if s.options.Format.IsDefault() {
		media, ok := s.resolver.Resolve(ctx, spec)
		if !ok {
			return "", false
		}
		token = extensionForSubtype(media.Suffix())
	}

	if token == "" || !s.codec.CanEncode(token) {
		return "", false
	}
	return token, true
}

// extensionForSubtype maps a media subtype to its conventional file
// extension: "jpeg" becomes "jpg", everything else passes through.
func extensionForSubtype(subtype string) string {
	if subtype == "jpeg" {
		return "jpg"
	}
	return subtype
}

// writeQuadrant crops and encodes one region unless the target already
// exists. On an encode or close failure the in-flight file is removed;
// files from earlier quadrants are left in place.
func (s *Splitter) writeQuadrant(img image.Image, region image.Rectangle, quadrant domain.Quadrant, target, format string) (bool, error) {
	if _, err := os.Stat(target); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, &domain.WriteError{Path: target, Quadrant: quadrant, Err: err}
	}

	f, err := os.Create(target) //#nosec G304 -- target is derived from the configured output dir
	if err != nil {
		return false, &domain.WriteError{Path: target, Quadrant: quadrant, Err: err}
	}

	if err := s.codec.Encode(f, s.codec.Crop(img, region), format); err != nil {
		_ = f.Close()
		_ = os.Remove(target)
		return false, &domain.WriteError{Path: target, Quadrant: quadrant, Err: err}
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(target)
		return false, &domain.WriteError{Path: target, Quadrant: quadrant, Err: err}
	}

	return true, nil
}

func (s *Splitter) finish(result domain.SplitResult) domain.SplitResult {
	s.metrics.IncSplits(string(result.Outcome))
	s.metrics.AddQuadrants(output.QuadrantWritten, result.Written)
	s.metrics.AddQuadrants(output.QuadrantExisted, result.AlreadyExisted)
	return result
}

func skipped(result domain.SplitResult, reason domain.SkipReason) domain.SplitResult {
	result.Outcome = domain.SplitSkipped
	result.Reason = reason
	return result
}
