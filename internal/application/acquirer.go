package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/imagegrid/quadra/internal/domain"
	"github.com/imagegrid/quadra/internal/ports/output"
)

// Acquirer obtains decoded image pixels for a candidate, trying a local
// decode first and falling back to a remote fetch.
type Acquirer struct {
	codec       output.ImageCodec
	remote      output.RemoteSource
	eligibility *EligibilityChecker
	metrics     output.MetricsCollector
	logger      *slog.Logger
}

// NewAcquirer creates a new image acquirer.
func NewAcquirer(
	codec output.ImageCodec,
	remote output.RemoteSource,
	eligibility *EligibilityChecker,
	metrics output.MetricsCollector,
	logger *slog.Logger,
) *Acquirer {
	return &Acquirer{
		codec:       codec,
		remote:      remote,
		eligibility: eligibility,
		metrics:     metrics,
		logger:      logger,
	}
}

// Acquire runs the two-attempt acquisition, short-circuiting on the first
// success. The local decode is attempted for every specifier; the remote
// fallback only for recognized URLs that pass the eligibility check with
// the caller-supplied extension set. Both attempts failing is an expected
// outcome, reported through the Acquisition value and never as an error.
func (a *Acquirer) Acquire(ctx context.Context, spec string, set domain.ExtensionSet) domain.Acquisition {
	start := time.Now()

	img, err := a.codec.DecodeFile(spec)
	if err == nil {
		a.metrics.ObserveAcquireDuration(string(domain.OriginLocal), time.Since(start))
		return domain.Acquisition{Image: img, Origin: domain.OriginLocal}
	}

	acq := domain.Acquisition{
		Origin:   domain.OriginNone,
		LocalErr: &domain.DecodeError{Source: spec, Err: err},
	}

	if domain.Classify(spec) != domain.KindRemoteURL {
		return acq
	}

	if !a.eligibility.Eligible(ctx, spec, set) {
		acq.RemoteErr = domain.ErrNotEligible
		return acq
	}

	body, err := a.remote.Fetch(ctx, spec)
	if err != nil {
		acq.RemoteErr = err
		return acq
	}
	defer func() { _ = body.Close() }()

	img, err = a.codec.Decode(body)
	if err != nil {
		acq.RemoteErr = &domain.DecodeError{Source: spec, Err: err}
		return acq
	}

	a.metrics.ObserveAcquireDuration(string(domain.OriginRemote), time.Since(start))
	a.logger.Debug("acquired remotely", "spec", spec)

	return domain.Acquisition{Image: img, Origin: domain.OriginRemote, LocalErr: acq.LocalErr}
}
