package remote

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/imagegrid/quadra/internal/domain"
	"github.com/imagegrid/quadra/internal/ports/output"
)

// Dispatcher routes probe and fetch calls to the source registered for the
// specifier's URL scheme. It implements RemoteSource itself so callers stay
// scheme-agnostic.
type Dispatcher struct {
	sources map[output.Scheme]output.RemoteSource
	metrics output.MetricsCollector
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(metrics output.MetricsCollector) *Dispatcher {
	if metrics == nil {
		metrics = &output.NoOpMetrics{}
	}

	return &Dispatcher{
		sources: make(map[output.Scheme]output.RemoteSource),
		metrics: metrics,
	}
}

// Register binds a source to a scheme. Registering the same scheme twice
// replaces the earlier source.
func (d *Dispatcher) Register(scheme output.Scheme, src output.RemoteSource) {
	d.sources[scheme] = src
}

// Probe implements RemoteSource.
func (d *Dispatcher) Probe(ctx context.Context, rawURL string) (domain.MediaType, error) {
	scheme, src, err := d.source(rawURL)
	if err != nil {
		d.metrics.IncProbes(scheme, false)
		return "", err
	}

	media, err := src.Probe(ctx, rawURL)
	d.metrics.IncProbes(scheme, err == nil)
	return media, err
}

// Fetch implements RemoteSource.
func (d *Dispatcher) Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	scheme, src, err := d.source(rawURL)
	if err != nil {
		d.metrics.IncFetches(scheme, false)
		return nil, err
	}

	body, err := src.Fetch(ctx, rawURL)
	d.metrics.IncFetches(scheme, err == nil)
	return body, err
}

func (d *Dispatcher) source(rawURL string) (string, output.RemoteSource, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", nil, fmt.Errorf("parsing %q: %w", rawURL, err)
	}

	scheme := strings.ToLower(u.Scheme)
	src, ok := d.sources[output.Scheme(scheme)]
	if !ok {
		return scheme, nil, fmt.Errorf("%q: %w", scheme, domain.ErrUnsupportedScheme)
	}

	return scheme, src, nil
}
