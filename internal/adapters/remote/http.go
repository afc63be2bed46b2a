// Package remote provides the URL scheme adapters for probing and fetching
// remote image content.
package remote

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/imagegrid/quadra/internal/domain"
)

// HTTPSource implements RemoteSource for http and https specifiers.
type HTTPSource struct {
	client    *http.Client
	userAgent string
}

// HTTPConfig holds HTTP source configuration.
type HTTPConfig struct {
	Timeout   time.Duration
	UserAgent string
}

// NewHTTPSource creates a new HTTP source adapter.
func NewHTTPSource(cfg HTTPConfig) *HTTPSource {
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Minute
	}

	return &HTTPSource{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		userAgent: cfg.UserAgent,
	}
}

// Probe issues a HEAD request against the specifier and returns the
// advertised content type. Redirects are followed; any 2xx status is a
// success, everything else is a ProbeError.
func (s *HTTPSource) Probe(ctx context.Context, rawURL string) (domain.MediaType, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return "", &domain.ProbeError{URL: rawURL, Err: err}
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &domain.ProbeError{URL: rawURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp.StatusCode) {
		return "", &domain.ProbeError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	return domain.MediaType(resp.Header.Get("Content-Type")), nil
}

// Fetch issues a GET request and returns the streamed response body.
func (s *HTTPSource) Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &domain.FetchError{URL: rawURL, Err: err}
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &domain.FetchError{URL: rawURL, Err: err}
	}

	if !success(resp.StatusCode) {
		_ = resp.Body.Close()
		return nil, &domain.FetchError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	return resp.Body, nil
}

func (s *HTTPSource) setHeaders(req *http.Request) {
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}
}

func success(status int) bool {
	return status >= 200 && status < 300
}
