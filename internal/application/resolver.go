// Package application contains the application services.
package application

import (
	"context"
	"log/slog"
	"mime"
	"net/url"
	"path/filepath"

	"github.com/imagegrid/quadra/internal/domain"
	"github.com/imagegrid/quadra/internal/ports/output"
)

// ContentTypeResolver determines the media type of an input specifier
// without trusting the acquirer's decode step.
type ContentTypeResolver struct {
	remote output.RemoteSource
	logger *slog.Logger
}

// NewContentTypeResolver creates a new content type resolver.
func NewContentTypeResolver(remote output.RemoteSource, logger *slog.Logger) *ContentTypeResolver {
	return &ContentTypeResolver{
		remote: remote,
		logger: logger,
	}
}

// Resolve returns the media type of a specifier and whether one could be
// determined. Existing local files resolve through the standard
// extension-to-MIME table; remote specifiers through a metadata probe.
// Probe failures and unrecognized specifiers yield absent, never an error.
func (r *ContentTypeResolver) Resolve(ctx context.Context, spec string) (domain.MediaType, bool) {
	switch domain.Classify(spec) {
	case domain.KindLocalFile:
		media := domain.MediaType(mime.TypeByExtension(filepath.Ext(spec)))
		if media == "" {
			return "", false
		}
		return media, true

	case domain.KindRemoteURL:
		// The stripped-query form is diagnostic only; the probe targets
		// the original specifier.
		if stripped := stripQuery(spec); stripped != spec {
			r.logger.Debug("probing remote specifier", "url", spec, "stripped", stripped)
		}

		media, err := r.remote.Probe(ctx, spec)
		if err != nil {
			r.logger.Debug("content type probe failed", "url", spec, "error", err)
			return "", false
		}
		if media == "" {
			return "", false
		}
		return media, true

	default:
		return "", false
	}
}

// stripQuery removes the query and fragment portions of a URL.
func stripQuery(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
