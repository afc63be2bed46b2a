// Package output defines the secondary/driven ports of the application.
package output

import (
	"context"
	"io"

	"github.com/imagegrid/quadra/internal/domain"
)

// RemoteSource defines the secondary port for remote content access.
type RemoteSource interface {
	// Probe retrieves only the metadata of a remote specifier and returns
	// its advertised media type. Redirects are followed.
	Probe(ctx context.Context, rawURL string) (domain.MediaType, error)

	// Fetch opens a streamed reader over the remote content. The caller
	// closes the reader.
	Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error)
}

// Scheme represents a remote source backend.
type Scheme string

// Supported remote schemes.
const (
	SchemeHTTP  Scheme = "http"
	SchemeHTTPS Scheme = "https"
	SchemeS3    Scheme = "s3"
	SchemeAzure Scheme = "az"
)
