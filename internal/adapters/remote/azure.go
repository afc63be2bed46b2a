package remote

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	"github.com/imagegrid/quadra/internal/domain"
)

// AzureSource implements RemoteSource for az://container/blob specifiers.
type AzureSource struct {
	client *azblob.Client
}

// AzureConfig holds Azure Blob Storage configuration.
type AzureConfig struct {
	AccountName      string
	AccountKey       string
	ConnectionString string
}

// NewAzureSource creates a new Azure Blob source adapter. A connection
// string takes precedence over account name and key.
func NewAzureSource(cfg AzureConfig) (*AzureSource, error) {
	if cfg.ConnectionString != "" {
		client, err := azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
		if err != nil {
			return nil, err
		}
		return &AzureSource{client: client}, nil
	}

	serviceURL := "https://" + cfg.AccountName + ".blob.core.windows.net/"
	cred, err := azblob.NewSharedKeyCredential(cfg.AccountName, cfg.AccountKey)
	if err != nil {
		return nil, err
	}
	client, err := azblob.NewClientWithSharedKeyCredential(serviceURL, cred, nil)
	if err != nil {
		return nil, err
	}

	return &AzureSource{client: client}, nil
}

// Probe downloads a single byte of the blob and returns the content type
// from the response properties.
func (s *AzureSource) Probe(ctx context.Context, rawURL string) (domain.MediaType, error) {
	container, blobName, err := parseAzureURL(rawURL)
	if err != nil {
		return "", &domain.ProbeError{URL: rawURL, Err: err}
	}

	resp, err := s.client.DownloadStream(ctx, container, blobName, &azblob.DownloadStreamOptions{
		Range: azblob.HTTPRange{Offset: 0, Count: 1},
	})
	if err != nil {
		return "", &domain.ProbeError{URL: rawURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	var media domain.MediaType
	if resp.ContentType != nil {
		media = domain.MediaType(*resp.ContentType)
	}

	return media, nil
}

// Fetch streams the blob body.
func (s *AzureSource) Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	container, blobName, err := parseAzureURL(rawURL)
	if err != nil {
		return nil, &domain.FetchError{URL: rawURL, Err: err}
	}

	resp, err := s.client.DownloadStream(ctx, container, blobName, nil)
	if err != nil {
		return nil, &domain.FetchError{URL: rawURL, Err: err}
	}

	return resp.Body, nil
}

// parseAzureURL splits az://container/blob/parts into container and blob.
func parseAzureURL(rawURL string) (container, blobName string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", err
	}

	container = u.Host
	blobName = strings.TrimPrefix(u.Path, "/")
	if container == "" || blobName == "" {
		return "", "", fmt.Errorf("azure url %q needs container and blob: %w", rawURL, domain.ErrInvalidInput)
	}

	return container, blobName, nil
}
