package remote

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/imagegrid/quadra/internal/domain"
)

// S3Source implements RemoteSource for s3://bucket/key specifiers.
type S3Source struct {
	client *s3.Client
}

// S3Config holds S3 source configuration.
type S3Config struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// NewS3Source creates a new S3 source adapter. Explicit credentials take
// precedence; otherwise the default AWS credential chain applies.
func NewS3Source(ctx context.Context, cfg S3Config) (*S3Source, error) {
	var opts []func(*config.LoadOptions) error

	opts = append(opts, config.WithRegion(cfg.Region))

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	var clientOpts []func(*s3.Options)
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	return &S3Source{client: s3.NewFromConfig(awsCfg, clientOpts...)}, nil
}

// Probe issues a HeadObject request and returns the object's content type.
func (s *S3Source) Probe(ctx context.Context, rawURL string) (domain.MediaType, error) {
	bucket, key, err := parseS3URL(rawURL)
	if err != nil {
		return "", &domain.ProbeError{URL: rawURL, Err: err}
	}

	resp, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", &domain.ProbeError{URL: rawURL, Err: err}
	}

	return domain.MediaType(aws.ToString(resp.ContentType)), nil
}

// Fetch streams the object body.
func (s *S3Source) Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	bucket, key, err := parseS3URL(rawURL)
	if err != nil {
		return nil, &domain.FetchError{URL: rawURL, Err: err}
	}

	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, &domain.FetchError{URL: rawURL, Err: err}
	}

	return resp.Body, nil
}

// parseS3URL splits s3://bucket/key/parts into bucket and key.
func parseS3URL(rawURL string) (bucket, key string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", err
	}

	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 url %q needs bucket and key: %w", rawURL, domain.ErrInvalidInput)
	}

	return bucket, key, nil
}
