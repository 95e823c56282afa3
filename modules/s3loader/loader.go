package s3loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/goliatone/go-l10n"
)

// Scheme is the location scheme served by Loader, e.g.
// "s3://bucket/i18n/messages.properties".
const Scheme = "s3"

var _ l10n.ResourceLoader = (*Loader)(nil)

// Client is the subset of the S3 API used by Loader.
type Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Loader opens resource bundles stored in S3 or an S3 compatible service.
type Loader struct {
	client Client
	bucket string
}

// Option configures a Loader.
type Option func(*Loader)

// WithBucket sets the bucket used for locations that omit one, such as
// "s3:i18n/messages.properties".
func WithBucket(bucket string) Option {
	return func(l *Loader) {
		l.bucket = bucket
	}
}

func New(client Client, opts ...Option) *Loader {
	l := &Loader{client: client}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Config holds the settings used to build an S3 client.
type Config struct {
	Bucket         string
	Region         string
	AccessKeyID    string
	SecretKey      string
	Endpoint       string // For S3-compatible services like MinIO
	ForcePathStyle bool
}

// NewFromConfig builds a Loader backed by a real S3 client. Credentials fall
// back to the default AWS chain when no static keys are given.
func NewFromConfig(ctx context.Context, cfg Config) (*Loader, error) {
	if cfg.Region == "" {
		return nil, fmt.Errorf("%w: s3 region is required", l10n.ErrInvalidArgument)
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, "")))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("s3loader: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyle
	})
	return New(client, WithBucket(cfg.Bucket)), nil
}

func (l *Loader) Supports(location string) bool {
	scheme, _, err := l10n.SplitLocation(location)
	return err == nil && strings.EqualFold(scheme, Scheme)
}

// Open fetches the object addressed by location. Missing objects are
// reported as fs.ErrNotExist so fallback continues with the next candidate.
func (l *Loader) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	bucket, key, err := l.objectFor(location)
	if err != nil {
		return nil, err
	}

	out, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, classifyError(location, err)
	}
	return out.Body, nil
}

func (l *Loader) objectFor(location string) (bucket, key string, err error) {
	if !l.Supports(location) {
		return "", "", fmt.Errorf("%w: %s", l10n.ErrUnsupportedLocation, location)
	}
	_, p, err := l10n.SplitLocation(location)
	if err != nil {
		return "", "", err
	}

	if rest, ok := strings.CutPrefix(p, "//"); ok {
		bucket, key, _ = strings.Cut(rest, "/")
	} else {
		bucket, key = l.bucket, strings.TrimPrefix(p, "/")
	}

	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %s needs a bucket and a key", l10n.ErrInvalidLocation, location)
	}
	return bucket, key, nil
}

func classifyError(location string, err error) error {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return fmt.Errorf("%s: %w", location, fs.ErrNotExist)
	}

	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return fmt.Errorf("%s: %w", location, fs.ErrNotExist)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%s: %w", location, fs.ErrNotExist)
		default:
			return fmt.Errorf("s3loader: get %s (code: %s): %w", location, apiErr.ErrorCode(), err)
		}
	}
	return fmt.Errorf("s3loader: get %s: %w", location, err)
}
