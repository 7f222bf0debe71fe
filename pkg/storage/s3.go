package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/dmitrymomot/brandkit/pkg/filescan"
)

// S3Client is the subset of the AWS S3 API the backend uses. Narrowed to an
// interface so tests can substitute a mock.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Config configures S3 storage.
type S3Config struct {
	Bucket         string `env:"S3_BUCKET"`
	Region         string `env:"S3_REGION"`
	AccessKeyID    string `env:"S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"S3_SECRET_KEY"`
	Endpoint       string `env:"S3_ENDPOINT"`         // optional, for S3-compatible services
	BaseURL        string `env:"S3_BASE_URL"`         // public URL base for serving files
	ForcePathStyle bool   `env:"S3_FORCE_PATH_STYLE"` // required by MinIO
}

// S3 stores objects in an S3 bucket. Safe for concurrent use.
type S3 struct {
	client  S3Client
	bucket  string
	baseURL string
}

// S3Option overrides parts of S3 construction.
type S3Option func(*S3)

// WithS3Client injects a pre-configured client, bypassing AWS config
// loading. Used by tests.
func WithS3Client(client S3Client) S3Option {
	return func(s *S3) { s.client = client }
}

// NewS3 creates S3-backed storage.
func NewS3(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, ErrInvalidConfig
	}

	s := &S3{bucket: cfg.Bucket}
	for _, opt := range opts {
		opt(s)
	}

	if s.client == nil {
		awsOpts := []func(*awsconfig.LoadOptions) error{
			awsconfig.WithRegion(cfg.Region),
		}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOpts = append(awsOpts, awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
			))
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsOpts...)
		if err != nil {
			return nil, errors.Join(ErrConfigLoadFailed, err)
		}

		s.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			o.UsePathStyle = cfg.ForcePathStyle
		})
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		if cfg.Endpoint != "" {
			baseURL = fmt.Sprintf("%s/%s", strings.TrimSuffix(cfg.Endpoint, "/"), cfg.Bucket)
		} else {
			baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	s.baseURL = baseURL

	return s, nil
}

// Save uploads the file content to the bucket under path.
func (s *S3) Save(ctx context.Context, f filescan.FileHandle, path string) (*Object, error) {
	if f == nil {
		return nil, ErrNilFile
	}

	key := normalizeKey(path)
	if key == "" {
		return nil, fmt.Errorf("%w: empty key", ErrInvalidPath)
	}

	content, checksum, err := readAll(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailed, err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(f.DeclaredType()),
	})
	if err != nil {
		return nil, classifyS3Error(err)
	}

	return &Object{
		Filename: SanitizeFilename(f.Name()),
		Path:     key,
		Size:     int64(len(content)),
		MIMEType: f.DeclaredType(),
		Checksum: checksum,
	}, nil
}

// Delete removes an object from the bucket. Deleting a missing key is a
// no-op, matching S3 semantics.
func (s *S3) Delete(ctx context.Context, path string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(normalizeKey(path)),
	})
	if err != nil {
		return classifyS3Error(err)
	}
	return nil
}

// Exists reports whether an object is present at path.
func (s *S3) Exists(ctx context.Context, path string) bool {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(normalizeKey(path)),
	})
	return err == nil
}

// URL returns the public URL for an object.
func (s *S3) URL(path string) string {
	return s.baseURL + normalizeKey(path)
}

func normalizeKey(path string) string {
	return strings.TrimPrefix(strings.TrimSpace(path), "/")
}

// classifyS3Error maps AWS API errors onto package sentinels so callers can
// branch with errors.Is instead of inspecting SDK types.
func classifyS3Error(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			return errors.Join(ErrFileNotFound, err)
		case "AccessDenied":
			return errors.Join(ErrAccessDenied, err)
		}
	}
	return errors.Join(ErrWriteFailed, err)
}
