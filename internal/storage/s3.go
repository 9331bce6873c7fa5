package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/osse101/HatcheryOps_Go/internal/config"
	"github.com/osse101/HatcheryOps_Go/internal/domain"
)

// S3Storage stores images in an S3-compatible bucket
type S3Storage struct {
	bucket        string
	region        string
	endpoint      string
	usePathStyle  bool
	publicBaseURL string
	client        *s3.Client
	log           *slog.Logger
	disabled      bool
}

// NewS3Storage builds an S3 client from static credentials. Missing bucket or
// credentials leave the backend disabled so the server still starts; uploads
// then fail with ErrStorageUnavailable.
func NewS3Storage(ctx context.Context, cfg config.StorageConfig) (*S3Storage, error) {
	s := &S3Storage{
		bucket:        strings.TrimSpace(cfg.S3Bucket),
		region:        cfg.S3Region,
		endpoint:      strings.TrimSuffix(strings.TrimSpace(cfg.S3Endpoint), "/"),
		usePathStyle:  cfg.S3UsePathStyle,
		publicBaseURL: strings.TrimSuffix(strings.TrimSpace(cfg.S3PublicBaseURL), "/"),
		log:           slog.Default().With("component", "s3-storage"),
	}

	accessKey := strings.TrimSpace(cfg.S3AccessKeyID)
	secretKey := strings.TrimSpace(cfg.S3SecretAccessKey)
	if s.bucket == "" || accessKey == "" || secretKey == "" {
		s.log.Warn("S3_BUCKET or credentials are not set; image uploads are disabled")
		s.disabled = true
		return s, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	s.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = s.usePathStyle
		if s.endpoint != "" {
			o.BaseEndpoint = aws.String(s.endpoint)
		}
	})
	return s, nil
}

func (s *S3Storage) ensureEnabled() error {
	if s.disabled {
		return domain.ErrStorageUnavailable
	}
	return nil
}

// Put uploads the object with PutObject
func (s *S3Storage) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	if err := s.ensureEnabled(); err != nil {
		return "", err
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("%w: put %s: %v", domain.ErrStorageUnavailable, key, err)
	}
	s.log.Debug("Stored object", "bucket", s.bucket, "key", key, "bytes", size)
	return s.URL(key), nil
}

// Delete removes the object. S3 reports success for missing keys.
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	if err := s.ensureEnabled(); err != nil {
		return err
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("%w: delete %s: %v", domain.ErrStorageUnavailable, key, err)
	}
	return nil
}

// URL prefers the configured public base URL, then the custom endpoint, then
// the AWS virtual-hosted form.
func (s *S3Storage) URL(key string) string {
	switch {
	case s.publicBaseURL != "":
		return s.publicBaseURL + "/" + key
	case s.endpoint != "" && s.usePathStyle:
		return s.endpoint + "/" + s.bucket + "/" + key
	case s.endpoint != "":
		scheme, host, found := strings.Cut(s.endpoint, "://")
		if !found {
			return s.endpoint + "/" + s.bucket + "/" + key
		}
		return scheme + "://" + s.bucket + "." + host + "/" + key
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	}
}

// Health performs a HeadBucket request
func (s *S3Storage) Health(ctx context.Context) error {
	if s.disabled {
		return errors.New("s3 storage is not configured")
	}
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	return err
}
