package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	catalogapp "github.com/freshmart/backend/internal/application/catalog"
	"github.com/freshmart/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// S3ObjectStorage stores objects in an S3 compatible bucket (AWS S3, MinIO,
// RustFS). Static credentials are used when configured, otherwise the default
// AWS credential chain applies.
type S3ObjectStorage struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
	logger        *zap.Logger
}

var _ catalogapp.ObjectStorage = (*S3ObjectStorage)(nil)

func NewS3ObjectStorage(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (*S3ObjectStorage, error) {
	if cfg.S3Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	region := cfg.S3Region
	if region == "" {
		region = "us-east-1"
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.S3PathStyle
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
	})

	base := cfg.PublicBaseURL
	if base == "" || base == "/uploads" {
		base = defaultS3BaseURL(cfg, region)
	}

	return &S3ObjectStorage{
		client:        client,
		bucket:        cfg.S3Bucket,
		publicBaseURL: base,
		logger:        logger,
	}, nil
}

func defaultS3BaseURL(cfg config.StorageConfig, region string) string {
	if cfg.S3Endpoint != "" {
		return publicURL(cfg.S3Endpoint, cfg.S3Bucket)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, region)
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *S3ObjectStorage) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}
	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("Creating storage bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &owned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Upload puts the object and returns its public URL. The body is buffered so
// the SDK can compute the payload checksum.
func (s *S3ObjectStorage) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	if key == "" {
		return "", errEmptyKey
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	s.logger.Debug("object uploaded", zap.String("bucket", s.bucket), zap.String("key", key), zap.Int("bytes", len(data)))
	return publicURL(s.publicBaseURL, key), nil
}

func (s *S3ObjectStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errEmptyKey
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}
