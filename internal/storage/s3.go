package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"plumbfam/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Storage implements ObjectStore against any S3-compatible endpoint
// (AWS S3, MinIO, RustFS, the Supabase S3 gateway).
type S3Storage struct {
	client       *s3.Client
	endpoint     string
	usePathStyle bool
}

var _ ObjectStore = (*S3Storage)(nil)

func NewS3Storage(ctx context.Context, config *types.Config) (*S3Storage, error) {
	if config.S3Endpoint == "" {
		return nil, fmt.Errorf("set S3_ENDPOINT")
	}
	if config.S3AccessKey == "" || config.S3SecretKey == "" {
		return nil, fmt.Errorf("set S3_ACCESS_KEY and S3_SECRET_KEY")
	}

	endpoint := config.S3Endpoint
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("invalid s3 endpoint: %w", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			config.S3AccessKey,
			config.S3SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = config.S3UsePathStyle
		o.BaseEndpoint = aws.String(endpoint)
	})

	return &S3Storage{
		client:       client,
		endpoint:     strings.TrimSuffix(endpoint, "/"),
		usePathStyle: config.S3UsePathStyle,
	}, nil
}

func (s *S3Storage) Upload(ctx context.Context, bucket, key string, body io.Reader, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return key, nil
}

func (s *S3Storage) Delete(ctx context.Context, bucket, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	return nil
}

func (s *S3Storage) PublicURL(bucket, key string) string {
	if s.usePathStyle {
		return fmt.Sprintf("%s/%s/%s", s.endpoint, bucket, url.PathEscape(key))
	}

	u, _ := url.Parse(s.endpoint)
	return fmt.Sprintf("%s://%s.%s/%s", u.Scheme, bucket, u.Host, url.PathEscape(key))
}
