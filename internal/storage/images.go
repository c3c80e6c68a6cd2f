package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ImageStoreConfig holds configuration for ImageStore
type ImageStoreConfig struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UsePathStyle    bool
}

// ImageStore keeps project images in S3-compatible object storage. The
// API never proxies bytes: clients upload and download through
// presigned URLs.
type ImageStore struct {
	client            *s3.Client
	presignClient     *s3.PresignClient
	bucket            string
	uploadURLExpiry   time.Duration
	downloadURLExpiry time.Duration
}

// imageContentTypes lists the content types presigned uploads accept.
var imageContentTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/webp":    true,
	"image/gif":     true,
	"image/svg+xml": true,
}

// NewImageStore creates a new ImageStore with the given configuration
func NewImageStore(ctx context.Context, cfg ImageStoreConfig) (*ImageStore, error) {
	customResolver := aws.EndpointResolverWithOptionsFunc(
		func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			if cfg.Endpoint != "" {
				return aws.Endpoint{
					URL:               cfg.Endpoint,
					HostnameImmutable: true,
				}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		},
	)

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
		config.WithEndpointResolverWithOptions(customResolver),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &ImageStore{
		client:            client,
		presignClient:     s3.NewPresignClient(client),
		bucket:            cfg.Bucket,
		uploadURLExpiry:   15 * time.Minute,
		downloadURLExpiry: 1 * time.Hour,
	}, nil
}

// ImageKey builds a namespaced object key for a project image.
func ImageKey(projectID, filename string) string {
	return path.Join("projects", projectID, path.Base(filename))
}

// ValidImageContentType reports whether presigned uploads accept ct.
func ValidImageContentType(ct string) bool {
	return imageContentTypes[strings.ToLower(ct)]
}

// PresignUpload creates a presigned URL for uploading an image.
func (s *ImageStore) PresignUpload(ctx context.Context, key string, contentType string) (string, error) {
	if !ValidImageContentType(contentType) {
		return "", fmt.Errorf("unsupported image content type: %s", contentType)
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}

	presignedReq, err := s.presignClient.PresignPutObject(ctx, input, func(opts *s3.PresignOptions) {
		opts.Expires = s.uploadURLExpiry
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate upload URL: %w", err)
	}

	return presignedReq.URL, nil
}

// PresignDownload creates a presigned URL for fetching an image.
func (s *ImageStore) PresignDownload(ctx context.Context, key string) (string, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}

	presignedReq, err := s.presignClient.PresignGetObject(ctx, input, func(opts *s3.PresignOptions) {
		opts.Expires = s.downloadURLExpiry
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate download URL: %w", err)
	}

	return presignedReq.URL, nil
}

// Delete removes an image from storage.
func (s *ImageStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// EnsureBucket creates the bucket if it doesn't exist.
func (s *ImageStore) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}
