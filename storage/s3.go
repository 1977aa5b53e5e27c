package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Storage AWS S3 compatible storage (supports AWS S3 and S3-compatible services)
type S3Storage struct {
	client   *s3.Client
	bucket   string
	region   string
	endpoint string
	domain   string
}

// NewS3Storage create S3 storage instance
func NewS3Storage(region, endpoint, accessKey, secretKey, bucketName, domain string) (*S3Storage, error) {
	if accessKey == "" || secretKey == "" || bucketName == "" {
		return nil, ErrInvalid
	}

	ctx := context.Background()

	// Create credentials
	creds := credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")

	// Load AWS configuration
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(creds),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var client *s3.Client
	if endpoint != "" {
		// Custom endpoint (for S3-compatible services)
		client = s3.NewFromConfig(cfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		})
	} else {
		client = s3.NewFromConfig(cfg)
	}

	return &S3Storage{
		client:   client,
		bucket:   bucketName,
		region:   region,
		endpoint: endpoint,
		domain:   strings.TrimSuffix(domain, "/"),
	}, nil
}

// Save save file to S3, overwriting any existing object at the same key
func (s *S3Storage) Save(key string, data []byte, contentType string) (string, error) {
	ctx := context.Background()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to s3: %w", err)
	}
	return s.PublicURL(key), nil
}

// Get get file from S3
func (s *S3Storage) Get(key string) ([]byte, error) {
	ctx := context.Background()

	output, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get from s3: %w", err)
	}
	defer output.Body.Close()

	data, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read s3 object: %w", err)
	}

	return data, nil
}

// Delete delete file from S3
func (s *S3Storage) Delete(key string) error {
	ctx := context.Background()

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from s3: %w", err)
	}
	return nil
}

// Exists check if file exists in S3
func (s *S3Storage) Exists(key string) bool {
	ctx := context.Background()

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err == nil
}

// PublicURL returns the public URL for a key
func (s *S3Storage) PublicURL(key string) string {
	if s.domain != "" {
		return s.domain + "/" + key
	}
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(s.endpoint, "/"), s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
