package storage

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// OSSStorage Alibaba Cloud OSS storage
type OSSStorage struct {
	bucket   *oss.Bucket
	endpoint string
	name     string
	domain   string
}

// NewOSSStorage create OSS storage instance
func NewOSSStorage(endpoint, accessKey, secretKey, bucketName, domain string) (*OSSStorage, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" || bucketName == "" {
		return nil, ErrInvalid
	}

	// Create OSS client instance
	client, err := oss.New(endpoint, accessKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create oss client: %w", err)
	}

	// Get storage bucket
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket: %w", err)
	}

	return &OSSStorage{
		bucket:   bucket,
		endpoint: endpoint,
		name:     bucketName,
		domain:   strings.TrimSuffix(domain, "/"),
	}, nil
}

// Save save file to OSS, overwriting any existing object at the same key
func (s *OSSStorage) Save(key string, data []byte, contentType string) (string, error) {
	err := s.bucket.PutObject(key, bytes.NewReader(data), oss.ContentType(contentType))
	if err != nil {
		return "", fmt.Errorf("failed to upload to oss: %w", err)
	}
	return s.PublicURL(key), nil
}

// Get get file from OSS
func (s *OSSStorage) Get(key string) ([]byte, error) {
	body, err := s.bucket.GetObject(key)
	if err != nil {
		if ossErr, ok := err.(oss.ServiceError); ok && ossErr.StatusCode == 404 {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get from oss: %w", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read oss object: %w", err)
	}

	return data, nil
}

// Delete delete file from OSS
func (s *OSSStorage) Delete(key string) error {
	err := s.bucket.DeleteObject(key)
	if err != nil {
		return fmt.Errorf("failed to delete from oss: %w", err)
	}
	return nil
}

// Exists check if file exists in OSS
func (s *OSSStorage) Exists(key string) bool {
	exists, err := s.bucket.IsObjectExist(key)
	if err != nil {
		return false
	}
	return exists
}

// PublicURL returns the public URL for a key
func (s *OSSStorage) PublicURL(key string) string {
	if s.domain != "" {
		return s.domain + "/" + key
	}
	endpoint := strings.TrimPrefix(strings.TrimPrefix(s.endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.name, endpoint, key)
}
