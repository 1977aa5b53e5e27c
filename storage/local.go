package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage local file system storage
type LocalStorage struct {
	basePath string
	domain   string
}

// NewLocalStorage create local storage instance
func NewLocalStorage(basePath, domain string) (*LocalStorage, error) {
	if basePath == "" {
		basePath = "./data/files"
	}

	// Ensure directory exists
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base path: %w", err)
	}

	return &LocalStorage{
		basePath: basePath,
		domain:   strings.TrimSuffix(domain, "/"),
	}, nil
}

// Save save file, overwriting any existing file at the same key
func (s *LocalStorage) Save(key string, data []byte, contentType string) (string, error) {
	filePath := filepath.Join(s.basePath, key)

	// Ensure parent directory exists
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return s.PublicURL(key), nil
}

// Get get file
func (s *LocalStorage) Get(key string) ([]byte, error) {
	filePath := filepath.Join(s.basePath, key)

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return data, nil
}

// Delete delete file
func (s *LocalStorage) Delete(key string) error {
	filePath := filepath.Join(s.basePath, key)

	err := os.Remove(filePath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Exists check if file exists
func (s *LocalStorage) Exists(key string) bool {
	filePath := filepath.Join(s.basePath, key)
	_, err := os.Stat(filePath)
	return err == nil
}

// PublicURL returns the public URL for a key. Local files are served under /files
// by the HTTP layer when no domain is configured.
func (s *LocalStorage) PublicURL(key string) string {
	if s.domain != "" {
		return s.domain + "/" + key
	}
	return "/files/" + key
}
