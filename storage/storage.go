package storage

import (
	"errors"

	"product-auth-system/conf"
)

// Storage unified object storage interface.
// Save overwrites any existing object at the same key and returns its public URL.
type Storage interface {
	Save(key string, data []byte, contentType string) (string, error)
	Get(key string) ([]byte, error)
	Delete(key string) error
	Exists(key string) bool
	PublicURL(key string) string
}

var (
	ErrNotFound = errors.New("object not found")
	ErrInvalid  = errors.New("invalid storage configuration")
)

// NewStorage create storage instance by configuration
func NewStorage() (Storage, error) {
	storageType := conf.Cfg.Storage.Type

	switch storageType {
	case "local":
		return NewLocalStorage(conf.Cfg.Storage.Local.BasePath, conf.Cfg.Storage.Local.Domain)
	case "oss":
		return NewOSSStorage(conf.Cfg.Storage.OSS.Endpoint, conf.Cfg.Storage.OSS.AccessKey,
			conf.Cfg.Storage.OSS.SecretKey, conf.Cfg.Storage.OSS.Bucket, conf.Cfg.Storage.OSS.Domain)
	case "s3":
		return NewS3Storage(conf.Cfg.Storage.S3.Region, conf.Cfg.Storage.S3.Endpoint,
			conf.Cfg.Storage.S3.AccessKey, conf.Cfg.Storage.S3.SecretKey,
			conf.Cfg.Storage.S3.Bucket, conf.Cfg.Storage.S3.Domain)
	default:
		// Default to local storage
		return NewLocalStorage(conf.Cfg.Storage.Local.BasePath, conf.Cfg.Storage.Local.Domain)
	}
}
