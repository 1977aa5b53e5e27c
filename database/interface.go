package database

import (
	"time"

	"product-auth-system/model"
)

// Database interface for different database implementations
type Database interface {
	// Tag operations
	CreateTag(tag *model.Tag) error
	GetTagByID(id int64) (*model.Tag, error)
	GetTagByCode(code string) (*model.Tag, error)
	UpdateTag(tag *model.Tag) error
	MarkTagStamped(id int64, hashTx string, status model.ChainStatus, stampedAt time.Time) error
	UpdateTagChainStatus(id int64, status model.ChainStatus, hashTx string, revokeReason string) error
	ListTagsWithCursor(cursor int64, size int) ([]*model.Tag, int64, bool, error)

	// Product operations
	CreateProduct(product *model.Product) error
	GetProductByID(id int64) (*model.Product, error)
	GetProductsByIDs(ids []int64) ([]*model.Product, error)

	// ScanEvent operations
	CreateScanEvent(event *model.ScanEvent) error
	CountScanEventsByTagCode(tagCode string) (int64, error)
	CountScanEventsByTagCodeSince(tagCode string, since time.Time) (int64, error)
	GetRecentScanEvents(tagCode string, limit int) ([]*model.ScanEvent, error)

	// General operations
	Close() error
}

// DBType database type
type DBType string

const (
	DBTypeMySQL  DBType = "mysql"
	DBTypePebble DBType = "pebble"
)

// Global database instance
var DB Database

// currentDBType stores the current database type
var currentDBType DBType

// InitDatabase initialize database with specified type
func InitDatabase(dbType DBType, config interface{}) error {
	var err error

	switch dbType {
	case DBTypeMySQL:
		DB, err = NewMySQLDatabase(config)
		currentDBType = DBTypeMySQL
	case DBTypePebble:
		DB, err = NewPebbleDatabase(config)
		currentDBType = DBTypePebble
	default:
		return ErrUnsupportedDBType
	}

	return err
}

// GetDBType get current database type
func GetDBType() DBType {
	return currentDBType
}
