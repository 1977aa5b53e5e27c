package database

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"product-auth-system/model"
	"product-auth-system/model/dao"
)

// MySQLDatabase MySQL database implementation
type MySQLDatabase struct {
	db *gorm.DB

	tagDAO     *dao.TagDAO
	productDAO *dao.ProductDAO
	scanDAO    *dao.ScanEventDAO
}

// MySQLConfig MySQL configuration
type MySQLConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// NewMySQLDatabase create MySQL database instance
func NewMySQLDatabase(config interface{}) (Database, error) {
	cfg, ok := config.(*MySQLConfig)
	if !ok {
		return nil, fmt.Errorf("invalid MySQL config type")
	}

	// Connect database
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect MySQL: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Set connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("MySQL database connected successfully")

	return &MySQLDatabase{
		db:         db,
		tagDAO:     dao.NewTagDAO(db),
		productDAO: dao.NewProductDAO(db),
		scanDAO:    dao.NewScanEventDAO(db),
	}, nil
}

// GetGormDB get underlying GORM handle
func (m *MySQLDatabase) GetGormDB() *gorm.DB {
	return m.db
}

// Tag operations

func (m *MySQLDatabase) CreateTag(tag *model.Tag) error {
	return m.tagDAO.Create(tag)
}

func (m *MySQLDatabase) GetTagByID(id int64) (*model.Tag, error) {
	tag, err := m.tagDAO.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return tag, err
}

func (m *MySQLDatabase) GetTagByCode(code string) (*model.Tag, error) {
	tag, err := m.tagDAO.GetByCode(code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return tag, err
}

func (m *MySQLDatabase) UpdateTag(tag *model.Tag) error {
	return m.tagDAO.Update(tag)
}

func (m *MySQLDatabase) MarkTagStamped(id int64, hashTx string, status model.ChainStatus, stampedAt time.Time) error {
	return m.tagDAO.MarkStamped(id, hashTx, status, stampedAt)
}

func (m *MySQLDatabase) UpdateTagChainStatus(id int64, status model.ChainStatus, hashTx string, revokeReason string) error {
	return m.tagDAO.UpdateChainStatus(id, status, hashTx, revokeReason)
}

func (m *MySQLDatabase) ListTagsWithCursor(cursor int64, size int) ([]*model.Tag, int64, bool, error) {
	return m.tagDAO.ListWithCursor(cursor, size)
}

// Product operations

func (m *MySQLDatabase) CreateProduct(product *model.Product) error {
	return m.productDAO.Create(product)
}

func (m *MySQLDatabase) GetProductByID(id int64) (*model.Product, error) {
	product, err := m.productDAO.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return product, err
}

func (m *MySQLDatabase) GetProductsByIDs(ids []int64) ([]*model.Product, error) {
	return m.productDAO.GetByIDs(ids)
}

// ScanEvent operations

func (m *MySQLDatabase) CreateScanEvent(event *model.ScanEvent) error {
	return m.scanDAO.Create(event)
}

func (m *MySQLDatabase) CountScanEventsByTagCode(tagCode string) (int64, error) {
	return m.scanDAO.CountByTagCode(tagCode)
}

func (m *MySQLDatabase) CountScanEventsByTagCodeSince(tagCode string, since time.Time) (int64, error) {
	return m.scanDAO.CountByTagCodeSince(tagCode, since)
}

func (m *MySQLDatabase) GetRecentScanEvents(tagCode string, limit int) ([]*model.ScanEvent, error) {
	return m.scanDAO.GetRecent(tagCode, limit)
}

// Close close database connection
func (m *MySQLDatabase) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
