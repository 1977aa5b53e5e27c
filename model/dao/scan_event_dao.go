package dao

import (
	"time"

	"gorm.io/gorm"

	"product-auth-system/model"
)

// ScanEventDAO data access layer for scan events.
type ScanEventDAO struct {
	db *gorm.DB
}

// NewScanEventDAO creates a new DAO instance.
func NewScanEventDAO(db *gorm.DB) *ScanEventDAO {
	return &ScanEventDAO{db: db}
}

// Create inserts a new scan event record.
func (dao *ScanEventDAO) Create(event *model.ScanEvent) error {
	return dao.db.Create(event).Error
}

// CountByTagCode returns the total number of scans for a tag.
func (dao *ScanEventDAO) CountByTagCode(tagCode string) (int64, error) {
	var count int64
	err := dao.db.Model(&model.ScanEvent{}).
		Where("tag_code = ?", tagCode).
		Count(&count).Error
	return count, err
}

// CountByTagCodeSince returns the number of scans for a tag after a point in time.
func (dao *ScanEventDAO) CountByTagCodeSince(tagCode string, since time.Time) (int64, error) {
	var count int64
	err := dao.db.Model(&model.ScanEvent{}).
		Where("tag_code = ? AND scanned_at >= ?", tagCode, since).
		Count(&count).Error
	return count, err
}

// GetRecent returns the most recent scan events for a tag, newest first.
func (dao *ScanEventDAO) GetRecent(tagCode string, limit int) ([]*model.ScanEvent, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var events []*model.ScanEvent
	err := dao.db.Where("tag_code = ?", tagCode).
		Order("scanned_at DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}
