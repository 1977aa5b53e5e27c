package model

import "time"

// ScanEvent represents a single public scan of a tag
type ScanEvent struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	TagCode      string   `gorm:"type:varchar(64);index" json:"tag_code"` // Scanned tag code
	LocationName string   `gorm:"type:varchar(255)" json:"location_name"` // Textual location (city, region)
	Latitude     *float64 `gorm:"type:decimal(10,6)" json:"latitude"`     // Optional coordinates
	Longitude    *float64 `gorm:"type:decimal(10,6)" json:"longitude"`

	ScannedAt time.Time `gorm:"autoCreateTime;index" json:"scanned_at"`
}

// TableName sets custom table name
func (ScanEvent) TableName() string {
	return "tb_scan_event"
}
