package model

import (
	"encoding/json"
	"time"
)

// Product represents a registered product linked to tags
type Product struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Brand       string  `gorm:"type:varchar(255)" json:"brand"`       // Brand name
	Name        string  `gorm:"type:varchar(255)" json:"name"`        // Product name
	Description string  `gorm:"type:text" json:"description"`         // Product description
	Price       float64 `gorm:"type:decimal(12,2)" json:"price"`      // Unit price
	Currency    string  `gorm:"type:varchar(10)" json:"currency"`     // Price currency code
	ImageUrls   string  `gorm:"type:text" json:"image_urls"`          // Image URL list (JSON array)
	Sku         string  `gorm:"type:varchar(100);index" json:"sku"`   // Stock keeping unit

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets custom table name
func (Product) TableName() string {
	return "tb_product"
}

// ImageURLList decodes the image URL list
func (p *Product) ImageURLList() []string {
	if p.ImageUrls == "" {
		return nil
	}
	var urls []string
	if err := json.Unmarshal([]byte(p.ImageUrls), &urls); err != nil {
		return nil
	}
	return urls
}

// SetImageURLList encodes the image URL list
func (p *Product) SetImageURLList(urls []string) error {
	data, err := json.Marshal(urls)
	if err != nil {
		return err
	}
	p.ImageUrls = string(data)
	return nil
}
