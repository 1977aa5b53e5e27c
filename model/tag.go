package model

import (
	"encoding/json"
	"time"
)

// PublishStatus app-level visibility gate, independent of chain state.
type PublishStatus string

const (
	PublishStatusDraft     PublishStatus = "draft"
	PublishStatusPublished PublishStatus = "published"
)

// ChainStatus on-chain lifecycle status of a stamped tag.
type ChainStatus int8

const (
	ChainStatusCreated     ChainStatus = 0
	ChainStatusDistributed ChainStatus = 1
	ChainStatusClaimed     ChainStatus = 2
	ChainStatusTransferred ChainStatus = 3
	ChainStatusFlagged     ChainStatus = 4
	ChainStatusRevoked     ChainStatus = 5 // Terminal
)

// String returns the readable name of the chain status
func (s ChainStatus) String() string {
	switch s {
	case ChainStatusCreated:
		return "created"
	case ChainStatusDistributed:
		return "distributed"
	case ChainStatusClaimed:
		return "claimed"
	case ChainStatusTransferred:
		return "transferred"
	case ChainStatusFlagged:
		return "flagged"
	case ChainStatusRevoked:
		return "revoked"
	default:
		return "unknown"
	}
}

// IsValid reports whether the value is a known chain status
func (s ChainStatus) IsValid() bool {
	return s >= ChainStatusCreated && s <= ChainStatusRevoked
}

// Metadata keys carrying the tag's declared distribution intent
const (
	MetaKeyRegion         = "distribution_region"
	MetaKeyCountry        = "distribution_country"
	MetaKeyChannel        = "distribution_channel"
	MetaKeyIntendedMarket = "intended_market"
)

// Tag represents the unit of authentication
type Tag struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	// Tag identity
	Code string `gorm:"uniqueIndex;type:varchar(64)" json:"code"` // QR-encoded unique string, immutable once assigned

	// Linked products and free-form metadata, frozen once stamped
	ProductIds string `gorm:"type:text" json:"product_ids"` // Ordered product ID list (JSON array)
	MetaData   string `gorm:"type:text" json:"meta_data"`   // Key/value document (JSON object)

	// Lifecycle state
	PublishStatus PublishStatus `gorm:"type:varchar(20);default:'draft'" json:"publish_status"` // draft/published
	IsStamped     bool          `gorm:"type:tinyint(1);default:0" json:"is_stamped"`            // One-way false->true
	ChainStatus   *ChainStatus  `gorm:"type:tinyint" json:"chain_status"`                       // Populated only once stamped
	HashTx        string        `gorm:"type:varchar(128)" json:"hash_tx"`                       // Last known on-chain tx hash
	RevokeReason  string        `gorm:"type:varchar(255)" json:"revoke_reason"`                 // Audit reason recorded on revoke

	// Timestamps
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	StampedAt *time.Time `gorm:"type:timestamp" json:"stamped_at"`
}

// TableName sets custom table name
func (Tag) TableName() string {
	return "tb_tag"
}

// ProductIDList decodes the ordered product ID list
func (t *Tag) ProductIDList() []int64 {
	if t.ProductIds == "" {
		return nil
	}
	var ids []int64
	if err := json.Unmarshal([]byte(t.ProductIds), &ids); err != nil {
		return nil
	}
	return ids
}

// SetProductIDList encodes the ordered product ID list
func (t *Tag) SetProductIDList(ids []int64) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	t.ProductIds = string(data)
	return nil
}

// MetadataMap decodes the free-form metadata document
func (t *Tag) MetadataMap() map[string]string {
	meta := make(map[string]string)
	if t.MetaData == "" {
		return meta
	}
	if err := json.Unmarshal([]byte(t.MetaData), &meta); err != nil {
		return map[string]string{}
	}
	return meta
}

// SetMetadataMap encodes the free-form metadata document
func (t *Tag) SetMetadataMap(meta map[string]string) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	t.MetaData = string(data)
	return nil
}

// DistributionIntent declared distribution intent extracted from tag metadata
type DistributionIntent struct {
	Region         string `json:"region"`
	Country        string `json:"country"`
	Channel        string `json:"channel"`
	IntendedMarket string `json:"intended_market"`
}

// DistributionIntent reads the distribution intent fields from metadata
func (t *Tag) DistributionIntent() DistributionIntent {
	meta := t.MetadataMap()
	return DistributionIntent{
		Region:         meta[MetaKeyRegion],
		Country:        meta[MetaKeyCountry],
		Channel:        meta[MetaKeyChannel],
		IntendedMarket: meta[MetaKeyIntendedMarket],
	}
}

// IsRevoked reports whether the tag has reached the terminal revoked state
func (t *Tag) IsRevoked() bool {
	return t.ChainStatus != nil && *t.ChainStatus == ChainStatusRevoked
}
