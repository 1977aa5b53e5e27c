package dao

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"product-auth-system/model"
)

// TagDAO data access layer for tags.
type TagDAO struct {
	db *gorm.DB
}

// NewTagDAO creates a new DAO instance.
func NewTagDAO(db *gorm.DB) *TagDAO {
	return &TagDAO{db: db}
}

// Create inserts a new tag record.
func (dao *TagDAO) Create(tag *model.Tag) error {
	return dao.db.Create(tag).Error
}

// GetByID fetches a tag by primary key.
func (dao *TagDAO) GetByID(id int64) (*model.Tag, error) {
	var tag model.Tag
	err := dao.db.Where("id = ?", id).First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetByCode fetches a tag by its unique code.
func (dao *TagDAO) GetByCode(code string) (*model.Tag, error) {
	var tag model.Tag
	err := dao.db.Where("code = ?", code).First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// Update persists tag changes.
func (dao *TagDAO) Update(tag *model.Tag) error {
	if tag == nil {
		return fmt.Errorf("tag is nil")
	}

	return dao.db.Model(&model.Tag{}).
		Where("id = ?", tag.ID).
		Select("*").
		Updates(tag).Error
}

// MarkStamped flips the one-way stamped flag and records the chain reference.
func (dao *TagDAO) MarkStamped(id int64, hashTx string, status model.ChainStatus, stampedAt time.Time) error {
	return dao.db.Model(&model.Tag{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_stamped":   true,
			"hash_tx":      hashTx,
			"chain_status": status,
			"stamped_at":   stampedAt,
		}).Error
}

// UpdateChainStatus writes chain_status and hash_tx together.
func (dao *TagDAO) UpdateChainStatus(id int64, status model.ChainStatus, hashTx string, revokeReason string) error {
	updates := map[string]interface{}{
		"chain_status": status,
		"hash_tx":      hashTx,
	}
	if revokeReason != "" {
		updates["revoke_reason"] = revokeReason
	}
	return dao.db.Model(&model.Tag{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// ListWithCursor returns tags with cursor pagination (id desc).
// cursor: last tag ID from previous page (0 for first page).
func (dao *TagDAO) ListWithCursor(cursor int64, size int) ([]*model.Tag, int64, bool, error) {
	if size <= 0 || size > 100 {
		size = 20
	}

	var tags []*model.Tag
	query := dao.db.Order("id DESC")
	if cursor > 0 {
		query = query.Where("id < ?", cursor)
	}

	if err := query.Limit(size + 1).Find(&tags).Error; err != nil {
		return nil, 0, false, err
	}

	hasMore := len(tags) > size
	if hasMore {
		tags = tags[:size]
	}

	var nextCursor int64
	if len(tags) > 0 {
		nextCursor = tags[len(tags)-1].ID
	}

	return tags, nextCursor, hasMore, nil
}
