package dao

import (
	"gorm.io/gorm"

	"product-auth-system/model"
)

// ProductDAO data access layer for products.
type ProductDAO struct {
	db *gorm.DB
}

// NewProductDAO creates a new DAO instance.
func NewProductDAO(db *gorm.DB) *ProductDAO {
	return &ProductDAO{db: db}
}

// Create inserts a new product record.
func (dao *ProductDAO) Create(product *model.Product) error {
	return dao.db.Create(product).Error
}

// GetByID fetches a product by primary key.
func (dao *ProductDAO) GetByID(id int64) (*model.Product, error) {
	var product model.Product
	err := dao.db.Where("id = ?", id).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetByIDs fetches products by primary keys, preserving the requested order.
func (dao *ProductDAO) GetByIDs(ids []int64) ([]*model.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var products []*model.Product
	if err := dao.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}

	byID := make(map[int64]*model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	ordered := make([]*model.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}
