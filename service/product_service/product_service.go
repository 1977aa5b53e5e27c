package product_service

import (
	"errors"
	"fmt"
	"strings"

	"product-auth-system/database"
	"product-auth-system/model"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

// ProductService product catalog service
type ProductService struct {
	db database.Database
}

// NewProductService create product service instance
func NewProductService(db database.Database) *ProductService {
	return &ProductService{db: db}
}

// CreateProductInput input for product creation
type CreateProductInput struct {
	Brand       string
	Name        string
	Description string
	Price       float64
	Currency    string
	ImageUrls   []string
	Sku         string
}

// Create creates a product
func (s *ProductService) Create(input CreateProductInput) (*model.Product, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrInvalidArgument)
	}
	if input.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidArgument)
	}

	product := &model.Product{
		Brand:       input.Brand,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Currency:    input.Currency,
		Sku:         input.Sku,
	}
	if err := product.SetImageURLList(input.ImageUrls); err != nil {
		return nil, fmt.Errorf("failed to encode image urls: %w", err)
	}

	if err := s.db.CreateProduct(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

// GetByID loads a product by ID
func (s *ProductService) GetByID(productID int64) (*model.Product, error) {
	product, err := s.db.GetProductByID(productID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	return product, nil
}
