package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"product-auth-system/controller/respond"
	"product-auth-system/service/product_service"
)

// ProductHandler product catalog HTTP handler
type ProductHandler struct {
	productService *product_service.ProductService
}

// NewProductHandler create product handler instance
func NewProductHandler(productService *product_service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// CreateProductRequest request structure for product creation
type CreateProductRequest struct {
	Brand       string   `json:"brand" example:"Acme"`
	Name        string   `json:"name" binding:"required" example:"Trail Sneaker V2"`
	Description string   `json:"description"`
	Price       float64  `json:"price" example:"129.90"`
	Currency    string   `json:"currency" example:"USD"`
	ImageUrls   []string `json:"image_urls"`
	Sku         string   `json:"sku" example:"ACME-TS2-42"`
}

// CreateProduct godoc
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request  body  CreateProductRequest  true  "Product fields"
// @Success      200  {object}  respond.Response{data=model.Product}
// @Failure      400  {object}  respond.Response
// @Router       /products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.InvalidParam(c, "invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.Create(product_service.CreateProductInput{
		Brand:       req.Brand,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Currency:    req.Currency,
		ImageUrls:   req.ImageUrls,
		Sku:         req.Sku,
	})
	if err != nil {
		if errors.Is(err, product_service.ErrInvalidArgument) {
			respond.InvalidParam(c, err.Error())
			return
		}
		respond.ServerError(c, err.Error())
		return
	}

	respond.Success(c, product)
}

// GetProduct godoc
// @Summary      Get product by ID
// @Tags         products
// @Produce      json
// @Param        id  path  int  true  "Product ID"
// @Success      200  {object}  respond.Response{data=model.Product}
// @Failure      404  {object}  respond.Response
// @Router       /products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respond.InvalidParam(c, "id must be a positive integer")
		return
	}

	product, err := h.productService.GetByID(id)
	if err != nil {
		if errors.Is(err, product_service.ErrProductNotFound) {
			respond.NotFound(c, err.Error())
			return
		}
		respond.ServerError(c, err.Error())
		return
	}

	respond.Success(c, product)
}
