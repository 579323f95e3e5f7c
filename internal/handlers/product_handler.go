package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "marketbook/internal/errors"
	"marketbook/internal/pagination"
	"marketbook/internal/services"
)

// ProductHandler handles catalog-related requests.
type ProductHandler struct {
	productService services.ProductServicer
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService services.ProductServicer) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// CreateProductRequest represents the request payload for creating a product
type CreateProductRequest struct {
	SKU         string `json:"sku" binding:"required,max=100"`
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description" binding:"max=1000"`
	Category    string `json:"category" binding:"max=100"`
	PriceCents  int64  `json:"price_cents" binding:"required,gt=0"`
	Currency    string `json:"currency" binding:"omitempty,iso4217"`
	StockQty    int    `json:"stock_qty" binding:"omitempty,min=0"`
}

// UpdateProductRequest represents the request payload for updating a product.
// Omitted fields are left unchanged.
type UpdateProductRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Category    *string `json:"category" binding:"omitempty,max=100"`
	PriceCents  *int64  `json:"price_cents" binding:"omitempty,gt=0"`
	StockQty    *int    `json:"stock_qty" binding:"omitempty,min=0"`
	IsActive    *bool   `json:"is_active"`
}

// CreateProduct handles the creation of a new product
// @Summary     Create a product
// @Description Create a new catalog product for the authenticated tenant.
// @Description The creation is appended to the tenant's audit chain.
// @Tags        products
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateProductRequest true "Product details"
// @Success     201 {object} models.Product "Product created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Duplicate SKU"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	auth, err := getAuthContext(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	product, err := h.productService.CreateProduct(
		auth.TenantID,
		auth.Email,
		req.SKU,
		req.Name,
		req.Description,
		req.Category,
		req.PriceCents,
		req.Currency,
		req.StockQty,
		requestContext(c),
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// GetProducts handles the retrieval of the tenant's products
// @Summary     List products
// @Description Get a paginated list of the tenant's products
// @Tags        products
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Product] "Paginated products"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /products [get]
func (h *ProductHandler) GetProducts(c *gin.Context) {
	auth, err := getAuthContext(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.productService.GetTenantProducts(auth.TenantID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetProductByID handles the retrieval of a specific product
// @Summary     Get product by ID
// @Description Get a specific product by ID
// @Tags        products
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Product ID"
// @Success     200 {object} models.Product "Product details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Product not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /products/{id} [get]
func (h *ProductHandler) GetProductByID(c *gin.Context) {
	auth, err := getAuthContext(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	product, err := h.productService.GetProductByID(auth.TenantID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// UpdateProduct handles updating an existing product
// @Summary     Update product
// @Description Update an existing product. Changed fields are recorded in the
// @Description audit chain as before/after snapshots.
// @Tags        products
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Product ID"
// @Param       request body UpdateProductRequest true "Fields to update"
// @Success     200 {object} models.Product "Updated product"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Product not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	auth, err := getAuthContext(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	product, err := h.productService.UpdateProduct(auth.TenantID, auth.Email, c.Param("id"), services.ProductUpdateFields{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		PriceCents:  req.PriceCents,
		StockQty:    req.StockQty,
		IsActive:    req.IsActive,
	}, requestContext(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// DeleteProduct handles the deletion of a product
// @Summary     Delete product
// @Description Delete a product by ID. Products with recorded sales cannot be
// @Description deleted. The deletion is recorded in the audit chain with a
// @Description full before-state snapshot.
// @Tags        products
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Product ID"
// @Success     200 {object} MessageResponse "Product deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Product not found"
// @Failure     409 {object} ErrorResponse "Product has recorded sales"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	auth, err := getAuthContext(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.productService.DeleteProduct(auth.TenantID, auth.Email, c.Param("id"), requestContext(c)); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// MessageResponse represents a simple message response
type MessageResponse struct {
	Message string `json:"message"`
}
