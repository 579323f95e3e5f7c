package services

import (
	"errors"
	"strconv"

	"gorm.io/gorm"

	apperrors "marketbook/internal/errors"
	"marketbook/internal/ledger"
	"marketbook/internal/models"
	"marketbook/internal/pagination"
)

// productService handles catalog business logic. Every mutation is recorded
// in the tenant's audit chain; a failed audit write fails the call.
type productService struct {
	db    *gorm.DB
	audit AuditServicer
}

// NewProductService creates a new ProductServicer.
func NewProductService(db *gorm.DB, audit AuditServicer) ProductServicer {
	return &productService{db: db, audit: audit}
}

// productState snapshots the auditable fields of a product for
// before/after diffs.
func productState(p *models.Product) map[string]string {
	return map[string]string{
		"sku":         p.SKU,
		"name":        p.Name,
		"description": p.Description,
		"category":    p.Category,
		"price_cents": strconv.FormatInt(p.PriceCents, 10),
		"currency":    p.Currency,
		"stock_qty":   strconv.Itoa(p.StockQty),
		"is_active":   strconv.FormatBool(p.IsActive),
	}
}

// CreateProduct creates a catalog item and records a CREATE entry.
func (s *productService) CreateProduct(tenantID, actorEmail, sku, name, description, category string, priceCents int64, currency string, stockQty int, req *ledger.RequestContext) (*models.Product, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "product name is required")
	}
	if sku == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "product SKU is required")
	}
	if priceCents < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "price cannot be negative")
	}
	if currency == "" {
		currency = "USD"
	}

	var count int64
	if err := s.db.Model(&models.Product{}).Where("tenant_id = ? AND sku = ?", tenantID, sku).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateSKU
	}

	product := &models.Product{
		TenantID:    tenantID,
		SKU:         sku,
		Name:        name,
		Description: description,
		Category:    category,
		PriceCents:  priceCents,
		Currency:    currency,
		StockQty:    stockQty,
		IsActive:    true,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if _, err := s.audit.RecordAction(ActionRecord{
		TenantID:     tenantID,
		ActorEmail:   actorEmail,
		Action:       models.AuditActionCreate,
		ResourceType: "product",
		ResourceID:   product.ID,
		AfterState:   productState(product),
		Request:      req,
	}); err != nil {
		return nil, err
	}

	return product, nil
}

// GetTenantProducts retrieves a paginated list of the tenant's products.
func (s *productService) GetTenantProducts(tenantID string, page pagination.PageRequest) (*pagination.PageResponse[models.Product], error) {
	page.Defaults()

	base := s.db.Model(&models.Product{}).Where("tenant_id = ?", tenantID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var products []models.Product
	if err := base.Order("name ASC").Scopes(pagination.Paginate(page)).Find(&products).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(products, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetProductByID retrieves a product by ID scoped to a tenant.
func (s *productService) GetProductByID(tenantID, productID string) (*models.Product, error) {
	var product models.Product
	if err := s.db.Where("id = ? AND tenant_id = ?", productID, tenantID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &product, nil
}

// UpdateProduct applies the given field updates and records an UPDATE entry
// with before/after snapshots of the changed fields.
func (s *productService) UpdateProduct(tenantID, actorEmail, productID string, fields ProductUpdateFields, req *ledger.RequestContext) (*models.Product, error) {
	product, err := s.GetProductByID(tenantID, productID)
	if err != nil {
		return nil, err
	}

	before := productState(product)

	updates := make(map[string]interface{})
	if fields.Name != nil && *fields.Name != "" {
		updates["name"] = *fields.Name
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.Category != nil {
		updates["category"] = *fields.Category
	}
	if fields.PriceCents != nil {
		if *fields.PriceCents < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "price cannot be negative")
		}
		updates["price_cents"] = *fields.PriceCents
	}
	if fields.StockQty != nil {
		updates["stock_qty"] = *fields.StockQty
	}
	if fields.IsActive != nil {
		updates["is_active"] = *fields.IsActive
	}

	if len(updates) == 0 {
		return product, nil
	}

	if err := s.db.Model(product).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Where("id = ?", product.ID).First(product).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	after := productState(product)

	// Keep only the fields that actually changed in the snapshots.
	beforeDiff := make(map[string]string)
	afterDiff := make(map[string]string)
	for k, prev := range before {
		if next := after[k]; next != prev {
			beforeDiff[k] = prev
			afterDiff[k] = next
		}
	}

	if _, err := s.audit.RecordAction(ActionRecord{
		TenantID:     tenantID,
		ActorEmail:   actorEmail,
		Action:       models.AuditActionUpdate,
		ResourceType: "product",
		ResourceID:   product.ID,
		BeforeState:  beforeDiff,
		AfterState:   afterDiff,
		Request:      req,
	}); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct soft-deletes a product and records a DELETE entry with a
// snapshot of the removed state. Products with recorded sales cannot be
// deleted.
func (s *productService) DeleteProduct(tenantID, actorEmail, productID string, req *ledger.RequestContext) error {
	product, err := s.GetProductByID(tenantID, productID)
	if err != nil {
		return err
	}

	var saleCount int64
	if err := s.db.Model(&models.Sale{}).Where("product_id = ?", product.ID).Count(&saleCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if saleCount > 0 {
		return apperrors.ErrProductInUse
	}

	if err := s.db.Delete(product).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if _, err := s.audit.RecordAction(ActionRecord{
		TenantID:     tenantID,
		ActorEmail:   actorEmail,
		Action:       models.AuditActionDelete,
		ResourceType: "product",
		ResourceID:   product.ID,
		BeforeState:  productState(product),
		Request:      req,
	}); err != nil {
		return err
	}

	return nil
}
