package services

import (
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"

	apperrors "marketbook/internal/errors"
	"marketbook/internal/ledger"
	"marketbook/internal/models"
	"marketbook/internal/pagination"
)

// saleService handles sales business logic.
type saleService struct {
	db       *gorm.DB
	products ProductServicer
	audit    AuditServicer
}

// NewSaleService creates a new SaleServicer.
func NewSaleService(db *gorm.DB, products ProductServicer, audit AuditServicer) SaleServicer {
	return &saleService{db: db, products: products, audit: audit}
}

func saleState(sale *models.Sale) map[string]string {
	return map[string]string{
		"product_id":       sale.ProductID,
		"quantity":         strconv.Itoa(sale.Quantity),
		"unit_price_cents": strconv.FormatInt(sale.UnitPriceCents, 10),
		"total_cents":      strconv.FormatInt(sale.TotalCents, 10),
		"currency":         sale.Currency,
		"channel":          string(sale.Channel),
		"customer_email":   sale.CustomerEmail,
		"sold_at":          sale.SoldAt.UTC().Format(time.RFC3339),
	}
}

// CreateSale records a sale of a product, decrements stock, and appends a
// CREATE entry to the tenant's chain.
func (s *saleService) CreateSale(tenantID, actorEmail, productID string, quantity int, unitPriceCents int64, channel models.SaleChannel, customerEmail string, soldAt time.Time, notes string, req *ledger.RequestContext) (*models.Sale, error) {
	if quantity <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "quantity must be positive")
	}
	switch channel {
	case models.SaleChannelDirect, models.SaleChannelSquare, models.SaleChannelEventbrite:
	case "":
		channel = models.SaleChannelDirect
	default:
		return nil, apperrors.ErrInvalidChannel
	}

	product, err := s.products.GetProductByID(tenantID, productID)
	if err != nil {
		return nil, err
	}

	if unitPriceCents == 0 {
		unitPriceCents = product.PriceCents
	}
	if soldAt.IsZero() {
		soldAt = time.Now().UTC()
	}

	sale := &models.Sale{
		TenantID:       tenantID,
		ProductID:      product.ID,
		Quantity:       quantity,
		UnitPriceCents: unitPriceCents,
		TotalCents:     unitPriceCents * int64(quantity),
		Currency:       product.Currency,
		Channel:        channel,
		CustomerEmail:  customerEmail,
		SoldAt:         soldAt,
		Notes:          notes,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sale).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Model(product).Update("stock_qty", gorm.Expr("stock_qty - ?", quantity)).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.audit.RecordAction(ActionRecord{
		TenantID:     tenantID,
		ActorEmail:   actorEmail,
		Action:       models.AuditActionCreate,
		ResourceType: "sale",
		ResourceID:   sale.ID,
		AfterState:   saleState(sale),
		IsSensitive:  sale.CustomerEmail != "",
		Request:      req,
	}); err != nil {
		return nil, err
	}

	return sale, nil
}

// GetTenantSales retrieves a filtered, paginated list of the tenant's sales.
func (s *saleService) GetTenantSales(tenantID string, page pagination.PageRequest, filter SaleFilter) (*pagination.PageResponse[models.Sale], error) {
	page.Defaults()

	base := s.db.Model(&models.Sale{}).Where("tenant_id = ?", tenantID)
	if filter.FromDate != nil {
		base = base.Where("sold_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		base = base.Where("sold_at < ?", *filter.ToDate)
	}
	if filter.Channel != nil {
		base = base.Where("channel = ?", *filter.Channel)
	}
	if filter.ProductID != nil {
		base = base.Where("product_id = ?", *filter.ProductID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var sales []models.Sale
	if err := base.Order("sold_at DESC").Scopes(pagination.Paginate(page)).Find(&sales).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(sales, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetSaleByID retrieves a sale by ID scoped to a tenant.
func (s *saleService) GetSaleByID(tenantID, saleID string) (*models.Sale, error) {
	var sale models.Sale
	if err := s.db.Where("id = ? AND tenant_id = ?", saleID, tenantID).First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSaleNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &sale, nil
}

// DeleteSale soft-deletes a sale and records a DELETE entry. The snapshot
// carries customer data, so the entry is marked sensitive.
func (s *saleService) DeleteSale(tenantID, actorEmail, saleID string, req *ledger.RequestContext) error {
	sale, err := s.GetSaleByID(tenantID, saleID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(sale).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if _, err := s.audit.RecordAction(ActionRecord{
		TenantID:     tenantID,
		ActorEmail:   actorEmail,
		Action:       models.AuditActionDelete,
		ResourceType: "sale",
		ResourceID:   sale.ID,
		BeforeState:  saleState(sale),
		IsSensitive:  true,
		Request:      req,
	}); err != nil {
		return err
	}

	return nil
}

// ExportSales returns all sales for the tenant and records the export in
// both the audit chain (EXPORT, sensitive) and the compliance access log,
// since customer personal data leaves the system in bulk.
func (s *saleService) ExportSales(tenantID string, actor *models.User, purpose, legalBasis string, req *ledger.RequestContext) ([]models.Sale, error) {
	if actor == nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "actor is required")
	}

	var sales []models.Sale
	if err := s.db.Where("tenant_id = ?", tenantID).Order("sold_at ASC").Find(&sales).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if _, err := s.audit.RecordAction(ActionRecord{
		TenantID:     tenantID,
		ActorEmail:   actor.Email,
		Action:       models.AuditActionExport,
		ResourceType: "sale",
		AfterState:   map[string]string{"records_exported": strconv.Itoa(len(sales))},
		IsSensitive:  true,
		Request:      req,
	}); err != nil {
		return nil, err
	}

	if _, err := s.audit.RecordAccess(AccessRecord{
		TenantID:        tenantID,
		AccessorID:      actor.ID,
		AccessorEmail:   actor.Email,
		AccessorRole:    actor.Role,
		DataType:        "sales_customer_data",
		AccessMethod:    "export",
		AccessPurpose:   purpose,
		LegalBasis:      legalBasis,
		RecordsAccessed: len(sales),
		Request:         req,
	}); err != nil {
		return nil, err
	}

	return sales, nil
}
