package services

import (
	"time"

	"marketbook/internal/ledger"
	"marketbook/internal/models"
	"marketbook/internal/pagination"
)

// ActionRecord describes an action to be appended to a tenant's audit chain.
// BeforeState/AfterState are field-name to serialized-value snapshots; the
// facade canonicalizes them before hashing.
type ActionRecord struct {
	TenantID     string
	ActorEmail   string
	Action       models.AuditAction
	ResourceType string
	ResourceID   string
	BeforeState  map[string]string
	AfterState   map[string]string
	IsSensitive  bool
	Request      *ledger.RequestContext
}

// AccessRecord describes a read of personal data for the compliance access
// log. RecordsAccessed defaults to 1 when zero.
type AccessRecord struct {
	TenantID         string
	AccessorID       string
	AccessorEmail    string
	AccessorRole     string
	DataSubjectID    string
	DataSubjectEmail string
	DataType         string
	AccessMethod     string
	AccessPurpose    string
	LegalBasis       string
	RecordsAccessed  int
	Request          *ledger.RequestContext
}

// AuditServicer is the single entry point for recording audited actions and
// data accesses and for requesting chain verification. A failed audit write
// returns an error; it is never logged and swallowed, because an
// unrecorded action is itself an operational incident the caller must see.
type AuditServicer interface {
	RecordAction(rec ActionRecord) (*models.AuditEntry, error)
	RecordAccess(rec AccessRecord) (*models.AccessEntry, error)

	// VerifyChain verifies the tenant's chain. windowDays <= 0 runs
	// full-history verification (the default, and the only mode that can
	// detect a purged prefix); a positive value verifies the trailing
	// window as a lighter health check.
	VerifyChain(tenantID string, windowDays int) (*ledger.VerificationResult, error)

	ListEntries(tenantID, action string, page pagination.PageRequest) (*pagination.PageResponse[models.AuditEntry], error)
	ListAccessEntries(tenantID string, page pagination.PageRequest) (*pagination.PageResponse[models.AccessEntry], error)
}

// UserServicer defines the contract for user and tenant account logic.
type UserServicer interface {
	RegisterTenant(tenantName, email, password, firstName, lastName string, req *ledger.RequestContext) (*models.Tenant, *models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string, req *ledger.RequestContext) (*models.User, error)
	StoreRefreshTokenHash(userID string, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// ProductUpdateFields holds optional fields for a product update. Nil means
// "leave unchanged".
type ProductUpdateFields struct {
	Name        *string
	Description *string
	Category    *string
	PriceCents  *int64
	StockQty    *int
	IsActive    *bool
}

// ProductServicer defines the contract for catalog business logic. Mutating
// operations record audit entries; the audit write failing fails the call.
type ProductServicer interface {
	CreateProduct(tenantID, actorEmail, sku, name, description, category string, priceCents int64, currency string, stockQty int, req *ledger.RequestContext) (*models.Product, error)
	GetTenantProducts(tenantID string, page pagination.PageRequest) (*pagination.PageResponse[models.Product], error)
	GetProductByID(tenantID, productID string) (*models.Product, error)
	UpdateProduct(tenantID, actorEmail, productID string, fields ProductUpdateFields, req *ledger.RequestContext) (*models.Product, error)
	DeleteProduct(tenantID, actorEmail, productID string, req *ledger.RequestContext) error
}

// SaleFilter holds optional filter parameters for listing sales.
type SaleFilter struct {
	FromDate  *time.Time
	ToDate    *time.Time
	Channel   *models.SaleChannel
	ProductID *string
}

// SaleServicer defines the contract for sales business logic.
type SaleServicer interface {
	CreateSale(tenantID, actorEmail, productID string, quantity int, unitPriceCents int64, channel models.SaleChannel, customerEmail string, soldAt time.Time, notes string, req *ledger.RequestContext) (*models.Sale, error)
	GetTenantSales(tenantID string, page pagination.PageRequest, filter SaleFilter) (*pagination.PageResponse[models.Sale], error)
	GetSaleByID(tenantID, saleID string) (*models.Sale, error)
	DeleteSale(tenantID, actorEmail, saleID string, req *ledger.RequestContext) error

	// ExportSales returns every sale for the tenant and records both an
	// EXPORT audit entry and a compliance access-log entry, since the
	// export exposes customer personal data in bulk.
	ExportSales(tenantID string, actor *models.User, purpose, legalBasis string, req *ledger.RequestContext) ([]models.Sale, error)
}
