package models

// Product represents a catalog item owned by a tenant. Prices are stored in
// cents to avoid floating point arithmetic on money.
type Product struct {
	Base
	TenantID    string `gorm:"type:uuid;not null;index:idx_products_tenant_sku,unique" json:"tenant_id"`
	SKU         string `gorm:"not null;index:idx_products_tenant_sku,unique" json:"sku"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	PriceCents  int64  `gorm:"not null" json:"price_cents"`
	Currency    string `gorm:"size:3;default:USD" json:"currency"`
	StockQty    int    `gorm:"default:0" json:"stock_qty"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
}
