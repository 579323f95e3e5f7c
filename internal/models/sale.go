package models

import "time"

// SaleChannel identifies where a sale originated.
type SaleChannel string

const (
	SaleChannelDirect     SaleChannel = "direct"
	SaleChannelSquare     SaleChannel = "square"
	SaleChannelEventbrite SaleChannel = "eventbrite"
)

// Sale represents a recorded sale of a product. CustomerEmail is personal
// data: reading it in bulk (exports, reports) must go through the access log.
type Sale struct {
	Base
	TenantID       string      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ProductID      string      `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity       int         `gorm:"not null" json:"quantity"`
	UnitPriceCents int64       `gorm:"not null" json:"unit_price_cents"`
	TotalCents     int64       `gorm:"not null" json:"total_cents"`
	Currency       string      `gorm:"size:3;default:USD" json:"currency"`
	Channel        SaleChannel `gorm:"default:direct" json:"channel"`
	CustomerEmail  string      `json:"customer_email,omitempty"`
	SoldAt         time.Time   `gorm:"not null" json:"sold_at"`
	Notes          string      `json:"notes,omitempty"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
