package models

// Tenant represents a vendor organization. All catalog data, sales, users,
// and audit chains are scoped by tenant; each tenant owns an independent
// audit chain.
type Tenant struct {
	Base
	Name         string `gorm:"not null" json:"name"`
	ContactEmail string `gorm:"not null" json:"contact_email"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`
	Users        []User `gorm:"foreignKey:TenantID" json:"users,omitempty"`
}
