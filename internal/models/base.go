package models

import (
	"time"

	"marketbook/internal/uuid"

	"gorm.io/gorm"
)

// Base contains common columns for mutable tables. Append-only tables
// (AuditEntry, AccessEntry) deliberately do not embed it: they carry no
// UpdatedAt or DeletedAt because nothing may ever update or soft-delete them.
type Base struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}
