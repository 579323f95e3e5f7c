package models

import "time"

// AccessEntry records that someone read personal data: who accessed whose
// data, for what purpose, and under what legal basis. Used for
// access-frequency compliance reporting.
//
// Unlike AuditEntry it is not hash-chained and carries no ordering
// guarantee; it shares only the create-once, never-mutate lifecycle.
type AccessEntry struct {
	ID               string    `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID         string    `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Timestamp        time.Time `gorm:"not null;index" json:"timestamp"`
	AccessorID       string    `gorm:"type:uuid;not null" json:"accessor_id"`
	AccessorEmail    string    `gorm:"not null" json:"accessor_email"`
	AccessorRole     string    `json:"accessor_role"`
	DataSubjectID    string    `json:"data_subject_id,omitempty"`
	DataSubjectEmail string    `json:"data_subject_email,omitempty"`
	DataType         string    `gorm:"not null" json:"data_type"`
	AccessMethod     string    `gorm:"not null" json:"access_method"`
	AccessPurpose    string    `json:"access_purpose"`
	LegalBasis       string    `json:"legal_basis"`
	RecordsAccessed  int       `gorm:"default:1" json:"records_accessed"`
	RequestContext   string    `json:"request_context,omitempty"`
}
