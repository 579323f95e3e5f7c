package models

import "time"

// AuditAction enumerates the actions recorded in the audit chain.
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
	AuditActionExport AuditAction = "EXPORT"
	AuditActionLogin  AuditAction = "LOGIN"
	AuditActionLogout AuditAction = "LOGOUT"
)

// AuditEntry is one link in a tenant's tamper-evident audit chain.
//
// Entries are append-only: no field is ever updated after creation and the
// model intentionally has no UpdatedAt/DeletedAt columns. PreviousHash holds
// the HashValue of the chronologically prior entry in the same tenant's
// chain (empty string for the first entry); HashValue is the SHA-256 digest
// of this entry's canonical serialization plus PreviousHash, set exactly
// once by the ledger writer. All writes go through internal/ledger; no
// other code constructs these rows.
type AuditEntry struct {
	ID           string      `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID     string      `gorm:"type:uuid;not null;index:idx_audit_entries_tenant_ts,priority:1" json:"tenant_id"`
	Timestamp    time.Time   `gorm:"not null;index:idx_audit_entries_tenant_ts,priority:2" json:"timestamp"`
	ActorEmail   string      `gorm:"not null" json:"actor_email"`
	Action       AuditAction `gorm:"not null" json:"action"`
	ResourceType string      `gorm:"not null" json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`

	// BeforeState and AfterState hold canonical JSON text of field-level
	// snapshots (UPDATE diffs). Stored as text so the exact bytes that
	// entered the hash are the exact bytes recomputation sees.
	BeforeState string `json:"before_state,omitempty"`
	AfterState  string `json:"after_state,omitempty"`

	IsSensitive bool `gorm:"default:false" json:"is_sensitive"`

	// RequestContext is canonical JSON text of the originating request
	// (source IP, method, path, correlation id); empty for background jobs.
	RequestContext string `json:"request_context,omitempty"`

	PreviousHash string `gorm:"size:64;not null" json:"previous_hash"`
	HashValue    string `gorm:"size:64;not null" json:"hash_value"`
}
