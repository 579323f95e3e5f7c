package ledger

import (
	"time"

	"gorm.io/gorm"

	"marketbook/internal/models"
)

// ChainStore is the persistence contract the ledger needs: durable inserts
// and tenant-scoped ordered reads. Successful Insert means the entry is
// durable; a failed Insert means the entry never existed.
type ChainStore interface {
	// Tail returns the most recent entry in the tenant's chain, or nil when
	// the chain is empty.
	Tail(tenantID string) (*models.AuditEntry, error)

	// Insert atomically persists a completed entry.
	Insert(entry *models.AuditEntry) error

	// ListAll returns every entry for the tenant ordered ascending.
	ListAll(tenantID string) ([]models.AuditEntry, error)

	// ListRange returns the tenant's entries with timestamp in [start, end)
	// ordered ascending.
	ListRange(tenantID string, start, end time.Time) ([]models.AuditEntry, error)
}

// gormChainStore implements ChainStore on a relational database via GORM.
// Ordering is (timestamp, id): ids are UUIDv7, so entries stamped within
// the same millisecond still sort in creation order.
type gormChainStore struct {
	db *gorm.DB
}

// NewChainStore creates a GORM-backed ChainStore.
func NewChainStore(db *gorm.DB) ChainStore {
	return &gormChainStore{db: db}
}

func (s *gormChainStore) Tail(tenantID string) (*models.AuditEntry, error) {
	var entry models.AuditEntry
	err := s.db.Where("tenant_id = ?", tenantID).
		Order("timestamp DESC").Order("id DESC").
		Limit(1).Find(&entry).Error
	if err != nil {
		return nil, err
	}
	if entry.ID == "" {
		return nil, nil
	}
	return &entry, nil
}

func (s *gormChainStore) Insert(entry *models.AuditEntry) error {
	return s.db.Create(entry).Error
}

func (s *gormChainStore) ListAll(tenantID string) ([]models.AuditEntry, error) {
	var entries []models.AuditEntry
	err := s.db.Where("tenant_id = ?", tenantID).
		Order("timestamp ASC").Order("id ASC").
		Find(&entries).Error
	return entries, err
}

func (s *gormChainStore) ListRange(tenantID string, start, end time.Time) ([]models.AuditEntry, error) {
	var entries []models.AuditEntry
	err := s.db.Where("tenant_id = ? AND timestamp >= ? AND timestamp < ?", tenantID, start, end).
		Order("timestamp ASC").Order("id ASC").
		Find(&entries).Error
	return entries, err
}
