package ledger

import (
	"time"

	apperrors "marketbook/internal/errors"
	"marketbook/internal/models"
	"marketbook/internal/uuid"
)

// Draft holds the business fields of an entry to be appended. The writer
// owns ID, Timestamp, PreviousHash, and HashValue; callers must not set
// them.
type Draft struct {
	ActorEmail   string
	Action       models.AuditAction
	ResourceType string
	ResourceID   string

	// BeforeState and AfterState must already be canonical JSON text
	// (or empty). The ledger hashes them verbatim.
	BeforeState string
	AfterState  string

	IsSensitive    bool
	RequestContext string
}

// ChainWriter appends entries to tenant chains. It is safe for concurrent
// use: the read-tail/compute-hash/insert sequence runs under a per-tenant
// mutex, so two concurrent appends for one tenant can never both observe
// the same tail and fork the chain.
type ChainWriter struct {
	store ChainStore
	locks *tenantLocks
}

// NewChainWriter creates a ChainWriter over the given store.
func NewChainWriter(store ChainStore) *ChainWriter {
	return &ChainWriter{store: store, locks: newTenantLocks()}
}

// Append links a new entry to the tenant's chain and persists it. Either
// the entry is durably written with correct linkage, or an error is
// returned and nothing was persisted.
func (w *ChainWriter) Append(tenantID string, draft Draft) (*models.AuditEntry, error) {
	if tenantID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "tenant id is required")
	}
	if draft.ActorEmail == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "actor email is required")
	}
	if draft.Action == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "action is required")
	}
	if draft.ResourceType == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "resource type is required")
	}

	unlock := w.locks.Lock(tenantID)
	defer unlock()

	tail, err := w.store.Tail(tenantID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrAuditWriteFailed, err)
	}

	previousHash := SentinelHash
	// Millisecond precision: the canonical timestamp encoding must survive
	// a database round trip (see hashTimeLayout).
	now := time.Now().UTC().Truncate(time.Millisecond)
	if tail != nil {
		previousHash = tail.HashValue
		// Timestamps are strictly increasing within a chain so that
		// timestamp order and linkage order always agree, even when two
		// appends land in the same millisecond or the clock steps back.
		if !now.After(tail.Timestamp) {
			now = tail.Timestamp.Add(time.Millisecond)
		}
	}

	entry := &models.AuditEntry{
		ID:             uuid.New(),
		TenantID:       tenantID,
		Timestamp:      now,
		ActorEmail:     draft.ActorEmail,
		Action:         draft.Action,
		ResourceType:   draft.ResourceType,
		ResourceID:     draft.ResourceID,
		BeforeState:    draft.BeforeState,
		AfterState:     draft.AfterState,
		IsSensitive:    draft.IsSensitive,
		RequestContext: draft.RequestContext,
		PreviousHash:   previousHash,
	}
	entry.HashValue = ComputeHash(entry, previousHash)

	if err := w.store.Insert(entry); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrAuditWriteFailed, err)
	}

	return entry, nil
}
