package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "marketbook/internal/errors"
	"marketbook/internal/ledger"
	"marketbook/internal/models"
	"marketbook/internal/pagination"
	"marketbook/internal/uuid"
)

// auditService composes the chain writer and verifier behind the
// AuditServicer facade. Only this service constructs AuditEntry and
// AccessEntry rows.
type auditService struct {
	db       *gorm.DB
	writer   *ledger.ChainWriter
	verifier *ledger.ChainVerifier
}

// NewAuditService creates a new AuditServicer over the given database.
func NewAuditService(db *gorm.DB) AuditServicer {
	store := ledger.NewChainStore(db)
	return &auditService{
		db:       db,
		writer:   ledger.NewChainWriter(store),
		verifier: ledger.NewChainVerifier(store),
	}
}

// RecordAction canonicalizes the record's snapshots and request context and
// appends it to the tenant's chain. Errors always propagate: a caller that
// could not be audited must know it.
func (s *auditService) RecordAction(rec ActionRecord) (*models.AuditEntry, error) {
	before, err := ledger.EncodeState(rec.BeforeState)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrAuditWriteFailed, err)
	}
	after, err := ledger.EncodeState(rec.AfterState)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrAuditWriteFailed, err)
	}
	reqCtx, err := rec.Request.Encode()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrAuditWriteFailed, err)
	}

	return s.writer.Append(rec.TenantID, ledger.Draft{
		ActorEmail:     rec.ActorEmail,
		Action:         rec.Action,
		ResourceType:   rec.ResourceType,
		ResourceID:     rec.ResourceID,
		BeforeState:    before,
		AfterState:     after,
		IsSensitive:    rec.IsSensitive,
		RequestContext: reqCtx,
	})
}

// RecordAccess persists an unchained access-log entry. Validation fails
// fast before touching storage.
func (s *auditService) RecordAccess(rec AccessRecord) (*models.AccessEntry, error) {
	if rec.TenantID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "tenant id is required")
	}
	if rec.AccessorID == "" || rec.AccessorEmail == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "accessor id and email are required")
	}
	if rec.DataType == "" || rec.AccessMethod == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "data type and access method are required")
	}

	reqCtx, err := rec.Request.Encode()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrAuditWriteFailed, err)
	}

	records := rec.RecordsAccessed
	if records == 0 {
		records = 1
	}

	entry := &models.AccessEntry{
		ID:               uuid.New(),
		TenantID:         rec.TenantID,
		Timestamp:        time.Now().UTC(),
		AccessorID:       rec.AccessorID,
		AccessorEmail:    rec.AccessorEmail,
		AccessorRole:     rec.AccessorRole,
		DataSubjectID:    rec.DataSubjectID,
		DataSubjectEmail: rec.DataSubjectEmail,
		DataType:         rec.DataType,
		AccessMethod:     rec.AccessMethod,
		AccessPurpose:    rec.AccessPurpose,
		LegalBasis:       rec.LegalBasis,
		RecordsAccessed:  records,
		RequestContext:   reqCtx,
	}

	if err := s.db.Create(entry).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrAuditWriteFailed, err)
	}

	return entry, nil
}

// VerifyChain runs chain verification for the tenant. A broken chain is
// returned as a result, never as an error, and is never auto-corrected.
func (s *auditService) VerifyChain(tenantID string, windowDays int) (*ledger.VerificationResult, error) {
	if tenantID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "tenant id is required")
	}

	if windowDays <= 0 {
		return s.verifier.Verify(tenantID)
	}

	// A second of slack on the upper bound covers tail entries whose
	// monotonic-clamped timestamps sit just ahead of the wall clock.
	end := time.Now().UTC().Add(time.Second)
	start := end.AddDate(0, 0, -windowDays)
	return s.verifier.VerifyWindow(tenantID, start, end)
}

// ListEntries returns the tenant's audit entries, most recent first. An
// empty action lists all actions.
func (s *auditService) ListEntries(tenantID, action string, page pagination.PageRequest) (*pagination.PageResponse[models.AuditEntry], error) {
	page.Defaults()

	base := s.db.Model(&models.AuditEntry{}).Where("tenant_id = ?", tenantID)
	if action != "" {
		base = base.Where("action = ?", action)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.AuditEntry
	if err := base.Order("timestamp DESC").Order("id DESC").
		Scopes(pagination.Paginate(page)).Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// ListAccessEntries returns the tenant's access log, most recent first.
func (s *auditService) ListAccessEntries(tenantID string, page pagination.PageRequest) (*pagination.PageResponse[models.AccessEntry], error) {
	page.Defaults()

	base := s.db.Model(&models.AccessEntry{}).Where("tenant_id = ?", tenantID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.AccessEntry
	if err := base.Order("timestamp DESC").Order("id DESC").
		Scopes(pagination.Paginate(page)).Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}
