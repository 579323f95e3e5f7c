package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"marketbook/internal/config"
	apperrors "marketbook/internal/errors"
	"marketbook/internal/pagination"
	"marketbook/internal/services"
)

// AuditHandler exposes the tenant's audit trail: the hash-chained entry log,
// the compliance access log, and on-demand chain verification.
type AuditHandler struct {
	auditService services.AuditServicer
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditService services.AuditServicer) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// AuditEntryQuery holds the query parameters for listing audit entries.
type AuditEntryQuery struct {
	pagination.PageRequest
	Action string `form:"action" binding:"omitempty,audit_action"`
}

// GetAuditEntries handles the retrieval of the tenant's audit entries
// @Summary     List audit entries
// @Description Get a paginated list of the tenant's audit entries, newest first
// @Tags        audit
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       action    query string false "Filter by action (CREATE, UPDATE, DELETE, EXPORT, LOGIN, LOGOUT)"
// @Success     200 {object} pagination.PageResponse[models.AuditEntry] "Paginated audit entries"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /audit/entries [get]
func (h *AuditHandler) GetAuditEntries(c *gin.Context) {
	auth, err := getAuthContext(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query AuditEntryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.auditService.ListEntries(auth.TenantID, query.Action, query.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAccessLog handles the retrieval of the tenant's data access log
// @Summary     List access log entries
// @Description Get a paginated list of the tenant's personal-data access
// @Description records, newest first
// @Tags        audit
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.AccessEntry] "Paginated access log"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /audit/access-log [get]
func (h *AuditHandler) GetAccessLog(c *gin.Context) {
	auth, err := getAuthContext(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.auditService.ListAccessEntries(auth.TenantID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// VerifyChain handles on-demand verification of the tenant's audit chain
// @Summary     Verify audit chain
// @Description Replay the tenant's audit chain and report its integrity.
// @Description Without window_days the entire history is verified, which is
// @Description the only mode that can detect a purged prefix. With a positive
// @Description window_days only entries in the trailing window are checked, a
// @Description lighter health check for large chains. A broken chain returns
// @Description 200 with is_valid=false; nothing is ever auto-repaired.
// @Tags        audit
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       window_days query int false "Verify only the trailing N days (omit or 0 for full history)"
// @Success     200 {object} ledger.VerificationResult "Verification result"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /audit/verify [get]
func (h *AuditHandler) VerifyChain(c *gin.Context) {
	auth, err := getAuthContext(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// No query parameter falls back to the deployment default, which is
	// full history unless AUDIT_VERIFY_WINDOW_DAYS is set.
	windowDays := config.Get().AuditVerifyWindowDays
	if v := c.Query("window_days"); v != "" {
		parsed, parseErr := strconv.Atoi(v)
		if parseErr != nil || parsed < 0 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid window_days"))
			return
		}
		windowDays = parsed
	}

	result, err := h.auditService.VerifyChain(auth.TenantID, windowDays)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
