package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "marketbook/internal/errors"
	"marketbook/internal/models"
	"marketbook/internal/pagination"
	"marketbook/internal/services"
)

// SaleHandler handles sales-related requests.
type SaleHandler struct {
	saleService services.SaleServicer
	userService services.UserServicer
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(saleService services.SaleServicer, userService services.UserServicer) *SaleHandler {
	return &SaleHandler{saleService: saleService, userService: userService}
}

// CreateSaleRequest represents the request payload for recording a sale
type CreateSaleRequest struct {
	ProductID      string             `json:"product_id" binding:"required"`
	Quantity       int                `json:"quantity" binding:"required,gt=0"`
	UnitPriceCents *int64             `json:"unit_price_cents" binding:"omitempty,gt=0"`
	Channel        models.SaleChannel `json:"channel" binding:"omitempty,sale_channel"`
	CustomerEmail  string             `json:"customer_email" binding:"omitempty,email"`
	SoldAt         *string            `json:"sold_at"`
	Notes          string             `json:"notes" binding:"max=500"`
}

// ExportSalesRequest represents the request payload for a bulk sales export
type ExportSalesRequest struct {
	Purpose    string `json:"purpose" binding:"required,max=500"`
	LegalBasis string `json:"legal_basis" binding:"required,max=200"`
}

// CreateSale handles recording a new sale
// @Summary     Record a sale
// @Description Record a sale of a product, decrementing its stock. The sale is
// @Description appended to the tenant's audit chain; sales carrying a customer
// @Description email are flagged as sensitive.
// @Tags        sales
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateSaleRequest true "Sale details"
// @Success     201 {object} models.Sale "Sale recorded"
// @Failure     400 {object} ErrorResponse "Invalid input or unsupported channel"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Product not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /sales [post]
func (h *SaleHandler) CreateSale(c *gin.Context) {
	auth, err := getAuthContext(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	soldAt := time.Now()
	if req.SoldAt != nil && *req.SoldAt != "" {
		parsed, parseErr := parseFlexibleTime(*req.SoldAt)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		soldAt = parsed
	}

	channel := req.Channel
	if channel == "" {
		channel = models.SaleChannelDirect
	}

	var unitPrice int64
	if req.UnitPriceCents != nil {
		unitPrice = *req.UnitPriceCents
	}

	sale, err := h.saleService.CreateSale(
		auth.TenantID,
		auth.Email,
		req.ProductID,
		req.Quantity,
		unitPrice,
		channel,
		req.CustomerEmail,
		soldAt,
		req.Notes,
		requestContext(c),
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"sale": sale})
}

// GetSales handles the retrieval of the tenant's sales
// @Summary     List sales
// @Description Get a paginated list of the tenant's sales with optional filters
// @Tags        sales
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page       query int    false "Page number (default 1)"
// @Param       page_size  query int    false "Items per page (default 20, max 100)"
// @Param       from_date  query string false "Filter by start date (RFC3339 or YYYY-MM-DD)"
// @Param       to_date    query string false "Filter by end date (RFC3339 or YYYY-MM-DD)"
// @Param       channel    query string false "Filter by channel (direct, square, eventbrite)"
// @Param       product_id query string false "Filter by product ID"
// @Success     200 {object} pagination.PageResponse[models.Sale] "Paginated sales"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /sales [get]
func (h *SaleHandler) GetSales(c *gin.Context) {
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

	filter, err := parseSaleFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.saleService.GetTenantSales(auth.TenantID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseSaleFilter(c *gin.Context) (services.SaleFilter, error) {
	var filter services.SaleFilter

	if v := c.Query("from_date"); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid from_date format, use RFC3339 or YYYY-MM-DD")
		}
		filter.FromDate = &t
	}

	if v := c.Query("to_date"); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid to_date format, use RFC3339 or YYYY-MM-DD")
		}
		filter.ToDate = &t
	}

	if v := c.Query("channel"); v != "" {
		channel := models.SaleChannel(v)
		switch channel {
		case models.SaleChannelDirect, models.SaleChannelSquare, models.SaleChannelEventbrite:
			filter.Channel = &channel
		default:
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid channel, must be direct, square, or eventbrite")
		}
	}

	if v := c.Query("product_id"); v != "" {
		productID := v
		filter.ProductID = &productID
	}

	return filter, nil
}

// GetSaleByID handles the retrieval of a specific sale
// @Summary     Get sale by ID
// @Description Get a specific sale by ID
// @Tags        sales
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Sale ID"
// @Success     200 {object} models.Sale "Sale details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Sale not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /sales/{id} [get]
func (h *SaleHandler) GetSaleByID(c *gin.Context) {
	auth, err := getAuthContext(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	sale, err := h.saleService.GetSaleByID(auth.TenantID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sale": sale})
}

// DeleteSale handles the deletion of a sale
// @Summary     Delete sale
// @Description Delete a sale by ID. The deletion is recorded in the audit
// @Description chain as a sensitive action with a full before-state snapshot.
// @Tags        sales
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Sale ID"
// @Success     200 {object} MessageResponse "Sale deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Sale not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /sales/{id} [delete]
func (h *SaleHandler) DeleteSale(c *gin.Context) {
	auth, err := getAuthContext(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.saleService.DeleteSale(auth.TenantID, auth.Email, c.Param("id"), requestContext(c)); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sale deleted successfully"})
}

// ExportSales handles a bulk export of the tenant's sales
// @Summary     Export sales
// @Description Export every sale for the tenant. Because the export exposes
// @Description customer personal data in bulk, it records both an EXPORT entry
// @Description in the audit chain and a compliance access-log entry, and the
// @Description caller must state a purpose and legal basis.
// @Tags        sales
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ExportSalesRequest true "Export purpose and legal basis"
// @Success     200 {object} models.Sale "Exported sales"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /sales/export [post]
func (h *SaleHandler) ExportSales(c *gin.Context) {
	auth, err := getAuthContext(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExportSalesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	actor, err := h.userService.GetUserByID(auth.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	sales, err := h.saleService.ExportSales(auth.TenantID, actor, req.Purpose, req.LegalBasis, requestContext(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sales":       sales,
		"exported_at": time.Now().UTC(),
		"count":       len(sales),
	})
}
