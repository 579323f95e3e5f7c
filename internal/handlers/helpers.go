package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "marketbook/internal/errors"
	"marketbook/internal/ledger"
	"marketbook/internal/logger"
	"marketbook/internal/middleware"
)

// authContext holds the authenticated caller's identity extracted from the
// Gin context.
type authContext struct {
	UserID   string
	TenantID string
	Email    string
}

// getAuthContext extracts the authenticated caller from the Gin context.
// Returns ErrUnauthorized if the auth middleware did not run.
func getAuthContext(c *gin.Context) (*authContext, error) {
	userID, ok := c.Get("userID")
	if !ok {
		return nil, apperrors.ErrUnauthorized
	}
	tenantID, ok := c.Get("tenantID")
	if !ok {
		return nil, apperrors.ErrUnauthorized
	}
	return &authContext{
		UserID:   userID.(string),
		TenantID: tenantID.(string),
		Email:    c.GetString("email"),
	}, nil
}

// requestContext builds the audit request context for the current request.
func requestContext(c *gin.Context) *ledger.RequestContext {
	return &ledger.RequestContext{
		SourceIP:      c.ClientIP(),
		Method:        c.Request.Method,
		Path:          c.Request.URL.Path,
		CorrelationID: c.GetString(middleware.RequestIDKey),
	}
}

// parseFlexibleTime parses a timestamp in RFC3339 or YYYY-MM-DD form.
func parseFlexibleTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q, use RFC3339 or YYYY-MM-DD", value)
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}
