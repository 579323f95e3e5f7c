// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// validCurrencies contains the ISO 4217 currency codes accepted on products
// and sales.
var validCurrencies = map[string]bool{
	"AUD": true, "BRL": true, "CAD": true, "CHF": true, "CNY": true,
	"CZK": true, "DKK": true, "EUR": true, "GBP": true, "HKD": true,
	"HUF": true, "IDR": true, "ILS": true, "INR": true, "JPY": true,
	"KRW": true, "MXN": true, "MYR": true, "NOK": true, "NZD": true,
	"PHP": true, "PLN": true, "RON": true, "SEK": true, "SGD": true,
	"THB": true, "TRY": true, "TWD": true, "USD": true, "ZAR": true,
}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("iso4217", validateISO4217)
		_ = v.RegisterValidation("sale_channel", validateSaleChannel)
		_ = v.RegisterValidation("access_method", validateAccessMethod)
		_ = v.RegisterValidation("audit_action", validateAuditAction)
	}
}

func validateISO4217(fl validator.FieldLevel) bool {
	return validCurrencies[fl.Field().String()]
}

func validateSaleChannel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "direct", "square", "eventbrite":
		return true
	}
	return false
}

func validateAuditAction(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "CREATE", "UPDATE", "DELETE", "EXPORT", "LOGIN", "LOGOUT":
		return true
	}
	return false
}

func validateAccessMethod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "api_read", "export", "report", "support_lookup":
		return true
	}
	return false
}
