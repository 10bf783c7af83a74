// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"reflect"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"homeledger/internal/models"
)

// isoCurrencies contains the ISO 4217 codes accepted besides the selectable
// ledger currencies, so rates added through FX_RATES can be recorded.
var isoCurrencies = map[string]bool{
	"AUD": true, "CAD": true, "CHF": true, "CNY": true, "GBP": true,
	"HKD": true, "KRW": true, "MYR": true, "NZD": true, "PHP": true,
	"SGD": true, "THB": true, "VND": true,
}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn registers the custom validators on v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("category", validateCategory)
	_ = v.RegisterValidation("payment_method", validatePaymentMethod)
	_ = v.RegisterValidation("currency_code", validateCurrencyCode)
	_ = v.RegisterValidation("entry_kind", validateEntryKind)
	_ = v.RegisterValidation("asset_status", validateAssetStatus)
	_ = v.RegisterValidation("ratio_percent", validateRatioPercent)
}

func validateCategory(fl validator.FieldLevel) bool {
	return models.Category(fl.Field().String()).IsValid()
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	return models.PaymentMethod(fl.Field().String()).IsValid()
}

func validateCurrencyCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	return models.IsKnownCurrency(code) || isoCurrencies[code]
}

func validateEntryKind(fl validator.FieldLevel) bool {
	switch models.EntryKind(fl.Field().String()) {
	case models.EntryKindIncome, models.EntryKindExpense:
		return true
	}
	return false
}

func validateAssetStatus(fl validator.FieldLevel) bool {
	return models.AssetStatus(fl.Field().String()).IsValid()
}

func validateRatioPercent(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := fl.Field().Int()
		return n >= 0 && n <= 100
	}
	return false
}
