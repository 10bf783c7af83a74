package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"homeledger/internal/currency"
	"homeledger/internal/models"
)

// ReferenceHandler publishes the fixed option lists the entry forms offer.
type ReferenceHandler struct {
	converter *currency.Converter
}

// NewReferenceHandler creates a new ReferenceHandler.
func NewReferenceHandler(converter *currency.Converter) *ReferenceHandler {
	return &ReferenceHandler{converter: converter}
}

// ReferenceResponse lists the form options.
type ReferenceResponse struct {
	Categories     []models.Category            `json:"categories"`
	Subcategories  map[models.Category][]string `json:"subcategories"`
	PaymentMethods []models.PaymentMethod       `json:"payment_methods"`
	Currencies     []string                     `json:"currencies"`
	AssetStatuses  []models.AssetStatus         `json:"asset_statuses"`
	Weekdays       []string                     `json:"weekdays"`
	BaseCurrency   string                       `json:"base_currency"`
	Rates          map[string]decimal.Decimal   `json:"rates" swaggertype:"object"`
}

// GetReference returns the form option lists
// @Summary     Form options
// @Description Categories, suggested subcategories, payment methods, currencies, asset statuses and exchange rates
// @Tags        reference
// @Produce     json
// @Success     200 {object} ReferenceResponse
// @Router      /reference [get]
func (h *ReferenceHandler) GetReference(c *gin.Context) {
	c.JSON(http.StatusOK, ReferenceResponse{
		Categories:     models.Categories,
		Subcategories:  models.Subcategories,
		PaymentMethods: models.PaymentMethods,
		Currencies:     models.Currencies,
		AssetStatuses:  models.AssetStatuses,
		Weekdays:       models.WeekdayLabels,
		BaseCurrency:   h.converter.Base(),
		Rates:          h.converter.Rates(),
	})
}
