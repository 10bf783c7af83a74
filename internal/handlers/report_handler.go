package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homeledger/internal/aggregate"
	"homeledger/internal/models"
	"homeledger/internal/services"
)

// ReportHandler serves ledger roll-ups.
type ReportHandler struct {
	ledgerService services.LedgerServicer
	converter     aggregate.Converter
	baseCurrency  string
	clock         models.Clock
}

// NewReportHandler creates a new ReportHandler. A nil clock means the wall clock.
func NewReportHandler(ledgerService services.LedgerServicer, converter aggregate.Converter, baseCurrency string, clock models.Clock) *ReportHandler {
	if clock == nil {
		clock = models.SystemClock
	}
	return &ReportHandler{ledgerService: ledgerService, converter: converter, baseCurrency: baseCurrency, clock: clock}
}

// SummaryResponse is the filtered ledger total.
type SummaryResponse struct {
	Totals       aggregate.Totals `json:"totals"`
	TotalsInBase aggregate.Totals `json:"totals_in_base"`
	BaseCurrency string           `json:"base_currency"`
	FirstDate    models.Date      `json:"first_date" swaggertype:"string"`
	LastDate     models.Date      `json:"last_date" swaggertype:"string"`
}

// GroupsResponse is a grouped ledger roll-up, in native amounts and converted
// to the base currency.
type GroupsResponse struct {
	Groups       []aggregate.Group `json:"groups"`
	GroupsInBase []aggregate.Group `json:"groups_in_base"`
	BaseCurrency string            `json:"base_currency"`
}

// MonthResponse is the current calendar month's roll-up.
type MonthResponse struct {
	Month        string            `json:"month"`
	Totals       aggregate.Totals  `json:"totals"`
	TotalsInBase aggregate.Totals  `json:"totals_in_base"`
	ByCategory   []aggregate.Group `json:"by_category"`
	BaseCurrency string            `json:"base_currency"`
}

func (h *ReportHandler) filtered(c *gin.Context) ([]models.Transaction, error) {
	var q ListTransactionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return nil, bindError(err)
	}
	criteria, err := criteriaFromQuery(c, q)
	if err != nil {
		return nil, err
	}
	return h.ledgerService.List(c.Request.Context(), criteria)
}

// GetSummary totals the filtered ledger
// @Summary     Ledger totals
// @Description Income, actual expense and net for the filtered ledger, natively and in the base currency
// @Tags        reports
// @Produce     json
// @Param       from_date      query string false "Inclusive start date (YYYY-MM-DD)"
// @Param       to_date        query string false "Inclusive end date (YYYY-MM-DD)"
// @Param       category       query []string false "Category filter" collectionFormat(multi)
// @Param       payment_method query []string false "Payment method filter" collectionFormat(multi)
// @Success     200 {object} SummaryResponse
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Router      /reports/summary [get]
func (h *ReportHandler) GetSummary(c *gin.Context) {
	records, err := h.filtered(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	first, last := aggregate.DateBounds(records)
	c.JSON(http.StatusOK, SummaryResponse{
		Totals:       aggregate.Sum(records),
		TotalsInBase: aggregate.SumInBase(records, h.converter),
		BaseCurrency: h.baseCurrency,
		FirstDate:    first,
		LastDate:     last,
	})
}

// GetCurrentMonth rolls up the current calendar month
// @Summary     Current month
// @Tags        reports
// @Produce     json
// @Success     200 {object} MonthResponse
// @Router      /reports/current-month [get]
func (h *ReportHandler) GetCurrentMonth(c *gin.Context) {
	records, err := h.ledgerService.List(c.Request.Context(), aggregate.Criteria{})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.currentMonth(records))
}

func (h *ReportHandler) currentMonth(records []models.Transaction) MonthResponse {
	now := h.clock()
	month := aggregate.CurrentMonth(records, now)
	return MonthResponse{
		Month:        aggregate.MonthKey(models.DateOf(now)),
		Totals:       aggregate.Sum(month),
		TotalsInBase: aggregate.SumInBase(month, h.converter),
		ByCategory:   aggregate.GroupBy(month, aggregate.ByCategory),
		BaseCurrency: h.baseCurrency,
	}
}

// grouped returns a handler rolling the filtered ledger up by key.
func (h *ReportHandler) grouped(key aggregate.KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := h.filtered(c)
		if err != nil {
			respondWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, GroupsResponse{
			Groups:       aggregate.GroupBy(records, key),
			GroupsInBase: aggregate.GroupByInBase(records, key, h.converter),
			BaseCurrency: h.baseCurrency,
		})
	}
}

// GetMonthly rolls the filtered ledger up by month
// @Summary     Monthly totals
// @Tags        reports
// @Produce     json
// @Param       from_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param       to_date   query string false "Inclusive end date (YYYY-MM-DD)"
// @Success     200 {object} GroupsResponse
// @Router      /reports/monthly [get]
func (h *ReportHandler) GetMonthly(c *gin.Context) { h.grouped(aggregate.ByMonth)(c) }

// GetByCategory rolls the filtered ledger up by category
// @Summary     Totals by category
// @Tags        reports
// @Produce     json
// @Param       from_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param       to_date   query string false "Inclusive end date (YYYY-MM-DD)"
// @Success     200 {object} GroupsResponse
// @Router      /reports/by-category [get]
func (h *ReportHandler) GetByCategory(c *gin.Context) { h.grouped(aggregate.ByCategory)(c) }

// GetByCurrency rolls the filtered ledger up by currency
// @Summary     Totals by currency
// @Tags        reports
// @Produce     json
// @Param       from_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param       to_date   query string false "Inclusive end date (YYYY-MM-DD)"
// @Success     200 {object} GroupsResponse
// @Router      /reports/by-currency [get]
func (h *ReportHandler) GetByCurrency(c *gin.Context) { h.grouped(aggregate.ByCurrency)(c) }

// GetByPaymentMethod rolls the filtered ledger up by payment method
// @Summary     Totals by payment method
// @Tags        reports
// @Produce     json
// @Param       from_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param       to_date   query string false "Inclusive end date (YYYY-MM-DD)"
// @Success     200 {object} GroupsResponse
// @Router      /reports/by-payment-method [get]
func (h *ReportHandler) GetByPaymentMethod(c *gin.Context) { h.grouped(aggregate.ByPaymentMethod)(c) }
