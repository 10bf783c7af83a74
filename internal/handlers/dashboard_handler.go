package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"homeledger/internal/aggregate"
	"homeledger/internal/models"
	"homeledger/internal/services"
)

// DashboardHandler serves the landing page figures.
type DashboardHandler struct {
	reports      *ReportHandler
	assetService services.AssetServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(reports *ReportHandler, assetService services.AssetServicer) *DashboardHandler {
	return &DashboardHandler{reports: reports, assetService: assetService}
}

// DashboardResponse combines the current month, the all-time ledger totals
// and the asset register's daily cost.
type DashboardResponse struct {
	CurrentMonth      MonthResponse       `json:"current_month"`
	AllTime           aggregate.Totals    `json:"all_time"`
	AllTimeInBase     aggregate.Totals    `json:"all_time_in_base"`
	AssetDailyCost    aggregate.DailyCost `json:"asset_daily_cost"`
	AssetsInService   int                 `json:"assets_in_service"`
	TransactionsCount int                 `json:"transactions_count"`
}

// GetDashboard loads the ledger and the asset register concurrently
// @Summary     Dashboard
// @Tags        dashboard
// @Produce     json
// @Success     200 {object} DashboardResponse
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	var (
		records []models.Transaction
		assets  []models.Asset
	)

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		records, err = h.reports.ledgerService.List(ctx, aggregate.Criteria{})
		return err
	})
	g.Go(func() error {
		var err error
		assets, err = h.assetService.List(ctx, "")
		return err
	})
	if err := g.Wait(); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, DashboardResponse{
		CurrentMonth:      h.reports.currentMonth(records),
		AllTime:           aggregate.Sum(records),
		AllTimeInBase:     aggregate.SumInBase(records, h.reports.converter),
		AssetDailyCost:    aggregate.DailyCostByCurrency(assets, h.reports.converter),
		AssetsInService:   len(aggregate.FilterAssets(assets, models.AssetStatusInService)),
		TransactionsCount: len(records),
	})
}
