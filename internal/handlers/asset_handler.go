package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"homeledger/internal/aggregate"
	apperrors "homeledger/internal/errors"
	"homeledger/internal/models"
	"homeledger/internal/pagination"
	"homeledger/internal/services"
)

// AssetHandler handles fixed-asset register requests.
type AssetHandler struct {
	assetService services.AssetServicer
	converter    aggregate.Converter
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetService services.AssetServicer, converter aggregate.Converter) *AssetHandler {
	return &AssetHandler{assetService: assetService, converter: converter}
}

// CreateAssetRequest is the asset entry form.
type CreateAssetRequest struct {
	Category     string             `json:"category" binding:"max=32"`
	Subcategory  string             `json:"subcategory" binding:"max=64"`
	ProductName  string             `json:"product_name" binding:"max=200"`
	BrandModel   string             `json:"brand_model" binding:"max=200"`
	PurchaseDate string             `json:"purchase_date"`
	Currency     string             `json:"currency" binding:"omitempty,currency_code"`
	Amount       decimal.Decimal    `json:"amount" swaggertype:"number"`
	Status       models.AssetStatus `json:"status" binding:"omitempty,asset_status"`
	Location     string             `json:"location" binding:"max=200"`
	Note         string             `json:"note" binding:"max=500"`
}

// AssetPatchRequest carries the edited cells of one asset grid row.
type AssetPatchRequest struct {
	Category     *Cell `json:"category" swaggertype:"string"`
	Subcategory  *Cell `json:"subcategory" swaggertype:"string"`
	ProductName  *Cell `json:"product_name" swaggertype:"string"`
	BrandModel   *Cell `json:"brand_model" swaggertype:"string"`
	PurchaseDate *Cell `json:"purchase_date" swaggertype:"string"`
	Currency     *Cell `json:"currency" swaggertype:"string"`
	Amount       *Cell `json:"amount" swaggertype:"string"`
	Status       *Cell `json:"status" swaggertype:"string"`
	Location     *Cell `json:"location" swaggertype:"string"`
	Note         *Cell `json:"note" swaggertype:"string"`
}

func (r AssetPatchRequest) patch() services.AssetPatch {
	return services.AssetPatch{
		Category:     r.Category.text(),
		Subcategory:  r.Subcategory.text(),
		ProductName:  r.ProductName.text(),
		BrandModel:   r.BrandModel.text(),
		PurchaseDate: r.PurchaseDate.text(),
		Currency:     r.Currency.text(),
		Amount:       r.Amount.text(),
		Status:       r.Status.text(),
		Location:     r.Location.text(),
		Note:         r.Note.text(),
	}
}

// AssetBatchRow is one row of the edited asset grid.
type AssetBatchRow struct {
	ID     int64 `json:"id" binding:"required,gt=0"`
	Delete bool  `json:"delete"`
	AssetPatchRequest
}

// AssetBatchRequest is the whole edited asset grid.
type AssetBatchRequest struct {
	Rows []AssetBatchRow `json:"rows" binding:"required,dive"`
}

// ListAssetsQuery holds the asset filter and paging parameters.
type ListAssetsQuery struct {
	Status string `form:"status" binding:"omitempty,asset_status"`
	pagination.PageRequest
}

// CreateAsset handles the asset entry form
// @Summary     Add an asset
// @Description Register a fixed asset. Holding days and daily cost are derived.
// @Tags        assets
// @Accept      json
// @Produce     json
// @Param       request body CreateAssetRequest true "Asset"
// @Success     201 {object} models.Asset
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /assets [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	var purchase models.Date
	if req.PurchaseDate != "" {
		parsed, err := models.ParseDate(req.PurchaseDate)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidDate, "purchase_date must use the YYYY-MM-DD format"))
			return
		}
		purchase = parsed
	}

	asset, err := h.assetService.Add(c.Request.Context(), services.AssetDraft{
		Category:     req.Category,
		Subcategory:  req.Subcategory,
		ProductName:  req.ProductName,
		BrandModel:   req.BrandModel,
		PurchaseDate: purchase,
		Currency:     req.Currency,
		Amount:       req.Amount,
		Status:       req.Status,
		Location:     req.Location,
		Note:         req.Note,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"asset": asset})
}

// ListAssets lists the asset register
// @Summary     List assets
// @Description List assets with holding days and daily cost recomputed as of today
// @Tags        assets
// @Produce     json
// @Param       status    query string false "服役中 or 已除役"
// @Param       page      query int    false "Page number"
// @Param       page_size query int    false "Items per page"
// @Success     200 {object} pagination.PageResponse[models.Asset]
// @Router      /assets [get]
func (h *AssetHandler) ListAssets(c *gin.Context) {
	var q ListAssetsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	assets, err := h.assetService.List(c.Request.Context(), models.AssetStatus(q.Status))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, pagination.Paginate(assets, q.PageRequest))
}

// GetAsset returns one asset
// @Summary     Get an asset
// @Tags        assets
// @Produce     json
// @Param       id path int true "Asset ID"
// @Success     200 {object} models.Asset
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /assets/{id} [get]
func (h *AssetHandler) GetAsset(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	asset, err := h.assetService.Get(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// UpdateAsset applies one edited asset grid row
// @Summary     Edit an asset
// @Tags        assets
// @Accept      json
// @Produce     json
// @Param       id      path int               true "Asset ID"
// @Param       request body AssetPatchRequest true "Edited cells"
// @Success     200 {object} models.Asset
// @Failure     400 {object} ErrorResponse "Invalid cell"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /assets/{id} [put]
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AssetPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	asset, err := h.assetService.Update(c.Request.Context(), id, req.patch())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// BatchEditAssets applies the whole edited asset grid
// @Summary     Save the edited asset grid
// @Tags        assets
// @Accept      json
// @Produce     json
// @Param       request body AssetBatchRequest true "Edited rows"
// @Success     200 {object} services.BatchResult
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /assets/batch [post]
func (h *AssetHandler) BatchEditAssets(c *gin.Context) {
	var req AssetBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	rows := make([]services.BatchRow[services.AssetPatch], 0, len(req.Rows))
	for _, r := range req.Rows {
		rows = append(rows, services.BatchRow[services.AssetPatch]{
			ID:     r.ID,
			Delete: r.Delete,
			Patch:  r.patch(),
		})
	}

	result, err := h.assetService.BatchEdit(c.Request.Context(), rows)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteAsset deletes one asset
// @Summary     Delete an asset
// @Tags        assets
// @Produce     json
// @Param       id path int true "Asset ID"
// @Success     200 {object} map[string]string
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /assets/{id} [delete]
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.assetService.Delete(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset deleted successfully"})
}

// ClearAssets deletes the whole register
// @Summary     Clear the asset register
// @Tags        assets
// @Produce     json
// @Param       confirm query bool true "Must be true"
// @Success     200 {object} map[string]int
// @Failure     400 {object} ErrorResponse "Confirmation missing"
// @Router      /assets [delete]
func (h *AssetHandler) ClearAssets(c *gin.Context) {
	if err := requireConfirmation(c); err != nil {
		respondWithError(c, err)
		return
	}

	removed, err := h.assetService.Clear(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// GetDailyCost sums the daily amortized cost in the base currency
// @Summary     Daily amortized cost
// @Description Each asset's daily cost converted to the base currency and rounded to 2 places, summed per currency and overall
// @Tags        assets
// @Produce     json
// @Param       status query string false "服役中 or 已除役"
// @Success     200 {object} aggregate.DailyCost
// @Router      /assets/daily-cost [get]
func (h *AssetHandler) GetDailyCost(c *gin.Context) {
	var q ListAssetsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	assets, err := h.assetService.List(c.Request.Context(), models.AssetStatus(q.Status))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, aggregate.DailyCostByCurrency(assets, h.converter))
}
