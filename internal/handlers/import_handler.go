package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "homeledger/internal/errors"
	"homeledger/internal/importer"
	"homeledger/internal/logger"
	"homeledger/internal/services"
)

const uploadField = "file"

// ImportHandler handles bulk uploads of legacy ledger and asset sheets.
type ImportHandler struct {
	ledgerService  services.LedgerServicer
	assetService   services.AssetServicer
	maxUploadBytes int64
}

// NewImportHandler creates a new ImportHandler accepting files up to maxUploadMB.
func NewImportHandler(ledgerService services.LedgerServicer, assetService services.AssetServicer, maxUploadMB int64) *ImportHandler {
	return &ImportHandler{
		ledgerService:  ledgerService,
		assetService:   assetService,
		maxUploadBytes: maxUploadMB << 20,
	}
}

// readUpload reads the uploaded CSV or XLSX sheet into a table.
func (h *ImportHandler) readUpload(c *gin.Context) (*importer.Table, string, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	header, err := c.FormFile(uploadField)
	if err != nil {
		return nil, "", apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("a %s upload of at most %d MB is required", uploadField, h.maxUploadBytes>>20))
	}
	f, err := header.Open()
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrImportFailed, err)
	}
	defer f.Close()

	table, err := importer.Read(header.Filename, f)
	if err != nil {
		return nil, "", importError(header.Filename, err)
	}
	return table, header.Filename, nil
}

func importError(filename string, err error) error {
	logger.Get().Warnw("Import rejected", "file", filename, "error", err)
	return apperrors.WithMessage(apperrors.ErrImportFailed, fmt.Sprintf("%s: %v", filename, err))
}

// ImportTransactions appends an uploaded ledger sheet
// @Summary     Import transactions
// @Description Append rows from a CSV or XLSX ledger sheet with fresh ids. Any bad row rejects the whole file.
// @Tags        transactions
// @Accept      multipart/form-data
// @Produce     json
// @Param       file formData file true "CSV or XLSX sheet"
// @Success     200 {object} map[string]int
// @Failure     400 {object} ErrorResponse "Import failed"
// @Router      /transactions/import [post]
func (h *ImportHandler) ImportTransactions(c *gin.Context) {
	table, filename, err := h.readUpload(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	records, err := importer.Transactions(table)
	if err != nil {
		respondWithError(c, importError(filename, err))
		return
	}

	imported, err := h.ledgerService.Import(c.Request.Context(), records)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"imported": imported})
}

// ImportAssets appends an uploaded asset sheet
// @Summary     Import assets
// @Description Append rows from a CSV or XLSX asset sheet with fresh ids. Rows without a product name are skipped.
// @Tags        assets
// @Accept      multipart/form-data
// @Produce     json
// @Param       file formData file true "CSV or XLSX sheet"
// @Success     200 {object} map[string]int
// @Failure     400 {object} ErrorResponse "Import failed"
// @Router      /assets/import [post]
func (h *ImportHandler) ImportAssets(c *gin.Context) {
	table, filename, err := h.readUpload(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	records, err := importer.Assets(table)
	if err != nil {
		respondWithError(c, importError(filename, err))
		return
	}

	imported, err := h.assetService.Import(c.Request.Context(), records)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"imported": imported})
}
