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

// TransactionHandler handles ledger requests.
type TransactionHandler struct {
	ledgerService services.LedgerServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ledgerService services.LedgerServicer) *TransactionHandler {
	return &TransactionHandler{ledgerService: ledgerService}
}

// CreateTransactionRequest is the ledger entry form. Amount is split into
// income or expense by kind.
type CreateTransactionRequest struct {
	Date          string               `json:"date"`
	Category      models.Category      `json:"category" binding:"required,category"`
	Subcategory   string               `json:"subcategory" binding:"max=64"`
	ItemName      string               `json:"item_name" binding:"max=200"`
	PaymentMethod models.PaymentMethod `json:"payment_method" binding:"omitempty,payment_method"`
	Currency      string               `json:"currency" binding:"omitempty,currency_code"`
	Kind          models.EntryKind     `json:"kind" binding:"required,entry_kind"`
	Amount        decimal.Decimal      `json:"amount" swaggertype:"number"`
	ExpenseRatio  *int                 `json:"expense_ratio" binding:"omitempty,ratio_percent"`
	Note          string               `json:"note" binding:"max=500"`
}

// TransactionPatchRequest carries the edited cells of one grid row. Omitted
// or null cells are left unchanged.
type TransactionPatchRequest struct {
	Date          *Cell `json:"date" swaggertype:"string"`
	Category      *Cell `json:"category" swaggertype:"string"`
	Subcategory   *Cell `json:"subcategory" swaggertype:"string"`
	ItemName      *Cell `json:"item_name" swaggertype:"string"`
	PaymentMethod *Cell `json:"payment_method" swaggertype:"string"`
	Currency      *Cell `json:"currency" swaggertype:"string"`
	IncomeAmount  *Cell `json:"income_amount" swaggertype:"string"`
	ExpenseAmount *Cell `json:"expense_amount" swaggertype:"string"`
	ExpenseRatio  *Cell `json:"expense_ratio" swaggertype:"string"`
	Note          *Cell `json:"note" swaggertype:"string"`
}

func (r TransactionPatchRequest) patch() services.TransactionPatch {
	return services.TransactionPatch{
		Date:          r.Date.text(),
		Category:      r.Category.text(),
		Subcategory:   r.Subcategory.text(),
		ItemName:      r.ItemName.text(),
		PaymentMethod: r.PaymentMethod.text(),
		Currency:      r.Currency.text(),
		IncomeAmount:  r.IncomeAmount.text(),
		ExpenseAmount: r.ExpenseAmount.text(),
		ExpenseRatio:  r.ExpenseRatio.text(),
		Note:          r.Note.text(),
	}
}

// TransactionBatchRow is one row of the edited ledger grid.
type TransactionBatchRow struct {
	ID     int64 `json:"id" binding:"required,gt=0"`
	Delete bool  `json:"delete"`
	TransactionPatchRequest
}

// TransactionBatchRequest is the whole edited ledger grid.
type TransactionBatchRequest struct {
	Rows []TransactionBatchRow `json:"rows" binding:"required,dive"`
}

// ListTransactionsQuery holds the ledger filter and paging parameters.
type ListTransactionsQuery struct {
	Categories     []string `form:"category" binding:"dive,category"`
	PaymentMethods []string `form:"payment_method" binding:"dive,payment_method"`
	Sort           string   `form:"sort" binding:"omitempty,oneof=date_desc"`
	pagination.PageRequest
}

// criteriaFromQuery reads the ledger filter shared by the list and report
// endpoints.
func criteriaFromQuery(c *gin.Context, q ListTransactionsQuery) (aggregate.Criteria, error) {
	from, err := parseQueryDate(c, "from_date")
	if err != nil {
		return aggregate.Criteria{}, err
	}
	to, err := parseQueryDate(c, "to_date")
	if err != nil {
		return aggregate.Criteria{}, err
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return aggregate.Criteria{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "to_date must not be before from_date")
	}
	criteria := aggregate.Criteria{From: from, To: to}
	for _, cat := range q.Categories {
		criteria.Categories = append(criteria.Categories, models.Category(cat))
	}
	for _, pm := range q.PaymentMethods {
		criteria.PaymentMethods = append(criteria.PaymentMethods, models.PaymentMethod(pm))
	}
	return criteria, nil
}

// CreateTransaction handles the ledger entry form
// @Summary     Add a transaction
// @Description Record an income or expense entry. Weekday and actual expense are derived.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body CreateTransactionRequest true "Entry"
// @Success     201 {object} models.Transaction
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	var date models.Date
	if req.Date != "" {
		parsed, err := models.ParseDate(req.Date)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidDate, "date must use the YYYY-MM-DD format"))
			return
		}
		date = parsed
	}

	transaction, err := h.ledgerService.Add(c.Request.Context(), services.TransactionDraft{
		Date:          date,
		Category:      req.Category,
		Subcategory:   req.Subcategory,
		ItemName:      req.ItemName,
		PaymentMethod: req.PaymentMethod,
		Currency:      req.Currency,
		Kind:          req.Kind,
		Amount:        req.Amount,
		ExpenseRatio:  req.ExpenseRatio,
		Note:          req.Note,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// ListTransactions lists ledger entries
// @Summary     List transactions
// @Description List ledger entries in entry order, optionally filtered, newest first, and paged
// @Tags        transactions
// @Produce     json
// @Param       from_date      query string false "Inclusive start date (YYYY-MM-DD)"
// @Param       to_date        query string false "Inclusive end date (YYYY-MM-DD)"
// @Param       category       query []string false "Category filter" collectionFormat(multi)
// @Param       payment_method query []string false "Payment method filter" collectionFormat(multi)
// @Param       sort           query string false "date_desc for newest first"
// @Param       page           query int false "Page number"
// @Param       page_size      query int false "Items per page"
// @Success     200 {object} pagination.PageResponse[models.Transaction]
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	var q ListTransactionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	criteria, err := criteriaFromQuery(c, q)
	if err != nil {
		respondWithError(c, err)
		return
	}

	records, err := h.ledgerService.List(c.Request.Context(), criteria)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if q.Sort == "date_desc" {
		records = aggregate.NewestFirst(records)
	}

	c.JSON(http.StatusOK, pagination.Paginate(records, q.PageRequest))
}

// GetTransaction returns one ledger entry
// @Summary     Get a transaction
// @Tags        transactions
// @Produce     json
// @Param       id path int true "Transaction ID"
// @Success     200 {object} models.Transaction
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.ledgerService.Get(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransaction applies one edited grid row
// @Summary     Edit a transaction
// @Description Apply edited cells; weekday and actual expense are re-derived
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id      path int                     true "Transaction ID"
// @Param       request body TransactionPatchRequest true "Edited cells"
// @Success     200 {object} models.Transaction
// @Failure     400 {object} ErrorResponse "Invalid cell"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	transaction, err := h.ledgerService.Update(c.Request.Context(), id, req.patch())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// BatchEditTransactions applies the whole edited grid
// @Summary     Save the edited ledger grid
// @Description Rows are applied independently; bad rows are reported and skipped, the rest are saved together
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body TransactionBatchRequest true "Edited rows"
// @Success     200 {object} services.BatchResult
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /transactions/batch [post]
func (h *TransactionHandler) BatchEditTransactions(c *gin.Context) {
	var req TransactionBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	rows := make([]services.BatchRow[services.TransactionPatch], 0, len(req.Rows))
	for _, r := range req.Rows {
		rows = append(rows, services.BatchRow[services.TransactionPatch]{
			ID:     r.ID,
			Delete: r.Delete,
			Patch:  r.patch(),
		})
	}

	result, err := h.ledgerService.BatchEdit(c.Request.Context(), rows)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteTransaction deletes one ledger entry
// @Summary     Delete a transaction
// @Tags        transactions
// @Produce     json
// @Param       id path int true "Transaction ID"
// @Success     200 {object} map[string]string
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.ledgerService.Delete(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}

// ClearTransactions deletes the whole ledger
// @Summary     Clear the ledger
// @Description Irreversibly delete every transaction; requires confirm=true
// @Tags        transactions
// @Produce     json
// @Param       confirm query bool true "Must be true"
// @Success     200 {object} map[string]int
// @Failure     400 {object} ErrorResponse "Confirmation missing"
// @Router      /transactions [delete]
func (h *TransactionHandler) ClearTransactions(c *gin.Context) {
	if err := requireConfirmation(c); err != nil {
		respondWithError(c, err)
		return
	}

	removed, err := h.ledgerService.Clear(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
