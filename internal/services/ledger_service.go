package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"homeledger/internal/aggregate"
	apperrors "homeledger/internal/errors"
	"homeledger/internal/logger"
	"homeledger/internal/models"
	"homeledger/internal/storage"
)

const resourceTransaction = "transaction"

// ledgerService owns the transaction collection. Every operation loads the
// whole collection, changes it and saves it back while holding mu.
type ledgerService struct {
	mu    sync.Mutex
	repo  storage.TransactionRepository
	clock models.Clock
	audit AuditServicer
}

// NewLedgerService creates a new LedgerServicer. A nil clock means the wall
// clock; a nil audit disables audit logging.
func NewLedgerService(repo storage.TransactionRepository, clock models.Clock, audit AuditServicer) LedgerServicer {
	if clock == nil {
		clock = models.SystemClock
	}
	if audit == nil {
		audit = nopAudit{}
	}
	return &ledgerService{repo: repo, clock: clock, audit: audit}
}

func (s *ledgerService) load(ctx context.Context) ([]models.Transaction, error) {
	records, err := s.repo.LoadTransactions(ctx)
	if err != nil {
		return nil, persistenceError(err)
	}
	return records, nil
}

func (s *ledgerService) save(ctx context.Context, records []models.Transaction) error {
	if err := s.repo.SaveTransactions(ctx, records); err != nil {
		return persistenceError(err)
	}
	return nil
}

// Add validates a form entry, derives its weekday and actual expense, and
// appends it with the next id.
func (s *ledgerService) Add(ctx context.Context, draft TransactionDraft) (*models.Transaction, error) {
	if draft.Kind != models.EntryKindIncome && draft.Kind != models.EntryKindExpense {
		return nil, apperrors.ErrInvalidEntryKind
	}
	if !draft.Amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount, "amount must be greater than zero")
	}
	item := strings.TrimSpace(draft.ItemName)
	if item == "" {
		return nil, apperrors.WithMessage(apperrors.ErrMissingField, "item_name is required")
	}
	ratio := models.FullRatio
	if draft.ExpenseRatio != nil {
		ratio = *draft.ExpenseRatio
		if err := checkRatio("expense_ratio", ratio); err != nil {
			return nil, err
		}
	}
	date := draft.Date
	if date.IsZero() {
		date = models.DateOf(s.clock())
	}

	record := models.Transaction{
		Date:          date,
		Category:      draft.Category,
		Subcategory:   strings.TrimSpace(draft.Subcategory),
		ItemName:      item,
		PaymentMethod: draft.PaymentMethod,
		Currency:      currencyOrDefault(draft.Currency),
		ExpenseRatio:  ratio,
		Note:          draft.Note,
	}
	if draft.Kind == models.EntryKindIncome {
		record.IncomeAmount = draft.Amount
	} else {
		record.ExpenseAmount = draft.Amount
	}
	record.Derive()

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	record.ID = models.NextID(transactionIDs(records))
	records = append(records, record)
	if err := s.save(ctx, records); err != nil {
		return nil, err
	}

	s.audit.Log("add", resourceTransaction, record.ID, map[string]any{
		"kind":   draft.Kind,
		"amount": draft.Amount.String(),
	})
	return &record, nil
}

// Get returns a copy of the transaction with the given id.
func (s *ledgerService) Get(ctx context.Context, id int64) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	i := findTransaction(records, id)
	if i < 0 {
		return nil, apperrors.ErrTransactionNotFound
	}
	record := records[i]
	return &record, nil
}

// Update applies an edited grid row to one transaction and re-derives it.
func (s *ledgerService) Update(ctx context.Context, id int64, patch TransactionPatch) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	i := findTransaction(records, id)
	if i < 0 {
		return nil, apperrors.ErrTransactionNotFound
	}
	updated, err := applyTransactionPatch(records[i], patch)
	if err != nil {
		return nil, err
	}
	records[i] = updated
	if err := s.save(ctx, records); err != nil {
		return nil, err
	}

	s.audit.Log("update", resourceTransaction, id, nil)
	return &updated, nil
}

// BatchEdit applies a grid's worth of edits and deletes. Bad rows are
// reported and skipped; every other row is committed in a single save.
func (s *ledgerService) BatchEdit(ctx context.Context, rows []BatchRow[TransactionPatch]) (*BatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{Updated: []int64{}, Deleted: []int64{}, Rejected: []BatchRejection{}}
	deleted := make(map[int64]bool)
	for n, row := range rows {
		i := findTransaction(records, row.ID)
		if i < 0 || deleted[row.ID] {
			result.Rejected = append(result.Rejected, rejection(n, row.ID, apperrors.ErrTransactionNotFound))
			continue
		}
		if row.Delete {
			deleted[row.ID] = true
			result.Deleted = append(result.Deleted, row.ID)
			continue
		}
		updated, err := applyTransactionPatch(records[i], row.Patch)
		if err != nil {
			result.Rejected = append(result.Rejected, rejection(n, row.ID, err))
			continue
		}
		records[i] = updated
		result.Updated = append(result.Updated, row.ID)
	}

	if len(result.Updated) > 0 || len(result.Deleted) > 0 {
		kept := records[:0]
		for _, r := range records {
			if !deleted[r.ID] {
				kept = append(kept, r)
			}
		}
		if err := s.save(ctx, kept); err != nil {
			return nil, err
		}
	}

	if len(result.Rejected) > 0 {
		logger.Get().Warnw("Batch edit rows rejected",
			"resource_type", resourceTransaction,
			"rejected", len(result.Rejected),
			"committed", len(result.Updated)+len(result.Deleted),
		)
	}
	s.audit.Log("batch_edit", resourceTransaction, 0, map[string]any{
		"updated":  len(result.Updated),
		"deleted":  len(result.Deleted),
		"rejected": len(result.Rejected),
	})
	return result, nil
}

// Delete removes the transaction with the given id.
func (s *ledgerService) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return err
	}
	i := findTransaction(records, id)
	if i < 0 {
		return apperrors.ErrTransactionNotFound
	}
	records = append(records[:i], records[i+1:]...)
	if err := s.save(ctx, records); err != nil {
		return err
	}

	s.audit.Log("delete", resourceTransaction, id, nil)
	return nil
}

// List returns copies of the transactions matching criteria, in collection
// order.
func (s *ledgerService) List(ctx context.Context, criteria aggregate.Criteria) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.Filter(records, criteria), nil
}

// Clear deletes every transaction and reports how many were removed.
func (s *ledgerService) Clear(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.save(ctx, []models.Transaction{}); err != nil {
		return 0, err
	}

	s.audit.Log("clear", resourceTransaction, 0, map[string]any{"removed": len(records)})
	return len(records), nil
}

// Import appends records with fresh ids after the current maximum. Weekday
// and actual expense are recomputed. Nothing is written unless every record
// is appended.
func (s *ledgerService) Import(ctx context.Context, incoming []models.Transaction) (int, error) {
	if len(incoming) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	next := models.NextID(transactionIDs(records))
	for j, r := range incoming {
		if err := checkRatio("expense_ratio", r.ExpenseRatio); err != nil {
			return 0, apperrors.WithMessage(apperrors.ErrImportFailed, fmt.Sprintf("record %d: %s", j+1, err))
		}
		r.ID = next
		r.Currency = currencyOrDefault(r.Currency)
		r.Derive()
		records = append(records, r)
		next++
	}
	if err := s.save(ctx, records); err != nil {
		return 0, err
	}

	s.audit.Log("import", resourceTransaction, 0, map[string]any{"imported": len(incoming)})
	return len(incoming), nil
}

func applyTransactionPatch(t models.Transaction, p TransactionPatch) (models.Transaction, error) {
	if p.Date != nil {
		d, err := parseCellDate("date", *p.Date)
		if err != nil {
			return t, err
		}
		t.Date = d
	}
	if p.IncomeAmount != nil {
		v, err := parseCellAmount("income_amount", *p.IncomeAmount)
		if err != nil {
			return t, err
		}
		t.IncomeAmount = v
	}
	if p.ExpenseAmount != nil {
		v, err := parseCellAmount("expense_amount", *p.ExpenseAmount)
		if err != nil {
			return t, err
		}
		t.ExpenseAmount = v
	}
	if p.ExpenseRatio != nil {
		v, err := parseCellRatio("expense_ratio", *p.ExpenseRatio)
		if err != nil {
			return t, err
		}
		t.ExpenseRatio = v
	}
	if p.ItemName != nil {
		item := strings.TrimSpace(*p.ItemName)
		if item == "" {
			return t, apperrors.WithMessage(apperrors.ErrMissingField, "item_name is required")
		}
		t.ItemName = item
	}
	if p.Category != nil {
		t.Category = models.Category(strings.TrimSpace(*p.Category))
	}
	if p.Subcategory != nil {
		t.Subcategory = strings.TrimSpace(*p.Subcategory)
	}
	if p.PaymentMethod != nil {
		t.PaymentMethod = models.PaymentMethod(strings.TrimSpace(*p.PaymentMethod))
	}
	if p.Currency != nil {
		t.Currency = currencyOrDefault(*p.Currency)
	}
	if p.Note != nil {
		t.Note = *p.Note
	}
	t.Derive()
	return t, nil
}

func findTransaction(records []models.Transaction, id int64) int {
	for i := range records {
		if records[i].ID == id {
			return i
		}
	}
	return -1
}

func transactionIDs(records []models.Transaction) []int64 {
	ids := make([]int64, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}

// rejection builds the report for batch row n (0-based) from err.
func rejection(n int, id int64, err error) BatchRejection {
	return BatchRejection{
		Row:     n + 1,
		ID:      id,
		Code:    apperrors.Code(err),
		Message: err.Error(),
	}
}
