package services

import (
	"context"
	"strings"
	"sync"

	"homeledger/internal/aggregate"
	apperrors "homeledger/internal/errors"
	"homeledger/internal/logger"
	"homeledger/internal/models"
	"homeledger/internal/storage"
)

const resourceAsset = "asset"

// assetService owns the fixed-asset register. Holding days and daily cost
// are recomputed against the clock on every read and before every save.
type assetService struct {
	mu    sync.Mutex
	repo  storage.AssetRepository
	clock models.Clock
	audit AuditServicer
}

// NewAssetService creates a new AssetServicer. A nil clock means the wall
// clock; a nil audit disables audit logging.
func NewAssetService(repo storage.AssetRepository, clock models.Clock, audit AuditServicer) AssetServicer {
	if clock == nil {
		clock = models.SystemClock
	}
	if audit == nil {
		audit = nopAudit{}
	}
	return &assetService{repo: repo, clock: clock, audit: audit}
}

// load returns the register amortized as of today.
func (s *assetService) load(ctx context.Context) ([]models.Asset, error) {
	records, err := s.repo.LoadAssets(ctx)
	if err != nil {
		return nil, persistenceError(err)
	}
	now := s.clock()
	for i := range records {
		records[i] = models.Amortize(records[i], now)
	}
	return records, nil
}

func (s *assetService) save(ctx context.Context, records []models.Asset) error {
	now := s.clock()
	for i := range records {
		records[i] = models.Amortize(records[i], now)
	}
	if err := s.repo.SaveAssets(ctx, records); err != nil {
		return persistenceError(err)
	}
	return nil
}

// Add registers a new asset. Zero-cost assets are allowed.
func (s *assetService) Add(ctx context.Context, draft AssetDraft) (*models.Asset, error) {
	if draft.Amount.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount, "amount must not be negative")
	}
	name := strings.TrimSpace(draft.ProductName)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrMissingField, "product_name is required")
	}
	status := draft.Status
	if status == "" {
		status = models.AssetStatusInService
	}
	purchase := draft.PurchaseDate
	if purchase.IsZero() {
		purchase = models.DateOf(s.clock())
	}

	record := models.Asset{
		Category:     strings.TrimSpace(draft.Category),
		Subcategory:  strings.TrimSpace(draft.Subcategory),
		ProductName:  name,
		BrandModel:   strings.TrimSpace(draft.BrandModel),
		PurchaseDate: purchase,
		Currency:     currencyOrDefault(draft.Currency),
		Amount:       draft.Amount,
		Status:       status,
		Location:     strings.TrimSpace(draft.Location),
		Note:         draft.Note,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	record.ID = models.NextID(assetIDs(records))
	record = models.Amortize(record, s.clock())
	records = append(records, record)
	if err := s.save(ctx, records); err != nil {
		return nil, err
	}

	s.audit.Log("add", resourceAsset, record.ID, map[string]any{"amount": draft.Amount.String()})
	return &record, nil
}

// Get returns the asset with the given id, amortized as of today.
func (s *assetService) Get(ctx context.Context, id int64) (*models.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	i := findAsset(records, id)
	if i < 0 {
		return nil, apperrors.ErrAssetNotFound
	}
	record := records[i]
	return &record, nil
}

// Update applies an edited grid row to one asset.
func (s *assetService) Update(ctx context.Context, id int64, patch AssetPatch) (*models.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	i := findAsset(records, id)
	if i < 0 {
		return nil, apperrors.ErrAssetNotFound
	}
	updated, err := s.applyPatch(records[i], patch)
	if err != nil {
		return nil, err
	}
	records[i] = updated
	if err := s.save(ctx, records); err != nil {
		return nil, err
	}

	s.audit.Log("update", resourceAsset, id, nil)
	updated = records[i]
	return &updated, nil
}

// BatchEdit applies a grid's worth of asset edits and deletes, skipping and
// reporting bad rows.
func (s *assetService) BatchEdit(ctx context.Context, rows []BatchRow[AssetPatch]) (*BatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{Updated: []int64{}, Deleted: []int64{}, Rejected: []BatchRejection{}}
	deleted := make(map[int64]bool)
	for n, row := range rows {
		i := findAsset(records, row.ID)
		if i < 0 || deleted[row.ID] {
			result.Rejected = append(result.Rejected, rejection(n, row.ID, apperrors.ErrAssetNotFound))
			continue
		}
		if row.Delete {
			deleted[row.ID] = true
			result.Deleted = append(result.Deleted, row.ID)
			continue
		}
		updated, err := s.applyPatch(records[i], row.Patch)
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
			"resource_type", resourceAsset,
			"rejected", len(result.Rejected),
			"committed", len(result.Updated)+len(result.Deleted),
		)
	}
	s.audit.Log("batch_edit", resourceAsset, 0, map[string]any{
		"updated":  len(result.Updated),
		"deleted":  len(result.Deleted),
		"rejected": len(result.Rejected),
	})
	return result, nil
}

// Delete removes the asset with the given id.
func (s *assetService) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return err
	}
	i := findAsset(records, id)
	if i < 0 {
		return apperrors.ErrAssetNotFound
	}
	records = append(records[:i], records[i+1:]...)
	if err := s.save(ctx, records); err != nil {
		return err
	}

	s.audit.Log("delete", resourceAsset, id, nil)
	return nil
}

// List returns the register amortized as of today, optionally narrowed to
// one status.
func (s *assetService) List(ctx context.Context, status models.AssetStatus) ([]models.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.FilterAssets(records, status), nil
}

// Clear deletes every asset and reports how many were removed.
func (s *assetService) Clear(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.save(ctx, []models.Asset{}); err != nil {
		return 0, err
	}

	s.audit.Log("clear", resourceAsset, 0, map[string]any{"removed": len(records)})
	return len(records), nil
}

// Import appends records with fresh ids after the current maximum. Records
// without a product name are skipped.
func (s *assetService) Import(ctx context.Context, incoming []models.Asset) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	next := models.NextID(assetIDs(records))
	imported := 0
	for _, a := range incoming {
		a.ProductName = strings.TrimSpace(a.ProductName)
		if a.ProductName == "" {
			continue
		}
		a.ID = next
		a.Currency = currencyOrDefault(a.Currency)
		if a.Status == "" {
			a.Status = models.AssetStatusInService
		}
		records = append(records, a)
		next++
		imported++
	}
	if imported == 0 {
		return 0, nil
	}
	if err := s.save(ctx, records); err != nil {
		return 0, err
	}

	s.audit.Log("import", resourceAsset, 0, map[string]any{"imported": imported})
	return imported, nil
}

func (s *assetService) applyPatch(a models.Asset, p AssetPatch) (models.Asset, error) {
	if p.Amount != nil {
		v, err := parseCellAmount("amount", *p.Amount)
		if err != nil {
			return a, err
		}
		a.Amount = v
	}
	if p.ProductName != nil {
		name := strings.TrimSpace(*p.ProductName)
		if name == "" {
			return a, apperrors.WithMessage(apperrors.ErrMissingField, "product_name is required")
		}
		a.ProductName = name
	}
	if p.PurchaseDate != nil {
		if d, err := models.ParseDate(*p.PurchaseDate); err == nil {
			a.PurchaseDate = d
		} else {
			logger.Get().Infow("Ignoring unreadable purchase date",
				"resource_id", a.ID, "value", *p.PurchaseDate)
		}
	}
	if p.Category != nil {
		a.Category = strings.TrimSpace(*p.Category)
	}
	if p.Subcategory != nil {
		a.Subcategory = strings.TrimSpace(*p.Subcategory)
	}
	if p.BrandModel != nil {
		a.BrandModel = strings.TrimSpace(*p.BrandModel)
	}
	if p.Currency != nil {
		a.Currency = currencyOrDefault(*p.Currency)
	}
	if p.Status != nil {
		a.Status = models.AssetStatus(strings.TrimSpace(*p.Status))
	}
	if p.Location != nil {
		a.Location = strings.TrimSpace(*p.Location)
	}
	if p.Note != nil {
		a.Note = *p.Note
	}
	return models.Amortize(a, s.clock()), nil
}

func findAsset(records []models.Asset, id int64) int {
	for i := range records {
		if records[i].ID == id {
			return i
		}
	}
	return -1
}

func assetIDs(records []models.Asset) []int64 {
	ids := make([]int64, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}
