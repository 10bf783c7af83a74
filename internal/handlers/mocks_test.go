package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"homeledger/internal/aggregate"
	"homeledger/internal/models"
	"homeledger/internal/services"
	"homeledger/internal/validator"
)

// --- mock services ---

type mockLedgerService struct {
	addFn       func(draft services.TransactionDraft) (*models.Transaction, error)
	getFn       func(id int64) (*models.Transaction, error)
	updateFn    func(id int64, patch services.TransactionPatch) (*models.Transaction, error)
	batchEditFn func(rows []services.BatchRow[services.TransactionPatch]) (*services.BatchResult, error)
	deleteFn    func(id int64) error
	listFn      func(criteria aggregate.Criteria) ([]models.Transaction, error)
	clearFn     func() (int, error)
	importFn    func(records []models.Transaction) (int, error)
}

func (m *mockLedgerService) Add(_ context.Context, draft services.TransactionDraft) (*models.Transaction, error) {
	if m.addFn != nil {
		return m.addFn(draft)
	}
	return &models.Transaction{}, nil
}

func (m *mockLedgerService) Get(_ context.Context, id int64) (*models.Transaction, error) {
	if m.getFn != nil {
		return m.getFn(id)
	}
	return &models.Transaction{}, nil
}

func (m *mockLedgerService) Update(_ context.Context, id int64, patch services.TransactionPatch) (*models.Transaction, error) {
	if m.updateFn != nil {
		return m.updateFn(id, patch)
	}
	return &models.Transaction{}, nil
}

func (m *mockLedgerService) BatchEdit(_ context.Context, rows []services.BatchRow[services.TransactionPatch]) (*services.BatchResult, error) {
	if m.batchEditFn != nil {
		return m.batchEditFn(rows)
	}
	return &services.BatchResult{}, nil
}

func (m *mockLedgerService) Delete(_ context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return nil
}

func (m *mockLedgerService) List(_ context.Context, criteria aggregate.Criteria) ([]models.Transaction, error) {
	if m.listFn != nil {
		return m.listFn(criteria)
	}
	return []models.Transaction{}, nil
}

func (m *mockLedgerService) Clear(_ context.Context) (int, error) {
	if m.clearFn != nil {
		return m.clearFn()
	}
	return 0, nil
}

func (m *mockLedgerService) Import(_ context.Context, records []models.Transaction) (int, error) {
	if m.importFn != nil {
		return m.importFn(records)
	}
	return len(records), nil
}

var _ services.LedgerServicer = (*mockLedgerService)(nil)

type mockAssetService struct {
	addFn       func(draft services.AssetDraft) (*models.Asset, error)
	getFn       func(id int64) (*models.Asset, error)
	updateFn    func(id int64, patch services.AssetPatch) (*models.Asset, error)
	batchEditFn func(rows []services.BatchRow[services.AssetPatch]) (*services.BatchResult, error)
	deleteFn    func(id int64) error
	listFn      func(status models.AssetStatus) ([]models.Asset, error)
	clearFn     func() (int, error)
	importFn    func(records []models.Asset) (int, error)
}

func (m *mockAssetService) Add(_ context.Context, draft services.AssetDraft) (*models.Asset, error) {
	if m.addFn != nil {
		return m.addFn(draft)
	}
	return &models.Asset{}, nil
}

func (m *mockAssetService) Get(_ context.Context, id int64) (*models.Asset, error) {
	if m.getFn != nil {
		return m.getFn(id)
	}
	return &models.Asset{}, nil
}

func (m *mockAssetService) Update(_ context.Context, id int64, patch services.AssetPatch) (*models.Asset, error) {
	if m.updateFn != nil {
		return m.updateFn(id, patch)
	}
	return &models.Asset{}, nil
}

func (m *mockAssetService) BatchEdit(_ context.Context, rows []services.BatchRow[services.AssetPatch]) (*services.BatchResult, error) {
	if m.batchEditFn != nil {
		return m.batchEditFn(rows)
	}
	return &services.BatchResult{}, nil
}

func (m *mockAssetService) Delete(_ context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return nil
}

func (m *mockAssetService) List(_ context.Context, status models.AssetStatus) ([]models.Asset, error) {
	if m.listFn != nil {
		return m.listFn(status)
	}
	return []models.Asset{}, nil
}

func (m *mockAssetService) Clear(_ context.Context) (int, error) {
	if m.clearFn != nil {
		return m.clearFn()
	}
	return 0, nil
}

func (m *mockAssetService) Import(_ context.Context, records []models.Asset) (int, error) {
	if m.importFn != nil {
		return m.importFn(records)
	}
	return len(records), nil
}

var _ services.AssetServicer = (*mockAssetService)(nil)

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}
