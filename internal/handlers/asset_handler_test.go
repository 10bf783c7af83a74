package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"homeledger/internal/currency"
	apperrors "homeledger/internal/errors"
	"homeledger/internal/models"
	"homeledger/internal/services"
	"homeledger/internal/testutil"
)

func setupAssetRouter(handler *AssetHandler) *gin.Engine {
	r := gin.New()
	r.POST("/assets", handler.CreateAsset)
	r.GET("/assets", handler.ListAssets)
	r.DELETE("/assets", handler.ClearAssets)
	r.POST("/assets/batch", handler.BatchEditAssets)
	r.GET("/assets/daily-cost", handler.GetDailyCost)
	r.GET("/assets/:id", handler.GetAsset)
	r.PUT("/assets/:id", handler.UpdateAsset)
	r.DELETE("/assets/:id", handler.DeleteAsset)
	return r
}

func sampleAssets() []models.Asset {
	usd := models.Amortize(testutil.NewAsset(2, "耳機", models.NewDate(2024, time.March, 8), "1"), testutil.Today)
	usd.Currency = "USD"
	usd = models.Amortize(usd, testutil.Today)
	retired := models.Amortize(testutil.NewAsset(3, "舊手機", models.NewDate(2024, time.March, 1), "1000"), testutil.Today)
	retired.Status = models.AssetStatusRetired
	return []models.Asset{
		models.Amortize(testutil.NewAsset(1, "筆電", models.NewDate(2024, time.March, 9), "45000"), testutil.Today),
		usd,
		retired,
	}
}

func TestAssetHandler_CreateAsset(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var captured services.AssetDraft
		svc := &mockAssetService{
			addFn: func(draft services.AssetDraft) (*models.Asset, error) {
				captured = draft
				a := models.Amortize(testutil.NewAsset(1, draft.ProductName, draft.PurchaseDate, draft.Amount.String()), testutil.Today)
				return &a, nil
			},
		}
		r := setupAssetRouter(NewAssetHandler(svc, currency.Default()))

		rec := doRequest(r, "POST", "/assets",
			`{"category":"3C","product_name":"筆電","purchase_date":"2024-03-09","currency":"TWD","amount":"45000"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if captured.PurchaseDate.String() != "2024-03-09" || captured.Status != "" {
			t.Errorf("unexpected draft: %+v", captured)
		}
		asset := parseJSON(t, rec)["asset"].(map[string]interface{})
		if asset["holding_days"].(float64) != 2 || asset["daily_amortized_cost"] != "22500" {
			t.Errorf("unexpected asset: %v", asset)
		}
	})

	t.Run("returns 400 on invalid input", func(t *testing.T) {
		r := setupAssetRouter(NewAssetHandler(&mockAssetService{}, currency.Default()))

		rec := doRequest(r, "POST", "/assets", `{"product_name":"x","status":"lost"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")

		rec = doRequest(r, "POST", "/assets", `{"product_name":"x","purchase_date":"2024/03/09"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_DATE")
	})

	t.Run("passes store validation errors through", func(t *testing.T) {
		svc := &mockAssetService{
			addFn: func(services.AssetDraft) (*models.Asset, error) {
				return nil, apperrors.WithMessage(apperrors.ErrMissingField, "product_name is required")
			},
		}
		r := setupAssetRouter(NewAssetHandler(svc, currency.Default()))

		rec := doRequest(r, "POST", "/assets", `{"amount":10}`)

		assertErrorCode(t, parseJSON(t, rec), "MISSING_FIELD")
	})
}

func TestAssetHandler_ListAssets(t *testing.T) {
	var captured models.AssetStatus
	svc := &mockAssetService{
		listFn: func(status models.AssetStatus) ([]models.Asset, error) {
			captured = status
			return sampleAssets(), nil
		},
	}
	r := setupAssetRouter(NewAssetHandler(svc, currency.Default()))

	rec := doRequest(r, "GET", "/assets?status=%E5%B7%B2%E9%99%A4%E5%BD%B9", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured != models.AssetStatusRetired {
		t.Errorf("expected retired filter, got %q", captured)
	}
	if len(parseJSON(t, rec)["data"].([]interface{})) != 3 {
		t.Error("expected the service's assets")
	}

	rec = doRequest(r, "GET", "/assets?status=lost", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 on unknown status, got %d", rec.Code)
	}
}

func TestAssetHandler_GetDailyCost(t *testing.T) {
	svc := &mockAssetService{
		listFn: func(models.AssetStatus) ([]models.Asset, error) { return sampleAssets(), nil },
	}
	r := setupAssetRouter(NewAssetHandler(svc, currency.Default()))

	rec := doRequest(r, "GET", "/assets/daily-cost", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	// 45000/2 = 22500; USD 1/3 = 0.33 -> 10.56; 1000/10 = 100
	if result["total"] != "22610.56" {
		t.Errorf("expected total 22610.56, got %v", result["total"])
	}
	byCurrency := result["by_currency"].(map[string]interface{})
	if byCurrency["USD"] != "10.56" || byCurrency["TWD"] != "22600" {
		t.Errorf("unexpected per-currency cost: %v", byCurrency)
	}
}

func TestAssetHandler_UpdateAndBatch(t *testing.T) {
	t.Run("forwards cells", func(t *testing.T) {
		var captured services.AssetPatch
		svc := &mockAssetService{
			updateFn: func(_ int64, patch services.AssetPatch) (*models.Asset, error) {
				captured = patch
				return &models.Asset{}, nil
			},
		}
		r := setupAssetRouter(NewAssetHandler(svc, currency.Default()))

		rec := doRequest(r, "PUT", "/assets/1", `{"amount":500,"purchase_date":"someday"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if *captured.Amount != "500" || *captured.PurchaseDate != "someday" || captured.Status != nil {
			t.Errorf("unexpected patch: %+v", captured)
		}
	})

	t.Run("returns 404 for unknown asset", func(t *testing.T) {
		svc := &mockAssetService{
			updateFn: func(int64, services.AssetPatch) (*models.Asset, error) { return nil, apperrors.ErrAssetNotFound },
		}
		r := setupAssetRouter(NewAssetHandler(svc, currency.Default()))

		rec := doRequest(r, "PUT", "/assets/9", `{"note":"x"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "ASSET_NOT_FOUND")
	})

	t.Run("batch", func(t *testing.T) {
		var captured []services.BatchRow[services.AssetPatch]
		svc := &mockAssetService{
			batchEditFn: func(rows []services.BatchRow[services.AssetPatch]) (*services.BatchResult, error) {
				captured = rows
				return &services.BatchResult{Updated: []int64{1}, Deleted: []int64{2}}, nil
			},
		}
		r := setupAssetRouter(NewAssetHandler(svc, currency.Default()))

		rec := doRequest(r, "POST", "/assets/batch", `{"rows":[{"id":1,"status":"已除役"},{"id":2,"delete":true}]}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if len(captured) != 2 || *captured[0].Patch.Status != "已除役" || !captured[1].Delete {
			t.Errorf("unexpected rows: %+v", captured)
		}
	})
}

func TestAssetHandler_DeleteAndClear(t *testing.T) {
	svc := &mockAssetService{
		deleteFn: func(id int64) error {
			if id != 1 {
				return apperrors.ErrAssetNotFound
			}
			return nil
		},
		clearFn: func() (int, error) { return 3, nil },
	}
	r := setupAssetRouter(NewAssetHandler(svc, currency.Default()))

	if rec := doRequest(r, "DELETE", "/assets/1", ""); rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if rec := doRequest(r, "DELETE", "/assets/2", ""); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if rec := doRequest(r, "DELETE", "/assets?confirm=false", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	rec := doRequest(r, "DELETE", "/assets?confirm=1", "")
	if rec.Code != http.StatusOK || parseJSON(t, rec)["removed"].(float64) != 3 {
		t.Errorf("expected 3 removed, got %d %s", rec.Code, rec.Body.String())
	}
}
