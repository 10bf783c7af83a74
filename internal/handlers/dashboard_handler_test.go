package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"homeledger/internal/currency"
	apperrors "homeledger/internal/errors"
	"homeledger/internal/models"
)

func setupDashboardRouter(handler *DashboardHandler) *gin.Engine {
	r := gin.New()
	r.GET("/dashboard", handler.GetDashboard)
	return r
}

func TestDashboardHandler_GetDashboard(t *testing.T) {
	t.Run("combines ledger and assets", func(t *testing.T) {
		assets := &mockAssetService{
			listFn: func(models.AssetStatus) ([]models.Asset, error) { return sampleAssets(), nil },
		}
		r := setupDashboardRouter(NewDashboardHandler(newReportHandler(sampleLedger()), assets))

		rec := doRequest(r, "GET", "/dashboard", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		month := result["current_month"].(map[string]interface{})
		if month["month"] != "2024-03" {
			t.Errorf("unexpected month: %v", month["month"])
		}
		if totalsOf(t, result, "all_time")["expense"] != "2160" {
			t.Errorf("unexpected all-time totals: %v", result["all_time"])
		}
		if totalsOf(t, result, "asset_daily_cost")["total"] != "22610.56" {
			t.Errorf("unexpected daily cost: %v", result["asset_daily_cost"])
		}
		if result["assets_in_service"].(float64) != 2 || result["transactions_count"].(float64) != 5 {
			t.Errorf("unexpected counts: %v", result)
		}
	})

	t.Run("fails when either load fails", func(t *testing.T) {
		assets := &mockAssetService{
			listFn: func(models.AssetStatus) ([]models.Asset, error) {
				return nil, apperrors.Wrap(apperrors.ErrPersistence, errors.New("assets.csv: permission denied"))
			},
		}
		r := setupDashboardRouter(NewDashboardHandler(newReportHandler(sampleLedger()), assets))

		rec := doRequest(r, "GET", "/dashboard", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "PERSISTENCE_ERROR")
	})
}

func TestReferenceHandler_GetReference(t *testing.T) {
	r := gin.New()
	r.GET("/reference", NewReferenceHandler(currency.Default()).GetReference)

	rec := doRequest(r, "GET", "/reference", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if len(result["categories"].([]interface{})) != len(models.Categories) {
		t.Errorf("unexpected categories: %v", result["categories"])
	}
	subs := result["subcategories"].(map[string]interface{})
	if len(subs["飲食"].([]interface{})) != 5 {
		t.Errorf("unexpected food subcategories: %v", subs["飲食"])
	}
	rates := result["rates"].(map[string]interface{})
	if rates["USD"] != "32" || rates["JPY"] != "0.22" {
		t.Errorf("unexpected rates: %v", rates)
	}
	if result["base_currency"] != "TWD" {
		t.Errorf("unexpected base currency: %v", result["base_currency"])
	}
}
