package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"homeledger/internal/models"
	"homeledger/internal/storage"
	"homeledger/internal/testutil"
)

func newAssets(t *testing.T, clock models.Clock) (AssetServicer, *storage.Memory) {
	t.Helper()
	repo := storage.NewMemory()
	return NewAssetService(repo, clock, nil), repo
}

func TestAssetAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("amortizes_on_the_purchase_day", func(t *testing.T) {
		svc, _ := newAssets(t, testutil.FixedClock(testutil.Today))
		a, err := svc.Add(ctx, AssetDraft{
			Category:     "3C",
			ProductName:  "耳機",
			PurchaseDate: models.DateOf(testutil.Today),
			Currency:     "TWD",
			Amount:       testutil.Money("1200"),
		})
		testutil.AssertNoError(t, err)
		if a.ID != 1 || a.HoldingDays != 1 {
			t.Errorf("expected id 1 held 1 day, got id %d held %d", a.ID, a.HoldingDays)
		}
		testutil.AssertDecimal(t, a.DailyCost, "1200", "daily cost")
		if a.Status != models.AssetStatusInService {
			t.Errorf("expected default status %q, got %q", models.AssetStatusInService, a.Status)
		}
	})

	t.Run("zero_amount_is_allowed", func(t *testing.T) {
		svc, _ := newAssets(t, testutil.FixedClock(testutil.Today))
		a, err := svc.Add(ctx, AssetDraft{ProductName: "贈品", Amount: decimal.Zero})
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, a.DailyCost, "0", "daily cost")
		if a.PurchaseDate.String() != "2024-03-10" {
			t.Errorf("expected purchase date to default to today, got %s", a.PurchaseDate)
		}
		if a.Currency != models.DefaultCurrency {
			t.Errorf("expected default currency, got %q", a.Currency)
		}
	})

	t.Run("validation", func(t *testing.T) {
		svc, repo := newAssets(t, testutil.FixedClock(testutil.Today))

		_, err := svc.Add(ctx, AssetDraft{ProductName: "x", Amount: testutil.Money("-1")})
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")

		_, err = svc.Add(ctx, AssetDraft{ProductName: "  ", Amount: testutil.Money("10")})
		testutil.AssertAppError(t, err, "MISSING_FIELD")

		if repo.Saves != 0 {
			t.Errorf("expected nothing saved, got %d saves", repo.Saves)
		}
	})
}

func TestAssetListRecomputesAgainstClock(t *testing.T) {
	ctx := context.Background()
	clock := &testutil.Clock{Now: testutil.Today}
	svc, repo := newAssets(t, clock.Func())

	// Stored derived values are stale and must never be trusted.
	stale := testutil.NewAsset(1, "椅子", models.DateOf(testutil.Today), "1200")
	stale.HoldingDays = 99
	stale.DailyCost = testutil.Money("1")
	testutil.SeedAssets(t, repo, stale)

	list, err := svc.List(ctx, "")
	testutil.AssertNoError(t, err)
	if len(list) != 1 || list[0].HoldingDays != 1 {
		t.Fatalf("expected 1 asset held 1 day, got %+v", list)
	}
	testutil.AssertDecimal(t, list[0].DailyCost, "1200", "day 1 daily cost")

	clock.Advance(24 * time.Hour)
	list, err = svc.List(ctx, "")
	testutil.AssertNoError(t, err)
	if list[0].HoldingDays != 2 {
		t.Errorf("expected 2 days, got %d", list[0].HoldingDays)
	}
	testutil.AssertDecimal(t, list[0].DailyCost, "600", "day 2 daily cost")
}

func TestAssetListFiltersStatus(t *testing.T) {
	ctx := context.Background()
	svc, repo := newAssets(t, testutil.FixedClock(testutil.Today))

	retired := testutil.NewAsset(2, "舊手機", models.NewDate(2020, time.January, 1), "20000")
	retired.Status = models.AssetStatusRetired
	testutil.SeedAssets(t, repo,
		testutil.NewAsset(1, "新手機", models.NewDate(2024, time.January, 1), "30000"),
		retired,
	)

	list, err := svc.List(ctx, models.AssetStatusRetired)
	testutil.AssertNoError(t, err)
	if len(list) != 1 || list[0].ID != 2 {
		t.Errorf("expected only the retired asset, got %+v", list)
	}
}

func TestAssetUpdate(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) AssetServicer {
		svc, repo := newAssets(t, testutil.FixedClock(testutil.Today))
		testutil.SeedAssets(t, repo, testutil.NewAsset(1, "相機", models.NewDate(2024, time.March, 1), "1000"))
		return svc
	}

	t.Run("changes_amount_and_date", func(t *testing.T) {
		svc := seed(t)
		a, err := svc.Update(ctx, 1, AssetPatch{Amount: str("500"), PurchaseDate: str("2024-03-06")})
		testutil.AssertNoError(t, err)
		if a.HoldingDays != 5 {
			t.Errorf("expected 5 days, got %d", a.HoldingDays)
		}
		testutil.AssertDecimal(t, a.DailyCost, "100", "daily cost")
	})

	t.Run("unreadable_date_keeps_stored_date", func(t *testing.T) {
		svc := seed(t)
		a, err := svc.Update(ctx, 1, AssetPatch{PurchaseDate: str("someday"), Location: str("書房")})
		testutil.AssertNoError(t, err)
		if a.PurchaseDate.String() != "2024-03-01" {
			t.Errorf("expected stored date kept, got %s", a.PurchaseDate)
		}
		if a.Location != "書房" {
			t.Errorf("expected location updated, got %q", a.Location)
		}
	})

	t.Run("errors", func(t *testing.T) {
		svc := seed(t)

		_, err := svc.Update(ctx, 1, AssetPatch{Amount: str("a lot")})
		testutil.AssertAppError(t, err, "INVALID_NUMBER")

		_, err = svc.Update(ctx, 1, AssetPatch{ProductName: str("")})
		testutil.AssertAppError(t, err, "MISSING_FIELD")

		_, err = svc.Update(ctx, 7, AssetPatch{Note: str("x")})
		testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")
	})
}

func TestAssetBatchEdit(t *testing.T) {
	ctx := context.Background()
	svc, repo := newAssets(t, testutil.FixedClock(testutil.Today))
	testutil.SeedAssets(t, repo,
		testutil.NewAsset(1, "a", models.NewDate(2024, time.March, 1), "100"),
		testutil.NewAsset(2, "b", models.NewDate(2024, time.March, 1), "200"),
		testutil.NewAsset(3, "c", models.NewDate(2024, time.March, 1), "300"),
	)

	result, err := svc.BatchEdit(ctx, []BatchRow[AssetPatch]{
		{ID: 1, Patch: AssetPatch{Status: str(string(models.AssetStatusRetired))}},
		{ID: 2, Patch: AssetPatch{Amount: str("two hundred")}},
		{ID: 3, Delete: true},
	})
	testutil.AssertNoError(t, err)

	if len(result.Updated) != 1 || len(result.Deleted) != 1 || len(result.Rejected) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Rejected[0].Row != 2 || result.Rejected[0].Code != "INVALID_NUMBER" {
		t.Errorf("unexpected rejection: %+v", result.Rejected[0])
	}

	list, err := svc.List(ctx, "")
	testutil.AssertNoError(t, err)
	if len(list) != 2 {
		t.Fatalf("expected 2 assets left, got %d", len(list))
	}
	if list[0].Status != models.AssetStatusRetired {
		t.Errorf("expected asset 1 retired, got %q", list[0].Status)
	}
	testutil.AssertDecimal(t, list[1].Amount, "200", "asset 2 amount")
}

func TestAssetDeleteClearImport(t *testing.T) {
	ctx := context.Background()
	svc, repo := newAssets(t, testutil.FixedClock(testutil.Today))
	testutil.SeedAssets(t, repo, testutil.NewAsset(5, "a", models.NewDate(2024, time.March, 1), "100"))

	n, err := svc.Import(ctx, []models.Asset{
		{ProductName: "筆電", PurchaseDate: models.NewDate(2024, time.March, 9), Amount: testutil.Money("45000")},
		{ProductName: "  "},
		{ProductName: "無日期", Amount: testutil.Money("10")},
	})
	testutil.AssertNoError(t, err)
	if n != 2 {
		t.Errorf("expected 2 imported, got %d", n)
	}

	list, err := svc.List(ctx, "")
	testutil.AssertNoError(t, err)
	if len(list) != 3 || list[1].ID != 6 || list[2].ID != 7 {
		t.Fatalf("unexpected register after import: %+v", list)
	}
	if list[1].HoldingDays != 2 {
		t.Errorf("expected 2 days held, got %d", list[1].HoldingDays)
	}
	testutil.AssertDecimal(t, list[1].DailyCost, "22500", "imported daily cost")
	if list[2].HoldingDays != 1 || list[2].Currency != models.DefaultCurrency {
		t.Errorf("unexpected undated asset: %+v", list[2])
	}

	testutil.AssertNoError(t, svc.Delete(ctx, 5))
	testutil.AssertAppError(t, svc.Delete(ctx, 5), "ASSET_NOT_FOUND")

	removed, err := svc.Clear(ctx)
	testutil.AssertNoError(t, err)
	if removed != 2 {
		t.Errorf("expected 2 removed, got %d", removed)
	}
}
