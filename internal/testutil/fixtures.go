package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"homeledger/internal/models"
	"homeledger/internal/storage"
)

// Today is the reference "now" used by fixtures and FixedClock callers.
var Today = time.Date(2024, time.March, 10, 9, 30, 0, 0, time.UTC)

// FixedClock returns a clock that always reports at.
func FixedClock(at time.Time) models.Clock {
	return func() time.Time { return at }
}

// Clock is a settable clock for tests that need time to move.
type Clock struct {
	Now time.Time
}

// Func returns the clock as a models.Clock.
func (c *Clock) Func() models.Clock {
	return func() time.Time { return c.Now }
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.Now = c.Now.Add(d)
}

// Money parses a decimal literal, panicking on bad input.
func Money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// NewExpense builds a derived TWD cash expense record.
func NewExpense(id int64, date models.Date, category models.Category, item, amount string, ratio int) models.Transaction {
	t := models.Transaction{
		Base:          models.Base{ID: id},
		Date:          date,
		Category:      category,
		ItemName:      item,
		PaymentMethod: models.PaymentCash,
		Currency:      models.DefaultCurrency,
		IncomeAmount:  decimal.Zero,
		ExpenseAmount: Money(amount),
		ExpenseRatio:  ratio,
	}
	t.Derive()
	return t
}

// NewIncome builds a derived TWD income record.
func NewIncome(id int64, date models.Date, item, amount string) models.Transaction {
	t := models.Transaction{
		Base:          models.Base{ID: id},
		Date:          date,
		Category:      models.CategoryIncome,
		ItemName:      item,
		PaymentMethod: models.PaymentCash,
		Currency:      models.DefaultCurrency,
		IncomeAmount:  Money(amount),
		ExpenseAmount: decimal.Zero,
		ExpenseRatio:  models.FullRatio,
	}
	t.Derive()
	return t
}

// NewAsset builds an in-service TWD asset record.
func NewAsset(id int64, name string, purchase models.Date, amount string) models.Asset {
	return models.Asset{
		Base:         models.Base{ID: id},
		ProductName:  name,
		PurchaseDate: purchase,
		Currency:     models.DefaultCurrency,
		Amount:       Money(amount),
		HoldingDays:  1,
		DailyCost:    Money(amount),
		Status:       models.AssetStatusInService,
	}
}

// SeedTransactions saves records into repo, failing the test on error.
func SeedTransactions(t *testing.T, repo storage.TransactionRepository, records ...models.Transaction) {
	t.Helper()
	if err := repo.SaveTransactions(context.Background(), records); err != nil {
		t.Fatalf("failed to seed transactions: %v", err)
	}
}

// SeedAssets saves records into repo, failing the test on error.
func SeedAssets(t *testing.T, repo storage.AssetRepository, records ...models.Asset) {
	t.Helper()
	if err := repo.SaveAssets(context.Background(), records); err != nil {
		t.Fatalf("failed to seed assets: %v", err)
	}
}

// SampleTransactions is a small mixed month of March 2024 records plus one
// February record and one USD expense.
func SampleTransactions() []models.Transaction {
	usd := NewExpense(5, models.NewDate(2024, time.March, 2), models.CategoryEntertainment, "app", "10", models.FullRatio)
	usd.Currency = "USD"
	usd.PaymentMethod = models.PaymentCard
	return []models.Transaction{
		NewExpense(1, models.NewDate(2024, time.March, 1), models.CategoryFood, "便當", "300", 50),
		NewIncome(2, models.NewDate(2024, time.March, 5), "薪資", "50000"),
		NewExpense(3, models.NewDate(2024, time.February, 28), models.CategoryTransport, "加油", "1200", models.FullRatio),
		NewExpense(4, models.NewDate(2024, time.March, 9), models.CategoryDaily, "電費", "800", models.FullRatio),
		usd,
	}
}
