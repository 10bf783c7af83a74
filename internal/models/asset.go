package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset is one fixed-asset register entry. HoldingDays and DailyCost are
// derived relative to a reference day and are refreshed through Amortize on
// every read; stored values are never trusted.
type Asset struct {
	Base
	Category     string          `gorm:"size:32" json:"category"`
	Subcategory  string          `gorm:"size:64" json:"subcategory"`
	ProductName  string          `gorm:"not null" json:"product_name"`
	BrandModel   string          `json:"brand_model"`
	PurchaseDate Date            `json:"purchase_date"`
	Currency     string          `gorm:"size:16;not null;default:'TWD'" json:"currency"`
	Amount       decimal.Decimal `gorm:"type:numeric(18,4);not null;default:0" json:"amount"`
	HoldingDays  int             `gorm:"not null;default:1" json:"holding_days"`
	DailyCost    decimal.Decimal `gorm:"type:numeric(18,4);not null;default:0" json:"daily_amortized_cost"`
	Status       AssetStatus     `gorm:"size:16" json:"status"`
	Location     string          `json:"location"`
	Note         string          `json:"note"`
}

// TableName pins the SQL table name.
func (Asset) TableName() string { return "assets" }

// HoldingDays counts the days an asset purchased on purchase has been held as
// of asOf, counting the purchase day as day 1. The result is never below 1;
// an unset purchase date counts as 1.
func HoldingDays(purchase Date, asOf time.Time) int {
	if purchase.IsZero() {
		return 1
	}
	days := DateOf(asOf).DaysSince(purchase) + 1
	if days < 1 {
		return 1
	}
	return days
}

// DailyAmortizedCost spreads amount evenly over days, rounded to 2 places.
func DailyAmortizedCost(amount decimal.Decimal, days int) decimal.Decimal {
	if days < 1 {
		days = 1
	}
	return amount.Div(decimal.NewFromInt(int64(days))).Round(2)
}

// Amortize returns a copy of a with HoldingDays and DailyCost computed as of
// the given day.
func Amortize(a Asset, asOf time.Time) Asset {
	a.HoldingDays = HoldingDays(a.PurchaseDate, asOf)
	a.DailyCost = DailyAmortizedCost(a.Amount, a.HoldingDays)
	return a
}
