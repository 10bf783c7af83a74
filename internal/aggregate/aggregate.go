// Package aggregate holds the side-effect-free reporting functions over
// ledger and asset records: filtering, income/expense totals, grouping and
// base-currency roll-ups. Every function works on a materialized slice and
// never mutates its input.
package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"homeledger/internal/models"
)

// Converter converts an amount in the given currency to the base currency.
type Converter interface {
	ToBase(amount decimal.Decimal, code string) decimal.Decimal
}

// Criteria selects ledger records. Zero dates leave that bound open; an
// empty category or payment-method set means no restriction, not "match
// nothing".
type Criteria struct {
	From           models.Date
	To             models.Date
	Categories     []models.Category
	PaymentMethods []models.PaymentMethod
}

// Filter returns the records matching c, in input order. Date bounds are
// inclusive.
func Filter(records []models.Transaction, c Criteria) []models.Transaction {
	categories := make(map[models.Category]struct{}, len(c.Categories))
	for _, cat := range c.Categories {
		categories[cat] = struct{}{}
	}
	methods := make(map[models.PaymentMethod]struct{}, len(c.PaymentMethods))
	for _, m := range c.PaymentMethods {
		methods[m] = struct{}{}
	}

	out := make([]models.Transaction, 0, len(records))
	for _, r := range records {
		if !c.From.IsZero() && r.Date.Before(c.From) {
			continue
		}
		if !c.To.IsZero() && r.Date.After(c.To) {
			continue
		}
		if len(categories) > 0 {
			if _, ok := categories[r.Category]; !ok {
				continue
			}
		}
		if len(methods) > 0 {
			if _, ok := methods[r.PaymentMethod]; !ok {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// Totals is an income/expense roll-up. Expense always sums actual
// (ratio-adjusted) expense.
type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
	Count   int             `json:"count"`
}

func (t *Totals) add(income, expense decimal.Decimal) {
	t.Income = t.Income.Add(income)
	t.Expense = t.Expense.Add(expense)
	t.Net = t.Income.Sub(t.Expense)
	t.Count++
}

// Sum totals income and actual expense across records; Net is income minus
// expense.
func Sum(records []models.Transaction) Totals {
	var t Totals
	for _, r := range records {
		t.add(r.IncomeAmount, r.ActualExpense)
	}
	return t
}

// SumInBase is Sum with every amount converted to the base currency first.
func SumInBase(records []models.Transaction, conv Converter) Totals {
	var t Totals
	for _, r := range records {
		t.add(conv.ToBase(r.IncomeAmount, r.Currency), conv.ToBase(r.ActualExpense, r.Currency))
	}
	return t
}

// KeyFunc maps a record to its grouping key.
type KeyFunc func(models.Transaction) string

// ByMonth groups by calendar month ("YYYY-MM").
func ByMonth(t models.Transaction) string { return MonthKey(t.Date) }

// ByCategory groups by category.
func ByCategory(t models.Transaction) string { return string(t.Category) }

// ByCurrency groups by currency code.
func ByCurrency(t models.Transaction) string { return t.Currency }

// ByPaymentMethod groups by payment method.
func ByPaymentMethod(t models.Transaction) string { return string(t.PaymentMethod) }

// Group is the roll-up for one grouping key.
type Group struct {
	Key string `json:"key"`
	Totals
}

// GroupBy rolls records up by key, sorted by key ascending. Only keys that
// at least one record maps to appear; there are no zero-filled buckets.
func GroupBy(records []models.Transaction, key KeyFunc) []Group {
	return groupBy(records, key, func(r models.Transaction) (decimal.Decimal, decimal.Decimal) {
		return r.IncomeAmount, r.ActualExpense
	})
}

// GroupByInBase is GroupBy with amounts converted to the base currency.
func GroupByInBase(records []models.Transaction, key KeyFunc, conv Converter) []Group {
	return groupBy(records, key, func(r models.Transaction) (decimal.Decimal, decimal.Decimal) {
		return conv.ToBase(r.IncomeAmount, r.Currency), conv.ToBase(r.ActualExpense, r.Currency)
	})
}

func groupBy(records []models.Transaction, key KeyFunc, amounts func(models.Transaction) (decimal.Decimal, decimal.Decimal)) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, r := range records {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Key: k})
		}
		income, expense := amounts(r)
		groups[i].add(income, expense)
	}
	sort.SliceStable(groups, func(a, b int) bool { return groups[a].Key < groups[b].Key })
	if groups == nil {
		groups = []Group{}
	}
	return groups
}

// MonthKey returns the "YYYY-MM" key for d, or "" for an unset date.
func MonthKey(d models.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01")
}

// InMonth returns the records dated in the given calendar month.
func InMonth(records []models.Transaction, year int, month time.Month) []models.Transaction {
	out := make([]models.Transaction, 0)
	for _, r := range records {
		if r.Date.Year() == year && r.Date.Month() == month {
			out = append(out, r)
		}
	}
	return out
}

// CurrentMonth returns the records in asOf's calendar month. This is the
// calendar month, not a rolling 30 days.
func CurrentMonth(records []models.Transaction, asOf time.Time) []models.Transaction {
	return InMonth(records, asOf.Year(), asOf.Month())
}

// DateBounds returns the earliest and latest record dates, ignoring unset
// dates. Both are zero when no record has a date.
func DateBounds(records []models.Transaction) (min, max models.Date) {
	for _, r := range records {
		if r.Date.IsZero() {
			continue
		}
		if min.IsZero() || r.Date.Before(min) {
			min = r.Date
		}
		if max.IsZero() || r.Date.After(max) {
			max = r.Date
		}
	}
	return min, max
}

// NewestFirst returns a copy of records sorted by date descending. Records on
// the same day keep their relative order.
func NewestFirst(records []models.Transaction) []models.Transaction {
	out := append([]models.Transaction(nil), records...)
	sort.SliceStable(out, func(a, b int) bool { return out[a].Date.After(out[b].Date) })
	return out
}

// DailyCost is the asset register's daily amortized cost in base currency.
type DailyCost struct {
	ByCurrency map[string]decimal.Decimal `json:"by_currency"`
	Total      decimal.Decimal            `json:"total"`
	Count      int                        `json:"count"`
}

// DailyCostByCurrency converts each asset's daily cost to the base currency,
// rounds it to 2 places, and sums per native currency and overall.
func DailyCostByCurrency(assets []models.Asset, conv Converter) DailyCost {
	out := DailyCost{ByCurrency: make(map[string]decimal.Decimal)}
	for _, a := range assets {
		inBase := conv.ToBase(a.DailyCost, a.Currency).Round(2)
		out.ByCurrency[a.Currency] = out.ByCurrency[a.Currency].Add(inBase)
		out.Total = out.Total.Add(inBase)
		out.Count++
	}
	return out
}

// FilterAssets returns the assets with the given status; an empty status
// returns them all.
func FilterAssets(assets []models.Asset, status models.AssetStatus) []models.Asset {
	out := make([]models.Asset, 0, len(assets))
	for _, a := range assets {
		if status != "" && a.Status != status {
			continue
		}
		out = append(out, a)
	}
	return out
}
