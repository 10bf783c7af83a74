package importer

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"homeledger/internal/models"
)

// Ledger sheet columns. Anything else in an uploaded sheet, such as the old
// 月份 month column or an ID column, is ignored.
const (
	colDate          = "日期"
	colCategory      = "類別"
	colSubcategory   = "小類"
	colItem          = "項目"
	colPaymentMethod = "支付方式"
	colCurrency      = "幣別"
	colIncome        = "收入"
	colExpense       = "支出"
	colRatio         = "支出比例"
	colNote          = "備註"
)

// Asset sheet columns.
const (
	colAssetCategory = "分類"
	colProductName   = "產品名稱"
	colBrandModel    = "品牌/型號"
	colPurchaseDate  = "購買日期"
	colAmount        = "金額"
	colStatus        = "當前狀態(服役中/已除役)"
	colLocation      = "地點"
)

// RowError identifies the sheet row that failed to import. Row is the 1-based
// spreadsheet row number, counting the header as row 1.
type RowError struct {
	Row    int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d, column %s: %v", e.Row, e.Column, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Transactions converts a ledger sheet into records with derived weekday and
// actual expense recomputed. Records carry no id. Missing numeric cells are
// zero, a missing currency is the base currency and a missing ratio is 100%.
// The first bad row fails the whole sheet.
func Transactions(t *Table) ([]models.Transaction, error) {
	if !t.Has(colDate) {
		return nil, fmt.Errorf("missing required column %s", colDate)
	}

	out := make([]models.Transaction, 0, len(t.Rows))
	for i := range t.Rows {
		line := i + 2

		date, err := ParseDate(t.Cell(i, colDate))
		if err != nil {
			return nil, &RowError{Row: line, Column: colDate, Err: err}
		}
		income, err := nonNegative(t.Cell(i, colIncome))
		if err != nil {
			return nil, &RowError{Row: line, Column: colIncome, Err: err}
		}
		expense, err := nonNegative(t.Cell(i, colExpense))
		if err != nil {
			return nil, &RowError{Row: line, Column: colExpense, Err: err}
		}
		ratio, err := ratioPercent(t.Cell(i, colRatio))
		if err != nil {
			return nil, &RowError{Row: line, Column: colRatio, Err: err}
		}

		record := models.Transaction{
			Date:          date,
			Category:      models.Category(t.Cell(i, colCategory)),
			Subcategory:   t.Cell(i, colSubcategory),
			ItemName:      t.Cell(i, colItem),
			PaymentMethod: models.PaymentMethod(t.Cell(i, colPaymentMethod)),
			Currency:      currencyOrDefault(t.Cell(i, colCurrency)),
			IncomeAmount:  income,
			ExpenseAmount: expense,
			ExpenseRatio:  ratio,
			Note:          t.Cell(i, colNote),
		}
		record.Derive()
		out = append(out, record)
	}
	return out, nil
}

// Assets converts an asset sheet into records. Rows with a blank product name
// are dropped. Unreadable purchase dates import as unset and unreadable
// amounts as zero, matching how the register has always treated them.
// Holding days and daily cost are left for the store to compute.
func Assets(t *Table) ([]models.Asset, error) {
	if !t.Has(colProductName) {
		return nil, fmt.Errorf("missing required column %s", colProductName)
	}

	out := make([]models.Asset, 0, len(t.Rows))
	for i := range t.Rows {
		name := t.Cell(i, colProductName)
		if name == "" {
			continue
		}
		purchase, err := ParseDate(t.Cell(i, colPurchaseDate))
		if err != nil {
			purchase = models.Date{}
		}
		amount, err := parseAmount(t.Cell(i, colAmount))
		if err != nil || amount.IsNegative() {
			amount = decimal.Zero
		}
		status := models.AssetStatus(t.Cell(i, colStatus))
		if status == "" {
			status = models.AssetStatusInService
		}
		out = append(out, models.Asset{
			Category:     t.Cell(i, colAssetCategory),
			Subcategory:  t.Cell(i, colSubcategory),
			ProductName:  name,
			BrandModel:   t.Cell(i, colBrandModel),
			PurchaseDate: purchase,
			Currency:     currencyOrDefault(t.Cell(i, colCurrency)),
			Amount:       amount,
			Status:       status,
			Location:     t.Cell(i, colLocation),
			Note:         t.Cell(i, colNote),
		})
	}
	return out, nil
}

func currencyOrDefault(s string) string {
	if strings.TrimSpace(s) == "" {
		return models.DefaultCurrency
	}
	return s
}

func nonNegative(s string) (decimal.Decimal, error) {
	v, err := parseAmount(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q is not a number", s)
	}
	if v.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s must not be negative", v)
	}
	return v, nil
}

func ratioPercent(s string) (int, error) {
	if strings.TrimSpace(s) == "" {
		return models.FullRatio, nil
	}
	v, err := parseAmount(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if !v.Equal(v.Truncate(0)) {
		return 0, fmt.Errorf("%s is not a whole percent", v)
	}
	if v.LessThan(decimal.Zero) || v.GreaterThan(decimal.NewFromInt(models.FullRatio)) {
		return 0, fmt.Errorf("%s is outside 0-100", v)
	}
	return int(v.IntPart()), nil
}
