package models

import "github.com/shopspring/decimal"

// FullRatio is the expense ratio for an expense borne entirely by the owner.
const FullRatio = 100

// Transaction is one ledger entry. Weekday and ActualExpense are derived and
// must be refreshed through Derive after any change to Date, ExpenseAmount or
// ExpenseRatio.
type Transaction struct {
	Base
	Date          Date            `gorm:"index" json:"date"`
	Weekday       string          `gorm:"size:8" json:"weekday"`
	Category      Category        `gorm:"size:32;index" json:"category"`
	Subcategory   string          `gorm:"size:64" json:"subcategory"`
	ItemName      string          `gorm:"not null" json:"item_name"`
	PaymentMethod PaymentMethod   `gorm:"size:32" json:"payment_method"`
	Currency      string          `gorm:"size:16;not null;default:'TWD'" json:"currency"`
	IncomeAmount  decimal.Decimal `gorm:"type:numeric(18,4);not null;default:0" json:"income_amount"`
	ExpenseAmount decimal.Decimal `gorm:"type:numeric(18,4);not null;default:0" json:"expense_amount"`
	ExpenseRatio  int             `gorm:"not null;default:100" json:"expense_ratio"`
	ActualExpense decimal.Decimal `gorm:"type:numeric(18,4);not null;default:0" json:"actual_expense"`
	Note          string          `json:"note"`
}

// TableName pins the SQL table name.
func (Transaction) TableName() string { return "transactions" }

// ActualExpense returns the share of expense borne by the owner:
// expense × ratio / 100 when expense is positive, otherwise zero.
func ActualExpense(expense decimal.Decimal, ratio int) decimal.Decimal {
	if !expense.IsPositive() {
		return decimal.Zero
	}
	return expense.Mul(decimal.NewFromInt(int64(ratio))).Div(decimal.NewFromInt(100))
}

// Derive recomputes the weekday label and actual expense from the record's
// own fields. Income is never ratio-adjusted.
func (t *Transaction) Derive() {
	t.Weekday = WeekdayLabel(t.Date)
	t.ActualExpense = ActualExpense(t.ExpenseAmount, t.ExpenseRatio)
}

// IsIncome reports whether the record carries income rather than expense.
func (t Transaction) IsIncome() bool {
	return t.IncomeAmount.IsPositive() && !t.ExpenseAmount.IsPositive()
}
