package services

import (
	"context"

	"github.com/shopspring/decimal"

	"homeledger/internal/aggregate"
	"homeledger/internal/models"
)

// TransactionDraft is a new ledger entry as entered in the form. A single
// amount is split into income or expense by Kind. A nil ExpenseRatio means
// the full amount is borne by the owner; a zero Date means today.
type TransactionDraft struct {
	Date          models.Date
	Category      models.Category
	Subcategory   string
	ItemName      string
	PaymentMethod models.PaymentMethod
	Currency      string
	Kind          models.EntryKind
	Amount        decimal.Decimal
	ExpenseRatio  *int
	Note          string
}

// TransactionPatch carries edited grid cells as the raw text the user typed.
// Nil fields are left unchanged. Blank numeric cells read as zero.
type TransactionPatch struct {
	Date          *string
	Category      *string
	Subcategory   *string
	ItemName      *string
	PaymentMethod *string
	Currency      *string
	IncomeAmount  *string
	ExpenseAmount *string
	ExpenseRatio  *string
	Note          *string
}

// AssetDraft is a new asset register entry. A zero PurchaseDate means today,
// an empty Status means in service.
type AssetDraft struct {
	Category     string
	Subcategory  string
	ProductName  string
	BrandModel   string
	PurchaseDate models.Date
	Currency     string
	Amount       decimal.Decimal
	Status       models.AssetStatus
	Location     string
	Note         string
}

// AssetPatch carries edited asset grid cells as raw text. An unparseable
// purchase date leaves the stored date untouched.
type AssetPatch struct {
	Category     *string
	Subcategory  *string
	ProductName  *string
	BrandModel   *string
	PurchaseDate *string
	Currency     *string
	Amount       *string
	Status       *string
	Location     *string
	Note         *string
}

// BatchRow is one row of an edited grid: either a patch or a delete of the
// record with the given id.
type BatchRow[P any] struct {
	ID     int64
	Delete bool
	Patch  P
}

// BatchRejection reports a grid row that was skipped. Row is 1-based within
// the submitted batch.
type BatchRejection struct {
	Row     int    `json:"row"`
	ID      int64  `json:"id"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BatchResult lists the ids a batch changed and the rows it skipped.
type BatchResult struct {
	Updated  []int64          `json:"updated"`
	Deleted  []int64          `json:"deleted"`
	Rejected []BatchRejection `json:"rejected"`
}

// LedgerServicer defines the contract for the transaction ledger.
type LedgerServicer interface {
	Add(ctx context.Context, draft TransactionDraft) (*models.Transaction, error)
	Get(ctx context.Context, id int64) (*models.Transaction, error)
	Update(ctx context.Context, id int64, patch TransactionPatch) (*models.Transaction, error)
	BatchEdit(ctx context.Context, rows []BatchRow[TransactionPatch]) (*BatchResult, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, criteria aggregate.Criteria) ([]models.Transaction, error)
	Clear(ctx context.Context) (int, error)
	Import(ctx context.Context, records []models.Transaction) (int, error)
}

// AssetServicer defines the contract for the fixed-asset register.
type AssetServicer interface {
	Add(ctx context.Context, draft AssetDraft) (*models.Asset, error)
	Get(ctx context.Context, id int64) (*models.Asset, error)
	Update(ctx context.Context, id int64, patch AssetPatch) (*models.Asset, error)
	BatchEdit(ctx context.Context, rows []BatchRow[AssetPatch]) (*BatchResult, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, status models.AssetStatus) ([]models.Asset, error)
	Clear(ctx context.Context) (int, error)
	Import(ctx context.Context, records []models.Asset) (int, error)
}
