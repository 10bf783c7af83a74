// Package csvstore persists the ledger and asset collections as UTF-8 CSV
// files with a byte-order mark, the layout spreadsheet tools open directly.
package csvstore

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"homeledger/internal/logger"
	"homeledger/internal/models"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// TransactionColumns is the header of the transactions file.
var TransactionColumns = []string{
	"ID", "日期", "星期", "類別", "小類", "項目", "支付方式",
	"幣別", "收入", "支出", "支出比例", "實際支出", "備註",
}

// AssetColumns is the header of the assets file.
var AssetColumns = []string{
	"ID", "分類", "小類", "產品名稱", "品牌/型號", "購買日期", "幣別",
	"金額", "持有天數", "每日均攤費用", "當前狀態(服役中/已除役)", "地點", "備註",
}

// Store reads and writes the two collection files.
type Store struct {
	transactionsPath string
	assetsPath       string
}

// New creates a Store for the given file paths. Parent directories are
// created on first save.
func New(transactionsPath, assetsPath string) *Store {
	return &Store{transactionsPath: transactionsPath, assetsPath: assetsPath}
}

// LoadTransactions reads the transactions file. A missing file is an empty
// ledger. Rows without an id receive max+1 ids in file order.
func (s *Store) LoadTransactions(_ context.Context) ([]models.Transaction, error) {
	rows, err := readTable(s.transactionsPath)
	if err != nil {
		return nil, err
	}
	out := make([]models.Transaction, 0, len(rows))
	for i, row := range rows {
		date, err := models.ParseLegacyDate(row.get("日期"))
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", s.transactionsPath, i+2, err)
		}
		t := models.Transaction{
			Base:          models.Base{ID: row.id()},
			Date:          date,
			Weekday:       row.get("星期"),
			Category:      models.Category(row.get("類別")),
			Subcategory:   row.get("小類"),
			ItemName:      row.get("項目"),
			PaymentMethod: models.PaymentMethod(row.get("支付方式")),
			Currency:      row.get("幣別"),
			IncomeAmount:  row.decimal("收入"),
			ExpenseAmount: row.decimal("支出"),
			ExpenseRatio:  row.int("支出比例", 0, models.FullRatio, models.FullRatio),
			ActualExpense: row.decimal("實際支出"),
			Note:          row.get("備註"),
		}
		out = append(out, t)
	}
	backfillTransactionIDs(out)
	return out, nil
}

// SaveTransactions rewrites the transactions file.
func (s *Store) SaveTransactions(_ context.Context, records []models.Transaction) error {
	rows := make([][]string, 0, len(records))
	for _, t := range records {
		rows = append(rows, []string{
			strconv.FormatInt(t.ID, 10),
			t.Date.String(),
			t.Weekday,
			string(t.Category),
			t.Subcategory,
			t.ItemName,
			string(t.PaymentMethod),
			t.Currency,
			t.IncomeAmount.String(),
			t.ExpenseAmount.String(),
			strconv.Itoa(t.ExpenseRatio),
			t.ActualExpense.String(),
			t.Note,
		})
	}
	return writeTable(s.transactionsPath, TransactionColumns, rows)
}

// LoadAssets reads the assets file. Unparseable purchase dates load as unset
// and unparseable amounts as zero; a missing currency column defaults to the
// base currency.
func (s *Store) LoadAssets(_ context.Context) ([]models.Asset, error) {
	rows, err := readTable(s.assetsPath)
	if err != nil {
		return nil, err
	}
	out := make([]models.Asset, 0, len(rows))
	for i, row := range rows {
		purchase, err := models.ParseLegacyDate(row.get("購買日期"))
		if err != nil {
			logger.Get().Warnw("Unreadable purchase date, leaving it unset",
				"file", s.assetsPath, "row", i+2, "value", row.get("購買日期"))
		}
		ccy := row.get("幣別")
		if !row.has("幣別") {
			ccy = models.DefaultCurrency
		}
		out = append(out, models.Asset{
			Base:         models.Base{ID: row.id()},
			Category:     row.get("分類"),
			Subcategory:  row.get("小類"),
			ProductName:  row.get("產品名稱"),
			BrandModel:   row.get("品牌/型號"),
			PurchaseDate: purchase,
			Currency:     ccy,
			Amount:       row.decimal("金額"),
			HoldingDays:  row.int("持有天數", 1, math.MaxInt32, 1),
			DailyCost:    row.decimal("每日均攤費用"),
			Status:       models.AssetStatus(row.get("當前狀態(服役中/已除役)")),
			Location:     row.get("地點"),
			Note:         row.get("備註"),
		})
	}
	backfillAssetIDs(out)
	return out, nil
}

// SaveAssets rewrites the assets file.
func (s *Store) SaveAssets(_ context.Context, records []models.Asset) error {
	rows := make([][]string, 0, len(records))
	for _, a := range records {
		rows = append(rows, []string{
			strconv.FormatInt(a.ID, 10),
			a.Category,
			a.Subcategory,
			a.ProductName,
			a.BrandModel,
			a.PurchaseDate.String(),
			a.Currency,
			a.Amount.String(),
			strconv.Itoa(a.HoldingDays),
			a.DailyCost.String(),
			string(a.Status),
			a.Location,
			a.Note,
		})
	}
	return writeTable(s.assetsPath, AssetColumns, rows)
}

func backfillTransactionIDs(records []models.Transaction) {
	ids := make([]int64, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	next := models.NextID(ids)
	for i := range records {
		if records[i].ID <= 0 {
			records[i].ID = next
			next++
		}
	}
}

func backfillAssetIDs(records []models.Asset) {
	ids := make([]int64, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	next := models.NextID(ids)
	for i := range records {
		if records[i].ID <= 0 {
			records[i].ID = next
			next++
		}
	}
}

// row is one CSV record addressed by column name. Columns absent from the
// file read as "".
type row struct {
	index  map[string]int
	fields []string
}

func (r row) has(col string) bool {
	_, ok := r.index[col]
	return ok
}

func (r row) get(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

func (r row) id() int64 {
	v := r.decimal("ID")
	return v.IntPart()
}

// decimal reads a numeric cell; blanks and non-numeric text read as zero.
func (r row) decimal(col string) decimal.Decimal {
	v, err := decimal.NewFromString(r.get(col))
	if err != nil {
		return decimal.Zero
	}
	return v
}

// int reads an integer cell written either as "50" or "50.0".
// int reads a whole number in [lo, hi]. Anything else loads as fallback.
func (r row) int(col string, lo, hi, fallback int) int {
	s := r.get(col)
	if s == "" {
		return fallback
	}
	v, err := decimal.NewFromString(s)
	if err != nil || v.LessThan(decimal.NewFromInt(int64(lo))) || v.GreaterThan(decimal.NewFromInt(int64(hi))) {
		return fallback
	}
	return int(v.IntPart())
}

func readTable(path string) ([]row, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	data = bytes.TrimPrefix(data, bom)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", path, err)
	}
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(col)] = i
	}

	var rows []row
	for {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if isBlank(fields) {
			continue
		}
		rows = append(rows, row{index: index, fields: fields})
	}
	return rows, nil
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// writeTable writes header and rows to a temp file next to path, then renames
// it over path.
func writeTable(path string, header []string, rows [][]string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	var buf bytes.Buffer
	buf.Write(bom)
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
