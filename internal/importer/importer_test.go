package importer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"homeledger/internal/models"
)

func TestDetectFormat(t *testing.T) {
	for name, want := range map[string]Format{
		"ledger.csv":  FormatCSV,
		"LEDGER.XLSX": FormatXLSX,
		"old.xls":     FormatXLSX,
	} {
		got, err := DetectFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := DetectFormat("notes.txt")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-05", "2024-01-05"},
		{"2024/01/05", "2024-01-05"},
		{"2024/1/5", "2024-01-05"},
		{"01-05-24", "2024-01-05"},
		{"2024-01-05 00:00:00", "2024-01-05"},
		{"45296", "2024-01-05"},
		{"", ""},
	}
	for _, tc := range tests {
		got, err := ParseDate(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got.String(), tc.in)
	}

	_, err := ParseDate("next tuesday")
	assert.Error(t, err)
}

func TestTransactionsFromLegacyCSV(t *testing.T) {
	// Legacy layout: a 月份 column, no currency, no ratio, no note, stale
	// derived columns and a blank line.
	sheet := "\ufeff日期,月份,星期,類別,小類,項目,支付方式,收入,支出,實際支出\n" +
		"2024/03/01,2024-03,一,飲食,午餐,便當,現金,,300,1\n" +
		"\n" +
		"2024/03/05,2024-03,,收入,薪資,三月薪資,魔法小卡,\"52,000\",0,0\n"

	table, err := Read("old.csv", strings.NewReader(sheet))
	require.NoError(t, err)

	records, err := Transactions(table)
	require.NoError(t, err)
	require.Len(t, records, 2)

	lunch := records[0]
	assert.Equal(t, int64(0), lunch.ID, "ids are assigned by the store")
	assert.Equal(t, "2024-03-01", lunch.Date.String())
	assert.Equal(t, "五", lunch.Weekday, "weekday is recomputed, not copied")
	assert.Equal(t, models.DefaultCurrency, lunch.Currency)
	assert.Equal(t, models.FullRatio, lunch.ExpenseRatio)
	assert.True(t, lunch.ActualExpense.Equal(decimal.NewFromInt(300)), "actual %s", lunch.ActualExpense)
	assert.True(t, lunch.IncomeAmount.IsZero())
	assert.Equal(t, "", lunch.Note)

	salary := records[1]
	assert.True(t, salary.IncomeAmount.Equal(decimal.NewFromInt(52000)))
	assert.True(t, salary.ActualExpense.IsZero())
	assert.Equal(t, models.PaymentCard, salary.PaymentMethod)
}

func TestTransactionsRejectsWholeSheet(t *testing.T) {
	tests := []struct {
		name   string
		sheet  string
		column string
		row    int
	}{
		{"bad_date", "日期,項目,支出\n2024-01-01,a,1\n2024-13-45,b,2\n", colDate, 3},
		{"bad_amount", "日期,項目,支出\n2024-01-01,a,abc\n", colExpense, 2},
		{"negative_income", "日期,項目,收入\n2024-01-01,a,-5\n", colIncome, 2},
		{"ratio_out_of_range", "日期,項目,支出,支出比例\n2024-01-01,a,10,150\n", colRatio, 2},
		{"fractional_ratio", "日期,項目,支出,支出比例\n2024-03-01,a,300,50\n2024-03-02,b,300,50.7\n", colRatio, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			table, err := ReadCSV(strings.NewReader(tc.sheet))
			require.NoError(t, err)

			records, err := Transactions(table)
			require.Error(t, err)
			assert.Nil(t, records)

			var rowErr *RowError
			require.True(t, errors.As(err, &rowErr), "got %T", err)
			assert.Equal(t, tc.row, rowErr.Row)
			assert.Equal(t, tc.column, rowErr.Column)
		})
	}

	t.Run("missing_date_column", func(t *testing.T) {
		table, err := ReadCSV(strings.NewReader("項目,支出\na,1\n"))
		require.NoError(t, err)
		_, err = Transactions(table)
		assert.Error(t, err)
	})
}

func TestAssetsFromCSV(t *testing.T) {
	sheet := "分類,產品名稱,購買日期,幣別,金額,當前狀態(服役中/已除役)\n" +
		"3C,筆電,2024/1/5,,45000,\n" +
		"家具,  ,2024/1/6,TWD,100,\n" +
		"3C,相機,not a date,JPY,abc,已除役\n"

	table, err := ReadCSV(strings.NewReader(sheet))
	require.NoError(t, err)

	assets, err := Assets(table)
	require.NoError(t, err)
	require.Len(t, assets, 2, "row with blank product name is dropped")

	laptop := assets[0]
	assert.Equal(t, "筆電", laptop.ProductName)
	assert.Equal(t, "2024-01-05", laptop.PurchaseDate.String())
	assert.Equal(t, models.DefaultCurrency, laptop.Currency)
	assert.True(t, laptop.Amount.Equal(decimal.NewFromInt(45000)))
	assert.Equal(t, models.AssetStatusInService, laptop.Status)

	camera := assets[1]
	assert.True(t, camera.PurchaseDate.IsZero())
	assert.True(t, camera.Amount.IsZero())
	assert.Equal(t, "JPY", camera.Currency)
	assert.Equal(t, models.AssetStatusRetired, camera.Status)
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"日期", "月份", "類別", "項目", "幣別", "支出", "支出比例"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{45296, "2024-01", "交通", "加油", "TWD", 1000, 50}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"2024-01-06", "2024-01", "飲食", "晚餐", "USD", 12.5, 100}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	table, err := Read("legacy.xlsx", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.True(t, table.Has("月份"))

	records, err := Transactions(table)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "2024-01-05", records[0].Date.String())
	assert.True(t, records[0].ActualExpense.Equal(decimal.NewFromInt(500)), "actual %s", records[0].ActualExpense)
	assert.Equal(t, "USD", records[1].Currency)
	assert.True(t, records[1].ExpenseAmount.Equal(decimal.RequireFromString("12.5")))
}

func TestReadRejectsGarbage(t *testing.T) {
	_, err := Read("ledger.xlsx", strings.NewReader("not a zip"))
	assert.Error(t, err)

	_, err = ReadCSV(strings.NewReader(""))
	assert.Error(t, err)
}
