// Package importer reads legacy ledger and asset spreadsheets (CSV or XLSX)
// into records ready to be appended to a store. It never touches storage:
// callers get either every row or an error.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"homeledger/internal/models"
)

// Format is a supported upload format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// DetectFormat picks the reader for filename by extension. Legacy .xls
// uploads are read as XLSX; a genuine BIFF file fails at parse time.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx", ".xlsm", ".xls":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported file type %q: use .csv or .xlsx", filepath.Ext(filename))
	}
}

// Table is a sheet of raw cell text addressed by header name.
type Table struct {
	Header []string
	Rows   [][]string
	index  map[string]int
}

func newTable(header []string, rows [][]string) *Table {
	t := &Table{Header: header, index: make(map[string]int, len(header))}
	for i, col := range header {
		col = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
		t.Header[i] = col
		if _, dup := t.index[col]; !dup {
			t.index[col] = i
		}
	}
	for _, r := range rows {
		if !blankRow(r) {
			t.Rows = append(t.Rows, r)
		}
	}
	return t
}

// Has reports whether the sheet has column col.
func (t *Table) Has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// Cell returns the trimmed text of column col in row i, or "" when the sheet
// has no such column or the row is short.
func (t *Table) Cell(i int, col string) string {
	j, ok := t.index[col]
	if !ok || j >= len(t.Rows[i]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[i][j])
}

// Read parses r as the format implied by filename.
func Read(filename string, r io.Reader) (*Table, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}
	if format == FormatXLSX {
		return ReadXLSX(r)
	}
	return ReadCSV(r)
}

// ReadCSV parses a CSV sheet whose first record is the header. A leading
// UTF-8 byte-order mark is ignored.
func ReadCSV(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\ufeff"))))
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("file is empty")
	}
	return newTable(records[0], records[1:]), nil
}

// ReadXLSX parses the first worksheet of an XLSX workbook. Cells are read as
// displayed, so dates arrive in the sheet's number format.
func ReadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("invalid workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}
	return newTable(rows[0], rows[1:]), nil
}

func blankRow(r []string) bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// excelEpoch is day 0 of the spreadsheet serial date system.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ParseDate accepts the date spellings found in legacy sheets, including
// spreadsheet serial day numbers. Blank cells yield the zero Date.
func ParseDate(s string) (models.Date, error) {
	s = strings.TrimSpace(s)
	if d, err := models.ParseLegacyDate(s); err == nil {
		return d, nil
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 && serial < 2958466 {
		return models.DateOf(excelEpoch.AddDate(0, 0, int(serial))), nil
	}
	return models.Date{}, fmt.Errorf("unrecognised date %q", s)
}

// parseAmount reads a numeric cell. Blank cells are zero; thousands
// separators are tolerated.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
