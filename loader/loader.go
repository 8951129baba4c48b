// Package loader ingests trial balance and journal tables from CSV and XLSX
// files into the typed form the analysis engine consumes.
//
// Journal extracts come out of ERP systems in whatever encoding the host OS
// favored; the CSV path therefore tries a small cascade of encodings (UTF-8
// with or without BOM, then the Korean EUC-KR/CP949 family) before giving
// up. Header names are normalized to the canonical column vocabulary of the
// journal package, amount cells are coerced to decimals with non-numeric
// values becoming zero, and every coercion is counted so the data-integrity
// procedure can report what ingestion had to repair.
package loader

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"

	"github.com/auditkit/jet/journal"
	"github.com/auditkit/jet/telemetry"
)

// Loader reads tabular audit data from disk.
type Loader struct {
	// fallbacks are tried in order when a CSV file is not valid UTF-8.
	fallbacks []encoding.Encoding
}

// Option configures a Loader.
type Option func(*Loader)

// WithFallbackEncodings replaces the default non-UTF-8 encoding cascade.
func WithFallbackEncodings(encodings ...encoding.Encoding) Option {
	return func(l *Loader) {
		l.fallbacks = encodings
	}
}

// New creates a Loader. By default non-UTF-8 CSV input falls back to EUC-KR,
// which also covers the CP949 extracts common from Korean ERP systems.
func New(opts ...Option) *Loader {
	l := &Loader{
		fallbacks: []encoding.Encoding{korean.EUCKR},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadTrialBalance reads a trial balance table from a CSV or XLSX file.
func (l *Loader) LoadTrialBalance(ctx context.Context, filename string) (*journal.TrialBalance, error) {
	ds, err := l.readDataset(ctx, filename, journal.RoleTrialBalance)
	if err != nil {
		return nil, err
	}

	tb := &journal.TrialBalance{Columns: ds.columns}
	for _, record := range ds.records {
		row := journal.TrialBalanceRow{
			AccountCode: strings.TrimSpace(ds.cell(record, journal.ColAccountCode)),
			AccountName: strings.TrimSpace(ds.cell(record, journal.ColAccountName)),
		}
		row.Debit = ds.amount(record, journal.ColDebitBalance, &tb.Quality)
		row.Credit = ds.amount(record, journal.ColCreditBalance, &tb.Quality)
		tb.Rows = append(tb.Rows, row)
	}
	return tb, nil
}

// LoadJournal reads a journal table from a CSV or XLSX file.
func (l *Loader) LoadJournal(ctx context.Context, filename string) (*journal.Journal, error) {
	ds, err := l.readDataset(ctx, filename, journal.RoleJournal)
	if err != nil {
		return nil, err
	}

	j := &journal.Journal{Columns: ds.columns}
	for _, record := range ds.records {
		row := journal.Row{
			VoucherID:   strings.TrimSpace(ds.cell(record, journal.ColVoucherID)),
			AccountCode: strings.TrimSpace(ds.cell(record, journal.ColAccountCode)),
			AccountName: strings.TrimSpace(ds.cell(record, journal.ColAccountName)),
			Preparer:    strings.TrimSpace(ds.cell(record, journal.ColPreparer)),
			Approver:    strings.TrimSpace(ds.cell(record, journal.ColApprover)),
		}
		row.Debit = ds.amount(record, journal.ColDebitAmount, &j.Quality)
		row.Credit = ds.amount(record, journal.ColCreditAmount, &j.Quality)
		row.PostingDate = ds.date(record, journal.ColPostingDate, &j.Quality)
		row.EntryDate = ds.date(record, journal.ColEntryDate, &j.Quality)
		j.Rows = append(j.Rows, row)
	}
	return j, nil
}

// dataset is a raw table with canonical column names.
type dataset struct {
	columns []string
	index   map[string]int
	records [][]string
}

// cell returns a record's value for a canonical column, empty when the
// column is absent or the record is short.
func (ds *dataset) cell(record []string, column string) string {
	i, ok := ds.index[column]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

// amount coerces an amount cell to a decimal. Blank cells become zero
// silently; non-numeric cells become zero and are counted on the table's
// quality record.
func (ds *dataset) amount(record []string, column string, q *journal.Quality) decimal.Decimal {
	raw := ds.cell(record, column)
	d, ok := journal.ParseAmount(raw)
	if !ok && strings.TrimSpace(raw) != "" {
		q.CountNonNumeric(column)
	}
	return d
}

// date coerces a date cell. Blank cells give the zero Date silently;
// unparseable cells give the zero Date and are counted.
func (ds *dataset) date(record []string, column string, q *journal.Quality) journal.Date {
	raw := strings.TrimSpace(ds.cell(record, column))
	d, err := journal.ParseDate(raw)
	if err != nil {
		q.CountBadDate(column)
	}
	return d
}

// readDataset reads and normalizes a table from disk, dispatching on the
// file extension.
func (l *Loader) readDataset(ctx context.Context, filename string, role journal.Role) (*dataset, error) {
	collector := telemetry.FromContext(ctx)
	timer := collector.Start(fmt.Sprintf("load %s", filepath.Base(filename)))
	defer timer.End()

	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm", ".xls":
		rows, err = readExcel(filename)
	default:
		rows, err = l.readCSV(filename)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: file contains no header row", filename)
	}

	columns := make([]string, 0, len(rows[0]))
	for _, raw := range rows[0] {
		columns = append(columns, journal.CanonicalColumn(role, raw))
	}

	index := make(map[string]int, len(columns))
	for i, c := range columns {
		// First occurrence wins for duplicated headers.
		if _, ok := index[c]; !ok {
			index[c] = i
		}
	}

	return &dataset{columns: columns, index: index, records: rows[1:]}, nil
}

// readCSV reads a CSV file, decoding through the encoding cascade.
func (l *Loader) readCSV(filename string) ([][]string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	data, err = l.decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// utf8BOM is stripped before decoding; spreadsheet exports love to add it.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decode returns UTF-8 bytes for the file content, trying the raw bytes
// first and then the fallback encodings.
func (l *Loader) decode(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data, nil
	}

	for _, enc := range l.fallbacks {
		decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
		if err == nil && utf8.Valid(decoded) {
			return decoded, nil
		}
	}
	return nil, fmt.Errorf("content is not valid UTF-8 and no fallback encoding could decode it")
}

// readExcel reads the first sheet of a workbook.
func readExcel(filename string) ([][]string, error) {
	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", filename)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q of %s: %w", sheets[0], filename, err)
	}
	return rows, nil
}
