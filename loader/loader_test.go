package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"

	"github.com/auditkit/jet/journal"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, []byte(content), 0644)
	assert.NoError(t, err)
	return path
}

func TestLoadTrialBalance_CSV(t *testing.T) {
	path := writeFile(t, "tb.csv", `account_code,account_name,debit_balance,credit_balance
101,Cash,"1,000",0
301,Payables,0,400.50
`)

	tb, err := New().LoadTrialBalance(context.Background(), path)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(tb.Rows))

	assert.Equal(t, "101", tb.Rows[0].AccountCode)
	assert.Equal(t, "Cash", tb.Rows[0].AccountName)
	assert.True(t, tb.Rows[0].Debit.Equal(decimal.NewFromInt(1000)))
	assert.True(t, tb.Rows[1].Credit.Equal(decimal.RequireFromString("400.50")))
}

func TestLoadJournal_CSV(t *testing.T) {
	path := writeFile(t, "journal.csv", `posting_date,voucher_id,account_code,account_name,debit_amount,credit_amount,entry_date,preparer,approver
2025-03-01,V001,101,Cash,500,,2025-03-01,kim,manager
2025-03-01,V001,401,Revenue,,500,2025-03-01,kim,manager
`)

	j, err := New().LoadJournal(context.Background(), path)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(j.Rows))

	r := j.Rows[0]
	assert.Equal(t, "2025-03-01", r.PostingDate.String())
	assert.Equal(t, "V001", r.VoucherID)
	assert.True(t, r.Debit.Equal(decimal.NewFromInt(500)))
	assert.True(t, r.Credit.IsZero())
	assert.Equal(t, "kim", r.Preparer)
	assert.Equal(t, "manager", r.Approver)

	assert.True(t, j.HasColumn(journal.ColEntryDate))
}

func TestLoadJournal_HeaderAliases(t *testing.T) {
	path := writeFile(t, "journal.csv", `Date,Voucher No,Account,Account Name,Debit,Credit
2025-03-01,V001,101,Cash,500,0
`)

	j, err := New().LoadJournal(context.Background(), path)
	assert.NoError(t, err)

	assert.Equal(t,
		[]string{"posting_date", "voucher_id", "account_code", "account_name", "debit_amount", "credit_amount"},
		j.Columns)
	assert.Equal(t, "V001", j.Rows[0].VoucherID)
}

func TestLoadTrialBalance_KoreanHeadersWithBOM(t *testing.T) {
	path := writeFile(t, "tb.csv", "\xEF\xBB\xBF계정코드,계정과목,차변잔액,대변잔액\n101,현금,1000,0\n")

	tb, err := New().LoadTrialBalance(context.Background(), path)
	assert.NoError(t, err)

	assert.Equal(t,
		[]string{"account_code", "account_name", "debit_balance", "credit_balance"},
		tb.Columns)
	assert.Equal(t, "현금", tb.Rows[0].AccountName)
}

func TestLoadTrialBalance_EUCKREncoded(t *testing.T) {
	// Encode a Korean-headed table the way a legacy Windows export would.
	utf8Content := "계정코드,계정과목,차변잔액,대변잔액\n101,현금,1000,0\n"
	encoded, _, err := transform.Bytes(korean.EUCKR.NewEncoder(), []byte(utf8Content))
	assert.NoError(t, err)

	path := filepath.Join(t.TempDir(), "tb.csv")
	assert.NoError(t, os.WriteFile(path, encoded, 0644))

	tb, err := New().LoadTrialBalance(context.Background(), path)
	assert.NoError(t, err)
	assert.Equal(t, "현금", tb.Rows[0].AccountName)
	assert.True(t, tb.Rows[0].Debit.Equal(decimal.NewFromInt(1000)))
}

func TestLoadJournal_CountsCoercions(t *testing.T) {
	path := writeFile(t, "journal.csv", `posting_date,voucher_id,account_code,account_name,debit_amount,credit_amount
2025-03-01,V001,101,Cash,abc,0
bad-date,V002,101,Cash,,100
2025-03-03,V003,101,Cash,,
`)

	j, err := New().LoadJournal(context.Background(), path)
	assert.NoError(t, err)

	// Non-blank non-numeric cells are counted; blank ones are not.
	assert.Equal(t, 1, j.Quality.NonNumeric["debit_amount"])
	assert.Equal(t, 1, j.Quality.BadDates["posting_date"])
	assert.True(t, j.Rows[0].Debit.IsZero())
	assert.True(t, j.Rows[1].PostingDate.IsZero())
}

func TestLoadJournal_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"posting_date", "voucher_id", "account_code", "account_name", "debit_amount", "credit_amount"},
		{"2025-03-01", "V001", "101", "Cash", "500", ""},
		{"2025-03-01", "V001", "401", "Revenue", "", "500"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		assert.NoError(t, err)
		assert.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	assert.NoError(t, f.SaveAs(path))
	assert.NoError(t, f.Close())

	j, err := New().LoadJournal(context.Background(), path)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(j.Rows))
	assert.True(t, j.Rows[0].Debit.Equal(decimal.NewFromInt(500)))
	assert.True(t, j.Rows[1].Credit.Equal(decimal.NewFromInt(500)))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := New().LoadJournal(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeFile(t, "empty.csv", "")
	_, err := New().LoadTrialBalance(context.Background(), path)
	assert.Error(t, err)
}

func TestLoad_UndecodableContent(t *testing.T) {
	// Invalid UTF-8 that no fallback decoder accepts either.
	path := filepath.Join(t.TempDir(), "bad.csv")
	assert.NoError(t, os.WriteFile(path, []byte{0xFF, 0xFE, 0xFF, 0xFF, 0x00}, 0644))

	_, err := New(WithFallbackEncodings()).LoadTrialBalance(context.Background(), path)
	assert.Error(t, err)
}
