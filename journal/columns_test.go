package journal

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestCanonicalColumn(t *testing.T) {
	tests := []struct {
		name string
		role Role
		raw  string
		want string
	}{
		{"already canonical", RoleJournal, "voucher_id", "voucher_id"},
		{"case and spaces", RoleJournal, " Voucher No ", "voucher_id"},
		{"hyphens and dots", RoleJournal, "dr-amount", "debit_amount"},
		{"dotted header", RoleTrialBalance, "account.no", "account_code"},
		{"unknown passes through normalized", RoleJournal, "Cost Center", "cost_center"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalColumn(tt.role, tt.raw))
		})
	}
}

// A bare debit/credit header is a balance on a trial balance but an amount
// on a journal.
func TestCanonicalColumn_RoleDisambiguation(t *testing.T) {
	assert.Equal(t, "debit_balance", CanonicalColumn(RoleTrialBalance, "Debit"))
	assert.Equal(t, "credit_balance", CanonicalColumn(RoleTrialBalance, "Credit"))
	assert.Equal(t, "debit_amount", CanonicalColumn(RoleJournal, "Debit"))
	assert.Equal(t, "credit_amount", CanonicalColumn(RoleJournal, "Credit"))
}

func TestCanonicalColumn_KoreanHeaders(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"계정코드", "account_code"},
		{"계정과목", "account_name"},
		{"차변잔액", "debit_balance"},
		{"차변진액", "debit_balance"}, // common misspelling in source extracts
		{"대변잔액", "credit_balance"},
		{"전표일자", "posting_date"},
		{"전표번호", "voucher_id"},
		{"차변금액", "debit_amount"},
		{"대변금액", "credit_amount"},
		{"입력일자", "entry_date"},
		{"입력사원", "preparer"},
		{"승인자", "approver"},
	}

	for _, tt := range tests {
		role := RoleTrialBalance
		if tt.want == "debit_amount" || tt.want == "credit_amount" ||
			tt.want == "posting_date" || tt.want == "voucher_id" {
			role = RoleJournal
		}
		assert.Equal(t, tt.want, CanonicalColumn(role, tt.raw), "header %s", tt.raw)
	}
}

func TestRequiredColumns(t *testing.T) {
	assert.Equal(t, TrialBalanceColumns, RequiredColumns(RoleTrialBalance))
	assert.Equal(t, JournalColumns, RequiredColumns(RoleJournal))
}
