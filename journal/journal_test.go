package journal

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"plain integer", "1000", "1000", true},
		{"decimal", "1234.56", "1234.56", true},
		{"negative", "-500", "-500", true},
		{"thousands separators", "1,234,567.89", "1234567.89", true},
		{"surrounding whitespace", " 42 ", "42", true},
		{"empty", "", "0", false},
		{"blank", "   ", "0", false},
		{"non-numeric", "n/a", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := ParseAmount(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.True(t, d.Equal(decimal.RequireFromString(tt.want)), "got %s", d)
		})
	}
}

func TestTrialBalance_ByAccount(t *testing.T) {
	tb := NewTrialBalance(
		NewBalanceRow("101", "Cash", "1000", "0"),
		NewBalanceRow("301", "Payables", "0", "400"),
	)

	byAccount := tb.ByAccount()
	assert.Equal(t, 2, len(byAccount))
	assert.True(t, byAccount["101"].Debit.Equal(decimal.NewFromInt(1000)))
	assert.True(t, byAccount["301"].Credit.Equal(decimal.NewFromInt(400)))

	// A missing account yields the zero row, which carries zero balances.
	assert.True(t, byAccount["999"].Debit.IsZero())
}

func TestTrialBalance_HasColumn(t *testing.T) {
	tb := NewTrialBalance()
	assert.True(t, tb.HasColumn(ColDebitBalance))
	assert.False(t, tb.HasColumn(ColPostingDate))
}

func TestJournal_Accounts(t *testing.T) {
	j := NewJournal(
		NewRow("2025-03-01", "V001", "101", "100", "0"),
		NewRow("2025-03-01", "V001", "401", "0", "100"),
		NewRow("2025-03-02", "V002", "101", "50", "0"),
	)

	accounts := j.Accounts()
	assert.Equal(t, 2, len(accounts))
	_, ok := accounts["101"]
	assert.True(t, ok)
}

func TestNewJournal_OptionalColumnsFollowValues(t *testing.T) {
	bare := NewJournal(NewRow("2025-03-01", "V001", "101", "100", "0"))
	assert.False(t, bare.HasColumn(ColEntryDate))
	assert.False(t, bare.HasColumn(ColPreparer))
	assert.False(t, bare.HasColumn(ColApprover))

	full := NewJournal(
		NewRow("2025-03-01", "V001", "101", "100", "0",
			WithEntryDate("2025-03-02"), WithPreparer("kim"), WithApprover("manager")),
	)
	assert.True(t, full.HasColumn(ColEntryDate))
	assert.True(t, full.HasColumn(ColPreparer))
	assert.True(t, full.HasColumn(ColApprover))
}

func TestQuality_Counters(t *testing.T) {
	var q Quality
	q.CountNonNumeric(ColDebitAmount)
	q.CountNonNumeric(ColDebitAmount)
	q.CountBadDate(ColPostingDate)

	assert.Equal(t, 2, q.NonNumeric[ColDebitAmount])
	assert.Equal(t, 1, q.BadDates[ColPostingDate])
}

func TestNewBalanceRow_CoercesBadValues(t *testing.T) {
	row := NewBalanceRow("101", "Cash", "abc", "")
	assert.True(t, row.Debit.IsZero())
	assert.True(t, row.Credit.IsZero())
}
