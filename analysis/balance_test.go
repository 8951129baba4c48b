package analysis

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/auditkit/jet/journal"
)

func TestCheckVoucherBalance_BalancedJournalPasses(t *testing.T) {
	j := journal.NewJournal(
		journal.NewRow("2025-03-01", "V001", "101", "500", "0"),
		journal.NewRow("2025-03-01", "V001", "401", "0", "500"),
		journal.NewRow("2025-03-02", "V002", "102", "1000", "0"),
		journal.NewRow("2025-03-02", "V002", "301", "0", "1000"),
	)

	result := CheckVoucherBalance(j)
	assert.Equal(t, OutcomePass, result.Outcome)
	assert.Equal(t, 0, result.Count())
}

func TestCheckVoucherBalance_ReportsSignedDifference(t *testing.T) {
	j := journal.NewJournal(
		journal.NewRow("2025-03-01", "V1", "101", "500", "0"),
		journal.NewRow("2025-03-01", "V1", "401", "0", "300"),
	)

	result := CheckVoucherBalance(j)
	assert.Equal(t, OutcomeExceptions, result.Outcome)

	detail := result.Detail.(*BalanceDetail)
	assert.Equal(t, 1, len(detail.Vouchers))

	v := detail.Vouchers[0]
	assert.Equal(t, "V1", v.VoucherID)
	assert.True(t, v.Difference.Equal(decimal.NewFromInt(200)), "difference should be debit minus credit, got %s", v.Difference)
	assert.Equal(t, 2, v.Lines)
}

// Exact equality, no tolerance: a one-cent imbalance is an exception.
func TestCheckVoucherBalance_OneCentImbalance(t *testing.T) {
	j := journal.NewJournal(
		journal.NewRow("2025-03-01", "V1", "101", "100.00", "0"),
		journal.NewRow("2025-03-01", "V1", "401", "0", "100.01"),
	)

	result := CheckVoucherBalance(j)
	assert.Equal(t, OutcomeExceptions, result.Outcome)

	detail := result.Detail.(*BalanceDetail)
	assert.True(t, detail.Vouchers[0].Difference.Equal(decimal.RequireFromString("-0.01")))
}

func TestCheckVoucherBalance_OrderedByVoucherID(t *testing.T) {
	j := journal.NewJournal(
		journal.NewRow("2025-03-01", "V9", "101", "10", "0"),
		journal.NewRow("2025-03-01", "V1", "101", "20", "0"),
		journal.NewRow("2025-03-01", "V5", "101", "30", "0"),
	)

	result := CheckVoucherBalance(j)
	detail := result.Detail.(*BalanceDetail)

	assert.Equal(t, 3, len(detail.Vouchers))
	assert.Equal(t, "V1", detail.Vouchers[0].VoucherID)
	assert.Equal(t, "V5", detail.Vouchers[1].VoucherID)
	assert.Equal(t, "V9", detail.Vouchers[2].VoucherID)
}

func TestCheckVoucherBalance_NoVoucherColumn(t *testing.T) {
	j := journal.NewJournal(journal.NewRow("2025-03-01", "V1", "101", "500", "0"))
	j.Columns = []string{"posting_date", "account_code", "account_name", "debit_amount", "credit_amount"}

	result := CheckVoucherBalance(j)
	assert.Equal(t, OutcomeCannotEvaluate, result.Outcome)
	assert.NotEqual(t, "", result.Reason)
}

func TestCheckVoucherBalance_EmptyJournalPasses(t *testing.T) {
	result := CheckVoucherBalance(journal.NewJournal())
	assert.Equal(t, OutcomePass, result.Outcome)
}
