package analysis

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/auditkit/jet/journal"
)

func TestScreenMateriality_FlagsAtThreshold(t *testing.T) {
	j := journal.NewJournal(
		journal.NewRow("2025-03-01", "V001", "401", "0", "1000000", journal.WithAccountName("Revenue")),
		journal.NewRow("2025-03-01", "V002", "501", "999999", "0", journal.WithAccountName("Payroll")),
	)

	result := ScreenMateriality(j, DefaultParams())
	assert.Equal(t, OutcomeExceptions, result.Outcome)

	detail := result.Detail.(*MaterialityDetail)
	assert.Equal(t, 1, len(detail.Accounts))

	a := detail.Accounts[0]
	assert.Equal(t, "401", a.AccountCode)
	assert.Equal(t, "Revenue", a.AccountName)
	assert.True(t, a.Net.Equal(decimal.NewFromInt(-1000000)), "net should be signed, got %s", a.Net)
}

func TestScreenMateriality_NetsAcrossLines(t *testing.T) {
	// Gross activity is large but the net stays under the threshold.
	j := journal.NewJournal(
		journal.NewRow("2025-03-01", "V001", "401", "0", "5000000"),
		journal.NewRow("2025-03-02", "V002", "401", "4500000", "0"),
	)

	result := ScreenMateriality(j, DefaultParams())
	assert.Equal(t, OutcomePass, result.Outcome)
}

func TestScreenMateriality_IgnoresBalanceSheetAccounts(t *testing.T) {
	j := journal.NewJournal(
		journal.NewRow("2025-03-01", "V001", "101", "9000000", "0"),
		journal.NewRow("2025-03-01", "V001", "401", "0", "100"),
	)

	result := ScreenMateriality(j, DefaultParams())
	assert.Equal(t, OutcomePass, result.Outcome)
}

func TestScreenMateriality_NoPLAccounts(t *testing.T) {
	j := journal.NewJournal(
		journal.NewRow("2025-03-01", "V001", "101", "100", "0"),
		journal.NewRow("2025-03-01", "V001", "301", "0", "100"),
	)

	result := ScreenMateriality(j, DefaultParams())
	assert.Equal(t, OutcomeCannotEvaluate, result.Outcome)
}

func TestScreenMateriality_CustomChartAndThreshold(t *testing.T) {
	params := DefaultParams()
	params.Materiality = decimal.NewFromInt(500)
	params.Chart.PLPrefixes = []string{"9"}

	j := journal.NewJournal(
		journal.NewRow("2025-03-01", "V001", "901", "600", "0"),
		journal.NewRow("2025-03-01", "V002", "401", "700000", "0"),
	)

	result := ScreenMateriality(j, params)
	detail := result.Detail.(*MaterialityDetail)
	assert.Equal(t, 1, len(detail.Accounts))
	assert.Equal(t, "901", detail.Accounts[0].AccountCode)
}
