package analysis

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/auditkit/jet/journal"
)

func TestScreenAccountPattern(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		flagged bool
	}{
		{"three digits is the minimum", "101", false},
		{"ten characters is the maximum", "1234567890", false},
		{"alphanumeric is well formed", "A1200", false},
		{"too short", "99", true},
		{"too long", "12345678901", true},
		{"hyphenated", "101-2", true},
		{"embedded space", "10 1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := journal.NewJournal(journal.NewRow("2025-03-01", "V001", tt.code, "100", "0"))
			result := ScreenAccountPattern(j)

			if tt.flagged {
				assert.Equal(t, OutcomeExceptions, result.Outcome)
				assert.Equal(t, 1, result.Count())
			} else {
				assert.Equal(t, OutcomePass, result.Outcome)
			}
		})
	}
}

func TestScreenNewAccounts(t *testing.T) {
	prior := journal.NewTrialBalance(
		journal.NewBalanceRow("101", "Cash", "1000", "0"),
		journal.NewBalanceRow("401", "Revenue", "0", "500"),
	)
	j := journal.NewJournal(
		journal.NewRow("2025-03-01", "V001", "101", "100", "0"),
		journal.NewRow("2025-03-01", "V001", "888", "0", "100"),
		journal.NewRow("2025-03-02", "V002", "888", "50", "0"),
	)

	result := ScreenNewAccounts(j, prior)
	assert.Equal(t, OutcomeExceptions, result.Outcome)

	detail := result.Detail.(*LineDetail)
	assert.Equal(t, 2, len(detail.Rows))
	for _, r := range detail.Rows {
		assert.Equal(t, "888", r.AccountCode)
	}
}

// Consistently renaming an account across all tables must not change
// whether it is flagged.
func TestScreenNewAccounts_StableUnderRelabeling(t *testing.T) {
	build := func(code string) (*journal.Journal, *journal.TrialBalance) {
		prior := journal.NewTrialBalance(journal.NewBalanceRow(code, "Cash", "1000", "0"))
		j := journal.NewJournal(
			journal.NewRow("2025-03-01", "V001", code, "100", "0"),
			journal.NewRow("2025-03-01", "V001", "777", "0", "100"),
		)
		return j, prior
	}

	for _, code := range []string{"101", "ZZZ9"} {
		j, prior := build(code)
		result := ScreenNewAccounts(j, prior)
		detail := result.Detail.(*LineDetail)
		assert.Equal(t, 1, len(detail.Rows), "code %s", code)
		assert.Equal(t, "777", detail.Rows[0].AccountCode)
	}
}

func TestScreenNewAccounts_NoPriorBalance(t *testing.T) {
	j := journal.NewJournal(journal.NewRow("2025-03-01", "V001", "101", "100", "0"))

	result := ScreenNewAccounts(j, nil)
	assert.Equal(t, OutcomeCannotEvaluate, result.Outcome)
}

func TestScreenLowFrequency(t *testing.T) {
	params := DefaultParams()
	params.FrequencyThreshold = 2

	rows := []journal.Row{
		journal.NewRow("2025-03-01", "V001", "101", "100", "0"),
		journal.NewRow("2025-03-02", "V002", "101", "100", "0"),
		journal.NewRow("2025-03-03", "V003", "101", "100", "0"),
		journal.NewRow("2025-03-04", "V004", "205", "50", "0"),
		journal.NewRow("2025-03-05", "V005", "205", "50", "0"),
	}

	result := ScreenLowFrequency(journal.NewJournal(rows...), params)
	assert.Equal(t, OutcomeExceptions, result.Outcome)

	// 101 used three times stays; 205 used twice is at the threshold.
	detail := result.Detail.(*LineDetail)
	assert.Equal(t, 2, len(detail.Rows))
	for _, r := range detail.Rows {
		assert.Equal(t, "205", r.AccountCode)
	}
}
