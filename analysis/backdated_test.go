package analysis

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/auditkit/jet/journal"
)

func backdatedParams() Params {
	params := DefaultParams()
	params.FiscalYearEnd = journal.MustDate("2025-12-31")
	return params
}

func TestScreenBackDated(t *testing.T) {
	j := journal.NewJournal(
		// Posted into the closed period, entered after year end: flagged.
		journal.NewRow("2025-12-30", "V001", "101", "100", "0", journal.WithEntryDate("2026-01-15")),
		// Posted and entered inside the period: clean.
		journal.NewRow("2025-06-01", "V002", "101", "100", "0", journal.WithEntryDate("2025-06-01")),
		// Posted after year end: next period's business, clean.
		journal.NewRow("2026-01-05", "V003", "101", "100", "0", journal.WithEntryDate("2026-01-05")),
	)

	result := ScreenBackDated(j, backdatedParams())
	detail := result.Detail.(*LineDetail)

	assert.Equal(t, 1, len(detail.Rows))
	assert.Equal(t, "V001", detail.Rows[0].VoucherID)
}

// A posting on the closing date itself, entered afterwards, is back-dated.
func TestScreenBackDated_YearEndBoundary(t *testing.T) {
	j := journal.NewJournal(
		journal.NewRow("2025-12-31", "V001", "101", "100", "0", journal.WithEntryDate("2026-01-01")),
		journal.NewRow("2025-12-31", "V002", "101", "100", "0", journal.WithEntryDate("2025-12-31")),
	)

	result := ScreenBackDated(j, backdatedParams())
	detail := result.Detail.(*LineDetail)

	assert.Equal(t, 1, len(detail.Rows))
	assert.Equal(t, "V001", detail.Rows[0].VoucherID)
}

func TestScreenBackDated_SkipsBlankEntryDates(t *testing.T) {
	j := journal.NewJournal(
		journal.NewRow("2025-12-30", "V001", "101", "100", "0", journal.WithEntryDate("2026-01-15")),
		journal.NewRow("2025-12-30", "V002", "101", "100", "0"),
	)

	result := ScreenBackDated(j, backdatedParams())
	assert.Equal(t, 1, result.Count())
}

func TestScreenBackDated_Preconditions(t *testing.T) {
	// No entry date column at all.
	j := journal.NewJournal(journal.NewRow("2025-12-30", "V001", "101", "100", "0"))
	result := ScreenBackDated(j, backdatedParams())
	assert.Equal(t, OutcomeCannotEvaluate, result.Outcome)

	// No fiscal year end supplied.
	j = journal.NewJournal(
		journal.NewRow("2025-12-30", "V001", "101", "100", "0", journal.WithEntryDate("2026-01-15")),
	)
	result = ScreenBackDated(j, DefaultParams())
	assert.Equal(t, OutcomeCannotEvaluate, result.Outcome)
}
