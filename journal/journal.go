// Package journal defines the typed tables consumed by the analysis engine:
// trial balances (one balance row per account) and the journal (the detailed
// ledger of posted voucher lines). All amounts are decimal.Decimal; the
// ingestion layer is responsible for coercing raw cells into these types and
// for recording what it had to coerce (see Quality).
package journal

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow is a single account's balance at a point in time. A
// well-formed trial balance carries the balance on exactly one side; both
// columns are non-negative after netting.
type TrialBalanceRow struct {
	AccountCode string
	AccountName string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// TrialBalance is a snapshot listing every account with its debit or credit
// balance. Rows preserve input order; lookups go through ByAccount.
type TrialBalance struct {
	// Columns lists the canonical column names present in the source table.
	// Schema validation checks this list, not the typed rows, so a table with
	// a missing column is distinguishable from a table with empty values.
	Columns []string

	Rows []TrialBalanceRow

	Quality Quality
}

// HasColumn reports whether the source table carried the given canonical column.
func (tb *TrialBalance) HasColumn(name string) bool {
	for _, c := range tb.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// ByAccount returns a map from account code to row. Later duplicates win,
// matching how a single-row-per-account invariant violation would surface in
// the source system's own reporting.
func (tb *TrialBalance) ByAccount() map[string]TrialBalanceRow {
	m := make(map[string]TrialBalanceRow, len(tb.Rows))
	for _, r := range tb.Rows {
		m[r.AccountCode] = r
	}
	return m
}

// Accounts returns the set of account codes present in the trial balance.
func (tb *TrialBalance) Accounts() map[string]struct{} {
	s := make(map[string]struct{}, len(tb.Rows))
	for _, r := range tb.Rows {
		s[r.AccountCode] = struct{}{}
	}
	return s
}

// Row is a single journal line. Many lines share a voucher id (a voucher is a
// balanced multi-line transaction) and many lines share an account code.
// EntryDate, Preparer and Approver come from optional columns; a zero
// EntryDate or empty string means the cell was blank, while the column being
// absent altogether is recorded on Journal.Columns.
type Row struct {
	PostingDate Date
	VoucherID   string
	AccountCode string
	AccountName string
	Debit       decimal.Decimal
	Credit      decimal.Decimal

	EntryDate Date
	Preparer  string
	Approver  string
}

// Journal is the detailed record of posted transactions for the period.
type Journal struct {
	// Columns lists the canonical column names present in the source table,
	// including any of the optional entry_date/preparer/approver columns.
	Columns []string

	Rows []Row

	Quality Quality
}

// HasColumn reports whether the source table carried the given canonical column.
func (j *Journal) HasColumn(name string) bool {
	for _, c := range j.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Accounts returns the set of account codes used in the journal.
func (j *Journal) Accounts() map[string]struct{} {
	s := make(map[string]struct{})
	for _, r := range j.Rows {
		s[r.AccountCode] = struct{}{}
	}
	return s
}

// Quality records what ingestion had to repair while coercing raw cells into
// typed values. The engine consumes already-coerced data, so these counters
// are the only trace left of non-numeric amounts or unparseable dates; the
// data-integrity procedure reports them.
type Quality struct {
	// NonNumeric counts cells per canonical amount column that did not parse
	// as a number and were coerced to zero.
	NonNumeric map[string]int

	// BadDates counts cells per canonical date column that did not parse and
	// were left as the zero Date.
	BadDates map[string]int
}

// CountNonNumeric increments the coercion counter for an amount column.
func (q *Quality) CountNonNumeric(column string) {
	if q.NonNumeric == nil {
		q.NonNumeric = make(map[string]int)
	}
	q.NonNumeric[column]++
}

// CountBadDate increments the coercion counter for a date column.
func (q *Quality) CountBadDate(column string) {
	if q.BadDates == nil {
		q.BadDates = make(map[string]int)
	}
	q.BadDates[column]++
}

// ParseAmount parses a raw amount cell into a decimal. Thousands separators
// and surrounding whitespace are tolerated; an empty or non-numeric cell
// returns (zero, false) so the caller can coerce and count it.
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
