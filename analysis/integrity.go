package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/auditkit/jet/journal"
)

// IntegrityIssue is one class of data problem found by the integrity scan,
// reported as a count rather than row by row.
type IntegrityIssue struct {
	Kind   string // "missing values", "duplicate rows", ...
	Column string // affected column, empty for whole-row issues
	Count  int
}

// IntegrityDetail groups the integrity scan's findings by issue kind.
type IntegrityDetail struct {
	Issues []IntegrityIssue
}

// Count returns the number of distinct issue classes found.
func (d *IntegrityDetail) Count() int { return len(d.Issues) }

// Table projects the issues into a renderable grid.
func (d *IntegrityDetail) Table() *Table {
	t := &Table{Columns: []string{"issue", "column", "count"}}
	for _, issue := range d.Issues {
		t.Rows = append(t.Rows, []string{issue.Kind, issue.Column, strconv.Itoa(issue.Count)})
	}
	return t
}

// CheckIntegrity is procedure A01: a structural scan of the journal for
// missing values, duplicate full rows, non-numeric amount cells (carried as
// coercion counters from ingestion, since the engine sees typed data) and
// blank voucher ids.
func CheckIntegrity(j *journal.Journal) Result {
	d := &IntegrityDetail{}

	// Missing values per column. Amount columns are excluded: ingestion has
	// already coerced their gaps to zero, which the coercion counters below
	// report instead.
	for _, col := range j.Columns {
		if n := countMissing(j, col); n > 0 {
			d.Issues = append(d.Issues, IntegrityIssue{Kind: "missing values", Column: col, Count: n})
		}
	}

	if n := countDuplicateRows(j.Rows); n > 0 {
		d.Issues = append(d.Issues, IntegrityIssue{Kind: "duplicate rows", Count: n})
	}

	for _, col := range sortedKeys(j.Quality.NonNumeric) {
		d.Issues = append(d.Issues, IntegrityIssue{
			Kind: "non-numeric amount", Column: col, Count: j.Quality.NonNumeric[col],
		})
	}
	for _, col := range sortedKeys(j.Quality.BadDates) {
		d.Issues = append(d.Issues, IntegrityIssue{
			Kind: "unparseable date", Column: col, Count: j.Quality.BadDates[col],
		})
	}

	if j.HasColumn(journal.ColVoucherID) {
		blank := 0
		for _, r := range j.Rows {
			if strings.TrimSpace(r.VoucherID) == "" {
				blank++
			}
		}
		if blank > 0 {
			d.Issues = append(d.Issues, IntegrityIssue{
				Kind: "blank voucher id", Column: journal.ColVoucherID, Count: blank,
			})
		}
	}

	return exceptions(ProcIntegrity, d)
}

// countMissing counts blank cells in one column of the typed journal.
func countMissing(j *journal.Journal, col string) int {
	n := 0
	for _, r := range j.Rows {
		var missing bool
		switch col {
		case journal.ColPostingDate:
			missing = r.PostingDate.IsZero()
		case journal.ColAccountCode:
			missing = strings.TrimSpace(r.AccountCode) == ""
		case journal.ColAccountName:
			missing = strings.TrimSpace(r.AccountName) == ""
		case journal.ColEntryDate:
			missing = r.EntryDate.IsZero()
		case journal.ColPreparer:
			missing = strings.TrimSpace(r.Preparer) == ""
		case journal.ColApprover:
			missing = strings.TrimSpace(r.Approver) == ""
		}
		if missing {
			n++
		}
	}
	return n
}

// countDuplicateRows counts lines that are full-field duplicates of an
// earlier line. Keyed on a canonical string form so the scan stays linear.
func countDuplicateRows(rows []journal.Row) int {
	seen := make(map[string]struct{}, len(rows))
	dups := 0
	for _, r := range rows {
		key := fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s|%s|%s",
			r.PostingDate, r.VoucherID, r.AccountCode, r.AccountName,
			r.Debit, r.Credit, r.EntryDate, r.Preparer, r.Approver)
		if _, ok := seen[key]; ok {
			dups++
			continue
		}
		seen[key] = struct{}{}
	}
	return dups
}
