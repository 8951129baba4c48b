package analysis

import "github.com/auditkit/jet/journal"

// ScreenBackDated is procedure B07: flag lines dated into the closed period
// but keyed into the system only after the fiscal year end, the classic
// shape of a back-dated adjustment. Lines with a blank entry date cannot be
// compared and are skipped; the data-integrity scan reports those gaps.
func ScreenBackDated(j *journal.Journal, params Params) Result {
	if !j.HasColumn(journal.ColEntryDate) {
		return cannotEvaluate(ProcBackDated, "journal has no %s column", journal.ColEntryDate)
	}
	if params.FiscalYearEnd.IsZero() {
		return cannotEvaluate(ProcBackDated, "fiscal year end not provided")
	}

	yearEnd := params.FiscalYearEnd
	d := &LineDetail{}
	for _, r := range j.Rows {
		if r.EntryDate.IsZero() || r.PostingDate.IsZero() {
			continue
		}
		if r.PostingDate.OnOrBefore(yearEnd) && r.EntryDate.After(yearEnd) {
			d.Rows = append(d.Rows, r)
		}
	}
	return exceptions(ProcBackDated, d)
}
