package analysis

import "github.com/auditkit/jet/journal"

// LineDetail is the exception payload shared by the screens that report
// whole journal lines. Preparer and approver columns are included in the
// projection only when at least one flagged line carries a value, so
// reports against extracts without those columns stay compact.
type LineDetail struct {
	Rows []journal.Row
}

// Count returns the number of flagged lines.
func (d *LineDetail) Count() int { return len(d.Rows) }

// Table projects the flagged lines into a renderable grid.
func (d *LineDetail) Table() *Table {
	var hasPreparer, hasApprover bool
	for _, r := range d.Rows {
		hasPreparer = hasPreparer || r.Preparer != ""
		hasApprover = hasApprover || r.Approver != ""
	}

	columns := []string{"date", "voucher", "account", "name", "debit", "credit"}
	if hasPreparer {
		columns = append(columns, "preparer")
	}
	if hasApprover {
		columns = append(columns, "approver")
	}

	t := &Table{Columns: columns}
	for _, r := range d.Rows {
		row := []string{
			r.PostingDate.String(), r.VoucherID, r.AccountCode, r.AccountName,
			r.Debit.String(), r.Credit.String(),
		}
		if hasPreparer {
			row = append(row, r.Preparer)
		}
		if hasApprover {
			row = append(row, r.Approver)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
