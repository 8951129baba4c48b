package journal

// Builders for constructing tables programmatically, used by callers that
// feed the engine from sources other than files and throughout the tests.
// They use functional options for journal lines, following Go idioms for
// configurable constructors.

// NewTrialBalance creates a trial balance carrying the standard columns.
//
// Example:
//
//	tb := journal.NewTrialBalance(
//	    journal.NewBalanceRow("101", "Cash", "1000", "0"),
//	)
func NewTrialBalance(rows ...TrialBalanceRow) *TrialBalance {
	return &TrialBalance{
		Columns: append([]string(nil), TrialBalanceColumns...),
		Rows:    rows,
	}
}

// NewBalanceRow creates a trial balance row from decimal strings. Values that
// do not parse become zero, matching the ingestion coercion rule.
func NewBalanceRow(code, name, debit, credit string) TrialBalanceRow {
	d, _ := ParseAmount(debit)
	c, _ := ParseAmount(credit)
	return TrialBalanceRow{AccountCode: code, AccountName: name, Debit: d, Credit: c}
}

// RowOption configures a journal line built with NewRow.
type RowOption func(*Row)

// WithEntryDate sets the line's system entry date.
func WithEntryDate(date string) RowOption {
	return func(r *Row) { r.EntryDate = MustDate(date) }
}

// WithPreparer sets the user who entered the line.
func WithPreparer(name string) RowOption {
	return func(r *Row) { r.Preparer = name }
}

// WithApprover sets the user who authorized the line.
func WithApprover(name string) RowOption {
	return func(r *Row) { r.Approver = name }
}

// WithAccountName sets the line's account name.
func WithAccountName(name string) RowOption {
	return func(r *Row) { r.AccountName = name }
}

// NewRow creates a journal line from decimal strings.
//
// Example:
//
//	row := journal.NewRow("2024-03-01", "V001", "101", "500", "0",
//	    journal.WithPreparer("kim"))
func NewRow(postingDate, voucherID, accountCode, debit, credit string, opts ...RowOption) Row {
	d, _ := ParseAmount(debit)
	c, _ := ParseAmount(credit)
	r := Row{
		PostingDate: MustDate(postingDate),
		VoucherID:   voucherID,
		AccountCode: accountCode,
		Debit:       d,
		Credit:      c,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// NewJournal creates a journal carrying the standard columns plus any
// optional column for which at least one row has a value.
func NewJournal(rows ...Row) *Journal {
	j := &Journal{
		Columns: append([]string(nil), JournalColumns...),
		Rows:    rows,
	}
	var hasEntryDate, hasPreparer, hasApprover bool
	for _, r := range rows {
		hasEntryDate = hasEntryDate || !r.EntryDate.IsZero()
		hasPreparer = hasPreparer || r.Preparer != ""
		hasApprover = hasApprover || r.Approver != ""
	}
	if hasEntryDate {
		j.Columns = append(j.Columns, ColEntryDate)
	}
	if hasPreparer {
		j.Columns = append(j.Columns, ColPreparer)
	}
	if hasApprover {
		j.Columns = append(j.Columns, ColApprover)
	}
	return j
}
