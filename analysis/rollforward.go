package analysis

import (
	"github.com/auditkit/jet/journal"
	"github.com/shopspring/decimal"
)

// ReconciliationRow compares an account's expected period-end balance,
// rebuilt from the prior balance plus journal activity, against the actual
// current trial balance. Differences are signed, expected minus actual.
type ReconciliationRow struct {
	AccountCode    string
	AccountName    string
	ExpectedDebit  decimal.Decimal
	ExpectedCredit decimal.Decimal
	ActualDebit    decimal.Decimal
	ActualCredit   decimal.Decimal
	DebitDiff      decimal.Decimal
	CreditDiff     decimal.Decimal
}

// ReconciliationDetail lists the accounts whose rebuilt balance disagrees
// with the reported one, ordered by account code.
type ReconciliationDetail struct {
	Accounts []ReconciliationRow
}

// Count returns the number of accounts with a material difference.
func (d *ReconciliationDetail) Count() int { return len(d.Accounts) }

// Table projects the differences into a renderable grid.
func (d *ReconciliationDetail) Table() *Table {
	t := &Table{Columns: []string{
		"account", "name", "expected dr", "actual dr", "expected cr", "actual cr", "dr diff", "cr diff",
	}}
	for _, a := range d.Accounts {
		t.Rows = append(t.Rows, []string{
			a.AccountCode, a.AccountName,
			a.ExpectedDebit.String(), a.ActualDebit.String(),
			a.ExpectedCredit.String(), a.ActualCredit.String(),
			a.DebitDiff.String(), a.CreditDiff.String(),
		})
	}
	return t
}

// Reconcile is procedure A03, the roll-forward test. It proves completeness
// of journal capture by rebuilding the expected current balance of every
// account purely from the prior trial balance plus aggregated journal
// activity, then comparing against the actual current trial balance without
// ever trusting it as an input. The rebuilt balance is the signed net
// movement
//
//	net = (prior_debit - prior_credit) + (period_debit - period_credit)
//
// netted onto a single side the way a trial balance presents it: a positive
// net is a debit balance, a negative net a credit balance, and the opposite
// side is zero. Netting is applied once, to the period-end net, never
// iteratively.
//
// Accounts are taken from the union of all three inputs; a side missing from
// any input contributes zero. An account is reported only when either signed
// difference exceeds the tolerance, a fixed currency-unit epsilon absorbing
// rounding (not the materiality threshold, which belongs to the P&L screen).
func Reconcile(prior *journal.TrialBalance, j *journal.Journal, current *journal.TrialBalance, params Params) Result {
	if prior == nil {
		return cannotEvaluate(ProcRollForward, "prior trial balance not provided")
	}
	if current == nil {
		return cannotEvaluate(ProcRollForward, "current trial balance not provided")
	}
	if err := ValidateTrialBalance(prior); err != nil {
		return cannotEvaluate(ProcRollForward, "prior %s", err)
	}
	if err := ValidateTrialBalance(current); err != nil {
		return cannotEvaluate(ProcRollForward, "current %s", err)
	}

	activity := AggregateByAccount(j)
	priorRows := prior.ByAccount()
	currentRows := current.ByAccount()

	// Union of account codes across all three inputs.
	accounts := make(map[string]struct{})
	for code := range priorRows {
		accounts[code] = struct{}{}
	}
	for code := range activity {
		accounts[code] = struct{}{}
	}
	for code := range currentRows {
		accounts[code] = struct{}{}
	}

	tolerance := params.Tolerance
	d := &ReconciliationDetail{}
	for _, code := range sortedKeys(accounts) {
		priorRow := priorRows[code]
		period := activity[code]
		actual := currentRows[code]

		net := priorRow.Debit.Sub(priorRow.Credit).Add(period.Debit).Sub(period.Credit)
		expectedDebit, expectedCredit := netSides(net)

		row := ReconciliationRow{
			AccountCode:    code,
			AccountName:    accountName(priorRow, actual),
			ExpectedDebit:  expectedDebit,
			ExpectedCredit: expectedCredit,
			ActualDebit:    actual.Debit,
			ActualCredit:   actual.Credit,
			DebitDiff:      expectedDebit.Sub(actual.Debit),
			CreditDiff:     expectedCredit.Sub(actual.Credit),
		}

		if row.DebitDiff.Abs().GreaterThan(tolerance) || row.CreditDiff.Abs().GreaterThan(tolerance) {
			d.Accounts = append(d.Accounts, row)
		}
	}

	return exceptions(ProcRollForward, d)
}

// netSides presents a signed net balance on a single side. Exactly one side
// is ever non-zero, so the two expected columns stay mutually exclusive.
func netSides(net decimal.Decimal) (debit, credit decimal.Decimal) {
	if net.IsNegative() {
		return decimal.Zero, net.Abs()
	}
	return net, decimal.Zero
}

// accountName picks the account name from whichever trial balance has it.
func accountName(prior, current journal.TrialBalanceRow) string {
	if prior.AccountName != "" {
		return prior.AccountName
	}
	return current.AccountName
}
