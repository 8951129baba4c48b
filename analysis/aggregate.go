package analysis

import (
	"github.com/auditkit/jet/journal"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Totals is a debit/credit pair summed over a group of journal lines.
type Totals struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
	Lines  int
}

// Net returns debit minus credit.
func (t Totals) Net() decimal.Decimal {
	return t.Debit.Sub(t.Credit)
}

// add accumulates one line into the totals.
func (t Totals) add(r journal.Row) Totals {
	return Totals{
		Debit:  t.Debit.Add(r.Debit),
		Credit: t.Credit.Add(r.Credit),
		Lines:  t.Lines + 1,
	}
}

// AggregateByVoucher groups journal lines by voucher id, summing debits and
// credits per group. Grouping is order-independent; duplicate lines simply
// accumulate. An empty journal yields an empty map.
func AggregateByVoucher(j *journal.Journal) map[string]Totals {
	groups := make(map[string]Totals)
	for _, r := range j.Rows {
		groups[r.VoucherID] = groups[r.VoucherID].add(r)
	}
	return groups
}

// AggregateByAccount groups journal lines by account code with the same sums.
func AggregateByAccount(j *journal.Journal) map[string]Totals {
	groups := make(map[string]Totals)
	for _, r := range j.Rows {
		groups[r.AccountCode] = groups[r.AccountCode].add(r)
	}
	return groups
}

// sortedKeys returns a group map's keys in ascending order, for deterministic
// report output.
func sortedKeys[V any](m map[string]V) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

// groupRowsByVoucher collects the journal lines of each voucher, preserving
// input order within a voucher.
func groupRowsByVoucher(j *journal.Journal) map[string][]journal.Row {
	groups := make(map[string][]journal.Row)
	for _, r := range j.Rows {
		groups[r.VoucherID] = append(groups[r.VoucherID], r)
	}
	return groups
}
