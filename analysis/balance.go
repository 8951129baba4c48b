package analysis

import (
	"github.com/auditkit/jet/journal"
	"github.com/shopspring/decimal"
)

// UnbalancedVoucher is a voucher whose summed debits and credits differ.
// Difference is signed, debit minus credit.
type UnbalancedVoucher struct {
	VoucherID  string
	Debit      decimal.Decimal
	Credit     decimal.Decimal
	Difference decimal.Decimal
	Lines      int
}

// BalanceDetail lists unbalanced vouchers ordered by voucher id.
type BalanceDetail struct {
	Vouchers []UnbalancedVoucher
}

// Count returns the number of unbalanced vouchers.
func (d *BalanceDetail) Count() int { return len(d.Vouchers) }

// Table projects the unbalanced vouchers into a renderable grid.
func (d *BalanceDetail) Table() *Table {
	t := &Table{Columns: []string{"voucher", "debit", "credit", "difference"}}
	for _, v := range d.Vouchers {
		t.Rows = append(t.Rows, []string{
			v.VoucherID, v.Debit.String(), v.Credit.String(), v.Difference.String(),
		})
	}
	return t
}

// CheckVoucherBalance is procedure A02: for every voucher, summed debits must
// equal summed credits exactly. Amounts are already currency-quantized, so no
// tolerance applies; any imbalance is an exception carrying its signed
// difference. Without a voucher id column the test cannot run at all, which
// is reported as a distinct outcome rather than a clean pass.
func CheckVoucherBalance(j *journal.Journal) Result {
	if !j.HasColumn(journal.ColVoucherID) {
		return cannotEvaluate(ProcVoucherBalance, "journal has no %s column", journal.ColVoucherID)
	}

	groups := AggregateByVoucher(j)
	d := &BalanceDetail{}
	for _, id := range sortedKeys(groups) {
		totals := groups[id]
		if totals.Debit.Equal(totals.Credit) {
			continue
		}
		d.Vouchers = append(d.Vouchers, UnbalancedVoucher{
			VoucherID:  id,
			Debit:      totals.Debit,
			Credit:     totals.Credit,
			Difference: totals.Net(),
			Lines:      totals.Lines,
		})
	}

	return exceptions(ProcVoucherBalance, d)
}
