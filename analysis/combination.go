package analysis

import (
	"strconv"
	"strings"

	"github.com/auditkit/jet/journal"
)

// Pattern names a suspicious account combination within one voucher.
type Pattern string

const (
	// PatternCashToCash marks a voucher with two or more cash-class lines:
	// money moving between cash accounts inside a single entry.
	PatternCashToCash Pattern = "cash-to-cash transfer"

	// PatternAssetLiabilityOffset marks a two-line voucher pairing an asset
	// account directly against a liability account with no P&L line, a
	// settlement shape that bypasses the income statement.
	PatternAssetLiabilityOffset Pattern = "asset-liability offset"
)

// FlaggedVoucher is a voucher matching a suspicious combination pattern.
// A voucher that matches more than one pattern appears once per pattern.
type FlaggedVoucher struct {
	VoucherID string
	Pattern   Pattern
	Accounts  []string
	Rows      []journal.Row
}

// CombinationDetail lists flagged vouchers ordered by voucher id, then by
// pattern name.
type CombinationDetail struct {
	Vouchers []FlaggedVoucher
}

// Count returns the number of flagged voucher/pattern matches.
func (d *CombinationDetail) Count() int { return len(d.Vouchers) }

// Table projects the flagged vouchers into a renderable grid.
func (d *CombinationDetail) Table() *Table {
	t := &Table{Columns: []string{"voucher", "pattern", "accounts", "lines"}}
	for _, v := range d.Vouchers {
		t.Rows = append(t.Rows, []string{
			v.VoucherID, string(v.Pattern),
			strings.Join(v.Accounts, ", "),
			strconv.Itoa(len(v.Rows)),
		})
	}
	return t
}

// ScreenCombinations is procedure B09: per voucher, look for account
// combinations that are legal bookkeeping but rarely legitimate business.
// The class prefixes come from the chart configuration.
func ScreenCombinations(j *journal.Journal, params Params) Result {
	if !j.HasColumn(journal.ColVoucherID) {
		return cannotEvaluate(ProcCombination, "journal has no %s column", journal.ColVoucherID)
	}

	chart := params.Chart
	groups := groupRowsByVoucher(j)
	d := &CombinationDetail{}

	for _, id := range sortedKeys(groups) {
		rows := groups[id]

		var cash, assets, liabilities, profitLoss []string
		for _, r := range rows {
			code := r.AccountCode
			if matchesPrefix(code, chart.CashPrefixes) {
				cash = append(cash, code)
			}
			if matchesPrefix(code, chart.AssetPrefixes) {
				assets = append(assets, code)
			}
			if matchesPrefix(code, chart.LiabilityPrefixes) {
				liabilities = append(liabilities, code)
			}
			if matchesPrefix(code, chart.PLPrefixes) {
				profitLoss = append(profitLoss, code)
			}
		}

		if len(cash) >= 2 {
			d.Vouchers = append(d.Vouchers, FlaggedVoucher{
				VoucherID: id,
				Pattern:   PatternCashToCash,
				Accounts:  cash,
				Rows:      rows,
			})
		}

		if len(rows) == 2 && len(assets) > 0 && len(liabilities) > 0 && len(profitLoss) == 0 {
			accounts := make([]string, 0, len(rows))
			for _, r := range rows {
				accounts = append(accounts, r.AccountCode)
			}
			d.Vouchers = append(d.Vouchers, FlaggedVoucher{
				VoucherID: id,
				Pattern:   PatternAssetLiabilityOffset,
				Accounts:  accounts,
				Rows:      rows,
			})
		}
	}

	return exceptions(ProcCombination, d)
}
