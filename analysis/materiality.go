package analysis

import (
	"github.com/auditkit/jet/journal"
	"github.com/shopspring/decimal"
)

// MaterialAccount is a profit-or-loss account whose net period activity
// reaches the materiality threshold.
type MaterialAccount struct {
	AccountCode string
	AccountName string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Net         decimal.Decimal
}

// MaterialityDetail lists material P&L accounts ordered by account code.
type MaterialityDetail struct {
	Accounts []MaterialAccount
}

// Count returns the number of material accounts.
func (d *MaterialityDetail) Count() int { return len(d.Accounts) }

// Table projects the material accounts into a renderable grid.
func (d *MaterialityDetail) Table() *Table {
	t := &Table{Columns: []string{"account", "name", "debit", "credit", "net"}}
	for _, a := range d.Accounts {
		t.Rows = append(t.Rows, []string{
			a.AccountCode, a.AccountName,
			a.Debit.String(), a.Credit.String(), a.Net.String(),
		})
	}
	return t
}

// ScreenMateriality is procedure B01: restrict the journal to profit-and-loss
// accounts (per the chart's P&L prefixes), sum net activity per account and
// flag accounts whose absolute net reaches the materiality threshold. A
// journal with no P&L accounts at all cannot be screened meaningfully, which
// is reported as a distinct outcome.
func ScreenMateriality(j *journal.Journal, params Params) Result {
	names := make(map[string]string)
	groups := make(map[string]Totals)
	for _, r := range j.Rows {
		if !matchesPrefix(r.AccountCode, params.Chart.PLPrefixes) {
			continue
		}
		groups[r.AccountCode] = groups[r.AccountCode].add(r)
		if r.AccountName != "" {
			names[r.AccountCode] = r.AccountName
		}
	}

	if len(groups) == 0 {
		return cannotEvaluate(ProcMateriality, "journal contains no profit-and-loss accounts")
	}

	d := &MaterialityDetail{}
	for _, code := range sortedKeys(groups) {
		totals := groups[code]
		net := totals.Net()
		if net.Abs().GreaterThanOrEqual(params.Materiality) {
			d.Accounts = append(d.Accounts, MaterialAccount{
				AccountCode: code,
				AccountName: names[code],
				Debit:       totals.Debit,
				Credit:      totals.Credit,
				Net:         net,
			})
		}
	}

	return exceptions(ProcMateriality, d)
}
