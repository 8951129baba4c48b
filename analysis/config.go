package analysis

import (
	"strings"

	"github.com/auditkit/jet/journal"
	"github.com/shopspring/decimal"
)

// Chart describes the account numbering convention of the chart of accounts
// under audit. The class prefixes drive the materiality screen (which needs
// the P&L accounts) and the account-combination screen (which needs cash,
// asset and liability classes). The defaults match the numbering the tool
// was originally built against, but every engagement can inject its own.
type Chart struct {
	// PLPrefixes select revenue and expense accounts.
	PLPrefixes []string

	// CashPrefixes select cash and cash-equivalent accounts.
	CashPrefixes []string

	// AssetPrefixes select asset-class accounts.
	AssetPrefixes []string

	// LiabilityPrefixes select liability-class accounts.
	LiabilityPrefixes []string
}

// DefaultChart returns the default account numbering convention: assets in
// the 1xx/2xx ranges with 101-103 as cash, liabilities in 3xx, revenue in
// 4xx and expenses in 5xx.
func DefaultChart() Chart {
	return Chart{
		PLPrefixes:        []string{"4", "5"},
		CashPrefixes:      []string{"101", "102", "103"},
		AssetPrefixes:     []string{"1", "2"},
		LiabilityPrefixes: []string{"3"},
	}
}

// matchesPrefix reports whether an account code starts with any of the
// given prefixes.
func matchesPrefix(code string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(code, p) {
			return true
		}
	}
	return false
}

// RoleInputAuthorized is the role value that marks a preparer as allowed to
// enter journal entries in a caller-supplied role map.
const RoleInputAuthorized = "input_authorized"

// Params carries the caller-supplied parameters of a battery run. The zero
// value is not usable; start from DefaultParams.
type Params struct {
	// Materiality is the monetary cutoff of the P&L materiality screen.
	Materiality decimal.Decimal

	// FrequencyThreshold is the row count at or below which an account is
	// considered seldom used.
	FrequencyThreshold int

	// FiscalYearEnd is the closing date used by the back-dated entry screen.
	FiscalYearEnd journal.Date

	// AuthorizedPreparers, when non-empty, replaces the unusual-preparer
	// heuristic with a membership test against this set.
	AuthorizedPreparers map[string]struct{}

	// PreparerRoles, when non-empty, maps preparers to roles; any preparer
	// whose role is not RoleInputAuthorized is flagged by the unauthorized
	// screen.
	PreparerRoles map[string]string

	// SystemUserKeywords are case-insensitive substrings that mark a
	// preparer name as a system or test account.
	SystemUserKeywords []string

	// RestrictedRoleKeywords are case-insensitive substrings that mark a
	// preparer name as a title that should not be entering journal entries.
	RestrictedRoleKeywords []string

	// Tolerance is the currency-unit epsilon of the roll-forward
	// reconciliation, absorbing rounding rather than acting as a
	// materiality threshold.
	Tolerance decimal.Decimal

	// Chart is the account numbering convention.
	Chart Chart
}

// DefaultParams returns the battery defaults: one-million materiality,
// frequency threshold of five, a one-cent reconciliation tolerance and the
// default chart and keyword sets.
func DefaultParams() Params {
	return Params{
		Materiality:            decimal.NewFromInt(1_000_000),
		FrequencyThreshold:     5,
		Tolerance:              decimal.RequireFromString("0.01"),
		SystemUserKeywords:     []string{"SYSTEM", "ADMIN", "TEST", "AUTO"},
		RestrictedRoleKeywords: []string{"CEO", "CFO", "AUDIT", "EXTERNAL", "GUEST"},
		Chart:                  DefaultChart(),
	}
}

// containsKeyword reports whether name contains any keyword,
// case-insensitively.
func containsKeyword(name string, keywords []string) bool {
	upper := strings.ToUpper(name)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(upper, strings.ToUpper(kw)) {
			return true
		}
	}
	return false
}
