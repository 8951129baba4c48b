package cli

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/auditkit/jet/analysis"
	"github.com/auditkit/jet/journal"
	"github.com/auditkit/jet/loader"
)

// analysisFlags are the input files and engine parameters shared by the
// commands that run the procedure battery.
type analysisFlags struct {
	Journal string `help:"Journal file (CSV or XLSX)." arg:"" type:"existingfile"`
	Prior   string `help:"Prior-period trial balance file." type:"existingfile" short:"p"`
	Current string `help:"Current-period trial balance file." type:"existingfile" short:"c"`

	Materiality   string `help:"Materiality threshold for the P&L screen." default:"1000000"`
	Frequency     int    `help:"Use count at or below which an account is low-frequency." default:"5"`
	FiscalYearEnd string `help:"Fiscal year end (YYYY-MM-DD) for the back-dated screen." name:"fiscal-year-end"`
	Tolerance     string `help:"Currency-unit tolerance of the roll-forward reconciliation." default:"0.01"`

	AuthorizedPreparer []string          `help:"Preparer authorized to enter journal entries (repeatable)."`
	PreparerRole       map[string]string `help:"Preparer role assignments, e.g. kim=input_authorized." mapsep:","`

	PLPrefix        []string `help:"Account code prefixes of P&L accounts." name:"pl-prefix" default:"4,5"`
	CashPrefix      []string `help:"Account code prefixes of cash accounts." default:"101,102,103"`
	AssetPrefix     []string `help:"Account code prefixes of asset accounts." default:"1,2"`
	LiabilityPrefix []string `help:"Account code prefixes of liability accounts." default:"3"`
}

// load reads the journal and whichever trial balances were supplied.
func (f *analysisFlags) load(ctx context.Context) (analysis.Inputs, error) {
	ldr := loader.New()

	var in analysis.Inputs
	var err error

	if in.Journal, err = ldr.LoadJournal(ctx, f.Journal); err != nil {
		return in, err
	}
	if f.Prior != "" {
		if in.Prior, err = ldr.LoadTrialBalance(ctx, f.Prior); err != nil {
			return in, err
		}
	}
	if f.Current != "" {
		if in.Current, err = ldr.LoadTrialBalance(ctx, f.Current); err != nil {
			return in, err
		}
	}
	return in, nil
}

// params assembles the engine parameters from the command flags.
func (f *analysisFlags) params() (analysis.Params, error) {
	params := analysis.DefaultParams()

	materiality, err := decimal.NewFromString(f.Materiality)
	if err != nil {
		return params, fmt.Errorf("invalid materiality threshold %q", f.Materiality)
	}
	params.Materiality = materiality

	tolerance, err := decimal.NewFromString(f.Tolerance)
	if err != nil {
		return params, fmt.Errorf("invalid tolerance %q", f.Tolerance)
	}
	params.Tolerance = tolerance

	if f.Frequency < 1 {
		return params, fmt.Errorf("frequency threshold must be at least 1")
	}
	params.FrequencyThreshold = f.Frequency

	if f.FiscalYearEnd != "" {
		fye, err := journal.ParseDate(f.FiscalYearEnd)
		if err != nil {
			return params, fmt.Errorf("invalid fiscal year end %q", f.FiscalYearEnd)
		}
		params.FiscalYearEnd = fye
	}

	if len(f.AuthorizedPreparer) > 0 {
		params.AuthorizedPreparers = make(map[string]struct{}, len(f.AuthorizedPreparer))
		for _, p := range f.AuthorizedPreparer {
			params.AuthorizedPreparers[p] = struct{}{}
		}
	}
	if len(f.PreparerRole) > 0 {
		params.PreparerRoles = f.PreparerRole
	}

	params.Chart = analysis.Chart{
		PLPrefixes:        f.PLPrefix,
		CashPrefixes:      f.CashPrefix,
		AssetPrefixes:     f.AssetPrefix,
		LiabilityPrefixes: f.LiabilityPrefix,
	}

	return params, nil
}
