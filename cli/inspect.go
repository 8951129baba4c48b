package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/shopspring/decimal"

	"github.com/auditkit/jet/analysis"
	"github.com/auditkit/jet/journal"
	"github.com/auditkit/jet/loader"
)

// InspectCmd shows what a data file contains before running the battery:
// row and column counts, distinct vouchers and accounts, the posting date
// range. Useful for confirming an extract parsed the way the auditor
// expected, encodings and all.
type InspectCmd struct {
	File string `help:"Journal or trial balance file (CSV or XLSX)." arg:"" type:"existingfile"`
	Role string `help:"Table role: journal, trial-balance or auto." enum:"journal,trial-balance,auto" default:"auto"`
}

func (cmd *InspectCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx := context.Background()
	ldr := loader.New()

	role := cmd.Role
	if role == "auto" {
		detected, err := detectRole(runCtx, ldr, cmd.File)
		if err != nil {
			return err
		}
		role = detected
	}

	switch role {
	case "journal":
		j, err := ldr.LoadJournal(runCtx, cmd.File)
		if err != nil {
			return err
		}
		inspectJournal(ctx, cmd.File, j)
	default:
		tb, err := ldr.LoadTrialBalance(runCtx, cmd.File)
		if err != nil {
			return err
		}
		inspectTrialBalance(ctx, cmd.File, tb)
	}
	return nil
}

// detectRole loads the file as a journal and falls back to trial balance
// when the journal columns are not all present.
func detectRole(runCtx context.Context, ldr *loader.Loader, file string) (string, error) {
	j, err := ldr.LoadJournal(runCtx, file)
	if err != nil {
		return "", err
	}
	if analysis.ValidateJournal(j) == nil {
		return "journal", nil
	}
	return "trial-balance", nil
}

func inspectJournal(ctx *kong.Context, file string, j *journal.Journal) {
	printInfof(ctx.Stdout, "Journal %s", pathStyle.Render(file))
	_, _ = fmt.Fprintf(ctx.Stdout, "  rows:      %d\n", len(j.Rows))
	_, _ = fmt.Fprintf(ctx.Stdout, "  columns:   %s\n", strings.Join(j.Columns, ", "))

	vouchers := make(map[string]struct{})
	preparers := make(map[string]struct{})
	var first, last journal.Date
	for _, r := range j.Rows {
		vouchers[r.VoucherID] = struct{}{}
		if r.Preparer != "" {
			preparers[r.Preparer] = struct{}{}
		}
		if r.PostingDate.IsZero() {
			continue
		}
		if first.IsZero() || first.After(r.PostingDate) {
			first = r.PostingDate
		}
		if r.PostingDate.After(last) {
			last = r.PostingDate
		}
	}
	_, _ = fmt.Fprintf(ctx.Stdout, "  vouchers:  %d\n", len(vouchers))
	_, _ = fmt.Fprintf(ctx.Stdout, "  accounts:  %d\n", len(j.Accounts()))
	if len(preparers) > 0 {
		_, _ = fmt.Fprintf(ctx.Stdout, "  preparers: %d\n", len(preparers))
	}
	if !first.IsZero() {
		_, _ = fmt.Fprintf(ctx.Stdout, "  period:    %s to %s\n", first, last)
	}

	if err := analysis.ValidateJournal(j); err != nil {
		printWarning(ctx.Stdout, err.Error())
	}
}

func inspectTrialBalance(ctx *kong.Context, file string, tb *journal.TrialBalance) {
	printInfof(ctx.Stdout, "Trial balance %s", pathStyle.Render(file))
	_, _ = fmt.Fprintf(ctx.Stdout, "  rows:    %d\n", len(tb.Rows))
	_, _ = fmt.Fprintf(ctx.Stdout, "  columns: %s\n", strings.Join(tb.Columns, ", "))

	debit, credit := decimal.Zero, decimal.Zero
	for _, r := range tb.Rows {
		debit = debit.Add(r.Debit)
		credit = credit.Add(r.Credit)
	}
	_, _ = fmt.Fprintf(ctx.Stdout, "  debits:  %s\n", debit)
	_, _ = fmt.Fprintf(ctx.Stdout, "  credits: %s\n", credit)

	if err := analysis.ValidateTrialBalance(tb); err != nil {
		printWarning(ctx.Stdout, err.Error())
	}
}
