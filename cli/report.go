package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/auditkit/jet/analysis"
)

// maxTableRows caps how many exception rows a procedure prints; the full
// set is always available through --json.
const maxTableRows = 25

// renderReport writes the battery report: one status line per procedure in
// battery order, with the exception table under every procedure that found
// something.
func renderReport(w io.Writer, report *analysis.Report) {
	for i, result := range report.Results {
		if i > 0 && result.Outcome == analysis.OutcomeExceptions {
			_, _ = fmt.Fprintln(w)
		}
		renderResult(w, result)
	}

	_, _ = fmt.Fprintln(w)
	if report.Clean() {
		printSuccess(w, "All procedures passed")
	} else if n := report.Exceptions(); n > 0 {
		printError(w, fmt.Sprintf("%d exception(s) found", n))
	} else {
		printWarning(w, "No exceptions found, but not every procedure could run")
	}
}

// renderResult writes one procedure's status line and, for exceptions, its
// table.
func renderResult(w io.Writer, result analysis.Result) {
	title := fmt.Sprintf("%s %s", result.Procedure, result.Procedure.Name())

	switch result.Outcome {
	case analysis.OutcomePass:
		_, _ = fmt.Fprintf(w, "%s %s\n", successStyle.Render(successSymbol), title)

	case analysis.OutcomeExceptions:
		_, _ = fmt.Fprintf(w, "%s %s %s\n",
			errorStyle.Render(errorSymbol), title,
			errorStyle.Render(fmt.Sprintf("(%d exception(s))", result.Count())))
		renderTable(w, result.Detail.Table())

	case analysis.OutcomeCannotEvaluate:
		_, _ = fmt.Fprintf(w, "%s %s %s\n",
			warnStyle.Render(warnSymbol), title,
			warnStyle.Render("cannot evaluate: "+result.Reason))

	case analysis.OutcomeError:
		_, _ = fmt.Fprintf(w, "%s %s %s\n",
			errorStyle.Render(errorSymbol), title,
			errorStyle.Render("error: "+result.Reason))
	}
}

// renderTable writes an exception table indented under its status line.
// Column widths are display widths, so CJK account names stay aligned.
func renderTable(w io.Writer, t *analysis.Table) {
	if t == nil || len(t.Rows) == 0 {
		return
	}

	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = runewidth.StringWidth(col)
	}
	rows := t.Rows
	truncated := 0
	if len(rows) > maxTableRows {
		truncated = len(rows) - maxTableRows
		rows = rows[:maxTableRows]
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && runewidth.StringWidth(cell) > widths[i] {
				widths[i] = runewidth.StringWidth(cell)
			}
		}
	}

	writeRow := func(cells []string, style func(string) string) {
		var b strings.Builder
		b.WriteString("    ")
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(runewidth.FillRight(cell, widths[i]))
		}
		line := fitWidth(strings.TrimRight(b.String(), " "))
		if style != nil {
			line = style(line)
		}
		_, _ = fmt.Fprintln(w, line)
	}

	writeRow(t.Columns, func(s string) string { return dimStyle.Render(s) })
	for _, row := range rows {
		writeRow(row, nil)
	}
	if truncated > 0 {
		_, _ = fmt.Fprintf(w, "    %s\n",
			dimStyle.Render(fmt.Sprintf("… and %d more row(s)", truncated)))
	}
}

// fitWidth truncates a rendered line to the terminal width when stdout is a
// terminal; piped output is left untouched.
func fitWidth(line string) string {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return line
	}
	return runewidth.Truncate(line, width, "…")
}

// jsonResult is the wire form of one procedure's result.
type jsonResult struct {
	Procedure string     `json:"procedure"`
	Name      string     `json:"name"`
	Outcome   string     `json:"outcome"`
	Reason    string     `json:"reason,omitempty"`
	Count     int        `json:"count"`
	Columns   []string   `json:"columns,omitempty"`
	Rows      [][]string `json:"rows,omitempty"`
}

// writeJSONReport emits the full report, untruncated, as a JSON array in
// battery order.
func writeJSONReport(w io.Writer, report *analysis.Report) error {
	results := make([]jsonResult, 0, len(report.Results))
	for _, r := range report.Results {
		jr := jsonResult{
			Procedure: string(r.Procedure),
			Name:      r.Procedure.Name(),
			Outcome:   r.Outcome.String(),
			Reason:    r.Reason,
			Count:     r.Count(),
		}
		if r.Detail != nil {
			t := r.Detail.Table()
			jr.Columns = t.Columns
			jr.Rows = t.Rows
		}
		results = append(results, jr)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
