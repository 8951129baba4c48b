package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/alecthomas/kong"

	"github.com/auditkit/jet/analysis"
	"github.com/auditkit/jet/output"
	"github.com/auditkit/jet/telemetry"
)

type CheckCmd struct {
	analysisFlags `embed:""`

	Interactive bool `help:"Prompt for the analysis parameters before running." short:"i"`
	JSON        bool `help:"Emit the report as JSON." name:"json"`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx := context.Background()

	var collector telemetry.Collector
	var checkTimer telemetry.Timer
	var once sync.Once

	reportTelemetry := func() {
		once.Do(func() {
			if collector != nil {
				checkTimer.End()
				_, _ = fmt.Fprintln(ctx.Stderr)
				collector.Report(ctx.Stderr, output.NewStyles(ctx.Stderr))
			}
		})
	}

	if globals.Telemetry {
		collector = telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)

		checkTimer = collector.Start(fmt.Sprintf("check %s", filepath.Base(cmd.Journal)))

		defer reportTelemetry()
	}

	if cmd.Interactive {
		frequency := strconv.Itoa(cmd.Frequency)
		if err := promptParams(&cmd.Materiality, &frequency, &cmd.FiscalYearEnd); err != nil {
			return err
		}
		n, err := strconv.Atoi(strings.TrimSpace(frequency))
		if err != nil {
			return fmt.Errorf("invalid frequency threshold %q", frequency)
		}
		cmd.Frequency = n
	}

	params, err := cmd.params()
	if err != nil {
		return err
	}

	inputs, err := cmd.load(runCtx)
	if err != nil {
		return err
	}

	report, err := analysis.Run(runCtx, inputs, params)
	if err != nil {
		printError(ctx.Stderr, err.Error())
		reportTelemetry()
		return NewCommandError(1)
	}

	if cmd.JSON {
		if err := writeJSONReport(ctx.Stdout, report); err != nil {
			return err
		}
	} else {
		renderReport(ctx.Stdout, report)
	}

	if !report.Clean() {
		reportTelemetry()
		return NewCommandError(1)
	}
	return nil
}
