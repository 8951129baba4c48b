package analysis

import (
	"context"
	"fmt"
	"sync"

	"github.com/auditkit/jet/journal"
	"github.com/auditkit/jet/telemetry"
)

// Inputs are the three tables of one battery run. The journal is required;
// either trial balance may be nil, in which case the procedures that need it
// report cannot-evaluate instead of running.
type Inputs struct {
	Prior   *journal.TrialBalance
	Journal *journal.Journal
	Current *journal.TrialBalance
}

// Report is the collected outcome of one battery run, ordered by procedure
// identity regardless of execution order.
type Report struct {
	Results []Result
}

// Result returns the result of one procedure.
func (rep *Report) Result(id ProcedureID) (Result, bool) {
	for _, r := range rep.Results {
		if r.Procedure == id {
			return r, true
		}
	}
	return Result{}, false
}

// Exceptions returns the total number of exceptions across all procedures.
func (rep *Report) Exceptions() int {
	n := 0
	for _, r := range rep.Results {
		n += r.Count()
	}
	return n
}

// Clean reports whether every procedure ran and passed.
func (rep *Report) Clean() bool {
	for _, r := range rep.Results {
		if r.Outcome != OutcomePass {
			return false
		}
	}
	return true
}

// Run executes the full battery over the inputs. The journal must be
// schema-valid; that is the one failure that aborts the run, since every
// procedure depends on it. Everything else is procedure-scoped: a missing
// companion table or column turns into a cannot-evaluate result, and a
// procedure that panics is recovered into an error result without
// disturbing its siblings.
//
// The procedures are mutually independent pure functions over immutable
// inputs, so they run concurrently; results are collected by procedure
// identity to keep report order deterministic.
func Run(ctx context.Context, in Inputs, params Params) (*Report, error) {
	if in.Journal == nil {
		return nil, fmt.Errorf("journal not provided")
	}
	if err := ValidateJournal(in.Journal); err != nil {
		return nil, err
	}

	collector := telemetry.FromContext(ctx)
	timer := collector.Start("analysis.run")
	defer timer.End()

	procedures := map[ProcedureID]func() Result{
		ProcIntegrity:      func() Result { return CheckIntegrity(in.Journal) },
		ProcVoucherBalance: func() Result { return CheckVoucherBalance(in.Journal) },
		ProcRollForward:    func() Result { return Reconcile(in.Prior, in.Journal, in.Current, params) },
		ProcMateriality:    func() Result { return ScreenMateriality(in.Journal, params) },
		ProcAccountPattern: func() Result { return ScreenAccountPattern(in.Journal) },
		ProcNewAccounts:    func() Result { return ScreenNewAccounts(in.Journal, in.Prior) },
		ProcLowFrequency:   func() Result { return ScreenLowFrequency(in.Journal, params) },
		ProcUnusualUser:    func() Result { return ScreenUnusualPreparers(in.Journal, params) },
		ProcUnauthorized:   func() Result { return ScreenUnauthorizedPreparers(in.Journal, params) },
		ProcBackDated:      func() Result { return ScreenBackDated(in.Journal, params) },
		ProcSelfApproval:   func() Result { return ScreenSelfApproval(in.Journal) },
		ProcCombination:    func() Result { return ScreenCombinations(in.Journal, params) },
	}

	results := make(map[ProcedureID]Result, len(procedures))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, id := range ProcedureOrder {
		wg.Add(1)
		go func(id ProcedureID, proc func() Result) {
			defer wg.Done()
			procTimer := timer.Child(string(id))
			defer procTimer.End()

			result := runRecovered(id, proc)

			mu.Lock()
			results[id] = result
			mu.Unlock()
		}(id, procedures[id])
	}
	wg.Wait()

	report := &Report{Results: make([]Result, 0, len(ProcedureOrder))}
	for _, id := range ProcedureOrder {
		report.Results = append(report.Results, results[id])
	}
	return report, nil
}

// runRecovered executes one procedure, converting a panic into an error
// outcome so one procedure's failure never aborts its siblings.
func runRecovered(id ProcedureID, proc func() Result) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = failure(id, fmt.Errorf("procedure panicked: %v", r))
		}
	}()
	return proc()
}
