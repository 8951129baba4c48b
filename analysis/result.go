// Package analysis implements the journal entry testing engine: the battery
// of validation and anomaly-detection procedures an auditor runs over a prior
// trial balance, a journal and a current trial balance.
//
// Every procedure is a pure function over immutable input tables. Each one
// yields exactly one Result, and a procedure that cannot run (missing column,
// missing companion table) reports that as a distinct outcome instead of an
// empty exception set, so callers never conflate "checked, clean" with "not
// checked".
package analysis

import "fmt"

// ProcedureID identifies one procedure of the battery. The A-series are the
// essential tests, the B-series the optional anomaly screens.
type ProcedureID string

const (
	ProcIntegrity      ProcedureID = "A01"
	ProcVoucherBalance ProcedureID = "A02"
	ProcRollForward    ProcedureID = "A03"
	ProcMateriality    ProcedureID = "B01"
	ProcAccountPattern ProcedureID = "B02"
	ProcNewAccounts    ProcedureID = "B03"
	ProcLowFrequency   ProcedureID = "B04"
	ProcUnusualUser    ProcedureID = "B05"
	ProcUnauthorized   ProcedureID = "B06"
	ProcBackDated      ProcedureID = "B07"
	ProcSelfApproval   ProcedureID = "B08"
	ProcCombination    ProcedureID = "B09"
)

// ProcedureOrder is the canonical presentation order of the battery.
var ProcedureOrder = []ProcedureID{
	ProcIntegrity, ProcVoucherBalance, ProcRollForward,
	ProcMateriality, ProcAccountPattern, ProcNewAccounts, ProcLowFrequency,
	ProcUnusualUser, ProcUnauthorized, ProcBackDated, ProcSelfApproval,
	ProcCombination,
}

// procedureNames maps each procedure to its human-readable title.
var procedureNames = map[ProcedureID]string{
	ProcIntegrity:      "Data integrity",
	ProcVoucherBalance: "Voucher debit/credit balance",
	ProcRollForward:    "Trial balance roll-forward",
	ProcMateriality:    "P&L materiality screen",
	ProcAccountPattern: "Account code pattern screen",
	ProcNewAccounts:    "New account screen",
	ProcLowFrequency:   "Low-frequency account screen",
	ProcUnusualUser:    "Unusual preparer screen",
	ProcUnauthorized:   "Unauthorized preparer screen",
	ProcBackDated:      "Back-dated entry screen",
	ProcSelfApproval:   "Preparer equals approver screen",
	ProcCombination:    "Suspicious account combination screen",
}

// Name returns the procedure's human-readable title.
func (id ProcedureID) Name() string {
	return procedureNames[id]
}

// Outcome is the four-way status every procedure resolves to.
type Outcome int

const (
	// OutcomePass means the procedure ran and found no exceptions.
	OutcomePass Outcome = iota

	// OutcomeExceptions means the procedure ran and found exceptions; the
	// Result carries the exception detail.
	OutcomeExceptions

	// OutcomeCannotEvaluate means a precondition was unmet (missing column,
	// missing companion table). Distinct from a clean pass.
	OutcomeCannotEvaluate

	// OutcomeError means the procedure failed unexpectedly while running.
	OutcomeError
)

// String returns the outcome as a short lowercase word.
func (o Outcome) String() string {
	switch o {
	case OutcomePass:
		return "pass"
	case OutcomeExceptions:
		return "exceptions"
	case OutcomeCannotEvaluate:
		return "cannot evaluate"
	case OutcomeError:
		return "error"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Detail is the typed exception payload of a procedure. Each procedure has
// its own detail type; the Table projection is what the presentation layer
// renders, so it never needs to know the concrete types.
type Detail interface {
	// Count returns the number of exception items.
	Count() int

	// Table projects the exceptions into a renderable column/row grid.
	Table() *Table
}

// Table is a plain column/row grid, the engine's presentation boundary.
// Cells are already formatted; order is deterministic.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Result is the tagged outcome of one procedure.
type Result struct {
	Procedure ProcedureID
	Outcome   Outcome

	// Reason explains a cannot-evaluate or error outcome in human-readable
	// form. Empty for pass and exceptions outcomes.
	Reason string

	// Detail carries the exceptions when Outcome is OutcomeExceptions,
	// nil otherwise.
	Detail Detail
}

// Count returns the number of exceptions, zero when there are none.
func (r Result) Count() int {
	if r.Detail == nil {
		return 0
	}
	return r.Detail.Count()
}

// pass constructs a clean result for a procedure.
func pass(id ProcedureID) Result {
	return Result{Procedure: id, Outcome: OutcomePass}
}

// exceptions constructs a result carrying exception detail. An empty detail
// collapses to a pass so procedures can build their detail unconditionally.
func exceptions(id ProcedureID, d Detail) Result {
	if d == nil || d.Count() == 0 {
		return pass(id)
	}
	return Result{Procedure: id, Outcome: OutcomeExceptions, Detail: d}
}

// cannotEvaluate constructs a result for an unmet precondition.
func cannotEvaluate(id ProcedureID, format string, args ...any) Result {
	return Result{Procedure: id, Outcome: OutcomeCannotEvaluate, Reason: fmt.Sprintf(format, args...)}
}

// failure constructs a result for an unexpected procedure error.
func failure(id ProcedureID, err error) Result {
	return Result{Procedure: id, Outcome: OutcomeError, Reason: err.Error()}
}
