package analysis

import (
	"fmt"
	"strings"

	"github.com/auditkit/jet/journal"
)

// MissingColumnsError reports the required columns a table does not carry.
// It is fatal to the procedures that depend on that table, never to the
// whole run.
type MissingColumnsError struct {
	Role    journal.Role
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s is missing required columns: %s",
		e.Role, strings.Join(e.Missing, ", "))
}

// ValidateColumns checks that a table's column set carries every required
// column. It returns nil when the schema is complete, or a
// MissingColumnsError listing what is absent. Callers must not run dependent
// procedures on a table that fails validation.
func ValidateColumns(role journal.Role, have []string) error {
	present := make(map[string]struct{}, len(have))
	for _, c := range have {
		present[c] = struct{}{}
	}

	var missing []string
	for _, required := range journal.RequiredColumns(role) {
		if _, ok := present[required]; !ok {
			missing = append(missing, required)
		}
	}

	if len(missing) > 0 {
		return &MissingColumnsError{Role: role, Missing: missing}
	}
	return nil
}

// ValidateTrialBalance checks a trial balance table's schema.
func ValidateTrialBalance(tb *journal.TrialBalance) error {
	return ValidateColumns(journal.RoleTrialBalance, tb.Columns)
}

// ValidateJournal checks a journal table's schema.
func ValidateJournal(j *journal.Journal) error {
	return ValidateColumns(journal.RoleJournal, j.Columns)
}
