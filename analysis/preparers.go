package analysis

import (
	"strings"

	"github.com/auditkit/jet/journal"
)

// Preparer screens: who entered the journal lines, and whether they should
// have been able to.

// lowUseCutoff is the use count at or below which a preparer is considered
// unusual when no authorized-preparer list is supplied.
const lowUseCutoff = 2

// ScreenUnusualPreparers is procedure B05. With an authorized-preparer set
// supplied, every line entered by someone outside the set is flagged.
// Without one the screen falls back to a heuristic: preparers seen at most
// twice in the whole journal, plus preparer names matching the system-user
// keyword set (case-insensitive substring match).
func ScreenUnusualPreparers(j *journal.Journal, params Params) Result {
	if !j.HasColumn(journal.ColPreparer) {
		return cannotEvaluate(ProcUnusualUser, "journal has no %s column", journal.ColPreparer)
	}

	flagged := make(map[string]bool)
	if len(params.AuthorizedPreparers) > 0 {
		for _, r := range j.Rows {
			if _, ok := params.AuthorizedPreparers[r.Preparer]; !ok {
				flagged[r.Preparer] = true
			}
		}
	} else {
		counts := make(map[string]int)
		for _, r := range j.Rows {
			counts[r.Preparer]++
		}
		for preparer, n := range counts {
			if n <= lowUseCutoff || containsKeyword(preparer, params.SystemUserKeywords) {
				flagged[preparer] = true
			}
		}
	}

	d := &LineDetail{}
	for _, r := range j.Rows {
		if flagged[r.Preparer] {
			d.Rows = append(d.Rows, r)
		}
	}
	return exceptions(ProcUnusualUser, d)
}

// ScreenUnauthorizedPreparers is procedure B06: flag lines entered by
// preparers whose name matches the restricted-role keyword set (executive,
// audit, external and guest titles have no business entering journal
// entries), and, when a role map is supplied, by preparers the map does not
// mark as input-authorized. Absence from the map counts as not authorized.
func ScreenUnauthorizedPreparers(j *journal.Journal, params Params) Result {
	if !j.HasColumn(journal.ColPreparer) {
		return cannotEvaluate(ProcUnauthorized, "journal has no %s column", journal.ColPreparer)
	}

	d := &LineDetail{}
	for _, r := range j.Rows {
		if isUnauthorized(r.Preparer, params) {
			d.Rows = append(d.Rows, r)
		}
	}
	return exceptions(ProcUnauthorized, d)
}

func isUnauthorized(preparer string, params Params) bool {
	if containsKeyword(preparer, params.RestrictedRoleKeywords) {
		return true
	}
	if len(params.PreparerRoles) > 0 {
		return params.PreparerRoles[preparer] != RoleInputAuthorized
	}
	return false
}

// ScreenSelfApproval is procedure B08: flag lines where the preparer and
// approver are the same person. Blank cells never match each other.
func ScreenSelfApproval(j *journal.Journal) Result {
	if !j.HasColumn(journal.ColPreparer) || !j.HasColumn(journal.ColApprover) {
		return cannotEvaluate(ProcSelfApproval, "journal has no %s or %s column",
			journal.ColPreparer, journal.ColApprover)
	}

	d := &LineDetail{}
	for _, r := range j.Rows {
		preparer := strings.TrimSpace(r.Preparer)
		if preparer != "" && preparer == strings.TrimSpace(r.Approver) {
			d.Rows = append(d.Rows, r)
		}
	}
	return exceptions(ProcSelfApproval, d)
}
