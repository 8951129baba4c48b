package analysis

import (
	"regexp"
	"strings"

	"github.com/auditkit/jet/journal"
)

// Account-shape screens: structural code checks, novelty against the prior
// trial balance, and usage frequency.

// wellFormedCode matches the account codes a chart of accounts normally
// issues: purely alphanumeric. Length bounds are checked separately.
var wellFormedCode = regexp.MustCompile(`^[0-9A-Za-z]+$`)

const (
	minAccountCodeLen = 3
	maxAccountCodeLen = 10
)

// ScreenAccountPattern is procedure B02: flag every line whose account code
// has an abnormal structural shape, meaning a length outside [3,10] or any
// character outside the alphanumeric range.
func ScreenAccountPattern(j *journal.Journal) Result {
	d := &LineDetail{}
	for _, r := range j.Rows {
		code := strings.TrimSpace(r.AccountCode)
		if len(code) < minAccountCodeLen || len(code) > maxAccountCodeLen || !wellFormedCode.MatchString(code) {
			d.Rows = append(d.Rows, r)
		}
	}
	return exceptions(ProcAccountPattern, d)
}

// ScreenNewAccounts is procedure B03: set-difference of the accounts used in
// the journal against the accounts carried on the prior trial balance. Every
// line posted to an account the prior period never saw is flagged.
func ScreenNewAccounts(j *journal.Journal, prior *journal.TrialBalance) Result {
	if prior == nil {
		return cannotEvaluate(ProcNewAccounts, "prior trial balance not provided")
	}
	if !prior.HasColumn(journal.ColAccountCode) {
		return cannotEvaluate(ProcNewAccounts, "prior trial balance has no %s column", journal.ColAccountCode)
	}

	known := prior.Accounts()
	d := &LineDetail{}
	for _, r := range j.Rows {
		if _, ok := known[r.AccountCode]; !ok {
			d.Rows = append(d.Rows, r)
		}
	}
	return exceptions(ProcNewAccounts, d)
}

// ScreenLowFrequency is procedure B04: count journal lines per account and
// flag all lines of accounts used at most the frequency threshold times.
// Rarely touched accounts are where misclassifications and one-off manual
// entries tend to hide.
func ScreenLowFrequency(j *journal.Journal, params Params) Result {
	counts := make(map[string]int)
	for _, r := range j.Rows {
		counts[r.AccountCode]++
	}

	d := &LineDetail{}
	for _, r := range j.Rows {
		if counts[r.AccountCode] <= params.FrequencyThreshold {
			d.Rows = append(d.Rows, r)
		}
	}
	return exceptions(ProcLowFrequency, d)
}
