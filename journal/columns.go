package journal

import "strings"

// Canonical column names. Every table is normalized to these names at
// ingestion; the engine and the schema validator only ever see them.
const (
	ColAccountCode   = "account_code"
	ColAccountName   = "account_name"
	ColDebitBalance  = "debit_balance"
	ColCreditBalance = "credit_balance"

	ColPostingDate  = "posting_date"
	ColVoucherID    = "voucher_id"
	ColDebitAmount  = "debit_amount"
	ColCreditAmount = "credit_amount"
	ColEntryDate    = "entry_date"
	ColPreparer     = "preparer"
	ColApprover     = "approver"
)

// Role identifies which table shape a dataset is expected to have. Column
// aliasing and schema validation both depend on it.
type Role string

const (
	RoleTrialBalance Role = "trial balance"
	RoleJournal      Role = "journal"
)

// TrialBalanceColumns are the columns a trial balance must carry.
var TrialBalanceColumns = []string{
	ColAccountCode, ColAccountName, ColDebitBalance, ColCreditBalance,
}

// JournalColumns are the columns a journal must carry. The entry_date,
// preparer and approver columns are optional; screens that need them report
// a distinct cannot-evaluate outcome when they are absent.
var JournalColumns = []string{
	ColPostingDate, ColVoucherID, ColAccountCode, ColAccountName,
	ColDebitAmount, ColCreditAmount,
}

// RequiredColumns returns the required column list for a role.
func RequiredColumns(role Role) []string {
	if role == RoleJournal {
		return JournalColumns
	}
	return TrialBalanceColumns
}

// commonAliases maps normalized raw header names to canonical names,
// independent of table role. It covers the spellings seen in real extracts,
// including the Korean ERP headers of the source files this tool was built
// for (and the 차변진액 misspelling of 차변잔액 that some of them carry).
var commonAliases = map[string]string{
	"account":      ColAccountCode,
	"acct_code":    ColAccountCode,
	"account_no":   ColAccountCode,
	"계정코드":         ColAccountCode,
	"계정과목":         ColAccountName,
	"차변잔액":         ColDebitBalance,
	"차변진액":         ColDebitBalance,
	"대변잔액":         ColCreditBalance,
	"전표일자":         ColPostingDate,
	"voucher":      ColVoucherID,
	"voucher_no":   ColVoucherID,
	"doc_no":       ColVoucherID,
	"전표번호":         ColVoucherID,
	"dr_amount":    ColDebitAmount,
	"차변금액":         ColDebitAmount,
	"cr_amount":    ColCreditAmount,
	"대변금액":         ColCreditAmount,
	"input_date":   ColEntryDate,
	"entered_on":   ColEntryDate,
	"입력일자":         ColEntryDate,
	"entered_by":   ColPreparer,
	"input_user":   ColPreparer,
	"입력사원":         ColPreparer,
	"approved_by":  ColApprover,
	"승인자":          ColApprover,
}

// roleAliases resolve the headers whose meaning depends on the table role:
// a bare "debit" is a balance on a trial balance but an amount on a journal.
var roleAliases = map[Role]map[string]string{
	RoleTrialBalance: {
		"debit":  ColDebitBalance,
		"credit": ColCreditBalance,
	},
	RoleJournal: {
		"debit":    ColDebitAmount,
		"credit":   ColCreditAmount,
		"date":     ColPostingDate,
		"doc_date": ColPostingDate,
	},
}

// CanonicalColumn normalizes a raw header cell to its canonical column name
// for the given table role. Unknown headers are returned normalized (trimmed,
// lowercased, separators collapsed to underscores) so extra columns pass
// through harmlessly.
func CanonicalColumn(role Role, raw string) string {
	name := strings.TrimSpace(raw)
	name = strings.ToLower(name)
	name = strings.NewReplacer(" ", "_", "-", "_", ".", "_").Replace(name)
	if canonical, ok := roleAliases[role][name]; ok {
		return canonical
	}
	if canonical, ok := commonAliases[name]; ok {
		return canonical
	}
	return name
}
