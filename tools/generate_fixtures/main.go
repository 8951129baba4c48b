// Synthetic Fixture Generator
//
// This tool generates a synthetic journal and matching trial balances for
// performance testing and demos. A fraction of the vouchers carry seeded
// anomalies (unbalanced vouchers, back-dated entries, self-approvals,
// system preparers) so every screening procedure has something to find.
//
// Usage:
//
//	go run main.go -dir testdata          # journal.csv, prior.csv, current.csv
//	go run main.go -dir testdata -vouchers 100000
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

var accounts = []string{
	"10100", "10200", "10300", // cash
	"11000", "12000", "13000", // other assets
	"21000", "25000", // inventory, receivables
	"30000", "31000", "32000", // liabilities
	"40000", "41000", "45000", // revenue
	"50000", "51000", "52000", "53000", // expenses
}

var accountNames = map[string]string{
	"10100": "Cash on hand", "10200": "Bank deposits", "10300": "Short-term deposits",
	"11000": "Trade receivables", "12000": "Prepaid expenses", "13000": "Equipment",
	"21000": "Inventory", "25000": "Other receivables",
	"30000": "Trade payables", "31000": "Accrued liabilities", "32000": "Borrowings",
	"40000": "Product revenue", "41000": "Service revenue", "45000": "Other income",
	"50000": "Cost of sales", "51000": "Payroll", "52000": "Rent", "53000": "Utilities",
}

var preparers = []string{"kim", "lee", "park", "choi", "jung", "SYSTEM_BATCH"}
var approvers = []string{"manager.a", "manager.b", "controller"}

func main() {
	dir := flag.String("dir", ".", "output directory")
	vouchers := flag.Int("vouchers", 10000, "number of vouchers")
	seed := flag.Int64("seed", 42, "random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	if err := writeJournal(filepath.Join(*dir, "journal.csv"), *vouchers, rng); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := writeTrialBalance(filepath.Join(*dir, "prior.csv"), rng); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := writeTrialBalance(filepath.Join(*dir, "current.csv"), rng); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func writeJournal(path string, vouchers int, rng *rand.Rand) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{
		"posting_date", "voucher_id", "account_code", "account_name",
		"debit", "credit", "entry_date", "preparer", "approver",
	}); err != nil {
		return err
	}

	yearStart := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < vouchers; i++ {
		voucherID := fmt.Sprintf("V%06d", i+1)
		postingDate := yearStart.AddDate(0, 0, rng.Intn(365))
		entryDate := postingDate.AddDate(0, 0, rng.Intn(3))

		preparer := preparers[rng.Intn(len(preparers)-1)] // SYSTEM_BATCH seeded below
		approver := approvers[rng.Intn(len(approvers))]
		amount := strconv.Itoa((rng.Intn(5000) + 1) * 1000)

		debitAccount := accounts[rng.Intn(len(accounts))]
		creditAccount := accounts[rng.Intn(len(accounts))]
		creditAmount := amount

		// Seed anomalies into roughly 1% of vouchers each.
		switch rng.Intn(100) {
		case 0: // unbalanced voucher
			creditAmount = strconv.Itoa(mustAtoi(amount) + 10)
		case 1: // back-dated entry
			postingDate = time.Date(2025, 12, rng.Intn(28)+1, 0, 0, 0, 0, time.UTC)
			entryDate = postingDate.AddDate(0, 0, rng.Intn(30)+5)
		case 2: // self-approval
			approver = preparer
		case 3: // system preparer
			preparer = "SYSTEM_BATCH"
		case 4: // cash-to-cash transfer
			debitAccount, creditAccount = "10100", "10200"
		}

		lines := [][]string{
			{postingDate.Format("2006-01-02"), voucherID, debitAccount, accountNames[debitAccount],
				amount, "", entryDate.Format("2006-01-02"), preparer, approver},
			{postingDate.Format("2006-01-02"), voucherID, creditAccount, accountNames[creditAccount],
				"", creditAmount, entryDate.Format("2006-01-02"), preparer, approver},
		}
		for _, line := range lines {
			if err := w.Write(line); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeTrialBalance(path string, rng *rand.Rand) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"account_code", "account_name", "debit", "credit"}); err != nil {
		return err
	}
	for _, code := range accounts {
		debit, credit := strconv.Itoa(rng.Intn(100_000_000)), ""
		if code >= "30000" { // liabilities and P&L carry credit balances
			debit, credit = "", strconv.Itoa(rng.Intn(100_000_000))
		}
		if err := w.Write([]string{code, accountNames[code], debit, credit}); err != nil {
			return err
		}
	}
	return nil
}

func mustAtoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		panic(err)
	}
	return n
}
