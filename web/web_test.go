package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/auditkit/jet/analysis"
)

func writeFixtures(t *testing.T) Files {
	t.Helper()
	dir := t.TempDir()

	journalFile := filepath.Join(dir, "journal.csv")
	assert.NoError(t, os.WriteFile(journalFile, []byte(
		"posting_date,voucher_id,account_code,account_name,debit_amount,credit_amount\n"+
			"2025-03-01,V001,101,Cash,500,0\n"+
			"2025-03-01,V001,401,Revenue,0,300\n"), 0644))

	priorFile := filepath.Join(dir, "prior.csv")
	assert.NoError(t, os.WriteFile(priorFile, []byte(
		"account_code,account_name,debit_balance,credit_balance\n101,Cash,1000,0\n"), 0644))

	return Files{Journal: journalFile, Prior: priorFile}
}

func testServer(t *testing.T) *Server {
	t.Helper()
	s := New(0, writeFixtures(t), analysis.DefaultParams())
	s.sseClients = make(map[chan string]struct{})
	assert.NoError(t, s.reloadReport(context.Background()))
	return s
}

func TestHandleGetReport(t *testing.T) {
	s := testServer(t)

	ts := httptest.NewServer(s.setupRouter())
	defer ts.Close()

	res, err := http.Get(ts.URL + "/api/report")
	assert.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/json", res.Header.Get("Content-Type"))

	var report ReportResponse
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&report))

	assert.Equal(t, "journal.csv", report.Files.Journal)
	assert.Equal(t, "prior.csv", report.Files.Prior)
	assert.Equal(t, len(analysis.ProcedureOrder), len(report.Procedures))
	assert.False(t, report.Clean)

	balance := report.Procedures[1]
	assert.Equal(t, "A02", balance.Procedure)
	assert.Equal(t, "exceptions", balance.Outcome)
	assert.Equal(t, 1, balance.Count)

	// No current trial balance: the roll-forward cannot evaluate.
	rollForward := report.Procedures[2]
	assert.Equal(t, "cannot evaluate", rollForward.Outcome)
}

func TestHandleIndex(t *testing.T) {
	s := testServer(t)

	ts := httptest.NewServer(s.setupRouter())
	defer ts.Close()

	res, err := http.Get(ts.URL + "/")
	assert.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Header.Get("Content-Type"), "text/html")
}

func TestReloadReport_PicksUpFileChanges(t *testing.T) {
	s := testServer(t)

	s.mu.RLock()
	before := s.report.Exceptions()
	s.mu.RUnlock()
	assert.True(t, before > 0)

	// Balance the voucher and re-run.
	assert.NoError(t, os.WriteFile(s.files.Journal, []byte(
		"posting_date,voucher_id,account_code,account_name,debit_amount,credit_amount\n"+
			"2025-03-01,V001,101,Cash,500,0\n"+
			"2025-03-01,V001,401,Revenue,0,500\n"), 0644))
	assert.NoError(t, s.reloadReport(context.Background()))

	s.mu.RLock()
	balance, ok := s.report.Result(analysis.ProcVoucherBalance)
	s.mu.RUnlock()
	assert.True(t, ok)
	assert.Equal(t, analysis.OutcomePass, balance.Outcome)
}

func TestBroadcast_DeliversToClients(t *testing.T) {
	s := testServer(t)

	client := make(chan string, 1)
	s.sseMu.Lock()
	s.sseClients[client] = struct{}{}
	s.sseMu.Unlock()

	s.broadcast("reload")

	select {
	case event := <-client:
		assert.Equal(t, "reload", event)
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestBroadcast_SkipsFullClients(t *testing.T) {
	s := testServer(t)

	full := make(chan string) // unbuffered and never read
	s.sseMu.Lock()
	s.sseClients[full] = struct{}{}
	s.sseMu.Unlock()

	done := make(chan struct{})
	go func() {
		s.broadcast("reload")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a full client")
	}
}

func TestStart_RequiresJournal(t *testing.T) {
	s := New(0, Files{}, analysis.DefaultParams())
	err := s.Start(context.Background())
	assert.Error(t, err)
}

func TestFiles_Paths(t *testing.T) {
	f := Files{Journal: "j.csv", Current: "c.csv"}
	assert.Equal(t, []string{"j.csv", "c.csv"}, f.paths())
}
