package web

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"time"

	"github.com/auditkit/jet/analysis"
)

// ReportResponse is the JSON response structure for the report endpoint.
type ReportResponse struct {
	Version    string              `json:"version,omitempty"`
	Files      FilesResponse       `json:"files"`
	AnalyzedAt time.Time           `json:"analyzedAt"`
	Error      string              `json:"error,omitempty"`
	Clean      bool                `json:"clean"`
	Exceptions int                 `json:"exceptions"`
	Procedures []ProcedureResponse `json:"procedures"`
}

// FilesResponse names the analyzed input files.
type FilesResponse struct {
	Journal string `json:"journal"`
	Prior   string `json:"prior,omitempty"`
	Current string `json:"current,omitempty"`
}

// ProcedureResponse is one procedure result for JSON serialization.
type ProcedureResponse struct {
	Procedure string     `json:"procedure"`
	Name      string     `json:"name"`
	Outcome   string     `json:"outcome"`
	Reason    string     `json:"reason,omitempty"`
	Count     int        `json:"count"`
	Columns   []string   `json:"columns,omitempty"`
	Rows      [][]string `json:"rows,omitempty"`
}

// handleGetReport handles GET requests to /api/report.
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	report := s.report
	analyzedAt := s.analyzedAt
	analysisErr := s.analysisErr
	s.mu.RUnlock()

	resp := ReportResponse{
		Version: s.Version,
		Files: FilesResponse{
			Journal: filepath.Base(s.files.Journal),
		},
		AnalyzedAt: analyzedAt,
	}
	if s.files.Prior != "" {
		resp.Files.Prior = filepath.Base(s.files.Prior)
	}
	if s.files.Current != "" {
		resp.Files.Current = filepath.Base(s.files.Current)
	}

	if analysisErr != nil {
		resp.Error = analysisErr.Error()
	}

	if report != nil {
		resp.Clean = report.Clean()
		for _, result := range report.Results {
			proc := ProcedureResponse{
				Procedure: string(result.Procedure),
				Name:      result.Procedure.Name(),
				Outcome:   result.Outcome.String(),
				Reason:    result.Reason,
				Count:     result.Count(),
			}
			if result.Outcome == analysis.OutcomeExceptions {
				resp.Exceptions += result.Count()
			}
			if result.Detail != nil {
				if table := result.Detail.Table(); table != nil {
					proc.Columns = table.Columns
					proc.Rows = table.Rows
				}
			}
			resp.Procedures = append(resp.Procedures, proc)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp)
}
