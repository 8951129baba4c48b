// Package web provides a localhost HTTP server for browsing a procedure
// report. The server runs the full battery against the configured input
// files, serves the report as JSON, and re-runs the battery when any of
// the files change on disk.
//
// SECURITY WARNING: This server has no authentication and should only be
// bound to localhost (127.0.0.1). Do not expose it to untrusted networks.
package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/auditkit/jet/analysis"
	"github.com/auditkit/jet/loader"
	"github.com/auditkit/jet/telemetry"
)

// Files are the input files the server analyzes. Journal is required,
// the trial balances are optional.
type Files struct {
	Journal string
	Prior   string
	Current string
}

// paths returns the non-empty file paths in a fixed order.
func (f Files) paths() []string {
	var out []string
	for _, p := range []string{f.Journal, f.Prior, f.Current} {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

type Server struct {
	Port         int
	Host         string
	Version      string
	CommitSHA    string
	WatchEnabled bool

	files  Files
	params analysis.Params

	mu          sync.RWMutex
	report      *analysis.Report
	analyzedAt  time.Time
	analysisErr error

	// SSE clients for broadcasting reload events
	sseClients map[chan string]struct{}
	sseMu      sync.Mutex
}

func New(port int, files Files, params analysis.Params) *Server {
	return NewWithVersion(port, files, params, "", "")
}

func NewWithVersion(port int, files Files, params analysis.Params, version, commitSHA string) *Server {
	return &Server{
		Port:      port,
		Host:      "127.0.0.1",
		Version:   version,
		CommitSHA: commitSHA,
		files:     files,
		params:    params,
	}
}

func (s *Server) Start(ctx context.Context) error {
	collector := telemetry.FromContext(ctx)
	timer := collector.Start(fmt.Sprintf("web.start %s:%d", s.Host, s.Port))
	defer timer.End()

	if s.files.Journal == "" {
		return fmt.Errorf("journal file is required")
	}

	s.sseClients = make(map[chan string]struct{})

	runTimer := timer.Child(fmt.Sprintf("web.analyze %s", filepath.Base(s.files.Journal)))
	if err := s.reloadReport(ctx); err != nil {
		runTimer.End()
		return fmt.Errorf("failed to analyze input files: %w", err)
	}
	runTimer.End()

	if s.WatchEnabled {
		if err := s.startWatcher(ctx); err != nil {
			return fmt.Errorf("failed to start file watcher: %w", err)
		}
	}

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	return http.ListenAndServe(addr, s.setupRouter())
}

func (s *Server) setupRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/report", s.handleGetReport)
	mux.HandleFunc("GET /api/events", s.handleSSE)
	mux.HandleFunc("GET /{$}", s.handleIndex)

	return mux
}

// reloadReport loads the input files and re-runs the procedure battery.
// Caller must NOT hold the mutex - this method acquires it internally.
func (s *Server) reloadReport(ctx context.Context) error {
	ldr := loader.New()

	var in analysis.Inputs
	var err error

	if in.Journal, err = ldr.LoadJournal(ctx, s.files.Journal); err != nil {
		return err // I/O or format error
	}
	if s.files.Prior != "" {
		if in.Prior, err = ldr.LoadTrialBalance(ctx, s.files.Prior); err != nil {
			return err
		}
	}
	if s.files.Current != "" {
		if in.Current, err = ldr.LoadTrialBalance(ctx, s.files.Current); err != nil {
			return err
		}
	}

	report, runErr := analysis.Run(ctx, in, s.params)

	s.mu.Lock()
	s.report = report
	s.analyzedAt = time.Now()
	s.analysisErr = runErr
	s.mu.Unlock()

	return nil
}

// startWatcher starts a file watcher over the input files. It re-runs the
// battery and broadcasts SSE events when any of them change.
func (s *Server) startWatcher(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	for _, file := range s.files.paths() {
		if err := watcher.Add(file); err != nil {
			log.Printf("Warning: failed to watch %s: %v", file, err)
		}
	}

	go s.runWatcher(ctx, watcher)

	return nil
}

// runWatcher processes file system events with debouncing.
func (s *Server) runWatcher(ctx context.Context, watcher *fsnotify.Watcher) {
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		_ = watcher.Close()
	}()

	// Debounce timer - editors often write files in multiple steps
	const debounceDelay = 100 * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			// React to write/create/remove/rename events
			// (Remove/Rename are common in atomic saves)
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}

			debounceTimer = time.AfterFunc(debounceDelay, func() {
				s.handleFileChange(ctx, watcher)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

// handleFileChange re-runs the battery and refreshes the watch list.
func (s *Server) handleFileChange(ctx context.Context, watcher *fsnotify.Watcher) {
	if err := s.reloadReport(ctx); err != nil {
		log.Printf("Failed to re-analyze input files: %v", err)

		s.mu.Lock()
		s.analysisErr = err
		s.analyzedAt = time.Now()
		s.mu.Unlock()
	}

	// Re-add the watched files to catch files re-created by atomic saves
	for _, file := range s.files.paths() {
		if err := watcher.Add(file); err != nil {
			log.Printf("Warning: failed to watch %s: %v", file, err)
		}
	}

	s.broadcast("reload")
}

// handleSSE handles Server-Sent Events connections for real-time updates.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	clientChan := make(chan string, 10)

	s.sseMu.Lock()
	s.sseClients[clientChan] = struct{}{}
	s.sseMu.Unlock()

	// Cleanup on disconnect
	defer func() {
		s.sseMu.Lock()
		delete(s.sseClients, clientChan)
		s.sseMu.Unlock()
		close(clientChan)
	}()

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	_, _ = fmt.Fprintf(w, "data: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event := <-clientChan:
			_, _ = fmt.Fprintf(w, "data: %s\n\n", event)
			flusher.Flush()
		}
	}
}

// broadcast sends an event to all connected SSE clients.
func (s *Server) broadcast(event string) {
	s.sseMu.Lock()
	defer s.sseMu.Unlock()

	for clientChan := range s.sseClients {
		select {
		case clientChan <- event:
		default:
			// Client buffer full, skip
		}
	}
}
