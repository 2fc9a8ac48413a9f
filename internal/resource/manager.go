// Package resource keeps rendered reports on disk so they can be downloaded
// again by run ID until the retention window expires.
package resource

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"GstRecon/internal/logger"
)

var ErrReportNotFound = errors.New("report not found")

// StoredReport describes one kept report. Summary is whatever the caller
// wants returned alongside the file; the store does not inspect it.
type StoredReport struct {
	RunID     string      `json:"run_id"`
	FileName  string      `json:"file_name"`
	Path      string      `json:"-"`
	Size      int         `json:"size"`
	CreatedAt time.Time   `json:"created_at"`
	Summary   interface{} `json:"summary,omitempty"`
}

// ReportStore maps run IDs to files under dir/<run_id>/.
type ReportStore struct {
	dir       string
	retention time.Duration
	now       func() time.Time

	mu      sync.RWMutex
	reports map[string]StoredReport
}

func NewReportStore(dir string, retention time.Duration) *ReportStore {
	return &ReportStore{
		dir:       dir,
		retention: retention,
		now:       time.Now,
		reports:   make(map[string]StoredReport),
	}
}

func (s *ReportStore) Name() string { return "reportstore" }

// Start creates the output directory. Reports left by an earlier process are
// not re-indexed; the next janitor pass removes them once expired.
func (s *ReportStore) Start() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create report dir %s: %w", s.dir, err)
	}
	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(fmt.Sprintf("report store ready at %s, retention %s", s.dir, s.retention))
	}
	return nil
}

func (s *ReportStore) Stop() error { return nil }

// Put writes the file under a fresh run ID.
func (s *ReportStore) Put(fileName string, data []byte, summary interface{}) (StoredReport, error) {
	runID := uuid.NewString()
	runDir := filepath.Join(s.dir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return StoredReport{}, fmt.Errorf("create run dir: %w", err)
	}
	path := filepath.Join(runDir, filepath.Base(fileName))
	if err := os.WriteFile(path, data, 0644); err != nil {
		os.RemoveAll(runDir)
		return StoredReport{}, fmt.Errorf("write report: %w", err)
	}

	rep := StoredReport{
		RunID:     runID,
		FileName:  filepath.Base(fileName),
		Path:      path,
		Size:      len(data),
		CreatedAt: s.now(),
		Summary:   summary,
	}
	s.mu.Lock()
	s.reports[runID] = rep
	s.mu.Unlock()
	return rep, nil
}

// Get returns the report metadata and file contents.
func (s *ReportStore) Get(runID string) (StoredReport, []byte, error) {
	if _, err := uuid.Parse(runID); err != nil {
		return StoredReport{}, nil, ErrReportNotFound
	}
	s.mu.RLock()
	rep, ok := s.reports[runID]
	s.mu.RUnlock()
	if !ok || s.expired(rep) {
		return StoredReport{}, nil, ErrReportNotFound
	}
	data, err := os.ReadFile(rep.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return StoredReport{}, nil, ErrReportNotFound
		}
		return StoredReport{}, nil, err
	}
	return rep, data, nil
}

// List returns the live reports, newest first.
func (s *ReportStore) List() []StoredReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]StoredReport, 0, len(s.reports))
	for _, rep := range s.reports {
		if !s.expired(rep) {
			out = append(out, rep)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// Expire deletes every run directory older than the retention window, indexed
// or not, and returns how many were removed. A zero retention keeps everything.
func (s *ReportStore) Expire() (int, error) {
	if s.retention <= 0 {
		return 0, nil
	}
	cutoff := s.now().Add(-s.retention)

	s.mu.Lock()
	for id, rep := range s.reports {
		if rep.CreatedAt.Before(cutoff) {
			delete(s.reports, id)
		}
	}
	live := make(map[string]bool, len(s.reports))
	for id := range s.reports {
		live[id] = true
	}
	s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	removed := 0
	for _, e := range entries {
		if !e.IsDir() || live[e.Name()] {
			continue
		}
		if _, err := uuid.Parse(e.Name()); err != nil {
			continue
		}
		info, err := e.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(s.dir, e.Name())); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func (s *ReportStore) expired(rep StoredReport) bool {
	return s.retention > 0 && s.now().Sub(rep.CreatedAt) > s.retention
}
