package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"intellidoc/internal/models"
)

// FindingsService accumulates path entries in production order, mirrors each
// one into the chronological summaries log as it arrives, and serializes the
// complete findings once at the end of the run. The JSON artifact is written
// to a temporary file and renamed so an aborted run never leaves a
// half-written document.
type FindingsService struct {
	findings *models.Findings
	seen     map[string]struct{}
	jsonPath string
	logFile  *os.File
}

func NewFindingsService(root, summariesPath, findingsPath string) (*FindingsService, error) {
	logFile, err := os.OpenFile(summariesPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open summaries log: %w", err)
	}
	return &FindingsService{
		findings: &models.Findings{
			Root:        root,
			GeneratedAt: time.Now().UTC(),
		},
		seen:     make(map[string]struct{}),
		jsonPath: findingsPath,
		logFile:  logFile,
	}, nil
}

func (s *FindingsService) appendLog(text string) error {
	if s.logFile == nil {
		return nil
	}
	if _, err := fmt.Fprintf(s.logFile, "%s\n\n", text); err != nil {
		return fmt.Errorf("write summaries log: %w", err)
	}
	return nil
}

// SetRootOverview stores the listing-based project overview and logs it.
func (s *FindingsService) SetRootOverview(text string) error {
	s.findings.RootOverview = text
	return s.appendLog(fmt.Sprintf("Project Overview:\n%s", text))
}

// Record appends one entry. Duplicate paths are rejected: entries are
// immutable once recorded.
func (s *FindingsService) Record(entry models.PathEntry) error {
	if entry.Path == "" {
		return fmt.Errorf("entry path is required")
	}
	if _, dup := s.seen[entry.Path]; dup {
		return fmt.Errorf("duplicate findings entry: %s", entry.Path)
	}
	s.seen[entry.Path] = struct{}{}
	s.findings.Entries = append(s.findings.Entries, entry)

	label := "File"
	if entry.Kind == models.KindDirectory {
		label = "Directory"
	}
	switch entry.Status {
	case models.StatusSummarized:
		return s.appendLog(fmt.Sprintf("%s: %s\n%s", label, entry.Path, entry.Summary))
	default:
		return s.appendLog(fmt.Sprintf("%s: %s (%s)", label, entry.Path, entry.Status))
	}
}

func (s *FindingsService) Findings() *models.Findings {
	return s.findings
}

// Counts tallies recorded entries per kind and failure status.
func (s *FindingsService) Counts() (files, directories, unreadable, unavailable int) {
	for _, e := range s.findings.Entries {
		switch e.Kind {
		case models.KindFile:
			files++
		case models.KindDirectory:
			directories++
		}
		switch e.Status {
		case models.StatusUnreadable:
			unreadable++
		case models.StatusUnavailable:
			unavailable++
		}
	}
	return
}

// WriteJSON writes the complete findings document atomically.
func (s *FindingsService) WriteJSON() error {
	dir := filepath.Dir(s.jsonPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create findings directory: %w", err)
	}

	data, err := json.MarshalIndent(s.findings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal findings: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "findings-*.json.tmp")
	if err != nil {
		return fmt.Errorf("create temp findings file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write findings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close findings: %w", err)
	}
	if err := os.Rename(tmpName, s.jsonPath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename findings into place: %w", err)
	}
	return nil
}

// Close releases the summaries log handle.
func (s *FindingsService) Close() error {
	if s.logFile == nil {
		return nil
	}
	err := s.logFile.Close()
	s.logFile = nil
	return err
}

// LoadFindings reads a findings artifact back. The chat interface uses it to
// rebuild the context of a past run.
func LoadFindings(path string) (*models.Findings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read findings: %w", err)
	}
	var f models.Findings
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse findings: %w", err)
	}
	return &f, nil
}
