package models

import "time"

type PathKind string

const (
	KindFile      PathKind = "file"
	KindDirectory PathKind = "directory"
)

// EntryStatus records why an entry does or does not carry a summary.
type EntryStatus string

const (
	// StatusSummarized means the remote call succeeded and Summary holds its text.
	StatusSummarized EntryStatus = "summarized"
	// StatusUnreadable means the file was binary, oversized or undecodable.
	StatusUnreadable EntryStatus = "unreadable"
	// StatusSkipped means the path could not be visited (permission error etc.).
	StatusSkipped EntryStatus = "skipped"
	// StatusUnavailable means the remote call for this path failed.
	StatusUnavailable EntryStatus = "unavailable"
)

// PathEntry is one visited path and its summary. Entries are immutable once
// recorded by the findings aggregator.
type PathEntry struct {
	Path    string      `json:"path"`
	Kind    PathKind    `json:"kind"`
	Status  EntryStatus `json:"status"`
	Summary string      `json:"summary"`
}

// Findings is the aggregated result of one scan. Entries keep production
// order: files before their parent directory, children before parents, the
// root entry (path ".") last.
type Findings struct {
	Root         string      `json:"root"`
	GeneratedAt  time.Time   `json:"generatedAt"`
	RootOverview string      `json:"rootOverview,omitempty"`
	Entries      []PathEntry `json:"entries"`
}

// Get returns the entry for a relative path, if present.
func (f *Findings) Get(path string) (PathEntry, bool) {
	for _, e := range f.Entries {
		if e.Path == path {
			return e, true
		}
	}
	return PathEntry{}, false
}

// Summaries flattens the entries into a path -> summary mapping.
func (f *Findings) Summaries() map[string]string {
	out := make(map[string]string, len(f.Entries))
	for _, e := range f.Entries {
		out[e.Path] = e.Summary
	}
	return out
}
