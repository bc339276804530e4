package services

import (
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"intellidoc/internal/models"
)

// GuideService renders findings into the Markdown developer guide. It is a
// pure transformation: no remote calls, byte-identical output for the same
// findings.
type GuideService struct{}

func NewGuideService() GuideService {
	return GuideService{}
}

func parentOf(p string) string {
	if p == "." {
		return ""
	}
	return path.Dir(p)
}

func statusNote(e models.PathEntry) string {
	switch e.Status {
	case models.StatusUnreadable:
		return "_Not summarized: binary or unreadable._"
	case models.StatusSkipped:
		return "_Not summarized: could not be visited._"
	case models.StatusUnavailable:
		return "_Summary unavailable: the generation request failed._"
	default:
		return e.Summary
	}
}

// Compose writes the guide as a top-to-bottom tour: each directory's
// description immediately followed by its files, then its subdirectories.
// Every findings path appears exactly once.
func (GuideService) Compose(f *models.Findings) string {
	byPath := make(map[string]models.PathEntry, len(f.Entries))
	fileChildren := make(map[string][]string)
	dirChildren := make(map[string][]string)
	for _, e := range f.Entries {
		byPath[e.Path] = e
		parent := parentOf(e.Path)
		if parent == "" {
			continue
		}
		if e.Kind == models.KindDirectory {
			dirChildren[parent] = append(dirChildren[parent], e.Path)
		} else {
			fileChildren[parent] = append(fileChildren[parent], e.Path)
		}
	}
	for _, m := range []map[string][]string{fileChildren, dirChildren} {
		for _, children := range m {
			sort.Strings(children)
		}
	}

	var sb strings.Builder
	sb.WriteString("# Developer Guide\n\n")
	fmt.Fprintf(&sb, "Target: `%s`\n\n", f.Root)
	if f.RootOverview != "" {
		sb.WriteString("## Project Overview\n\n")
		sb.WriteString(strings.TrimSpace(f.RootOverview))
		sb.WriteString("\n\n")
	}

	rendered := make(map[string]struct{}, len(byPath))
	var writeDir func(p string)
	writeDir = func(p string) {
		entry, ok := byPath[p]
		if !ok {
			return
		}
		if _, done := rendered[p]; done {
			return
		}
		rendered[p] = struct{}{}

		heading := p + "/"
		if p == "." {
			heading = "./"
		}
		fmt.Fprintf(&sb, "## %s\n\n%s\n\n", heading, strings.TrimSpace(statusNote(entry)))

		for _, fp := range fileChildren[p] {
			fe := byPath[fp]
			rendered[fp] = struct{}{}
			fmt.Fprintf(&sb, "### %s\n\n%s\n\n", fp, strings.TrimSpace(statusNote(fe)))
		}
		for _, dp := range dirChildren[p] {
			writeDir(dp)
		}
	}
	writeDir(".")

	// Entries whose parents were never recorded still get their one mention.
	for _, e := range f.Entries {
		if _, done := rendered[e.Path]; done {
			continue
		}
		rendered[e.Path] = struct{}{}
		if e.Kind == models.KindDirectory {
			fmt.Fprintf(&sb, "## %s/\n\n%s\n\n", e.Path, strings.TrimSpace(statusNote(e)))
		} else {
			fmt.Fprintf(&sb, "### %s\n\n%s\n\n", e.Path, strings.TrimSpace(statusNote(e)))
		}
	}

	return sb.String()
}

// WriteGuide composes the guide and writes it to disk. A write failure is
// fatal to the run: the artifacts are its purpose.
func (g GuideService) WriteGuide(path string, f *models.Findings) error {
	if err := os.WriteFile(path, []byte(g.Compose(f)), 0o644); err != nil {
		return fmt.Errorf("write guide: %w", err)
	}
	return nil
}
