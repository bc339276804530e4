package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yargevad/filepathx"

	"intellidoc/internal/llm/prompts"
	"intellidoc/internal/models"
)

// emptyDirSummary is recorded without a remote call for directories that end
// up with no summarizable children.
const emptyDirSummary = "Contains no summarizable files."

// WalkerService drives the scan: a strictly sequential depth-first walk that
// summarizes files, then their parent directory from the child summaries.
// One generation request is in flight at a time.
type WalkerService struct {
	filter     ExclusionFilter
	classifier FileClassifier
	summaries  *SummaryService
	findings   *FindingsService
	failFast   bool
	logger     *slog.Logger
}

func NewWalkerService(filter ExclusionFilter, classifier FileClassifier, summaries *SummaryService, findings *FindingsService, failFast bool, logger *slog.Logger) *WalkerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &WalkerService{
		filter:     filter,
		classifier: classifier,
		summaries:  summaries,
		findings:   findings,
		failFast:   failFast,
		logger:     logger,
	}
}

func (w *WalkerService) relPath(root, p string) string {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}

// listTree collects every non-excluded relative path under root, sorted, for
// the root overview prompt.
func (w *WalkerService) listTree(root string) ([]string, error) {
	matches, err := filepathx.Glob(filepath.Join(root, "**", "*"))
	if err != nil {
		return nil, fmt.Errorf("list tree: %w", err)
	}

	var listing []string
	for _, m := range matches {
		rel := w.relPath(root, m)
		if rel == "." {
			continue
		}
		excluded := false
		for _, part := range strings.Split(rel, "/") {
			if w.filter.Excluded(part) {
				excluded = true
				break
			}
		}
		if !excluded {
			listing = append(listing, rel)
		}
	}
	sort.Strings(listing)
	return listing, nil
}

// Walk scans the target folder. It generates the root overview first, then
// performs the post-order traversal; every directory entry is recorded only
// after all of its non-excluded children.
func (w *WalkerService) Walk(ctx context.Context, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("target folder: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("target is not a directory: %s", root)
	}

	listing, err := w.listTree(root)
	if err != nil {
		return err
	}
	w.logger.Info("analyzing project root", "target", root, "paths", len(listing))
	overview, err := w.summaries.SummarizeRoot(ctx, root, listing)
	if err != nil {
		if w.failFast {
			return fmt.Errorf("root overview: %w", err)
		}
		w.logger.Warn("root overview failed", "error", err)
		overview = PlaceholderSummary
	}
	if err := w.findings.SetRootOverview(overview); err != nil {
		return err
	}

	if _, err := w.walkDir(ctx, root, root); err != nil {
		return err
	}
	return nil
}

// walkDir visits files first, then recurses into subdirectories, and finally
// summarizes dir itself from its children's summaries. It returns the
// directory summary handed up to the parent.
func (w *WalkerService) walkDir(ctx context.Context, root, dir string) (string, error) {
	rel := w.relPath(root, dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if dir == root {
			return "", fmt.Errorf("read target folder: %w", err)
		}
		w.logger.Warn("skipping unreadable directory", "path", rel, "error", err)
		return "", w.findings.Record(models.PathEntry{
			Path:   rel,
			Kind:   models.KindDirectory,
			Status: models.StatusSkipped,
		})
	}

	var children []prompts.ChildSummary

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if entry.IsDir() || w.filter.Excluded(entry.Name()) {
			continue
		}
		fileRel := w.relPath(root, filepath.Join(dir, entry.Name()))

		content, readable, cerr := w.classifier.Classify(filepath.Join(dir, entry.Name()))
		if cerr != nil || !readable {
			if cerr != nil {
				w.logger.Warn("skipping unreadable file", "path", fileRel, "error", cerr)
			} else {
				w.logger.Info("skipping binary or oversized file", "path", fileRel)
			}
			if err := w.findings.Record(models.PathEntry{
				Path:   fileRel,
				Kind:   models.KindFile,
				Status: models.StatusUnreadable,
			}); err != nil {
				return "", err
			}
			continue
		}

		w.logger.Info("analyzing file", "path", fileRel)
		summary, serr := w.summaries.SummarizeFile(ctx, fileRel, content)
		if serr != nil {
			if w.failFast {
				return "", fmt.Errorf("summarize %s: %w", fileRel, serr)
			}
			w.logger.Warn("file summary failed", "path", fileRel, "error", serr)
			if err := w.findings.Record(models.PathEntry{
				Path:    fileRel,
				Kind:    models.KindFile,
				Status:  models.StatusUnavailable,
				Summary: PlaceholderSummary,
			}); err != nil {
				return "", err
			}
			continue
		}

		if err := w.findings.Record(models.PathEntry{
			Path:    fileRel,
			Kind:    models.KindFile,
			Status:  models.StatusSummarized,
			Summary: summary,
		}); err != nil {
			return "", err
		}
		children = append(children, prompts.ChildSummary{Name: entry.Name(), Summary: summary})
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if !entry.IsDir() || w.filter.Excluded(entry.Name()) {
			continue
		}
		sub, werr := w.walkDir(ctx, root, filepath.Join(dir, entry.Name()))
		if werr != nil {
			return "", werr
		}
		if sub != "" {
			children = append(children, prompts.ChildSummary{Name: entry.Name() + "/", Summary: sub})
		}
	}

	if len(children) == 0 {
		if err := w.findings.Record(models.PathEntry{
			Path:    rel,
			Kind:    models.KindDirectory,
			Status:  models.StatusSummarized,
			Summary: emptyDirSummary,
		}); err != nil {
			return "", err
		}
		return emptyDirSummary, nil
	}

	w.logger.Info("analyzing directory", "path", rel)
	summary, serr := w.summaries.SummarizeDirectory(ctx, rel, children)
	if serr != nil {
		if w.failFast {
			return "", fmt.Errorf("summarize directory %s: %w", rel, serr)
		}
		w.logger.Warn("directory summary failed", "path", rel, "error", serr)
		if err := w.findings.Record(models.PathEntry{
			Path:    rel,
			Kind:    models.KindDirectory,
			Status:  models.StatusUnavailable,
			Summary: PlaceholderSummary,
		}); err != nil {
			return "", err
		}
		return "", nil
	}

	if err := w.findings.Record(models.PathEntry{
		Path:    rel,
		Kind:    models.KindDirectory,
		Status:  models.StatusSummarized,
		Summary: summary,
	}); err != nil {
		return "", err
	}
	return summary, nil
}
