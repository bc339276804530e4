package services

// ExclusionFilter decides whether a path's base name should be skipped
// outright. Membership is an exact, case-sensitive match; there are no glob
// semantics.
type ExclusionFilter struct {
	names map[string]struct{}
}

// DefaultExclusions lists the directory names never traversed or summarized:
// version-control metadata, dependency caches and virtual environments.
func DefaultExclusions() []string {
	return []string{
		".git",
		".venv",
		"node_modules",
		"__pycache__",
		".DS_Store",
		"pb_data",
		"pb_public",
		"migrations",
	}
}

func NewExclusionFilter(names ...string) ExclusionFilter {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return ExclusionFilter{names: set}
}

func (f ExclusionFilter) Excluded(name string) bool {
	_, ok := f.names[name]
	return ok
}
