package discovery

import (
	"path/filepath"
	"strings"

	"pyformat/internal/domain"
)

// Filter filters records by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// Match reports whether name matches pattern.
// Supports patterns like "*pad*", "simple" or "Truncating__*".
// An empty pattern matches everything.
func (f *Filter) Match(name, pattern string) bool {
	if pattern == "" {
		return true
	}

	// filepath.Match supports * and ? wildcards
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	if strings.Contains(pattern, "*") {
		// Every non-empty part between wildcards must occur in the name
		nonEmpty := false
		for _, part := range strings.Split(pattern, "*") {
			if part == "" {
				continue
			}
			nonEmpty = true
			if !strings.Contains(name, part) {
				return false
			}
		}
		return nonEmpty
	}

	if !strings.Contains(pattern, "?") {
		return strings.Contains(name, pattern)
	}
	return false
}

// FilterRecords keeps the records whose name matches pattern. A section
// matching by its own name is kept whole; otherwise it keeps only its
// matching examples and is dropped when none match.
func (f *Filter) FilterRecords(records []domain.Record, pattern string) []domain.Record {
	if pattern == "" {
		return records
	}

	var filtered []domain.Record
	for _, record := range records {
		switch r := record.(type) {
		case *domain.Example:
			if f.Match(r.Name, pattern) {
				filtered = append(filtered, r)
			}
		case *domain.Section:
			if f.Match(r.Name, pattern) {
				filtered = append(filtered, r)
				continue
			}
			var examples []*domain.Example
			for _, example := range r.Examples {
				if f.Match(example.Name, pattern) {
					examples = append(examples, example)
				}
			}
			if len(examples) > 0 {
				section := *r
				section.Examples = examples
				filtered = append(filtered, &section)
			}
		}
	}
	return filtered
}
