package discovery

import (
	"path/filepath"
	"strings"

	"ftest/internal/domain"
)

// Filter filters test cases by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// Match reports whether a case name matches the pattern.
// Supports patterns like "trim_*" or "*read*"; no wildcard means substring.
func (f *Filter) Match(name, pattern string) bool {
	if pattern == "" {
		return true
	}

	// Try to match using filepath.Match (supports * and ? wildcards)
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	// Fall back to ordered substring matching for patterns like "*read*"
	if strings.Contains(pattern, "*") {
		rest := name
		nonEmpty := false
		for _, part := range strings.Split(pattern, "*") {
			if part == "" {
				continue
			}
			nonEmpty = true
			i := strings.Index(rest, part)
			if i < 0 {
				return false
			}
			rest = rest[i+len(part):]
		}
		return nonEmpty
	}

	if !strings.Contains(pattern, "?") {
		return strings.Contains(name, pattern)
	}
	return false
}

// FilterSuites keeps only the cases whose names match the pattern.
// Suites are kept even when every case is filtered out.
func (f *Filter) FilterSuites(suites []domain.TestSuite, pattern string) []domain.TestSuite {
	if pattern == "" {
		return suites
	}

	filtered := make([]domain.TestSuite, 0, len(suites))
	for _, suite := range suites {
		kept := suite
		kept.Cases = nil
		for _, tc := range suite.Cases {
			if f.Match(tc.Name, pattern) {
				kept.Cases = append(kept.Cases, tc)
			}
		}
		filtered = append(filtered, kept)
	}
	return filtered
}
