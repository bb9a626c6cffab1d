package discovery

import (
	"path/filepath"
	"strings"

	"dtp/internal/domain"
)

// Filter filters discovered tests by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// ByName filters tests by file name pattern using wildcard matching.
// Supports patterns like "*UserTest.php" or "*Payment*"; a pattern without
// wildcards is a plain substring match.
func (f *Filter) ByName(tests []domain.Test, pattern string) []domain.Test {
	if pattern == "" {
		return tests
	}

	var filtered []domain.Test
	for _, test := range tests {
		if matchName(filepath.Base(test.Path), pattern) {
			filtered = append(filtered, test)
		}
	}
	return filtered
}

func matchName(name, pattern string) bool {
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	if !strings.Contains(pattern, "*") && !strings.Contains(pattern, "?") {
		return strings.Contains(name, pattern)
	}

	// Flexible fallback for patterns like "*Payment*": every non-empty part
	// between wildcards must appear in the name.
	parts := strings.Split(pattern, "*")
	hasPart := false
	for _, part := range parts {
		if part == "" {
			continue
		}
		hasPart = true
		if !strings.Contains(name, part) {
			return false
		}
	}
	return hasPart
}
