package domain

import (
	"path/filepath"
	"strings"
)

// Test represents a test file selected for a run
type Test struct {
	Path     string // Full path to the test file
	FilePath string // Path relative to the project root
	Name     string // Identity key: file name without extension
}

// TestCase represents a single test case within a test file
type TestCase struct {
	Name     string // Test method name
	FilePath string // Path to the test file containing this case
}

// TestNameFromPath derives the identity key for a test file: the last path
// component with the .php extension removed. Two files sharing this name
// collide in the dependency registry, so discovery rejects duplicates.
func TestNameFromPath(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".php")
}
