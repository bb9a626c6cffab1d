package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dtp/internal/domain"
)

// Scanner scans for test files in a directory
type Scanner struct {
	projectPath string
	skipDirs    map[string]bool
}

// NewScanner creates a new Scanner. skipDirs are directory names excluded
// from the walk; projectPath is used to compute relative file paths.
func NewScanner(projectPath string, skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{projectPath: projectPath, skipDirs: skipMap}
}

// Scan finds all test files under root. Each file becomes a domain.Test
// whose Name (base file name without extension) is the identity key used
// by the dependency registry and outcome tracking. Two files resolving to
// the same name would silently shadow each other there, so duplicates are
// a configuration error rather than a quiet last-write-wins.
func (s *Scanner) Scan(root string) ([]domain.Test, error) {
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("test path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("test path is not a directory: %s", root)
	}

	var tests []domain.Test
	seen := make(map[string]string) // name -> first path

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			// Skip hidden directories (starting with .)
			if strings.HasPrefix(name, ".") && name != "." && name != ".." {
				return filepath.SkipDir
			}
			if s.skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), "Test.php") {
			return nil
		}

		name := domain.TestNameFromPath(path)
		if first, ok := seen[name]; ok {
			return fmt.Errorf("duplicate test name %q: %s and %s", name, first, path)
		}
		seen[name] = path

		tests = append(tests, domain.Test{
			Path:     path,
			FilePath: s.relativePath(path),
			Name:     name,
		})
		return nil
	})

	return tests, err
}

func (s *Scanner) relativePath(path string) string {
	if s.projectPath == "" {
		return path
	}
	rel, err := filepath.Rel(s.projectPath, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
