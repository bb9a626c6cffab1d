package discovery

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFiles(t *testing.T, root string, files []string) {
	t.Helper()
	for _, file := range files {
		fullPath := filepath.Join(root, file)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", file, err)
		}
		if err := os.WriteFile(fullPath, []byte("<?php"), 0644); err != nil {
			t.Fatalf("failed to create file %s: %v", file, err)
		}
	}
}

func TestScanner_Scan(t *testing.T) {
	tmpDir := t.TempDir()

	writeFiles(t, tmpDir, []string{
		"tests/unit/UserTest.php",
		"tests/unit/PaymentTest.php",
		"tests/integration/OrderTest.php",
		"vendor/some/LibTest.php",
		"node_modules/some/file.js",
		"not_a_test.php",
	})

	scanner := NewScanner(tmpDir, []string{"vendor", "node_modules"})

	t.Run("scans test files and derives names", func(t *testing.T) {
		results, err := scanner.Scan(tmpDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(results) != 3 {
			t.Fatalf("expected 3 test files, got %d", len(results))
		}

		names := make(map[string]bool)
		for _, test := range results {
			names[test.Name] = true
			if strings.HasSuffix(test.Name, ".php") {
				t.Errorf("test name %q should not keep the extension", test.Name)
			}
			if filepath.IsAbs(test.FilePath) {
				t.Errorf("file path %q should be relative to the project", test.FilePath)
			}
		}
		for _, expected := range []string{"UserTest", "PaymentTest", "OrderTest"} {
			if !names[expected] {
				t.Errorf("expected to find test %s", expected)
			}
		}
	})

	t.Run("returns error for non-existent directory", func(t *testing.T) {
		if _, err := scanner.Scan("/non/existent/path"); err == nil {
			t.Error("expected error for non-existent directory")
		}
	})

	t.Run("returns error for file instead of directory", func(t *testing.T) {
		testFile := filepath.Join(tmpDir, "testfile.txt")
		os.WriteFile(testFile, []byte("test"), 0644)
		if _, err := scanner.Scan(testFile); err == nil {
			t.Error("expected error for file path")
		}
	})
}

func TestScanner_ScanDuplicateNames(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, []string{
		"tests/unit/UserTest.php",
		"tests/integration/UserTest.php",
	})

	scanner := NewScanner(tmpDir, nil)
	_, err := scanner.Scan(tmpDir)
	if err == nil {
		t.Fatal("expected error for duplicate test names")
	}
	if !strings.Contains(err.Error(), "UserTest") {
		t.Errorf("error should name the colliding test, got: %v", err)
	}
}
