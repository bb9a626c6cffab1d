package discovery

import (
	"testing"

	"dtp/internal/domain"
)

func testsFromNames(files []string) []domain.Test {
	tests := make([]domain.Test, len(files))
	for i, file := range files {
		tests[i] = domain.Test{Path: file, Name: domain.TestNameFromPath(file)}
	}
	return tests
}

func TestFilter_ByName(t *testing.T) {
	filter := NewFilter()

	tests := []struct {
		name     string
		files    []string
		pattern  string
		expected int // Expected number of matches
	}{
		{
			name:     "empty pattern returns all",
			files:    []string{"UserTest.php", "PaymentTest.php", "OrderTest.php"},
			pattern:  "",
			expected: 3,
		},
		{
			name:     "wildcard pattern matches suffix",
			files:    []string{"UserTest.php", "PaymentTest.php", "OrderTest.php"},
			pattern:  "*UserTest.php",
			expected: 1,
		},
		{
			name:     "wildcard pattern matches substring",
			files:    []string{"UserTest.php", "PaymentTest.php", "OrderTest.php", "PaymentServiceTest.php"},
			pattern:  "*Payment*",
			expected: 2,
		},
		{
			name:     "simple contains match",
			files:    []string{"UserTest.php", "PaymentTest.php", "OrderTest.php"},
			pattern:  "Payment",
			expected: 1,
		},
		{
			name:     "no matches",
			files:    []string{"UserTest.php", "PaymentTest.php"},
			pattern:  "*NonExistent*",
			expected: 0,
		},
		{
			name:     "full path with wildcard",
			files:    []string{"/path/to/UserTest.php", "/path/to/PaymentTest.php"},
			pattern:  "*UserTest.php",
			expected: 1,
		},
		{
			name:     "multiple wildcards",
			files:    []string{"UserServiceTest.php", "UserControllerTest.php", "PaymentTest.php"},
			pattern:  "*User*Test.php",
			expected: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := filter.ByName(testsFromNames(tt.files), tt.pattern)
			if len(result) != tt.expected {
				t.Errorf("expected %d matches, got %d", tt.expected, len(result))
			}
		})
	}
}

func TestFilter_ByName_EmptyList(t *testing.T) {
	filter := NewFilter()
	if result := filter.ByName(nil, "*Test.php"); len(result) != 0 {
		t.Errorf("expected empty result, got %d items", len(result))
	}
}
