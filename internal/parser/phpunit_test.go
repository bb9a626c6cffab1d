package parser

import (
	"errors"
	"testing"

	"dtp/internal/domain"
)

const failingOutput = `PHPUnit 10.5.20 by Sebastian Bergmann and contributors.

F.                                                                  2 / 2 (100%)

Time: 00:00.034, Memory: 6.00 MB

There was 1 failure:

1) Tests\Unit\UserTest::testCreateUser
Failed asserting that two arrays are identical.
{
  "expected": 1,
  "actual": 2
}
/var/www/tests/Unit/UserTest.php:42

FAILURES!
Tests: 2, Assertions: 3, Failures: 1.
`

func failingResult() domain.TestResult {
	return domain.TestResult{
		Test:    domain.Test{FilePath: "tests/Unit/UserTest.php", Name: "UserTest"},
		Output:  failingOutput,
		Error:   errors.New("exit status 1"),
		Outcome: domain.OutcomeFailed,
	}
}

func TestPHPUnitParser_Outcome(t *testing.T) {
	p := NewPHPUnitParser()

	tests := []struct {
		name     string
		result   domain.TestResult
		expected domain.Outcome
	}{
		{
			name:     "clean exit passes",
			result:   domain.TestResult{Output: "OK (2 tests, 4 assertions)"},
			expected: domain.OutcomePassed,
		},
		{
			name:     "assertion failures",
			result:   failingResult(),
			expected: domain.OutcomeFailed,
		},
		{
			name: "errors reported",
			result: domain.TestResult{
				Output: "ERRORS!\nTests: 2, Assertions: 1, Errors: 1.",
				Error:  errors.New("exit status 2"),
			},
			expected: domain.OutcomeError,
		},
		{
			name: "unrecognizable output",
			result: domain.TestResult{
				Output: "PHP Fatal error: something broke",
				Error:  errors.New("exit status 255"),
			},
			expected: domain.OutcomeError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Outcome(tt.result); got != tt.expected {
				t.Errorf("expected outcome %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestPHPUnitParser_Counts(t *testing.T) {
	p := NewPHPUnitParser()

	t.Run("all passed", func(t *testing.T) {
		passed, failed := p.Counts(domain.TestResult{Output: "OK (5 tests, 12 assertions)"})
		if passed != 5 || failed != 0 {
			t.Errorf("expected (5,0), got (%d,%d)", passed, failed)
		}
	})

	t.Run("mixed summary", func(t *testing.T) {
		passed, failed := p.Counts(failingResult())
		if passed != 1 || failed != 1 {
			t.Errorf("expected (1,1), got (%d,%d)", passed, failed)
		}
	})

	t.Run("fallback counts the file", func(t *testing.T) {
		passed, failed := p.Counts(domain.TestResult{Outcome: domain.OutcomePassed})
		if passed != 1 || failed != 0 {
			t.Errorf("expected (1,0), got (%d,%d)", passed, failed)
		}
		passed, failed = p.Counts(domain.TestResult{Outcome: domain.OutcomeFailed})
		if passed != 0 || failed != 1 {
			t.Errorf("expected (0,1), got (%d,%d)", passed, failed)
		}
	})
}

func TestPHPUnitParser_ParseFailures(t *testing.T) {
	p := NewPHPUnitParser()

	failures := p.ParseFailures(failingResult())
	if len(failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(failures))
	}

	failure := failures[0]
	if failure.TestName != "testCreateUser" {
		t.Errorf("expected case testCreateUser, got %q", failure.TestName)
	}
	if failure.FilePath != "Tests/Unit/UserTest" {
		t.Errorf("unexpected file path %q", failure.FilePath)
	}
	if failure.Message != "Failed asserting that two arrays are identical." {
		t.Errorf("unexpected message %q", failure.Message)
	}
	if failure.ErrorDetails == "" {
		t.Error("expected the JSON diff block in error details")
	}
	if failure.File != "/var/www/tests/Unit/UserTest.php" || failure.Line != 42 {
		t.Errorf("unexpected location %s:%d", failure.File, failure.Line)
	}
	if len(failure.StackTrace) != 1 {
		t.Errorf("expected 1 stack trace line, got %d", len(failure.StackTrace))
	}
}

func TestPHPUnitParser_ParseFailuresNoMatches(t *testing.T) {
	p := NewPHPUnitParser()
	result := domain.TestResult{
		Test:   domain.Test{FilePath: "tests/Unit/OrderTest.php"},
		Output: "OK (3 tests, 9 assertions)",
	}
	if failures := p.ParseFailures(result); len(failures) != 0 {
		t.Errorf("expected no failures, got %d", len(failures))
	}
}
