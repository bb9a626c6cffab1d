package parser

import (
	"fmt"
	"regexp"
	"strings"

	"dtp/internal/domain"
)

// PHPUnitParser parses PHPUnit test output
type PHPUnitParser struct{}

// NewPHPUnitParser creates a new PHPUnitParser
func NewPHPUnitParser() *PHPUnitParser {
	return &PHPUnitParser{}
}

var (
	okPattern     = regexp.MustCompile(`OK\s*\(\s*(\d+)\s+tests?`)
	testsPattern  = regexp.MustCompile(`Tests:\s*(\d+)`)
	failsPattern  = regexp.MustCompile(`Failures:\s*(\d+)`)
	errorsPattern = regexp.MustCompile(`Errors:\s*(\d+)`)
)

// Outcome classifies a completed execution. A clean exit is a pass; output
// reporting errors (as opposed to assertion failures) is an error outcome;
// everything else that exited non-zero is a failure.
func (p *PHPUnitParser) Outcome(result domain.TestResult) domain.Outcome {
	if result.Error == nil {
		return domain.OutcomePassed
	}
	if match := errorsPattern.FindStringSubmatch(result.Output); len(match) >= 2 && match[1] != "0" {
		return domain.OutcomeError
	}
	if failsPattern.MatchString(result.Output) || strings.Contains(result.Output, "FAILURES!") {
		return domain.OutcomeFailed
	}
	// No recognizable PHPUnit summary: the process itself blew up.
	return domain.OutcomeError
}

// Counts extracts passed and failed test case counts from PHPUnit output.
// If the summary cannot be parsed the whole file counts as one case.
func (p *PHPUnitParser) Counts(result domain.TestResult) (passed, failed int) {
	output := result.Output

	if match := okPattern.FindStringSubmatch(output); len(match) >= 2 {
		var total int
		fmt.Sscanf(match[1], "%d", &total)
		return total, 0
	}

	var total, failures, errors int
	if match := testsPattern.FindStringSubmatch(output); len(match) >= 2 {
		fmt.Sscanf(match[1], "%d", &total)
	}
	if match := failsPattern.FindStringSubmatch(output); len(match) >= 2 {
		fmt.Sscanf(match[1], "%d", &failures)
	}
	if match := errorsPattern.FindStringSubmatch(output); len(match) >= 2 {
		fmt.Sscanf(match[1], "%d", &errors)
	}
	failed = failures + errors
	if total >= failed {
		passed = total - failed
	}
	if passed > 0 || failed > 0 {
		return passed, failed
	}

	if result.Outcome.Passed() {
		return 1, 0
	}
	return 0, 1
}

// ParseFailures extracts per-case failure details from PHPUnit output.
// PHPUnit lists each failing case as "N) Namespaced\Class::method" followed
// by the assertion message, an optional JSON diff block and a stack trace.
func (p *PHPUnitParser) ParseFailures(result domain.TestResult) []domain.TestFailure {
	lines := strings.Split(result.Output, "\n")
	marker := caseMarker(result.Test.FilePath)

	var failures []domain.TestFailure
	for i, line := range lines {
		if marker.MatchString(line) {
			failures = append(failures, p.parseFailureCase(i, lines, marker))
		}
	}
	return failures
}

// caseMarker builds a pattern matching this file's failure headers, e.g.
// "1) Tests\Unit\UserTest::testCreate" for tests/Unit/UserTest.php.
func caseMarker(filePath string) *regexp.Regexp {
	name := strings.TrimSuffix(filePath, ".php")
	name = strings.ReplaceAll(name, "/", "\\")
	return regexp.MustCompile("(?i)" + regexp.QuoteMeta(name+"::"))
}

func (p *PHPUnitParser) parseFailureCase(start int, lines []string, marker *regexp.Regexp) domain.TestFailure {
	filePath, caseName := splitFailureHeader(lines[start])
	failure := domain.TestFailure{
		TestName:   caseName,
		FilePath:   filePath,
		StackTrace: []string{},
	}

	var messageLines, jsonLines []string
	inJSON := false
	braceDepth := 0
	jsonDone := false

	for j := start + 1; j < len(lines); j++ {
		line := lines[j]
		trimmed := strings.TrimSpace(line)

		if marker.MatchString(line) {
			break
		}

		if trimmed == "{" && !inJSON {
			inJSON = true
			braceDepth = 1
			jsonLines = append(jsonLines, line)
			continue
		}
		if inJSON {
			jsonLines = append(jsonLines, line)
			braceDepth += strings.Count(line, "{") - strings.Count(line, "}")
			if braceDepth == 0 {
				failure.ErrorDetails = strings.Join(jsonLines, "\n")
				inJSON = false
				jsonDone = true
			}
			continue
		}

		if jsonDone {
			// Stack trace lines are file paths with line numbers.
			if strings.Contains(line, ".php:") && (strings.HasPrefix(line, "/") || strings.Contains(line, "tests/")) {
				failure.StackTrace = append(failure.StackTrace, line)
				if failure.File == "" && strings.Contains(line, "tests/") {
					if file, lineNo, ok := splitTraceLine(line); ok {
						failure.File = file
						failure.Line = lineNo
					}
				}
			}
			continue
		}

		if len(messageLines) == 0 && trimmed == "" {
			continue
		}
		messageLines = append(messageLines, line)
	}

	for len(messageLines) > 0 && strings.TrimSpace(messageLines[len(messageLines)-1]) == "" {
		messageLines = messageLines[:len(messageLines)-1]
	}
	failure.Message = strings.Join(messageLines, "\n")
	return failure
}

// splitFailureHeader splits "1) Tests\Unit\UserTest::testCreate" into the
// file path (slashes restored) and the case name.
func splitFailureHeader(line string) (filePath, caseName string) {
	parts := strings.SplitN(line, "::", 2)
	name := parts[0]
	if idx := strings.Index(name, ")"); idx >= 0 {
		name = name[idx+1:]
	}
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "\\", "/")

	caseName = ""
	if len(parts) > 1 {
		caseName = strings.TrimSpace(parts[1])
	}
	return name, caseName
}

func splitTraceLine(line string) (file string, lineNo int, ok bool) {
	idx := strings.LastIndex(line, ":")
	if idx <= 0 {
		return "", 0, false
	}
	if _, err := fmt.Sscanf(line[idx+1:], "%d", &lineNo); err != nil {
		return "", 0, false
	}
	return strings.TrimSpace(line[:idx]), lineNo, true
}
