package discovery

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

// Parser extracts test cases from PHP test files
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// Matches test methods regardless of visibility modifiers, e.g.
// "public function testCreateUser(" or "final static function test_login(".
var testMethodPattern = regexp.MustCompile(
	`(?m)^\s*(?:(?:public|protected|private|static|final)\s+)*function\s+(test\w+)\s*\(`)

// Matches methods marked with a @test annotation in a docblock.
var annotatedMethodPattern = regexp.MustCompile(
	`(?m)/\*\*[\s\S]*?@test[\s\S]*?\*/\s*(?:(?:public|protected|private|static|final)\s+)*function\s+(\w+)\s*\(`)

// FindTestCases returns the sorted test case names declared in a test file:
// methods whose name starts with "test" plus methods annotated with @test.
func (p *Parser) FindTestCases(filePath string) ([]string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filePath, err)
	}

	cases := make(map[string]bool)
	for _, match := range testMethodPattern.FindAllStringSubmatch(string(content), -1) {
		cases[match[1]] = true
	}
	for _, match := range annotatedMethodPattern.FindAllStringSubmatch(string(content), -1) {
		if !strings.HasPrefix(match[1], "test") {
			cases[match[1]] = true
		}
	}

	names := make([]string, 0, len(cases))
	for name := range cases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
