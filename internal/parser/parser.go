package parser

import "dtp/internal/domain"

// Parser parses raw test output into outcomes and failure details
type Parser interface {
	Outcome(result domain.TestResult) domain.Outcome
	ParseFailures(result domain.TestResult) []domain.TestFailure
}
