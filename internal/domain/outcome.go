package domain

// Outcome is the final recorded state of a test for one run
type Outcome string

const (
	OutcomePassed  Outcome = "passed"
	OutcomeFailed  Outcome = "failed"
	OutcomeError   Outcome = "error"
	OutcomeSkipped Outcome = "skipped"
)

// Passed reports whether the outcome allows dependent tests to run.
func (o Outcome) Passed() bool {
	return o == OutcomePassed
}
