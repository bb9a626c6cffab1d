package execution

import (
	"time"

	"dtp/internal/deps"
	"dtp/internal/domain"
	"dtp/internal/parser"
	"dtp/internal/ui"
)

// Executor is the sequential host loop for one run: it walks the ordered
// tests, consults the gate before each, executes those allowed to run and
// records every outcome so later gate checks see it. Tests run strictly
// one at a time, in the exact order given.
type Executor struct {
	runner   TestRunner
	parser   *parser.PHPUnitParser
	progress *ui.ProgressBar
}

// NewExecutor creates a new Executor
func NewExecutor(runner TestRunner, phpunitParser *parser.PHPUnitParser) *Executor {
	return &Executor{
		runner: runner,
		parser: phpunitParser,
	}
}

// SetProgress sets the progress bar for the run
func (e *Executor) SetProgress(progress *ui.ProgressBar) {
	e.progress = progress
}

// Execute runs tests in order. For each test the gate decides first:
// skip and fail verdicts are recorded without executing the test body,
// using the gate's reason. With failFast the loop stops after the first
// failed or errored test; skips do not trigger it.
func (e *Executor) Execute(
	tests []domain.Test,
	gate *deps.Gate,
	outcomes *deps.Outcomes,
	failFast bool,
) ([]domain.TestResult, []domain.GateRecord, time.Duration, error) {
	start := time.Now()

	var results []domain.TestResult
	var gated []domain.GateRecord
	var passedCases, failedCases, skippedFiles int

	for i, test := range tests {
		var result domain.TestResult

		decision := gate.Check(test.Name)
		switch decision.Action {
		case deps.ActionSkip:
			result = domain.TestResult{
				Test:    test,
				Outcome: domain.OutcomeSkipped,
				Reason:  decision.Reason,
			}
			skippedFiles++
		case deps.ActionFail:
			result = domain.TestResult{
				Test:    test,
				Outcome: domain.OutcomeFailed,
				Reason:  decision.Reason,
			}
			failedCases++
		default:
			result = e.runner.Run(test)
			result.Outcome = e.parser.Outcome(result)
			passed, failed := e.parser.Counts(result)
			passedCases += passed
			failedCases += failed
		}

		if decision.Action != deps.ActionRun {
			gated = append(gated, domain.GateRecord{
				TestName: test.Name,
				Action:   decision.Action.String(),
				Reason:   decision.Reason,
			})
		}

		outcomes.Record(test.Name, result.Outcome)
		results = append(results, result)

		if e.progress != nil {
			e.progress.Update(i+1, passedCases, failedCases, skippedFiles)
		}

		if failFast && (result.Outcome == domain.OutcomeFailed || result.Outcome == domain.OutcomeError) {
			break
		}
	}

	if e.progress != nil {
		e.progress.Finish()
	}
	return results, gated, time.Since(start), nil
}
