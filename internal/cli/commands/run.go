package commands

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"dtp/internal/config"
	"dtp/internal/database"
	"dtp/internal/deps"
	"dtp/internal/discovery"
	"dtp/internal/domain"
	"dtp/internal/execution"
	"dtp/internal/parser"
	"dtp/internal/storage"
	"dtp/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	executor  *execution.Executor
	parser    *parser.PHPUnitParser
	storage   storage.Storage
	formatter *ui.Formatter
	preparer  database.Preparer
	reviewer  ui.Viewer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	executor *execution.Executor,
	parser *parser.PHPUnitParser,
	st storage.Storage,
	formatter *ui.Formatter,
	preparer database.Preparer,
	reviewer ui.Viewer,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		executor:  executor,
		parser:    parser,
		storage:   st,
		formatter: formatter,
		preparer:  preparer,
		reviewer:  reviewer,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	// Prepare the database if flag is set
	if rc.config.Flags.Prepare {
		if err := rc.preparer.Prepare(rc.config.Flags.Fresh); err != nil {
			return err
		}
		fmt.Println()
	}

	// Discover tests
	tests, err := rc.scanner.Scan(rc.config.GetTestPath())
	if err != nil {
		return err
	}

	registry, err := buildRegistry(rc.config, tests)
	if err != nil {
		return err
	}

	// Select tests to run
	selected := tests
	if rc.config.Flags.OnlyFailed {
		selected, err = rc.failedTests(tests)
		if err != nil {
			return err
		}
	}
	selected = rc.filter.ByName(selected, rc.config.Flags.NameFilter)

	if rc.config.Flags.WithDeps {
		selected = withPrerequisites(selected, tests, registry)
	}

	if len(selected) == 0 {
		color.Yellow("No tests to execute")
		return nil
	}

	// Compute execution order
	order, err := registry.OrderTests(testNames(selected))
	if err != nil {
		return err
	}
	ordered := testsInOrder(order, selected)

	// Create and set progress bar
	progressBar := ui.NewProgressBar(len(ordered))
	rc.executor.SetProgress(progressBar)

	// Execute tests behind the dependency gate
	outcomes := deps.NewOutcomes()
	gate := deps.NewGate(registry, outcomes)
	results, gated, duration, err := rc.executor.Execute(ordered, gate, outcomes, rc.config.Flags.FailFast)
	if err != nil {
		return err
	}

	// Parse failures
	var failures []domain.TestFailure
	for _, result := range results {
		if result.Executed && !result.Outcome.Passed() {
			failures = append(failures, rc.parser.ParseFailures(result)...)
		}
	}

	// Save results
	if err := rc.storage.Save(results, gated, failures, duration); err != nil {
		return fmt.Errorf("failed to save test results: %w", err)
	}

	// Print stats
	if err := rc.formatter.PrintRunStats(); err != nil {
		return err
	}

	if rc.config.Flags.OpenReview && (len(failures) > 0 || len(gated) > 0) {
		report, err := rc.storage.Load()
		if err != nil {
			return err
		}
		return rc.reviewer.View(report)
	}

	return nil
}

// failedTests selects the discovered tests that did not pass in the last run
func (rc *RunCommand) failedTests(tests []domain.Test) ([]domain.Test, error) {
	report, err := rc.storage.Load()
	if err != nil {
		return nil, fmt.Errorf("no previous run to select failed tests from: %w", err)
	}

	failed := make(map[string]struct{})
	for _, failure := range report.Details {
		failed[filepath.Base(failure.FilePath)] = struct{}{}
	}
	for _, record := range report.Gated {
		if record.Action == "fail" {
			failed[record.TestName] = struct{}{}
		}
	}

	var selected []domain.Test
	for _, test := range tests {
		if _, ok := failed[test.Name]; ok {
			selected = append(selected, test)
		}
	}
	return selected, nil
}

// withPrerequisites extends the selection with every required prerequisite,
// transitively. Discovery is the universe, so every registered name resolves
// to a known test.
func withPrerequisites(selected, all []domain.Test, registry *deps.Registry) []domain.Test {
	expanded := registry.ExpandHard(testNames(selected))
	return testsInOrder(expanded, all)
}

func testNames(tests []domain.Test) []string {
	names := make([]string, len(tests))
	for i, test := range tests {
		names[i] = test.Name
	}
	return names
}

// testsInOrder maps a sequence of names back to test values, preserving the
// sequence
func testsInOrder(names []string, tests []domain.Test) []domain.Test {
	byName := make(map[string]domain.Test, len(tests))
	for _, test := range tests {
		byName[test.Name] = test
	}

	ordered := make([]domain.Test, 0, len(names))
	for _, name := range names {
		if test, ok := byName[name]; ok {
			ordered = append(ordered, test)
		}
	}
	return ordered
}
