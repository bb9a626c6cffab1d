package ui

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"dtp/internal/config"
	"dtp/internal/deps"
	"dtp/internal/discovery"
	"dtp/internal/domain"
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	parser *discovery.Parser
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config, parser *discovery.Parser) *Formatter {
	return &Formatter{
		config: cfg,
		parser: parser,
	}
}

// PrintRunStats reads and displays the last run report from the JSON results file
func (f *Formatter) PrintRunStats() error {
	// Clear terminal screen
	fmt.Print("\033[2J\033[H")

	data, err := os.ReadFile(f.config.GetOutputPath())
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}

	var report domain.RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	meta := report.Meta

	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                    Test Execution Statistics                  ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")
	printRow("Total Tests", color.New(color.FgWhite), "%d", meta.TotalTests)
	printRow("Passed", color.New(color.FgGreen), "%d", meta.Passed)
	printRow("Failed", color.New(color.FgRed), "%d", meta.Failed)
	printRow("Errors", color.New(color.FgRed), "%d", meta.Errors)
	printRow("Skipped", color.New(color.FgYellow), "%d", meta.Skipped)
	printRow("Failed Test Cases", color.New(color.FgRed), "%d", meta.FailedTestCases)
	printRow("Duration", color.New(color.FgWhite), "%.2fs", meta.DurationSeconds)
	printLastRow("Timestamp", color.New(color.FgWhite), "%s", meta.Timestamp)
	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Println()
	if meta.Failed == 0 && meta.Errors == 0 && meta.Skipped == 0 {
		color.Green("✓ All tests passed!")
	} else {
		if meta.Failed > 0 || meta.Errors > 0 {
			color.Red("✗ %d test(s) failed with %d test case failure(s)", meta.Failed+meta.Errors, meta.FailedTestCases)
		}
		if len(report.Gated) > 0 {
			fmt.Println()
			f.printGateDecisions(report.Gated)
		}
		if len(report.Details) > 0 {
			fmt.Println()
			f.printFailedCases(report.Details)
		}
	}

	return nil
}

func printRow(label string, c *color.Color, format string, value interface{}) {
	fmt.Printf("│ %-31s │ ", label)
	c.Printf("%-27s │\n", fmt.Sprintf(format, value))
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")
}

func printLastRow(label string, c *color.Color, format string, value interface{}) {
	fmt.Printf("│ %-31s │ ", label)
	c.Printf("%-27s │\n", fmt.Sprintf(format, value))
}

// printGateDecisions lists tests the dependency gate skipped or failed,
// with the reason naming the prerequisite.
func (f *Formatter) printGateDecisions(gated []domain.GateRecord) {
	color.Yellow("Gate decisions:")
	for _, record := range gated {
		switch record.Action {
		case "fail":
			color.Red("  ✗ %s: %s", record.TestName, record.Reason)
		default:
			color.Yellow("  ⊘ %s: %s", record.TestName, record.Reason)
		}
	}
}

// printFailedCases prints failing test cases grouped by file
func (f *Formatter) printFailedCases(failures []domain.TestFailure) {
	byFile := make(map[string][]domain.TestFailure)
	for _, failure := range failures {
		byFile[failure.FilePath] = append(byFile[failure.FilePath], failure)
	}

	files := make([]string, 0, len(byFile))
	for file := range byFile {
		files = append(files, file)
	}
	sort.Strings(files)

	color.Red("Failed test cases:")
	for i, file := range files {
		connector := "├──"
		caseConnector := "│  "
		if i == len(files)-1 {
			connector = "└──"
			caseConnector = "   "
		}
		color.Cyan("%s %s", connector, file)
		cases := byFile[file]
		for j, failure := range cases {
			inner := "├──"
			if j == len(cases)-1 {
				inner = "└──"
			}
			color.Red("%s %s %s", caseConnector, inner, failure.TestName)
		}
	}
}

// PrintTestList prints discovered tests, optionally with their test cases,
// annotated with priorities and declared dependencies from the registry.
func (f *Formatter) PrintTestList(tests []domain.Test, showTestCases bool, registry *deps.Registry) error {
	color.Green("Found %d test file(s):\n", len(tests))

	for i, test := range tests {
		isLast := i == len(tests)-1
		connector := "├──"
		childPrefix := "│   "
		if isLast {
			connector = "└──"
			childPrefix = "    "
		}

		color.Cyan("%s %s%s", connector, test.FilePath, f.annotate(test.Name, registry))

		if !showTestCases {
			continue
		}

		testCases, err := f.parser.FindTestCases(test.Path)
		if err != nil {
			color.Red("%s└── error reading test file: %v", childPrefix, err)
			continue
		}
		if len(testCases) == 0 {
			fmt.Printf("%s└── %s\n", childPrefix, color.RedString("(no test cases found)"))
			continue
		}
		for j, testCase := range testCases {
			inner := "├──"
			if j == len(testCases)-1 {
				inner = "└──"
			}
			fmt.Printf("%s%s %s\n", childPrefix, inner, color.YellowString(testCase))
		}
	}

	return nil
}

// annotate returns a suffix describing the registered constraints of a test
func (f *Formatter) annotate(name string, registry *deps.Registry) string {
	if registry == nil {
		return ""
	}

	var parts []string
	if priority := registry.Priority(name); priority != deps.DefaultPriority {
		parts = append(parts, fmt.Sprintf("priority %d", priority))
	}
	if hard := registry.HardDependencies(name); len(hard) > 0 {
		parts = append(parts, "after "+strings.Join(hard, ", "))
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + color.YellowString("[%s]", strings.Join(parts, "; "))
}

// PrintOrder prints the computed execution sequence with priorities and
// dependency annotations.
func (f *Formatter) PrintOrder(order []string, registry *deps.Registry) {
	color.Green("Execution order (%d tests):\n", len(order))
	for i, name := range order {
		fmt.Printf("%s %s%s\n",
			color.WhiteString("%3d.", i+1),
			color.CyanString(name),
			f.annotate(name, registry),
		)
	}
}
