package domain

import "time"

// TestResult represents the result of one test in a run
type TestResult struct {
	Test     Test          // The test this result belongs to
	Outcome  Outcome       // Final outcome recorded for the run
	Reason   string        // Gate reason when the test did not execute
	Output   string        // Raw output from PHPUnit (empty for gated tests)
	Error    error         // Process-level error if execution failed
	Duration time.Duration // Time taken to execute
	Executed bool          // False when the gate decided without running the body
}

// GateRecord captures a gate decision for the run report
type GateRecord struct {
	TestName string `json:"test_name"`
	Action   string `json:"action"`
	Reason   string `json:"reason"`
}

// RunMeta contains metadata about a test run
type RunMeta struct {
	TotalTests      int     `json:"total_tests"`
	Passed          int     `json:"passed"`
	Failed          int     `json:"failed"`
	Errors          int     `json:"errors"`
	Skipped         int     `json:"skipped"`
	FailedTestCases int     `json:"failed_test_cases"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
}

// RunReport is the complete output structure for a test run
type RunReport struct {
	Meta    RunMeta       `json:"meta"`
	Order   []string      `json:"order"`
	Gated   []GateRecord  `json:"gated,omitempty"`
	Details []TestFailure `json:"details"`
}
