package execution

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"dtp/internal/config"
	"dtp/internal/domain"
)

// TestRunner executes a single test file
type TestRunner interface {
	Run(test domain.Test) domain.TestResult
}

// Runner executes a single PHPUnit test file
type Runner struct {
	config *config.Config
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{config: cfg}
}

// Run executes PHPUnit for a single test file. The outcome is classified
// by the caller from the exit status and output.
func (r *Runner) Run(test domain.Test) domain.TestResult {
	phpunitPath := r.config.GetPHPUnitPath()
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, phpunitPath, test.Path)

	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, fmt.Sprintf("DB_DATABASE=%s", r.config.GetDatabaseName()))
	cmd.Dir = r.config.ProjectPath

	start := time.Now()
	output, err := cmd.CombinedOutput()

	return domain.TestResult{
		Test:     test,
		Output:   string(output),
		Error:    err,
		Duration: time.Since(start),
		Executed: true,
	}
}
