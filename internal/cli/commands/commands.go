package commands

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"dtp/internal/cli"
	"dtp/internal/config"
	"dtp/internal/database"
	"dtp/internal/deps"
	"dtp/internal/discovery"
	"dtp/internal/domain"
	"dtp/internal/execution"
	"dtp/internal/manifest"
	"dtp/internal/parser"
	"dtp/internal/storage"
	"dtp/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Run     *RunCommand
	List    *ListCommand
	Order   *OrderCommand
	Review  *ReviewCommand
	Prepare *PrepareCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	scanner := discovery.NewScanner(cfg.ProjectPath, cfg.PathsToIgnore)
	filter := discovery.NewFilter()
	testCaseParser := discovery.NewParser()
	runner := execution.NewRunner(cfg)
	phpunitParser := parser.NewPHPUnitParser()
	executor := execution.NewExecutor(runner, phpunitParser)
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg, testCaseParser)
	dbManager := database.NewManager(cfg)
	preparer := database.NewLaravelPreparer(cfg, dbManager)
	reviewer := ui.NewReviewViewer(cfg, jsonStorage)

	return &Commands{
		Run:     NewRunCommand(cfg, scanner, filter, executor, phpunitParser, jsonStorage, formatter, preparer, reviewer),
		List:    NewListCommand(cfg, scanner, filter, formatter),
		Order:   NewOrderCommand(cfg, scanner, filter, formatter),
		Review:  NewReviewCommand(cfg, jsonStorage, reviewer),
		Prepare: NewPrepareCommand(cfg, preparer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run PHPUnit tests in dependency order",
		Long:  "Discover PHPUnit tests, order them by declared dependencies and execute them sequentially, skipping tests whose prerequisites did not pass",
		RunE:  c.Run.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Update config with flags after parsing
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	runCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where test detection should start")
	runCmd.Flags().StringVarP(&flags.Manifest, "manifest", "m", "", "Path to the dependency manifest (default dependencies.yaml)")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by name pattern (supports wildcards, e.g., '*UserTest.php' or '*Payment*')")
	runCmd.Flags().BoolVar(&flags.WithDeps, "with-deps", false, "Also run required prerequisites of the selected tests")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on first test failure")
	runCmd.Flags().BoolVar(&flags.OnlyFailed, "failed", false, "Run only tests that failed in the last run (from storage/test-results.json)")
	runCmd.Flags().BoolVar(&flags.Prepare, "prepare", false, "Prepare the test database before executing tests")
	runCmd.Flags().BoolVar(&flags.Fresh, "fresh", false, "Drop all tables and re-run migrations when preparing")
	runCmd.Flags().BoolVar(&flags.OpenReview, "open-review", false, "Open the review viewer when the run finishes with failures or skips")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered tests",
		Long:  "Scan and list all PHPUnit tests with their declared dependencies without executing them",
		RunE:  c.List.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by name pattern (supports wildcards, e.g., '*UserTest.php' or '*Payment*')")
	listCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where test detection should start")
	listCmd.Flags().StringVarP(&flags.Manifest, "manifest", "m", "", "Path to the dependency manifest (default dependencies.yaml)")
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "List test cases instead of test files")
	rootCmd.AddCommand(listCmd)

	// Order command
	orderCmd := &cobra.Command{
		Use:   "order",
		Short: "Show the execution order",
		Long:  "Compute and print the order tests would run in, without executing anything",
		RunE:  c.Order.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	orderCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by name pattern (supports wildcards, e.g., '*UserTest.php' or '*Payment*')")
	orderCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where test detection should start")
	orderCmd.Flags().StringVarP(&flags.Manifest, "manifest", "m", "", "Path to the dependency manifest (default dependencies.yaml)")
	orderCmd.Flags().BoolVar(&flags.WithDeps, "with-deps", false, "Also include required prerequisites of the selected tests")
	rootCmd.AddCommand(orderCmd)

	// Review command
	reviewCmd := &cobra.Command{
		Use:   "review",
		Short: "Review the last run interactively",
		Long:  "Display failures and gate decisions from the last test run in an interactive viewer",
		RunE:  c.Review.Execute,
	}
	rootCmd.AddCommand(reviewCmd)

	// Prepare command
	prepareCmd := &cobra.Command{
		Use:   "prepare",
		Short: "Prepare the test database",
		Long:  "Create the test database if needed and run migrations against it",
		RunE:  c.Prepare.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	prepareCmd.Flags().BoolVar(&flags.Fresh, "fresh", false, "Drop all tables and re-run migrations")
	rootCmd.AddCommand(prepareCmd)
}

// buildRegistry loads the dependency manifest and registers its entries
// against the set of discovered tests. A missing default manifest yields an
// empty registry; a missing manifest that was explicitly requested is an
// error.
func buildRegistry(cfg *config.Config, tests []domain.Test) (*deps.Registry, error) {
	registry := deps.NewRegistry()

	m, err := manifest.Load(cfg.GetManifestPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && cfg.Flags.Manifest == "" {
			return registry, nil
		}
		return nil, err
	}

	known := make(map[string]struct{}, len(tests))
	for _, test := range tests {
		known[test.Name] = struct{}{}
	}
	if err := m.Apply(registry, known); err != nil {
		return nil, err
	}
	return registry, nil
}
