package database

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"dtp/internal/config"
)

// LaravelPreparer implements Preparer for Laravel projects
type LaravelPreparer struct {
	config  *config.Config
	manager *Manager
}

// NewLaravelPreparer creates a new LaravelPreparer
func NewLaravelPreparer(cfg *config.Config, manager *Manager) *LaravelPreparer {
	return &LaravelPreparer{
		config:  cfg,
		manager: manager,
	}
}

// Prepare makes sure the test database exists and runs the project's
// migrations against it. When fresh is true all tables are dropped and
// recreated first.
func (lp *LaravelPreparer) Prepare(fresh bool) error {
	color.Cyan("\n╔════════════════════════════════════════════════════════════╗")
	color.Cyan("║               Preparing Test Database                      ║")
	color.Cyan("╚════════════════════════════════════════════════════════════╝\n")

	if err := lp.manager.EnsureDatabase(); err != nil {
		return fmt.Errorf("failed to prepare database: %w", err)
	}

	// Count migration files to determine total progress
	migrationFiles, err := lp.findMigrationFiles()
	if err != nil {
		return fmt.Errorf("failed to find migration files: %w", err)
	}

	migrationCount := len(migrationFiles)
	color.White("Database: %s | Migration files: %d\n\n", lp.config.GetDatabaseName(), migrationCount)

	bar := progressbar.NewOptions(migrationCount,
		progressbar.OptionSetDescription(
			color.CyanString("Migrating: ")+
				color.GreenString("[completed: 0/%d]", migrationCount),
		),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	startTime := time.Now()
	output, err := lp.runMigrations(bar, fresh)
	bar.Finish()

	duration := time.Since(startTime)

	fmt.Print("\n")
	if err != nil {
		color.Red("✗ Migration failed: %v\n", err)
		if output != "" {
			fmt.Println(output)
		}
		return fmt.Errorf("migration failed: %w", err)
	}

	color.Green("✓ Database %s is ready\n", lp.config.GetDatabaseName())
	color.White("Duration: %s\n", duration.Round(time.Millisecond))

	return nil
}

// findMigrationFiles discovers all migration files in database/migrations
func (lp *LaravelPreparer) findMigrationFiles() ([]string, error) {
	migrationsPath := filepath.Join(lp.config.ProjectPath, "database", "migrations")
	var migrationFiles []string

	err := filepath.WalkDir(migrationsPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		// Laravel migration files end with .php
		if strings.HasSuffix(d.Name(), ".php") {
			migrationFiles = append(migrationFiles, path)
		}

		return nil
	})

	return migrationFiles, err
}

// runMigrations executes migrate or migrate:fresh with streaming output and progress tracking
func (lp *LaravelPreparer) runMigrations(bar *progressbar.ProgressBar, fresh bool) (string, error) {
	projectAbsPath, err := filepath.Abs(lp.config.ProjectPath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute project path: %w", err)
	}

	artisanPath := filepath.Join(projectAbsPath, "artisan")
	ctx := context.Background()

	migrateCmd := "migrate"
	if fresh {
		migrateCmd = "migrate:fresh"
	}

	cmd := exec.CommandContext(ctx, "php", artisanPath, migrateCmd, "--env=testing", "--force")

	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, fmt.Sprintf("DB_DATABASE=%s", lp.config.GetDatabaseName()))
	cmd.Dir = projectAbsPath

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("failed to create stdout pipe: %w", err)
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return "", fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("failed to start command: %w", err)
	}

	var outputMu sync.Mutex
	var outputBuilder strings.Builder
	var scanWg sync.WaitGroup

	completedCount := 0

	// Helper function to process a line and update progress
	processLine := func(line string) {
		line = strings.TrimSpace(line)
		if line == "" {
			return
		}

		// Skip common Laravel messages that aren't migration progress
		skipPatterns := []string{"Dropping all tables", "Dropped all tables", "Nothing to migrate", "Migration table created"}
		for _, skip := range skipPatterns {
			if strings.Contains(line, skip) {
				return
			}
		}

		completedCount++
		bar.Set(completedCount)
		bar.Describe(color.CyanString("Migrating: ") +
			color.GreenString("[completed: %d/%d]", completedCount, bar.GetMax()))
	}

	scanPipe := func(pipe *bufio.Scanner) {
		defer scanWg.Done()
		for pipe.Scan() {
			line := pipe.Text()
			outputMu.Lock()
			outputBuilder.WriteString(line)
			outputBuilder.WriteString("\n")
			processLine(line)
			outputMu.Unlock()
		}
	}

	scanWg.Add(2)
	go scanPipe(bufio.NewScanner(stdout))
	go scanPipe(bufio.NewScanner(stderr))

	err = cmd.Wait()
	scanWg.Wait()

	return outputBuilder.String(), err
}
