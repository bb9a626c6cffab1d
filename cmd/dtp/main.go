package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dtp/internal/cli"
	"dtp/internal/cli/commands"
	"dtp/internal/config"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "dtp",
		Short:   "Dependency-aware PHPUnit test processor",
		Long:    `A dependency-aware test processor for PHPUnit tests. Declare ordering constraints between test files, run them in a deterministic order and skip tests whose prerequisites did not pass.`,
		Version: version,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
