package commands

import (
	"github.com/spf13/cobra"

	"dtp/internal/config"
	"dtp/internal/database"
)

// PrepareCommand handles the prepare command
type PrepareCommand struct {
	config   *config.Config
	preparer database.Preparer
}

// NewPrepareCommand creates a new PrepareCommand
func NewPrepareCommand(cfg *config.Config, preparer database.Preparer) *PrepareCommand {
	return &PrepareCommand{
		config:   cfg,
		preparer: preparer,
	}
}

// Execute runs the command
func (pc *PrepareCommand) Execute(cmd *cobra.Command, args []string) error {
	return pc.preparer.Prepare(pc.config.Flags.Fresh)
}
