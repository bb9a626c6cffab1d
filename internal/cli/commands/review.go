package commands

import (
	"github.com/spf13/cobra"

	"dtp/internal/config"
	"dtp/internal/storage"
	"dtp/internal/ui"
)

// ReviewCommand handles the review command
type ReviewCommand struct {
	config  *config.Config
	storage storage.Storage
	viewer  ui.Viewer
}

// NewReviewCommand creates a new ReviewCommand
func NewReviewCommand(cfg *config.Config, st storage.Storage, viewer ui.Viewer) *ReviewCommand {
	return &ReviewCommand{
		config:  cfg,
		storage: st,
		viewer:  viewer,
	}
}

// Execute runs the command
func (rc *ReviewCommand) Execute(cmd *cobra.Command, args []string) error {
	report, err := rc.storage.Load()
	if err != nil {
		return err
	}

	return rc.viewer.View(report)
}
