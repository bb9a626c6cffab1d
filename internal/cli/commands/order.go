package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"dtp/internal/config"
	"dtp/internal/discovery"
	"dtp/internal/ui"
)

// OrderCommand handles the order command
type OrderCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	formatter *ui.Formatter
}

// NewOrderCommand creates a new OrderCommand
func NewOrderCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	formatter *ui.Formatter,
) *OrderCommand {
	return &OrderCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		formatter: formatter,
	}
}

// Execute runs the command
func (oc *OrderCommand) Execute(cmd *cobra.Command, args []string) error {
	tests, err := oc.scanner.Scan(oc.config.GetTestPath())
	if err != nil {
		return err
	}

	registry, err := buildRegistry(oc.config, tests)
	if err != nil {
		return err
	}

	selected := oc.filter.ByName(tests, oc.config.Flags.NameFilter)
	if oc.config.Flags.WithDeps {
		selected = withPrerequisites(selected, tests, registry)
	}

	if len(selected) == 0 {
		color.Yellow("No tests found")
		return nil
	}

	order, err := registry.OrderTests(testNames(selected))
	if err != nil {
		return err
	}

	oc.formatter.PrintOrder(order, registry)
	return nil
}
