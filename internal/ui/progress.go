package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// ProgressBar creates and manages the run progress bar
type ProgressBar struct {
	bar *progressbar.ProgressBar
}

// NewProgressBar creates a new progress bar
func NewProgressBar(count int) *ProgressBar {
	bar := progressbar.NewOptions(count,
		progressbar.OptionSetDescription(describe(0, 0, 0)),
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

	return &ProgressBar{bar: bar}
}

func describe(passed, failed, skipped int) string {
	return color.CyanString("Running tests: ") +
		color.GreenString("[passed: %d", passed) +
		" | " +
		color.RedString("failed: %d", failed) +
		" | " +
		color.YellowString("skipped: %d]", skipped)
}

// Update advances the bar and refreshes the per-outcome counters
func (p *ProgressBar) Update(completed, passed, failed, skipped int) {
	p.bar.Set(completed)
	p.bar.Describe(describe(passed, failed, skipped))
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	p.bar.Finish()
}
