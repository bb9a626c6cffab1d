package ui

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"dtp/internal/config"
	"dtp/internal/domain"
	"dtp/internal/storage"
)

// ReviewViewer displays test failures and gate decisions in an interactive TUI
type ReviewViewer struct {
	config  *config.Config
	storage storage.Storage
}

// NewReviewViewer creates a new ReviewViewer
func NewReviewViewer(cfg *config.Config, st storage.Storage) *ReviewViewer {
	return &ReviewViewer{
		config:  cfg,
		storage: st,
	}
}

// reviewItem is one entry in the list: either a failing test case or a
// test the gate refused to run.
type reviewItem struct {
	failureIndex int // index into report.Details, -1 for gate records
	gate         *domain.GateRecord
}

// View displays the report's failures and gate decisions. Failing cases can
// be marked resolved with 'r'; the resolved flags are written back to the
// report file.
func (rv *ReviewViewer) View(report *domain.RunReport) error {
	var items []reviewItem
	for i := range report.Details {
		items = append(items, reviewItem{failureIndex: i})
	}
	for i := range report.Gated {
		items = append(items, reviewItem{failureIndex: -1, gate: &report.Gated[i]})
	}

	if len(items) == 0 {
		color.Green("✓ No failures or gate decisions to review!")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	itemText := func(index int) string {
		item := items[index]
		if item.gate != nil {
			marker := "⊘"
			if item.gate.Action == "fail" {
				marker = "✗"
			}
			return fmt.Sprintf("[yellow]%d.[white] %s %s (gate)", index+1, marker, item.gate.TestName)
		}
		failure := report.Details[item.failureIndex]
		name := failure.TestName
		if name == "" {
			name = fmt.Sprintf("Test %d", index+1)
		}
		if failure.Resolved {
			return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, name)
		}
		return fmt.Sprintf("[yellow]%d.[white] %s", index+1, name)
	}

	for i := range items {
		list.AddItem(itemText(i), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetWordWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	countUnresolved := func() int {
		count := 0
		for _, failure := range report.Details {
			if !failure.Resolved {
				count++
			}
		}
		return count
	}

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		headerView.SetText(fmt.Sprintf(
			" Review (%d failures, %d unresolved, %d gated) | ↑↓ navigate, [yellow]R[white] resolve, → details, ← back, Ctrl+C exit ",
			len(report.Details), countUnresolved(), len(report.Gated)))
	}
	updateHeader()

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index < 0 || index >= len(items) {
			return
		}
		item := items[index]
		if item.gate != nil {
			statsView.SetText(fmt.Sprintf("[cyan]test:[white] [yellow]%s[white]\n", item.gate.TestName))
			detailsView.SetText(rv.formatGateDetails(*item.gate))
			return
		}
		failure := report.Details[item.failureIndex]
		statsView.SetText(rv.formatFailureStats(failure, index+1))
		detailsView.SetText(rv.formatFailureDetails(failure))
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp, tcell.KeyDown:
			return event
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				index := list.GetCurrentItem()
				if index >= 0 && index < len(items) && items[index].gate == nil {
					failure := &report.Details[items[index].failureIndex]
					failure.Resolved = !failure.Resolved
					list.SetItemText(index, itemText(index), "")
					updateHeader()
					updateDetails()
					if err := rv.storage.SaveReport(report); err != nil {
						_ = err
					}
				}
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}

// formatGateDetails formats a gate decision for the details pane
func (rv *ReviewViewer) formatGateDetails(record domain.GateRecord) string {
	var builder strings.Builder
	if record.Action == "fail" {
		fmt.Fprintf(&builder, "[red]✗ %s was failed by the dependency gate[white]\n\n", record.TestName)
	} else {
		fmt.Fprintf(&builder, "[yellow]⊘ %s was skipped by the dependency gate[white]\n\n", record.TestName)
	}
	fmt.Fprintf(&builder, "[yellow]Reason:[white]\n%s\n\n", record.Reason)
	builder.WriteString("The test body never executed. Fix or rerun the prerequisite first.\n")
	return builder.String()
}

// formatFailureDetails formats a test failure using tview color tags
func (rv *ReviewViewer) formatFailureDetails(failure domain.TestFailure) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "[red]✗ Test: %s[white]\n\n", failure.TestName)

	fmt.Fprintf(w, "[cyan]File: %s[white]\n", failure.FilePath)
	if failure.File != "" && failure.Line > 0 {
		fmt.Fprintf(w, "[yellow]Location: %s:%d[white]\n", failure.File, failure.Line)
	}
	fmt.Fprintf(w, "\n")

	if failure.Message != "" {
		fmt.Fprintf(w, "[yellow]Message:[white]\n%s\n\n", failure.Message)
	}

	if failure.ErrorDetails != "" {
		fmt.Fprintf(w, "[yellow]Error Details:[white]\n%s\n\n", failure.ErrorDetails)
	}

	if len(failure.StackTrace) > 0 {
		fmt.Fprintf(w, "[yellow]Stack Trace:[white]\n")
		for i, trace := range failure.StackTrace {
			if i < 10 {
				fmt.Fprintf(w, "  %s\n", trace)
			}
		}
		if len(failure.StackTrace) > 10 {
			fmt.Fprintf(w, "  [gray]... and %d more lines[white]\n", len(failure.StackTrace)-10)
		}
	}

	w.Flush()
	return builder.String()
}

// formatFailureStats formats the stats header for a test failure
func (rv *ReviewViewer) formatFailureStats(failure domain.TestFailure, number int) string {
	path := failure.FilePath
	if path == "" {
		path = "Unknown path"
	}
	testCase := failure.TestName
	if testCase == "" {
		testCase = fmt.Sprintf("Test %d", number)
	}
	return fmt.Sprintf("[cyan]path:[white] [yellow]%s[white]::[yellow]%s[white]\n", path, testCase)
}
