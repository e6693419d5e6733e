package renamer

import (
	"fmt"
	"io"

	"github.com/meysamhadeli/renamai/constants/lipgloss"
	"github.com/meysamhadeli/renamai/suggestion"
	"github.com/pterm/pterm"
)

// Reporter receives the human-facing events of a run.
type Reporter interface {
	Directory(dir string)
	DirMissing(dir string)
	Listed(totalFiles, eligible int)
	FileStarted(name string)
	FileDone(result FileResult)
	Progress(p Progress)
}

// NopReporter ignores every event.
type NopReporter struct{}

func (NopReporter) Directory(string) {}
func (NopReporter) DirMissing(string) {}
func (NopReporter) Listed(int, int) {}
func (NopReporter) FileStarted(string) {}
func (NopReporter) FileDone(FileResult) {}
func (NopReporter) Progress(Progress) {}

// ConsoleReporter prints styled progress lines. With Spinner set, a pterm
// spinner runs while the model is being asked.
type ConsoleReporter struct {
	Out     io.Writer
	Spinner bool

	spinner *pterm.SpinnerPrinter
}

// NewConsoleReporter creates a ConsoleReporter writing to out.
func NewConsoleReporter(out io.Writer, spinner bool) *ConsoleReporter {
	return &ConsoleReporter{Out: out, Spinner: spinner}
}

func (c *ConsoleReporter) Directory(dir string) {
	fmt.Fprintln(c.Out, lipgloss.Info.Render(fmt.Sprintf("Processing directory: %s", dir)))
}

func (c *ConsoleReporter) DirMissing(dir string) {
	fmt.Fprintln(c.Out, lipgloss.Red.Render(fmt.Sprintf("Error: Directory '%s' does not exist", dir)))
}

func (c *ConsoleReporter) Listed(totalFiles, eligible int) {
	fmt.Fprintf(c.Out, "Found %d total files\n", totalFiles)
	fmt.Fprintf(c.Out, "Found %d eligible files to process\n", eligible)
	if eligible == 0 {
		fmt.Fprintln(c.Out, lipgloss.Yellow.Render("No eligible files to process"))
	}
}

func (c *ConsoleReporter) FileStarted(name string) {
	fmt.Fprintf(c.Out, "\nProcessing file: %s\n", name)
	if !c.Spinner {
		return
	}
	spinner := pterm.DefaultSpinner.
		WithStyle(pterm.NewStyle(pterm.FgLightBlue)).
		WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
		WithDelay(100).
		WithRemoveWhenDone(true)
	c.spinner, _ = spinner.Start("Requesting new filename...")
}

func (c *ConsoleReporter) stopSpinner() {
	if c.spinner == nil {
		return
	}
	_ = c.spinner.Stop()
	c.spinner = nil
	fmt.Fprint(c.Out, "\r")
}

func (c *ConsoleReporter) FileDone(result FileResult) {
	c.stopSpinner()
	plan := result.Plan

	if result.Suggestion == suggestion.OutcomeFailed {
		fmt.Fprintln(c.Out, lipgloss.Red.Render(fmt.Sprintf("  Error getting new filename: %v", result.Err)))
	} else if plan.Suggested != "" {
		fmt.Fprintf(c.Out, "  Suggested new filename: %s\n", plan.Suggested)
	}
	if plan.Final != "" && plan.Final != plan.Suggested && plan.Final != plan.Original {
		fmt.Fprintln(c.Out, lipgloss.Yellow.Render(fmt.Sprintf("  Found duplicate: %s, using %s", plan.Suggested, plan.Final)))
	}

	switch result.Status {
	case StatusRenamed:
		fmt.Fprintln(c.Out, lipgloss.Green.Render(fmt.Sprintf("  Renamed: %s -> %s", plan.Original, plan.Final)))
	case StatusPlanned:
		fmt.Fprintln(c.Out, lipgloss.BlueSky.Render(fmt.Sprintf("  Would rename: %s -> %s", plan.Original, plan.Final)))
	case StatusNoOp:
		if result.Suggestion == suggestion.OutcomeFailed {
			fmt.Fprintln(c.Out, lipgloss.Yellow.Render("  No rename - suggestion request failed"))
		} else {
			fmt.Fprintln(c.Out, "  No rename needed - filename already correct")
		}
	case StatusSkipped:
		msg := fmt.Sprintf("  Skipping %s - %s", plan.Original, result.Reason)
		if result.Err != nil {
			msg += fmt.Sprintf(": %v", result.Err)
		}
		fmt.Fprintln(c.Out, lipgloss.Yellow.Render(msg))
	case StatusFailed:
		fmt.Fprintln(c.Out, lipgloss.Red.Render(fmt.Sprintf("  Error renaming file: %v", result.Err)))
	}
}

func (c *ConsoleReporter) Progress(p Progress) {
	fmt.Fprintf(c.Out, "\nProgress: %d/%d eligible files processed (%d remaining)\n", p.Processed, p.Total, p.Remaining)
	fmt.Fprintln(c.Out, lipgloss.Gray.Render(fmt.Sprintf("Time elapsed: %.1f seconds", p.Elapsed.Seconds())))
	if p.Processed > 0 {
		fmt.Fprintln(c.Out, lipgloss.Gray.Render(fmt.Sprintf("Estimated time remaining: %.1f seconds", p.EstimatedRemaining.Seconds())))
	}
}

// RenderSummary returns the final counters as a table.
func RenderSummary(stats *RunStats) (string, error) {
	data := pterm.TableData{
		{"Eligible", "Renamed", "Planned", "No-op", "Skipped", "Failed", "Suggestion errors", "Elapsed"},
		{
			fmt.Sprint(stats.Eligible),
			fmt.Sprint(stats.Renamed),
			fmt.Sprint(stats.Planned),
			fmt.Sprint(stats.NoOp),
			fmt.Sprint(stats.Skipped),
			fmt.Sprint(stats.Failed),
			fmt.Sprint(stats.SuggestionErrors),
			fmt.Sprintf("%.1fs", stats.Elapsed.Seconds()),
		},
	}
	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
}
