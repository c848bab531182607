package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"ftest/internal/domain"
	"ftest/internal/golden"
)

// Viewer displays failed test results interactively
type Viewer interface {
	View(failures []domain.TestResult) error
}

// FailureViewer displays test failures in an interactive TUI
type FailureViewer struct{}

// NewFailureViewer creates a new FailureViewer
func NewFailureViewer() *FailureViewer {
	return &FailureViewer{}
}

// Failures returns the failed results across all modules in discovery order
func Failures(results []domain.ModuleResults) []domain.TestResult {
	var failures []domain.TestResult
	for _, m := range results {
		for _, r := range m.Results {
			if !r.Passed() {
				failures = append(failures, r)
			}
		}
	}
	return failures
}

// View displays failures in a list on the left and details on the right
func (fv *FailureViewer) View(failures []domain.TestResult) error {
	if len(failures) == 0 {
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for i, f := range failures {
		list.AddItem(fmt.Sprintf("[yellow]%d.[white] %s/%s", i+1, f.Module, f.Name), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(fmt.Sprintf(" Test Failures (%d) | ↑↓ to navigate, → to view details, ← to go back, Ctrl+C to exit ", len(failures)))

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(detailsContainer, 0, 2, false)

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(failures) {
			detailsView.SetText(FormatFailureDetails(failures[index])).ScrollToBeginning()
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC, tcell.KeyEsc:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'q' {
				app.Stop()
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

	list.SetChangedFunc(func(int, string, string, rune) {
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

// labelWidth pads the detail labels so their values line up
const labelWidth = len("Duration:") + 1

// FormatFailureDetails formats a failed result using tview color tags
func FormatFailureDetails(r domain.TestResult) string {
	var w strings.Builder

	fmt.Fprintf(&w, "[red]✗ Test: %s/%s[white]\n", r.Module, tview.Escape(r.Name))
	fmt.Fprintf(&w, "[cyan]%-*s%s[white]\n", labelWidth, "Reason:", r.Kind)
	fmt.Fprintf(&w, "[cyan]%-*s%s[white]\n\n", labelWidth, "Duration:", r.Duration.Round(time.Millisecond))

	if r.Message != "" {
		fmt.Fprintf(&w, "[yellow]Message:[white]\n%s\n\n", tview.Escape(r.Message))
	}

	if r.Kind == domain.FailureMismatch {
		if d, ok := golden.FirstDivergence(r.Expected, r.Stdout); ok {
			fmt.Fprintf(&w, "[yellow]First difference at line %d:[white]\n", d.Line)
			switch {
			case d.Missing:
				fmt.Fprintf(&w, "  expected %s, output ended\n\n", quote(d.Expected))
			case d.Extra:
				fmt.Fprintf(&w, "  unexpected %s after end of fixture\n\n", quote(d.Actual))
			default:
				fmt.Fprintf(&w, "  expected %s\n  actual   %s\n\n", quote(d.Expected), quote(d.Actual))
			}
		}
		fmt.Fprintf(&w, "[yellow]Expected output:[white]\n%s\n\n", tview.Escape(r.Expected))
		fmt.Fprintf(&w, "[yellow]Actual output:[white]\n%s\n\n", tview.Escape(r.Stdout))
	}

	if r.Stderr != "" && r.Stderr != r.Message {
		fmt.Fprintf(&w, "[yellow]Standard error:[white]\n%s\n", tview.Escape(r.Stderr))
	}

	return w.String()
}

func quote(s string) string {
	return tview.Escape(fmt.Sprintf("%q", s))
}
