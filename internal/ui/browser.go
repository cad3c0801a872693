package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"pyformat/internal/domain"
)

// Browser displays extracted records in an interactive TUI
type Browser struct{}

// NewBrowser creates a new Browser
func NewBrowser() *Browser {
	return &Browser{}
}

// entry is one line of the browser list.
type entry struct {
	section *domain.Section
	example *domain.Example
}

// entries flattens records into list lines; a section is followed by
// its examples.
func entries(records []domain.Record) []entry {
	var out []entry
	for _, record := range records {
		switch r := record.(type) {
		case *domain.Example:
			out = append(out, entry{example: r})
		case *domain.Section:
			out = append(out, entry{section: r})
			for _, example := range r.Examples {
				out = append(out, entry{section: r, example: example})
			}
		}
	}
	return out
}

// listText is the list label of an entry, using tview color tags.
func listText(e entry) string {
	switch {
	case e.example == nil:
		return fmt.Sprintf("[cyan]▸ %s[white]", tview.Escape(label(e.section.Title, e.section.Name)))
	case e.section != nil:
		return "    " + tview.Escape(label(e.example.Title, e.example.Name))
	default:
		return tview.Escape(label(e.example.Title, e.example.Name))
	}
}

func label(title, name string) string {
	if title != "" {
		return title
	}
	return name
}

// View displays the records in an interactive TUI
func (b *Browser) View(output *domain.RecordsOutput) error {
	items := entries(output.Records)
	if len(items) == 0 {
		color.Yellow("No examples found.")
		return nil
	}

	app := tview.NewApplication()

	// List of records (left side)
	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for _, item := range items {
		list.AddItem(listText(item), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	// Name line on top of the details
	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

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
		AddItem(statsView, 2, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	// List on the left (1/3), details on the right (2/3)
	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(fmt.Sprintf(" Examples (%d in %d records) | Use ↑↓ to navigate, → to read, ← to go back, [yellow]q[white] or Ctrl+C to exit ",
			domain.CountExamples(output.Records), len(output.Records)))

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(items) {
			statsView.SetText(formatStats(items[index]))
			detailsView.SetText(formatDetails(items[index])).ScrollToBeginning()
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
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

// formatStats formats the name line of an entry
func formatStats(e entry) string {
	if e.example == nil {
		return fmt.Sprintf("[cyan]section:[white] [yellow]%s[white] (%d examples)\n", tview.Escape(e.section.Name), len(e.section.Examples))
	}
	return fmt.Sprintf("[cyan]example:[white] [yellow]%s[white]\n", tview.Escape(e.example.Name))
}

// formatDetails formats an entry for display using tview color tags
func formatDetails(e entry) string {
	var b strings.Builder
	block := func(name, text string) {
		if text == "" {
			return
		}
		fmt.Fprintf(&b, "[yellow]%s:[white]\n%s\n\n", name, tview.Escape(text))
	}

	if e.example == nil {
		block("Title", e.section.Title)
		block("Details", e.section.Details)
		for _, example := range e.section.Examples {
			fmt.Fprintf(&b, "  • %s\n", tview.Escape(label(example.Title, example.Name)))
		}
		return b.String()
	}

	ex := e.example
	block("Title", ex.Title)
	block("Details", ex.Details)
	block("Setup", ex.Setup)
	block("Old", ex.Old)
	block("New", ex.New)
	block("Rust", ex.Alt)
	if ex.Output != "" {
		fmt.Fprintf(&b, "[green]Output:[white]\n%s\n", tview.Escape(ex.Output))
	}
	return b.String()
}
