package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// ProgressBar creates and manages progress bars
type ProgressBar struct {
	bar     *progressbar.ProgressBar
	label   string
	success int
	failed  int
}

// NewProgressBarTo creates a progress bar writing to w
func NewProgressBarTo(w io.Writer, count int, label string) *ProgressBar {
	p := &ProgressBar{label: label}
	p.bar = progressbar.NewOptions(count,
		progressbar.OptionSetDescription(p.description()),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(w),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
	return p
}

func (p *ProgressBar) description() string {
	return color.CyanString(p.label+": ") +
		color.GreenString("[done: %d", p.success) +
		" | " +
		color.RedString("failed: %d]", p.failed)
}

// Step records one finished unit of work
func (p *ProgressBar) Step(ok bool) {
	if ok {
		p.success++
	} else {
		p.failed++
	}
	p.bar.Describe(p.description())
	p.bar.Set(p.success + p.failed)
}

// Counts returns the successful and failed steps so far
func (p *ProgressBar) Counts() (success, failed int) {
	return p.success, p.failed
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	p.bar.Finish()
}
