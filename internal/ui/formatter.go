package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"pyformat/internal/config"
	"pyformat/internal/discovery"
	"pyformat/internal/domain"
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	parser *discovery.Parser
	out    io.Writer
}

// NewFormatter creates a new Formatter writing to stdout
func NewFormatter(cfg *config.Config, parser *discovery.Parser) *Formatter {
	return &Formatter{
		config: cfg,
		parser: parser,
		out:    os.Stdout,
	}
}

// SetOutput redirects the formatter
func (f *Formatter) SetOutput(w io.Writer) {
	f.out = w
}

// PrintRecords prints every record in the extract report format. Without
// verbose only the summary line is printed.
func (f *Formatter) PrintRecords(records []domain.Record, verbose bool) {
	if verbose {
		for _, record := range records {
			switch r := record.(type) {
			case *domain.Example:
				f.printExample(r, "")
			case *domain.Section:
				f.printSection(r)
			}
		}
	}
	fmt.Fprintf(f.out, "Extracted %d examples.\n", domain.CountExamples(records))
}

func (f *Formatter) printSection(s *domain.Section) {
	color.New(color.FgCyan).Fprintf(f.out, "Section: %s\n", s.Name)
	f.printText("    Title:", s.Title, 8)
	f.printText("    Details:", s.Details, 8)
	fmt.Fprintln(f.out)
	for _, example := range s.Examples {
		f.printExample(example, "    ")
	}
}

func (f *Formatter) printExample(e *domain.Example, prefix string) {
	color.New(color.FgYellow).Fprintf(f.out, "%sFunction: %s\n", prefix, e.Name)
	f.printText(prefix+"    Title:", e.Title, len(prefix)+8)
	f.printText(prefix+"    Details:", e.Details, len(prefix)+8)
	fmt.Fprintf(f.out, "%s    Example:\n", prefix)
	f.printText(prefix+"        Setup:", e.Setup, len(prefix)+14)
	if e.Old != "" {
		fmt.Fprintf(f.out, "%s        Old: %s\n", prefix, e.Old)
	}
	fmt.Fprintf(f.out, "%s        New: %s\n", prefix, e.New)
	if e.Alt != "" {
		fmt.Fprintf(f.out, "%s        Rust: %s\n", prefix, e.Alt)
	}
	fmt.Fprintf(f.out, "%s        Output: %s\n", prefix, color.GreenString(e.Output))
	fmt.Fprintln(f.out)
}

// printText prints a labelled block, indented on the following lines.
func (f *Formatter) printText(label, text string, width int) {
	if text == "" {
		return
	}
	fmt.Fprintf(f.out, "%s\n%s\n", label, Indent(text, strings.Repeat(" ", width)))
}

// Indent prefixes every line that is not blank.
func Indent(text, prefix string) string {
	lines := strings.SplitAfter(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "")
}

// PrintContentFiles prints the content files as a tree of their test
// definitions.
func (f *Formatter) PrintContentFiles(files []string) {
	color.New(color.FgGreen).Fprintf(f.out, "Found %d content file(s):\n\n", len(files))

	for i, file := range files {
		relPath, err := filepath.Rel(f.config.ProjectPath, file)
		if err != nil {
			relPath = file
		}

		isLastFile := i == len(files)-1
		if isLastFile {
			color.New(color.FgCyan).Fprintf(f.out, "└── %s\n", relPath)
		} else {
			color.New(color.FgCyan).Fprintf(f.out, "├── %s\n", relPath)
		}

		branch := "│   "
		if isLastFile {
			branch = "    "
		}

		testCases, err := f.parser.FindTestCases(file)
		if err != nil {
			fmt.Fprintf(f.out, "%s└── %s\n", branch, color.RedString("error reading file: %v", err))
			continue
		}
		if len(testCases) == 0 {
			fmt.Fprintf(f.out, "%s└── %s\n", branch, color.RedString("(no test definitions found)"))
			continue
		}
		for j, testCase := range testCases {
			connector := "├── "
			if j == len(testCases)-1 {
				connector = "└── "
			}
			fmt.Fprintf(f.out, "%s%s%s\n", branch, connector, color.YellowString(testCase))
		}
	}
}
