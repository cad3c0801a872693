package docstring

import (
	"testing"
	"unicode/utf8"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantTitle   string
		wantDetails string
	}{
		{name: "empty", input: ""},
		{name: "whitespace only", input: "  "},
		{name: "newlines only", input: "\n\n\t"},
		{
			name:        "title and description",
			input:       "# title\n\ndescription",
			wantTitle:   "title",
			wantDetails: "description",
		},
		{name: "title only", input: "# title", wantTitle: "title"},
		{name: "title with trailing blank lines", input: "# title\n\n", wantTitle: "title"},
		{
			name:        "multi-line without title",
			input:       "not the title\nnot the title",
			wantDetails: "not the title\nnot the title",
		},
		{name: "single line without title", input: "not the title", wantDetails: "not the title"},
		{
			name:        "skips exactly one line after the title",
			input:       "# Title\nfirst\nsecond",
			wantTitle:   "Title",
			wantDetails: "second",
		},
		{
			name:        "hash without space is not a title",
			input:       "#Title\n\nBody",
			wantDetails: "#Title\n\nBody",
		},
		{
			name:        "details keep inner blank lines",
			input:       "# Basic formatting\n\nOne.\n\nTwo.\n",
			wantTitle:   "Basic formatting",
			wantDetails: "One.\n\nTwo.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, details := Split(tt.input)
			if title != tt.wantTitle {
				t.Errorf("title: expected %q, got %q", tt.wantTitle, title)
			}
			if details != tt.wantDetails {
				t.Errorf("details: expected %q, got %q", tt.wantDetails, details)
			}
		})
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "indented block",
			input:    "\n    # Title\n\n    Blah\n    ",
			expected: "# Title\n\nBlah",
		},
		{
			name:     "first line kept on the quote line",
			input:    "Summary.\n\n        More text.\n          Indented.\n    ",
			expected: "Summary.\n\nMore text.\n  Indented.",
		},
		{
			name:     "tabs expand before dedent",
			input:    "\n\tline one\n\tline two\n",
			expected: "line one\nline two",
		},
		{
			name:     "multi-byte indentation counts characters",
			input:    "Summary\n\u00a0\u00a0nbsp-indented\n b",
			expected: "Summary\n\u00a0nbsp-indented\nb",
		},
		{
			name:     "ideographic space indentation",
			input:    "\n\u3000\u3000first\n\u3000\u3000\u3000second\n",
			expected: "first\n\u3000second",
		},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clean(tt.input)
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
			if !utf8.ValidString(got) {
				t.Errorf("cleaned text is not valid UTF-8: %q", got)
			}
		})
	}
}

func TestSplitAfterClean(t *testing.T) {
	doc := `
    # Title

    Description
    `
	title, details := Split(Clean(doc))
	if title != "Title" || details != "Description" {
		t.Errorf("expected (Title, Description), got (%q, %q)", title, details)
	}

	title, details = Split(doc)
	if title != "" {
		t.Errorf("raw docstring should not yield a title, got %q", title)
	}
	if details == "" {
		t.Error("raw docstring should yield details")
	}
}
