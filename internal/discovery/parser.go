package discovery

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Parser lists the convention definitions of a content file without
// building a syntax tree.
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// Matches:
// - def test_simple():
// - async def test_later():
// - class TestTruncating(object):
// - '    def test_method(self):' inside a class
var definitionPattern = regexp.MustCompile(`(?m)^([ \t]*)(async[ \t]+)?(def|class)[ \t]+(\w+)`)

// FindTestCases finds the test functions and test classes declared in a
// content file, in source order. Methods are reported as Class.method.
func (p *Parser) FindTestCases(filePath string) ([]string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filePath, err)
	}
	return p.FindInSource(content), nil
}

// FindInSource is FindTestCases over source already in memory.
func (p *Parser) FindInSource(content []byte) []string {
	var testCases []string
	seen := make(map[string]bool)
	add := func(name string) {
		// Redefinitions keep their first position
		if !seen[name] {
			seen[name] = true
			testCases = append(testCases, name)
		}
	}

	class := ""
	for _, m := range definitionPattern.FindAllSubmatch(content, -1) {
		indented := len(m[1]) > 0
		async := len(m[2]) > 0
		kind, name := string(m[3]), string(m[4])

		if !indented {
			class = ""
			if kind == "class" && strings.HasPrefix(name, "Test") {
				class = name
				add(name)
			}
			if kind == "def" && !async && strings.HasPrefix(name, "test_") {
				add(name)
			}
			continue
		}
		if class != "" && kind == "def" && !async && strings.HasPrefix(name, "test_") {
			add(class + "." + name)
		}
	}
	return testCases
}
