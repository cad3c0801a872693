// Package extract turns Python test modules written in the comparison
// convention into Example and Section records.
//
// A top-level function named test_* becomes an Example, a top-level class
// named Test* becomes a Section holding one Example per test_* method. Inside
// a function the docstring provides title and details, assignments to
// old_result, new_result and rust_result provide the three variants, and an
// assertion comparing against a string literal provides the expected output.
// Statements before the first of those are kept as setup.
package extract

import (
	"context"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"pyformat/internal/docstring"
	"pyformat/internal/domain"
)

const (
	// TestPrefix marks functions and methods that become examples.
	TestPrefix = "test_"
	// ClassPrefix marks classes that become sections.
	ClassPrefix = "Test"

	// Variables whose assignments hold the old, new and alternative versions.
	OldName = "old_result"
	NewName = "new_result"
	AltName = "rust_result"
)

// Extractor finds convention examples in Python source.
type Extractor struct {
	logger *log.Logger
}

// New creates an Extractor. A nil logger discards output.
func New(logger *log.Logger) *Extractor {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Extractor{logger: logger}
}

// Records returns the records of src in declaration order. Parsing happens
// when the sequence is first pulled; invalid source yields a single
// *ParseError and nothing else. Every call walks a fresh tree, so the
// sequence can be ranged over more than once.
func (e *Extractor) Records(ctx context.Context, src []byte) iter.Seq2[domain.Record, error] {
	return func(yield func(domain.Record, error) bool) {
		tree, err := parse(ctx, src)
		if err != nil {
			yield(nil, err)
			return
		}
		defer tree.Close()

		root := tree.RootNode()
		for _, node := range namedChildren(root) {
			var record domain.Record
			switch def := definition(node); {
			case def == nil:
			case def.Type() == "function_definition" && !isAsync(def) && strings.HasPrefix(e.name(def, src), TestPrefix):
				record = e.analyseFunction(def, src)
			case def.Type() == "class_definition" && strings.HasPrefix(e.name(def, src), ClassPrefix):
				record = e.analyseClass(def, src)
			}
			if record == nil {
				continue
			}
			if !yield(record, nil) {
				return
			}
		}
	}
}

// Extract collects every record of src.
func (e *Extractor) Extract(ctx context.Context, src []byte) ([]domain.Record, error) {
	var records []domain.Record
	for record, err := range e.Records(ctx, src) {
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// ExtractFile reads path and collects its records.
func (e *Extractor) ExtractFile(ctx context.Context, path string) ([]domain.Record, error) {
	e.logger.Info("Parsing content.", "path", path)
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content %s: %w", path, err)
	}
	records, err := e.Extract(ctx, src)
	if err != nil {
		if perr, ok := err.(*ParseError); ok {
			perr.Path = path
		}
		return nil, err
	}
	e.logger.Debug("Parsed content.", "path", path, "records", len(records), "examples", domain.CountExamples(records))
	return records, nil
}

func (e *Extractor) analyseFunction(node *sitter.Node, src []byte) *domain.Example {
	u := &unparser{src: src}
	example := &domain.Example{
		Name: strings.TrimPrefix(e.name(node, src), TestPrefix),
	}

	body := namedChildren(node.ChildByFieldName("body"))
	if len(body) > 0 {
		if doc, ok := docstringOf(u, body[0]); ok {
			example.Title, example.Details = docstring.Split(docstring.Clean(doc))
			body = body[1:]
		}
	}

	var setup []*sitter.Node
	setupDone := false
	for _, stmt := range body {
		recognized := false
		if name, value, ok := conventionalAssignment(stmt, src); ok {
			recognized = true
			switch name {
			case OldName:
				example.Old = u.unparseValue(value, true)
			case NewName:
				example.New = u.unparseValue(value, true)
			case AltName:
				example.Alt = trimQuotes(u.unparseValue(value, true))
			}
		} else if output, ok := assertedOutput(u, stmt); ok {
			recognized = true
			example.Output = output
		}
		if recognized {
			setupDone = true
			continue
		}
		if !setupDone {
			setup = append(setup, stmt)
		}
	}
	if len(setup) > 0 {
		example.Setup = u.unparseStatements(setup)
	}

	e.logger.Debug("Extracted example.", "name", example.Name)
	return example
}

func (e *Extractor) analyseClass(node *sitter.Node, src []byte) *domain.Section {
	u := &unparser{src: src}
	section := &domain.Section{
		Name: strings.TrimPrefix(e.name(node, src), ClassPrefix),
	}

	body := namedChildren(node.ChildByFieldName("body"))
	if len(body) > 0 {
		if doc, ok := docstringOf(u, body[0]); ok {
			section.Title, section.Details = docstring.Split(doc)
		}
	}

	for _, member := range body {
		def := definition(member)
		if def == nil || def.Type() != "function_definition" || isAsync(def) {
			continue
		}
		if !strings.HasPrefix(e.name(def, src), TestPrefix) {
			continue
		}
		example := e.analyseFunction(def, src)
		example.Name = section.Name + "__" + example.Name
		section.Examples = append(section.Examples, example)
	}

	e.logger.Debug("Extracted section.", "name", section.Name, "examples", len(section.Examples))
	return section
}

func (e *Extractor) name(node *sitter.Node, src []byte) string {
	name := node.ChildByFieldName("name")
	if name == nil {
		return ""
	}
	return name.Content(src)
}

// definition unwraps decorators and returns the function or class
// definition a statement declares, or nil.
func definition(node *sitter.Node) *sitter.Node {
	switch node.Type() {
	case "function_definition", "class_definition":
		return node
	case "decorated_definition":
		return node.ChildByFieldName("definition")
	default:
		return nil
	}
}

// docstringOf reports the value of a bare string literal statement.
func docstringOf(u *unparser, stmt *sitter.Node) (string, bool) {
	if stmt.Type() != "expression_statement" {
		return "", false
	}
	parts := namedChildren(stmt)
	if len(parts) != 1 {
		return "", false
	}
	value, kind, ok := u.joinedLiteral(parts[0])
	if !ok || kind != literalStr {
		return "", false
	}
	return value, true
}

// conventionalAssignment matches `<name> = <value>` where name is one of the
// conventional result names and is the only target.
func conventionalAssignment(stmt *sitter.Node, src []byte) (string, *sitter.Node, bool) {
	if stmt.Type() != "expression_statement" {
		return "", nil, false
	}
	parts := namedChildren(stmt)
	if len(parts) != 1 || parts[0].Type() != "assignment" {
		return "", nil, false
	}
	assign := parts[0]
	left := assign.ChildByFieldName("left")
	right := assign.ChildByFieldName("right")
	if left == nil || right == nil || left.Type() != "identifier" || assign.ChildByFieldName("type") != nil {
		return "", nil, false
	}
	switch right.Type() {
	case "assignment", "augmented_assignment", "yield":
		return "", nil, false
	}
	switch name := left.Content(src); name {
	case OldName, NewName, AltName:
		return name, right, true
	default:
		return "", nil, false
	}
}

// assertedOutput matches `assert a == ... == '<literal>'` and returns the
// decoded literal.
func assertedOutput(u *unparser, stmt *sitter.Node) (string, bool) {
	if stmt.Type() != "assert_statement" {
		return "", false
	}
	parts := namedChildren(stmt)
	if len(parts) == 0 {
		return "", false
	}
	test := unwrapParens(parts[0])
	if test.Type() != "comparison_operator" {
		return "", false
	}
	operands := namedChildren(test)
	if len(operands) < 2 {
		return "", false
	}
	value, kind, ok := u.joinedLiteral(operands[len(operands)-1])
	if !ok || kind != literalStr {
		return "", false
	}
	return value, true
}

// parse builds the syntax tree for src, failing on any syntax error.
func parse(ctx context.Context, src []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse python: %w", err)
	}
	root := tree.RootNode()
	if root.HasError() {
		bad := firstError(root)
		if bad == nil {
			bad = root
		}
		point := bad.StartPoint()
		tree.Close()
		return nil, &ParseError{Line: int(point.Row) + 1, Column: int(point.Column) + 1}
	}
	return tree, nil
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil || !c.HasError() && !c.IsMissing() {
			continue
		}
		if bad := firstError(c); bad != nil {
			return bad
		}
	}
	return nil
}
