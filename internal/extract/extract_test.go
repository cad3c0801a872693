package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"pyformat/internal/domain"
)

const dummyLong = `
def dummy_long():
    """
    # Title

    Blah
    """

    x = {'a': 1}

    old_result = "%(a)s" % x
    new_result = "{x.a}".format(x=x)

    assert new_result == "1"
    assert old_result == new_result
`

const dummyMinimal = `
def dummy_minimal():
    new_result = "{}".format(1)

    assert new_result == "1"  # output
`

const dummyEmpty = `
def dummy_empty():
    pass
`

const dummyDecorated = `
@dummy_decorator
def dummy_decorated():
    pass
`

func firstFunction(t *testing.T, src string) *domain.Example {
	t.Helper()
	tree, err := parse(context.Background(), []byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	defer tree.Close()
	for _, node := range namedChildren(tree.RootNode()) {
		if def := definition(node); def != nil && def.Type() == "function_definition" {
			return New(nil).analyseFunction(def, []byte(src))
		}
	}
	t.Fatal("no function in source")
	return nil
}

func extractAll(t *testing.T, src string) []domain.Record {
	t.Helper()
	records, err := New(nil).Extract(context.Background(), []byte(src))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	return records
}

func TestAnalyseFunction_Complete(t *testing.T) {
	example := firstFunction(t, dummyLong)

	expected := &domain.Example{
		Name:    "dummy_long",
		Title:   "Title",
		Details: "Blah",
		Setup:   "x = {'a': 1}",
		Old:     "'%(a)s' % x",
		New:     "'{x.a}'.format(x=x)",
		Output:  "1",
	}
	if !reflect.DeepEqual(example, expected) {
		t.Errorf("expected %+v, got %+v", expected, example)
	}
}

func TestAnalyseFunction_Minimal(t *testing.T) {
	example := firstFunction(t, dummyMinimal)

	if example.Name != "dummy_minimal" {
		t.Errorf("expected name dummy_minimal, got %q", example.Name)
	}
	if example.Title != "" || example.Details != "" {
		t.Errorf("expected no title/details, got (%q, %q)", example.Title, example.Details)
	}
	if example.Setup != "" {
		t.Errorf("expected empty setup, got %q", example.Setup)
	}
	if example.Old != "" || example.Alt != "" {
		t.Errorf("expected empty old/alt, got (%q, %q)", example.Old, example.Alt)
	}
	if example.New != "'{}'.format(1)" {
		t.Errorf("expected new '{}'.format(1), got %q", example.New)
	}
	if example.Output != "1" {
		t.Errorf("expected output 1, got %q", example.Output)
	}
}

func TestAnalyseFunction_Empty(t *testing.T) {
	example := firstFunction(t, dummyEmpty)

	expected := &domain.Example{Name: "dummy_empty", Setup: "pass"}
	if !reflect.DeepEqual(example, expected) {
		t.Errorf("expected %+v, got %+v", expected, example)
	}
}

func TestAnalyseFunction_Decorated(t *testing.T) {
	example := firstFunction(t, dummyDecorated)

	if example.Name != "dummy_decorated" {
		t.Errorf("expected name dummy_decorated, got %q", example.Name)
	}
	if example.Setup != "pass" {
		t.Errorf("expected setup pass, got %q", example.Setup)
	}
}

func TestAnalyseFunction_RustResult(t *testing.T) {
	src := `
def test_simple():
    """
    # Basic formatting

    Simple positional formatting is probably the most common use-case.
    """
    old_result = '%s %s' % ('one', 'two', )
    new_result = '{} {}'.format('one', 'two')
    rust_result = 'format!("{} {}", "one", "two")'

    assert old_result == new_result == run_rust(rust_result)
    assert old_result == 'one two'  # output
`
	example := firstFunction(t, src)

	expected := &domain.Example{
		Name:    "simple",
		Title:   "Basic formatting",
		Details: "Simple positional formatting is probably the most common use-case.",
		Old:     "'%s %s' % ('one', 'two')",
		New:     "'{} {}'.format('one', 'two')",
		Alt:     `format!("{} {}", "one", "two")`,
		Output:  "one two",
	}
	if !reflect.DeepEqual(example, expected) {
		t.Errorf("expected %+v, got %+v", expected, example)
	}
}

func TestAnalyseFunction_SetupStopsAtFirstRecognizedStatement(t *testing.T) {
	src := `
def test_named():
    data = {
        'first': 'Hodor',
        'last': 'Hodor!',
    }
    from datetime import datetime

    old_result = '%(first)s %(last)s' % data
    helper = 1
    new_result = '{first} {last}'.format(**data)

    assert old_result == 'Hodor Hodor!'  # output
`
	example := firstFunction(t, src)

	expectedSetup := "data = {'first': 'Hodor', 'last': 'Hodor!'}\nfrom datetime import datetime"
	if example.Setup != expectedSetup {
		t.Errorf("expected setup %q, got %q", expectedSetup, example.Setup)
	}
	if example.Old != "'%(first)s %(last)s' % data" {
		t.Errorf("unexpected old %q", example.Old)
	}
	if example.New != "'{first} {last}'.format(**data)" {
		t.Errorf("unexpected new %q", example.New)
	}
}

func TestAnalyseFunction_AssertionBeforeBindings(t *testing.T) {
	src := `
def test_sign():
    assert '{: d}'.format(42) == ' 42'
    new_result = '{: d}'.format(42)
`
	example := firstFunction(t, src)

	if example.Output != " 42" {
		t.Errorf("expected output ' 42', got %q", example.Output)
	}
	if example.Setup != "" {
		t.Errorf("expected empty setup, got %q", example.Setup)
	}
	if example.New != "'{: d}'.format(42)" {
		t.Errorf("unexpected new %q", example.New)
	}
}

func TestAnalyseFunction_ReassignmentOverwrites(t *testing.T) {
	src := `
def test_twice():
    new_result = '{}'.format(1)
    new_result = '{}'.format(2)
`
	example := firstFunction(t, src)

	if example.New != "'{}'.format(2)" {
		t.Errorf("expected the later binding to win, got %q", example.New)
	}
}

func TestAnalyseFunction_UnconventionalShapes(t *testing.T) {
	src := `
def test_odd():
    obj.old_result = 1
    old_result, new_result = 'a', 'b'
    new_result: str = 'x'
    assert check()
    assert value == other
    assert value == f'{x}'
`
	example := firstFunction(t, src)

	if example.Old != "" || example.New != "" || example.Alt != "" || example.Output != "" {
		t.Errorf("expected no recognized values, got %+v", example)
	}
	expectedSetup := "obj.old_result = 1\n" +
		"old_result, new_result = ('a', 'b')\n" +
		"new_result: str = 'x'\n" +
		"assert check()\n" +
		"assert (value == other)\n" +
		"assert (value == f'{x}')"
	if example.Setup != expectedSetup {
		t.Errorf("expected setup\n%s\ngot\n%s", expectedSetup, example.Setup)
	}
}

func TestAnalyseFunction_OutputEscapes(t *testing.T) {
	src := `
def test_ascii_conversion():
    """
    In Python 3 there exists an additional conversion flag.
    """
    class Data(object):
        def __repr__(self):
            return 'räpr'

    new_result = '{0!r} {0!a}'.format(Data())

    assert new_result == 'räpr r\\xe4pr'  # output
`
	example := firstFunction(t, src)

	if example.Output != `räpr r\xe4pr` {
		t.Errorf("unexpected output %q", example.Output)
	}
	expectedSetup := "class Data(object):\n    def __repr__(self):\n        return 'räpr'"
	if example.Setup != expectedSetup {
		t.Errorf("expected setup\n%s\ngot\n%s", expectedSetup, example.Setup)
	}
	if example.Details != "In Python 3 there exists an additional conversion flag." {
		t.Errorf("unexpected details %q", example.Details)
	}
}

func TestExtract_Class(t *testing.T) {
	src := `
class TestSomethingElse():
    """
    # Title

    Description
    """
    def test_se(self):
        pass

    def helper(self):
        pass

    `
	records := extractAll(t, src)

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	section, ok := records[0].(*domain.Section)
	if !ok {
		t.Fatalf("expected a section, got %T", records[0])
	}
	if section.Name != "SomethingElse" {
		t.Errorf("expected name SomethingElse, got %q", section.Name)
	}
	if len(section.Examples) != 1 {
		t.Fatalf("expected 1 example, got %d", len(section.Examples))
	}
	if section.Examples[0].Name != "SomethingElse__se" {
		t.Errorf("expected example name SomethingElse__se, got %q", section.Examples[0].Name)
	}
	// Class docstrings are split without dedenting.
	if section.Title != "" {
		t.Errorf("expected no title, got %q", section.Title)
	}
	if section.Details == "" {
		t.Error("expected details from the class docstring")
	}
}

func TestExtract_ClassWithTitleOnFirstLine(t *testing.T) {
	src := `
class TestPadding:
    """# Padding

Numbers and strings."""
    @pytest.mark.skip
    def test_left(self):
        new_result = '{:<4}'.format('a')
`
	records := extractAll(t, src)

	section := records[0].(*domain.Section)
	if section.Title != "Padding" || section.Details != "Numbers and strings." {
		t.Errorf("unexpected title/details (%q, %q)", section.Title, section.Details)
	}
	if len(section.Examples) != 1 || section.Examples[0].Name != "Padding__left" {
		t.Fatalf("unexpected examples %+v", section.Examples)
	}
	if section.Examples[0].New != "'{:<4}'.format('a')" {
		t.Errorf("unexpected new %q", section.Examples[0].New)
	}
}

func TestExtract_MixedFile(t *testing.T) {
	src := `
def test_something():
    new_result = '{}'.format('hello')
    assert new_result == 'hello'

class TestSomethingElse():
    def test_se(self):
        pass

def unknown():
    pass
    `
	records := extractAll(t, src)

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Kind() != domain.KindExample || records[1].Kind() != domain.KindSection {
		t.Errorf("unexpected kinds %s, %s", records[0].Kind(), records[1].Kind())
	}
	example := records[0].(*domain.Example)
	if example.Name != "something" || example.Output != "hello" {
		t.Errorf("unexpected example %+v", example)
	}
}

func TestExtract_Idempotent(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("..", "..", "testdata", "test_content.py"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	first := extractAll(t, string(src))
	second := extractAll(t, string(src))
	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical records from identical input")
	}
	if len(first) == 0 {
		t.Error("expected records from the fixture")
	}
}

func TestExtract_ParseError(t *testing.T) {
	src := "def test_broken(:\n    pass\n"
	_, err := New(nil).Extract(context.Background(), []byte(src))
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if !errors.Is(err, ErrParse) {
		t.Errorf("expected ErrParse, got %v", err)
	}
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Line != 1 {
		t.Errorf("expected a ParseError on line 1, got %v", err)
	}
}

func TestRecords_StopsWhenConsumerStops(t *testing.T) {
	src := `
def test_a():
    pass

def test_b():
    pass
`
	var names []string
	for record, err := range New(nil).Records(context.Background(), []byte(src)) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		names = append(names, domain.Name(record))
		break
	}
	if !reflect.DeepEqual(names, []string{"a"}) {
		t.Errorf("expected [a], got %v", names)
	}
}

func TestExtractFile(t *testing.T) {
	extractor := New(nil)

	t.Run("reads the fixture", func(t *testing.T) {
		records, err := extractor.ExtractFile(context.Background(), filepath.Join("..", "..", "testdata", "test_content.py"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		example, ok := records[0].(*domain.Example)
		if !ok {
			t.Fatalf("expected an example first, got %T", records[0])
		}
		if example.Name != "simple" || example.Title != "Basic formatting" {
			t.Errorf("unexpected first example %+v", example)
		}
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		_, err := extractor.ExtractFile(context.Background(), "/non/existent/test_content.py")
		if err == nil {
			t.Error("expected error for non-existent file")
		}
	})

	t.Run("parse errors carry the path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test_content.py")
		if err := os.WriteFile(path, []byte("class TestX(:\n"), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
		_, err := extractor.ExtractFile(context.Background(), path)
		var perr *ParseError
		if !errors.As(err, &perr) || perr.Path != path {
			t.Errorf("expected ParseError for %s, got %v", path, err)
		}
	})
}
