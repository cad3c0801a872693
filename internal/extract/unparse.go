package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

const indentUnit = "    "

// unparser renders syntax tree nodes back into Python source. It knows the
// node kinds that show up in convention test bodies; anything else is
// rendered from its own source text.
type unparser struct {
	src []byte
}

// unparseStatements renders a statement list, one statement per line, with
// surrounding whitespace trimmed.
func (u *unparser) unparseStatements(nodes []*sitter.Node) string {
	var lines []string
	for _, n := range nodes {
		lines = append(lines, u.stmt(n)...)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// unparseValue renders one expression. In stripped mode a binary operation
// loses the parentheses the renderer wraps it in.
func (u *unparser) unparseValue(n *sitter.Node, stripped bool) string {
	out := u.expr(n)
	if !stripped {
		return out
	}
	out = strings.TrimSpace(out)
	if unwrapParens(n).Type() == "binary_operator" && len(out) >= 2 {
		return out[1 : len(out)-1]
	}
	return out
}

func (u *unparser) text(n *sitter.Node) string {
	return n.Content(u.src)
}

// raw returns the node's source with the indentation of its first line
// removed from the following lines.
func (u *unparser) raw(n *sitter.Node) string {
	lines := strings.Split(u.text(n), "\n")
	col := int(n.StartPoint().Column)
	for i := 1; i < len(lines); i++ {
		lines[i] = trimIndent(lines[i], col)
	}
	return strings.Join(lines, "\n")
}

func trimIndent(line string, width int) string {
	i := 0
	for i < len(line) && i < width && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return line[i:]
}

func (u *unparser) stmt(n *sitter.Node) []string {
	switch n.Type() {
	case "expression_statement":
		parts := namedChildren(n)
		if len(parts) == 1 {
			return splitLines(u.exprStatement(parts[0]))
		}
		return []string{u.sequence("(", parts, ")", true)}
	case "pass_statement", "break_statement", "continue_statement":
		return []string{strings.TrimSuffix(n.Type(), "_statement")}
	case "return_statement":
		parts := namedChildren(n)
		if len(parts) == 0 {
			return []string{"return"}
		}
		return []string{"return " + u.expr(parts[0])}
	case "assert_statement":
		return []string{"assert " + u.join(namedChildren(n))}
	case "function_definition":
		return u.functionDef(n)
	case "class_definition":
		return u.classDef(n)
	case "decorated_definition":
		var lines []string
		for _, c := range namedChildren(n) {
			if c.Type() != "decorator" {
				continue
			}
			if parts := namedChildren(c); len(parts) == 1 {
				lines = append(lines, "@"+u.expr(parts[0]))
			} else {
				lines = append(lines, strings.TrimSpace(u.text(c)))
			}
		}
		if def := n.ChildByFieldName("definition"); def != nil {
			lines = append(lines, u.stmt(def)...)
		}
		return lines
	case "if_statement":
		lines := []string{"if " + u.expr(n.ChildByFieldName("condition")) + ":"}
		lines = append(lines, u.block(n.ChildByFieldName("consequence"))...)
		for _, c := range namedChildren(n) {
			switch c.Type() {
			case "elif_clause":
				lines = append(lines, "elif "+u.expr(c.ChildByFieldName("condition"))+":")
				lines = append(lines, u.block(c.ChildByFieldName("consequence"))...)
			case "else_clause":
				lines = append(lines, "else:")
				lines = append(lines, u.block(c.ChildByFieldName("body"))...)
			}
		}
		return lines
	case "for_statement":
		if isAsync(n) {
			return splitLines(u.raw(n))
		}
		lines := []string{"for " + u.target(n.ChildByFieldName("left")) + " in " + u.expr(n.ChildByFieldName("right")) + ":"}
		lines = append(lines, u.block(n.ChildByFieldName("body"))...)
		return append(lines, u.elseClause(n)...)
	case "while_statement":
		lines := []string{"while " + u.expr(n.ChildByFieldName("condition")) + ":"}
		lines = append(lines, u.block(n.ChildByFieldName("body"))...)
		return append(lines, u.elseClause(n)...)
	default:
		return splitLines(u.raw(n))
	}
}

func (u *unparser) exprStatement(n *sitter.Node) string {
	switch n.Type() {
	case "assignment":
		out := u.target(n.ChildByFieldName("left"))
		if typ := n.ChildByFieldName("type"); typ != nil {
			out += ": " + u.expr(typ)
		}
		if right := n.ChildByFieldName("right"); right != nil {
			out += " = " + u.exprStatement(right)
		}
		return out
	case "augmented_assignment":
		op := n.ChildByFieldName("operator")
		return u.target(n.ChildByFieldName("left")) + " " + op.Type() + " " + u.exprStatement(n.ChildByFieldName("right"))
	default:
		return u.expr(n)
	}
}

// target renders an assignment or loop target; tuple targets lose their
// parentheses.
func (u *unparser) target(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	if n.Type() == "pattern_list" {
		return u.join(namedChildren(n))
	}
	return u.expr(n)
}

func (u *unparser) functionDef(n *sitter.Node) []string {
	header := "def " + u.text(n.ChildByFieldName("name"))
	if isAsync(n) {
		header = "async " + header
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		header += u.raw(params)
	}
	if ret := n.ChildByFieldName("return_type"); ret != nil {
		header += " -> " + u.expr(ret)
	}
	lines := splitLines(header + ":")
	return append(lines, u.block(n.ChildByFieldName("body"))...)
}

func (u *unparser) classDef(n *sitter.Node) []string {
	header := "class " + u.text(n.ChildByFieldName("name"))
	if bases := n.ChildByFieldName("superclasses"); bases != nil {
		header += u.sequence("(", namedChildren(bases), ")", false)
	}
	lines := []string{header + ":"}
	return append(lines, u.block(n.ChildByFieldName("body"))...)
}

func (u *unparser) elseClause(n *sitter.Node) []string {
	alt := n.ChildByFieldName("alternative")
	if alt == nil {
		return nil
	}
	lines := []string{"else:"}
	return append(lines, u.block(alt.ChildByFieldName("body"))...)
}

func (u *unparser) block(n *sitter.Node) []string {
	if n == nil {
		return []string{indentUnit + "pass"}
	}
	var lines []string
	for _, c := range namedChildren(n) {
		for _, line := range u.stmt(c) {
			if line == "" {
				lines = append(lines, line)
				continue
			}
			lines = append(lines, indentUnit+line)
		}
	}
	if len(lines) == 0 {
		return []string{indentUnit + "pass"}
	}
	return lines
}

func (u *unparser) expr(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	switch n.Type() {
	case "identifier", "integer", "float", "true", "false", "none", "ellipsis":
		return u.text(n)
	case "string":
		return u.stringLiteral(n)
	case "concatenated_string":
		return u.concatenated(n)
	case "parenthesized_expression":
		if parts := namedChildren(n); len(parts) == 1 {
			return u.expr(parts[0])
		}
		return u.raw(n)
	case "attribute":
		return u.expr(n.ChildByFieldName("object")) + "." + u.text(n.ChildByFieldName("attribute"))
	case "subscript":
		parts := namedChildren(n)
		if len(parts) < 2 {
			return u.raw(n)
		}
		return u.expr(parts[0]) + "[" + u.join(parts[1:]) + "]"
	case "slice":
		var b strings.Builder
		for i := 0; i < int(n.ChildCount()); i++ {
			c := n.Child(i)
			switch {
			case c.Type() == "comment":
			case c.IsNamed():
				b.WriteString(u.expr(c))
			default:
				b.WriteString(c.Type())
			}
		}
		return b.String()
	case "call":
		fn := u.expr(n.ChildByFieldName("function"))
		args := n.ChildByFieldName("arguments")
		switch {
		case args == nil:
			return u.raw(n)
		case args.Type() != "argument_list":
			return fn + u.raw(args)
		}
		return fn + u.sequence("(", namedChildren(args), ")", false)
	case "keyword_argument":
		return u.text(n.ChildByFieldName("name")) + "=" + u.expr(n.ChildByFieldName("value"))
	case "list_splat", "list_splat_pattern":
		return "*" + u.join(namedChildren(n))
	case "dictionary_splat", "dictionary_splat_pattern":
		return "**" + u.join(namedChildren(n))
	case "tuple", "expression_list", "pattern_list", "tuple_pattern":
		return u.sequence("(", namedChildren(n), ")", true)
	case "list", "list_pattern":
		return u.sequence("[", namedChildren(n), "]", false)
	case "set":
		return u.sequence("{", namedChildren(n), "}", false)
	case "dictionary":
		return u.sequence("{", namedChildren(n), "}", false)
	case "pair":
		return u.expr(n.ChildByFieldName("key")) + ": " + u.expr(n.ChildByFieldName("value"))
	case "binary_operator", "boolean_operator":
		op := n.ChildByFieldName("operator")
		return "(" + u.expr(n.ChildByFieldName("left")) + " " + op.Type() + " " + u.expr(n.ChildByFieldName("right")) + ")"
	case "comparison_operator":
		var parts []string
		for i := 0; i < int(n.ChildCount()); i++ {
			c := n.Child(i)
			switch {
			case c.Type() == "comment":
			case c.IsNamed():
				parts = append(parts, u.expr(c))
			default:
				parts = append(parts, c.Type())
			}
		}
		return "(" + strings.Join(parts, " ") + ")"
	case "unary_operator":
		return n.ChildByFieldName("operator").Type() + u.expr(n.ChildByFieldName("argument"))
	case "not_operator":
		return "(not " + u.expr(n.ChildByFieldName("argument")) + ")"
	case "conditional_expression":
		parts := namedChildren(n)
		if len(parts) != 3 {
			return u.raw(n)
		}
		return "(" + u.expr(parts[0]) + " if " + u.expr(parts[1]) + " else " + u.expr(parts[2]) + ")"
	case "await":
		return "await " + u.join(namedChildren(n))
	default:
		return u.raw(n)
	}
}

func (u *unparser) stringLiteral(n *sitter.Node) string {
	lit, ok := parseLiteral(u.text(n))
	if !ok {
		return u.text(n)
	}
	switch lit.kind {
	case literalBytes:
		return quoteBytes(lit.value)
	case literalFormatted:
		return u.text(n)
	default:
		return quoteLiteral(lit.value)
	}
}

// concatenated renders implicitly joined literals as the single literal the
// compiler makes of them. Mixed or formatted parts keep their own spelling.
func (u *unparser) concatenated(n *sitter.Node) string {
	value, kind, ok := u.joinedLiteral(n)
	if !ok {
		parts := namedChildren(n)
		out := make([]string, len(parts))
		for i, p := range parts {
			out[i] = u.expr(p)
		}
		return strings.Join(out, " ")
	}
	if kind == literalBytes {
		return quoteBytes(value)
	}
	return quoteLiteral(value)
}

// joinedLiteral decodes a string or concatenated string node into its value.
// Formatted literals and str/bytes mixes are refused.
func (u *unparser) joinedLiteral(n *sitter.Node) (string, literalKind, bool) {
	n = unwrapParens(n)
	var parts []*sitter.Node
	switch n.Type() {
	case "string":
		parts = []*sitter.Node{n}
	case "concatenated_string":
		parts = namedChildren(n)
	default:
		return "", 0, false
	}
	var b strings.Builder
	kind := literalKind(-1)
	for _, p := range parts {
		if p.Type() != "string" {
			return "", 0, false
		}
		lit, ok := parseLiteral(u.text(p))
		if !ok || lit.kind == literalFormatted {
			return "", 0, false
		}
		if kind >= 0 && lit.kind != kind {
			return "", 0, false
		}
		kind = lit.kind
		b.WriteString(lit.value)
	}
	return b.String(), kind, true
}

// sequence renders a bracketed, comma separated list. Single element tuples
// keep their trailing comma.
func (u *unparser) sequence(open string, items []*sitter.Node, close string, tuple bool) string {
	out := u.join(items)
	if tuple && len(items) == 1 {
		out += ","
	}
	return open + out + close
}

func (u *unparser) join(items []*sitter.Node) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = u.expr(item)
	}
	return strings.Join(parts, ", ")
}

// namedChildren lists a node's named children without comments.
func namedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	var out []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c == nil || c.Type() == "comment" {
			continue
		}
		out = append(out, c)
	}
	return out
}

func unwrapParens(n *sitter.Node) *sitter.Node {
	for n != nil && n.Type() == "parenthesized_expression" {
		parts := namedChildren(n)
		if len(parts) != 1 {
			break
		}
		n = parts[0]
	}
	return n
}

func isAsync(n *sitter.Node) bool {
	return n.ChildCount() > 0 && n.Child(0).Type() == "async"
}

func splitLines(s string) []string {
	return strings.Split(s, "\n")
}
