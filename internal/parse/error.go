package parse

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
)

const maxSnippet = 40

// Error is a syntax error located at the first node tree-sitter could not
// fit into the grammar. Line and Column are 1-based and count characters,
// not bytes; EndColumn is the exclusive 1-based end of the offending span on
// the same line.
type Error struct {
	Path      string
	Line      int
	Column    int
	EndColumn int
	Message   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
}

// Render formats the error with the offending source line and a caret
// underline beneath the span. It falls back to Error() when the line is
// not part of source.
func (e *Error) Render(source []byte) string {
	lines := strings.Split(string(source), "\n")
	if e.Line < 1 || e.Line > len(lines) {
		return "unable to parse file: " + e.Error()
	}
	code := strings.TrimRight(lines[e.Line-1], " \t\r")

	lineNum := strconv.Itoa(e.Line)
	indent := strings.Repeat(" ", len(lineNum))
	offset := strings.Repeat(" ", max(e.Column-1, 0))
	underline := strings.Repeat("^", max(e.EndColumn-e.Column, 1))

	var b strings.Builder
	fmt.Fprintf(&b, "error: unable to parse file\n")
	fmt.Fprintf(&b, "%s--> %s:%d:%d\n", indent, filepath.Base(e.Path), e.Line, e.Column)
	fmt.Fprintf(&b, "%s |\n", indent)
	fmt.Fprintf(&b, "%s | %s\n", lineNum, code)
	fmt.Fprintf(&b, "%s | %s%s %s", indent, offset, underline, e.Message)
	return b.String()
}

func newError(root *sitter.Node, source []byte, path string) *Error {
	n := firstError(root)
	if n == nil {
		n = root
	}

	start, end := n.StartPoint(), n.EndPoint()
	line := lineBytes(source, int(start.Row))
	e := &Error{
		Path:      path,
		Line:      int(start.Row) + 1,
		Column:    runeColumn(line, int(start.Column)),
		EndColumn: runeColumn(line, int(end.Column)),
	}
	if end.Row > start.Row {
		e.EndColumn = utf8.RuneCount(line) + 1
	}

	switch {
	case n.IsMissing():
		e.Message = fmt.Sprintf("expected `%s`", n.Type())
	case n.Type() == "ERROR":
		snippet := strings.TrimSpace(firstLine(string(source[n.StartByte():n.EndByte()])))
		if snippet == "" {
			e.Message = "unexpected input"
			break
		}
		if r := []rune(snippet); len(r) > maxSnippet {
			snippet = string(r[:maxSnippet]) + "..."
		}
		e.Message = fmt.Sprintf("unexpected `%s`", snippet)
	default:
		e.Message = "syntax error"
	}
	return e
}

// firstError returns the first error or missing node in document order.
func firstError(n *sitter.Node) *sitter.Node {
	if n == nil {
		return nil
	}
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if e := firstError(n.Child(i)); e != nil {
			return e
		}
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// lineBytes returns the 0-based row of source without its line ending.
func lineBytes(source []byte, row int) []byte {
	for i := 0; i < row; i++ {
		nl := bytes.IndexByte(source, '\n')
		if nl < 0 {
			return nil
		}
		source = source[nl+1:]
	}
	if nl := bytes.IndexByte(source, '\n'); nl >= 0 {
		source = source[:nl]
	}
	return bytes.TrimRight(source, "\r")
}

// runeColumn converts a 0-based byte offset within line into a 1-based
// character column.
func runeColumn(line []byte, byteCol int) int {
	byteCol = min(max(byteCol, 0), len(line))
	return utf8.RuneCount(line[:byteCol]) + 1
}
