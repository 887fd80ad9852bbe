package parse

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/sirlanci/FuncSelector/internal/lang"
)

func parseError(t *testing.T, source string) *Error {
	t.Helper()
	p := lang.Languages[lang.Rust].NewParser()
	_, err := File(context.Background(), p, []byte(source), "test.rs")
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	return perr
}

func TestErrorRender(t *testing.T) {
	t.Parallel()

	source := []byte("fn main() {\n    let x = ;\n}\n")
	e := &Error{Path: "/tmp/src/main.rs", Line: 2, Column: 13, EndColumn: 14, Message: "unexpected `;`"}

	want := "error: unable to parse file\n" +
		" --> main.rs:2:13\n" +
		"  |\n" +
		"2 |     let x = ;\n" +
		"  |             ^ unexpected `;`"
	if got := e.Render(source); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestErrorRenderFallback(t *testing.T) {
	t.Parallel()

	e := &Error{Path: "a.rs", Line: 9, Column: 1, EndColumn: 1, Message: "expected `}`"}
	want := "unable to parse file: a.rs:9:1: expected `}`"
	if got := e.Render([]byte("fn a() {")); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestErrorString(t *testing.T) {
	t.Parallel()

	e := &Error{Path: "a.rs", Line: 3, Column: 7, Message: "unexpected `@`"}
	if got := e.Error(); got != "a.rs:3:7: unexpected `@`" {
		t.Errorf("Error() = %q", got)
	}
}

func TestRuneColumn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		line    string
		byteCol int
		want    int
	}{
		{"start", "let x = 1;", 0, 1},
		{"ascii", "let x = 1;", 4, 5},
		{"after multibyte", "let é = @;", 9, 9},
		{"end of line", "é", 2, 2},
		{"past end", "ab", 10, 3},
		{"negative", "ab", -1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := runeColumn([]byte(tt.line), tt.byteCol); got != tt.want {
				t.Errorf("runeColumn(%q, %d) = %d, want %d", tt.line, tt.byteCol, got, tt.want)
			}
		})
	}
}

func TestLineBytes(t *testing.T) {
	t.Parallel()

	source := []byte("first\r\nsecond\nthird")
	tests := []struct {
		row  int
		want string
	}{
		{0, "first"},
		{1, "second"},
		{2, "third"},
		{3, ""},
	}
	for _, tt := range tests {
		if got := string(lineBytes(source, tt.row)); got != tt.want {
			t.Errorf("lineBytes(row %d) = %q, want %q", tt.row, got, tt.want)
		}
	}
}

func TestSyntaxErrorColumnCountsCharacters(t *testing.T) {
	t.Parallel()

	line := "/* éééééééééé */ @@@"
	perr := parseError(t, line+"\n")

	runes := []rune(line)
	if perr.Column < 1 || perr.Column > len(runes) {
		t.Fatalf("column %d outside line of %d characters", perr.Column, len(runes))
	}
	if got := runes[perr.Column-1]; got != '@' {
		t.Errorf("column %d points at %q, want '@'", perr.Column, got)
	}

	// The caret sits under the offending character.
	rendered := perr.Render([]byte(line + "\n"))
	lines := strings.Split(rendered, "\n")
	caretLine := lines[len(lines)-1]
	codeLine := lines[len(lines)-2]
	caret := utf8.RuneCountInString(caretLine[:strings.IndexByte(caretLine, '^')])
	if got := []rune(codeLine)[caret]; got != '@' {
		t.Errorf("caret under %q:\n%s", got, rendered)
	}
}

func TestSyntaxErrorSnippetIsValidUTF8(t *testing.T) {
	t.Parallel()

	perr := parseError(t, "@ "+strings.Repeat("é", 2*maxSnippet)+"\n")
	if !utf8.ValidString(perr.Message) {
		t.Errorf("message is not valid UTF-8: %q", perr.Message)
	}
}
