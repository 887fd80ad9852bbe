// Package emit writes analysis results in the semicolon-separated line
// format consumed by downstream measurement scripts.
package emit

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/sirlanci/FuncSelector/internal/model"
)

// Unsafe writes one `name;count;score...` line per function.
func Unsafe(w io.Writer, r *model.FileReport) error {
	bw := bufio.NewWriter(w)
	for i := range r.Functions {
		_, _ = bw.WriteString(UnsafeLine(&r.Functions[i]))
		_ = bw.WriteByte('\n')
	}
	return bw.Flush()
}

// UnsafeLine formats a single function's unsafe report. Score fields are
// omitted entirely when there are no regions.
func UnsafeLine(f *model.FunctionReport) string {
	fields := make([]string, 0, 2+len(f.Unsafe.Scores))
	fields = append(fields, f.Name, strconv.Itoa(f.Unsafe.Regions))
	for _, s := range f.Unsafe.Scores {
		fields = append(fields, strconv.Itoa(s))
	}
	return strings.Join(fields, ";")
}

// Types writes the Function/Argument/Return/Local block of every function.
func Types(w io.Writer, r *model.FileReport) error {
	bw := bufio.NewWriter(w)
	for i := range r.Functions {
		for _, line := range TypeLines(&r.Functions[i]) {
			_, _ = bw.WriteString(line)
			_ = bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

// TypeLines formats a single function's type report.
func TypeLines(f *model.FunctionReport) []string {
	lines := []string{"Function;" + f.Name}
	for _, a := range f.Arguments {
		lines = append(lines, "Argument;"+a.Name+";"+a.Type)
	}
	if f.HasReturn {
		lines = append(lines, "Return;"+f.Return)
	}
	for _, l := range f.Locals {
		lines = append(lines, "Local;"+l.Name+";"+l.Type)
	}
	return lines
}
