// Package toon implements TOON (Token-Oriented Object Notation) encoding.
package toon

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/sirlanci/FuncSelector/internal/model"
)

var (
	needsQuoting = regexp.MustCompile(`[,:"\\{}\[\]]`)
	looksNumeric = regexp.MustCompile(`^-?(?:0|[1-9]\d*)(?:\.\d+)?$`)
	keywords     = map[string]struct{}{
		"true":  {},
		"false": {},
		"null":  {},
	}
)

// Encode converts a Summary into TOON format.
func Encode(s *model.Summary) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("root: %s", encodeValue(s.Root)))
	parts = append(parts, fmt.Sprintf("files: %d", s.Files))

	var fnRows [][]string
	usage := make(map[string]int)
	for i := range s.Functions {
		f := &s.Functions[i]
		fnRows = append(fnRows, []string{
			f.File,
			f.Name,
			fmt.Sprintf("%d", f.Line),
			fmt.Sprintf("%d", f.Regions),
			fmt.Sprintf("%d", f.TotalScore),
			fmt.Sprintf("%.2f", f.AvgScore),
			fmt.Sprintf("%d", f.TypedVars),
			strings.Join(f.Categories, " "),
		})
		for _, c := range f.Categories {
			usage[c]++
		}
	}
	parts = append(parts, formatTabular("functions",
		[]string{"file", "name", "line", "regions", "total_score", "avg_score", "typed_vars", "categories"}, fnRows))

	names := make([]string, 0, len(usage))
	for name := range usage {
		names = append(names, name)
	}
	sort.Strings(names)
	var catRows [][]string
	for _, name := range names {
		catRows = append(catRows, []string{name, fmt.Sprintf("%d", usage[name])})
	}
	parts = append(parts, formatTabular("categories", []string{"category", "functions"}, catRows))

	return strings.Join(parts, "\n")
}

func formatTabular(name string, columns []string, rows [][]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%d]{%s}:", name, len(rows), strings.Join(columns, ","))
	for _, row := range rows {
		encoded := make([]string, len(row))
		for i, cell := range row {
			encoded[i] = encodeValue(cell)
		}
		fmt.Fprintf(&b, "\n  %s", strings.Join(encoded, ","))
	}
	return b.String()
}

func encodeValue(value string) string {
	if value == "" {
		return `""`
	}

	if value != strings.TrimSpace(value) {
		return quote(value)
	}

	if strings.ContainsAny(value, "\n\r\t") {
		return quote(value)
	}

	if _, ok := keywords[strings.ToLower(value)]; ok {
		return quote(value)
	}

	if looksNumeric.MatchString(value) {
		return value
	}

	if needsQuoting.MatchString(value) {
		return quote(value)
	}

	if strings.HasPrefix(value, "-") {
		return quote(value)
	}

	return value
}

func quote(value string) string {
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	escaped = strings.ReplaceAll(escaped, "\n", `\n`)
	escaped = strings.ReplaceAll(escaped, "\r", `\r`)
	escaped = strings.ReplaceAll(escaped, "\t", `\t`)
	return `"` + escaped + `"`
}
