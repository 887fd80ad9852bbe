// Package summary condenses per-function reports into comparable metrics:
// unsafe region counts and scores, and the coarse type categories a
// function's arguments and locals fall into.
package summary

import (
	"bytes"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/sirlanci/FuncSelector/internal/category"
	"github.com/sirlanci/FuncSelector/internal/model"
)

// Build summarizes every function of reports, preserving file and
// declaration order.
func Build(root string, reports []*model.FileReport, c *category.Categorizer) *model.Summary {
	s := &model.Summary{Root: root, Files: len(reports)}
	for _, r := range reports {
		for i := range r.Functions {
			s.Functions = append(s.Functions, Function(r.Path, &r.Functions[i], c))
		}
	}
	return s
}

// Function summarizes a single function report.
func Function(file string, f *model.FunctionReport, c *category.Categorizer) model.FunctionSummary {
	fs := model.FunctionSummary{
		File:       file,
		Name:       f.Name,
		Line:       f.Line,
		Regions:    f.Unsafe.Regions,
		TotalScore: f.Unsafe.Total(),
		Categories: []string{},
	}
	if fs.Regions > 0 {
		fs.AvgScore = float64(fs.TotalScore) / float64(fs.Regions)
	}

	seen := make(map[string]struct{})
	count := func(bindings []model.Binding) {
		for _, b := range bindings {
			cat := c.Of(b.Type)
			if cat == "" {
				continue
			}
			fs.TypedVars++
			if _, ok := seen[cat]; !ok {
				seen[cat] = struct{}{}
				fs.Categories = append(fs.Categories, cat)
			}
		}
	}
	count(f.Arguments)
	count(f.Locals)
	sort.Strings(fs.Categories)
	return fs
}

// EncodeYAML renders s as a YAML document.
func EncodeYAML(s *model.Summary) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return "", fmt.Errorf("encoding summary: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encoding summary: %w", err)
	}
	return buf.String(), nil
}
