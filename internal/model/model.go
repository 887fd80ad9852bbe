// Package model defines the analysis results shared across funcselector.
package model

// UnsafeReport holds the unsafe regions found at the top level of a function
// body and the complexity score of each, in source order.
type UnsafeReport struct {
	Regions int
	Scores  []int
}

// Total returns the sum of all region scores.
func (r UnsafeReport) Total() int {
	total := 0
	for _, s := range r.Scores {
		total += s
	}
	return total
}

// Binding pairs a variable or parameter name with its type text or tag.
type Binding struct {
	Name string
	Type string
}

// FunctionReport holds both analyses for a single function.
type FunctionReport struct {
	Name      string
	Line      int
	Unsafe    UnsafeReport
	Arguments []Binding
	Return    string
	HasReturn bool
	Locals    []Binding
}

// FileReport holds per-function results for a single source file.
type FileReport struct {
	Path      string
	Functions []FunctionReport
}

// FunctionSummary condenses a FunctionReport into comparable metrics.
type FunctionSummary struct {
	File       string   `yaml:"file"`
	Name       string   `yaml:"name"`
	Line       int      `yaml:"line"`
	Regions    int      `yaml:"regions"`
	TotalScore int      `yaml:"total_score"`
	AvgScore   float64  `yaml:"avg_score"`
	TypedVars  int      `yaml:"typed_vars"`
	Categories []string `yaml:"categories,flow"`
}

// Summary is the complete analyzed set of files, ready for serialization.
type Summary struct {
	Root      string            `yaml:"root"`
	Files     int               `yaml:"files"`
	Functions []FunctionSummary `yaml:"functions"`
}
