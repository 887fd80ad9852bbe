// Package ranking orders summarized functions by unsafe complexity.
package ranking

import (
	"sort"

	"github.com/sirlanci/FuncSelector/internal/model"
)

// Sort orders functions by total unsafe score, then region count, both
// descending, then by file and line.
func Sort(fns []model.FunctionSummary) {
	sort.SliceStable(fns, func(i, j int) bool {
		a, b := &fns[i], &fns[j]
		if a.TotalScore != b.TotalScore {
			return a.TotalScore > b.TotalScore
		}
		if a.Regions != b.Regions {
			return a.Regions > b.Regions
		}
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Line < b.Line
	})
}

// TopFunctions returns a new Summary with only the top-ranked functions.
// If maxFunctions is <= 0 the ranked summary keeps every function.
func TopFunctions(s *model.Summary, maxFunctions int) *model.Summary {
	ranked := make([]model.FunctionSummary, len(s.Functions))
	copy(ranked, s.Functions)
	Sort(ranked)

	if maxFunctions > 0 && maxFunctions < len(ranked) {
		ranked = ranked[:maxFunctions]
	}

	return &model.Summary{
		Root:      s.Root,
		Files:     s.Files,
		Functions: ranked,
	}
}
