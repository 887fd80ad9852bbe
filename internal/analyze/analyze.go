// Package analyze runs the unsafe-region and type-tag analyses over every
// free function of a Rust source file.
package analyze

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/sirlanci/FuncSelector/internal/complexity"
	"github.com/sirlanci/FuncSelector/internal/model"
	"github.com/sirlanci/FuncSelector/internal/parse"
	"github.com/sirlanci/FuncSelector/internal/syntax"
	"github.com/sirlanci/FuncSelector/internal/typetag"
)

// Source parses source and analyzes each top-level function. The parser must
// be created for the Rust grammar. Parse failures are returned as
// *parse.Error.
func Source(ctx context.Context, parser *sitter.Parser, source []byte, path string, opts complexity.Options) (*model.FileReport, error) {
	file, err := parse.File(ctx, parser, source, path)
	if err != nil {
		return nil, err
	}
	return File(file, path, opts), nil
}

// File analyzes an already parsed file.
func File(file *syntax.File, path string, opts complexity.Options) *model.FileReport {
	report := &model.FileReport{Path: path}
	for _, fn := range syntax.Functions(file) {
		report.Functions = append(report.Functions, Function(fn, opts))
	}
	return report
}

// Function runs both analyses for fn. The analyses are independent and
// never modify the tree.
func Function(fn *syntax.Function, opts complexity.Options) model.FunctionReport {
	ret, hasRet := typetag.Return(fn)
	return model.FunctionReport{
		Name:      fn.Name,
		Line:      fn.Line,
		Unsafe:    opts.Regions(fn.Body),
		Arguments: typetag.Arguments(fn),
		Return:    ret,
		HasReturn: hasRet,
		Locals:    typetag.Locals(fn),
	}
}
