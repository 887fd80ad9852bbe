// Package complexity scores the unsafe regions of a function body.
//
// The score charges one unit per statement, one extra unit per control-flow
// construct and per branch slot, and recurses into the blocks those
// constructs own. Bare nested blocks are transparent.
package complexity

import (
	"github.com/sirlanci/FuncSelector/internal/model"
	"github.com/sirlanci/FuncSelector/internal/syntax"
)

// Options controls how unsafe blocks are recognized.
type Options struct {
	// CountTerminated treats `unsafe { .. };` like `unsafe { .. }`. When
	// false, a terminated unsafe block is neither a region nor a nested
	// unsafe construct and scores as a plain statement.
	CountTerminated bool
}

// DefaultOptions returns the options used when no configuration is given.
func DefaultOptions() Options {
	return Options{CountTerminated: true}
}

// Score returns the complexity score of b using DefaultOptions.
func Score(b *syntax.Block) int {
	return DefaultOptions().Score(b)
}

// Score returns the complexity score of b. It never inspects statements
// outside b except by descending into blocks that b's statements own.
func (o Options) Score(b *syntax.Block) int {
	if b == nil {
		return 0
	}
	count := 0
	for _, stmt := range b.Stmts {
		count += o.stmt(stmt)
	}
	return count
}

func (o Options) stmt(s syntax.Stmt) int {
	es, ok := s.(*syntax.ExprStmt)
	if !ok {
		// let bindings and nested items
		return 1
	}

	switch x := es.X.(type) {
	case *syntax.Loop:
		return 1 + o.Score(x.Body)
	case *syntax.While:
		return 1 + o.Score(x.Body)
	case *syntax.For:
		return 1 + o.Score(x.Body)
	case *syntax.TryBlock:
		return 1 + o.Score(x.Body)
	case *syntax.Unsafe:
		if es.Semi && !o.CountTerminated {
			return 1
		}
		return 1 + o.Score(x.Body)
	case *syntax.BlockExpr:
		return o.Score(x.Body)
	case *syntax.If:
		return o.ifExpr(x)
	case *syntax.Match:
		count := 1
		for _, arm := range x.Arms {
			count++
			if blk, ok := arm.Body.(*syntax.BlockExpr); ok {
				count += o.Score(blk.Body)
			}
		}
		return count
	case *syntax.Try:
		return 1
	default:
		return 1
	}
}

// ifExpr charges the then branch and, for a plain else, the else block.
// An else-if chain costs a single unit and is not descended into.
func (o Options) ifExpr(x *syntax.If) int {
	count := 1 + o.Score(x.Then)
	if x.Else == nil {
		return count
	}
	count++
	if blk, ok := x.Else.(*syntax.BlockExpr); ok {
		count += o.Score(blk.Body)
	}
	return count
}

// Regions finds the unsafe blocks at the top level of body and scores each
// one using DefaultOptions.
func Regions(body *syntax.Block) model.UnsafeReport {
	return DefaultOptions().Regions(body)
}

// Regions finds the unsafe blocks at the top level of body and scores each
// one. Unsafe blocks nested deeper are only seen through their region's score.
func (o Options) Regions(body *syntax.Block) model.UnsafeReport {
	var r model.UnsafeReport
	if body == nil {
		return r
	}
	for _, stmt := range body.Stmts {
		es, ok := stmt.(*syntax.ExprStmt)
		if !ok {
			continue
		}
		u, ok := es.X.(*syntax.Unsafe)
		if !ok {
			continue
		}
		if es.Semi && !o.CountTerminated {
			continue
		}
		r.Regions++
		r.Scores = append(r.Scores, o.Score(u.Body))
	}
	return r
}
