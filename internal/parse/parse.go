// Package parse lowers tree-sitter Rust syntax trees into the syntax package's
// closed node types.
package parse

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/sirlanci/FuncSelector/internal/lang"
	"github.com/sirlanci/FuncSelector/internal/syntax"
)

// trivia are nodes that never contribute a statement or an element.
var trivia = map[string]struct{}{
	"line_comment":         {},
	"block_comment":        {},
	"attribute_item":       {},
	"inner_attribute_item": {},
	"label":                {},
}

// declarations are block-level nodes lowered to syntax.ItemStmt.
var declarations = map[string]struct{}{
	"const_item":               {},
	"static_item":              {},
	"macro_definition":         {},
	"mod_item":                 {},
	"foreign_mod_item":         {},
	"struct_item":              {},
	"union_item":               {},
	"enum_item":                {},
	"type_item":                {},
	"function_item":            {},
	"function_signature_item":  {},
	"impl_item":                {},
	"trait_item":               {},
	"associated_type":          {},
	"use_declaration":          {},
	"extern_crate_declaration": {},
}

// File parses source and lowers the resulting tree. The parser must be
// created for the Rust grammar. path is only used in error reports.
// A tree containing error or missing nodes yields an *Error.
func File(ctx context.Context, parser *sitter.Parser, source []byte, path string) (*syntax.File, error) {
	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, newError(root, source, path)
	}

	l := &lowerer{src: source}
	return l.file(root), nil
}

type lowerer struct {
	src []byte
}

func (l *lowerer) text(n *sitter.Node) string {
	return lang.NodeText(n, l.src)
}

func isTrivia(n *sitter.Node) bool {
	_, ok := trivia[n.Type()]
	return ok
}

// namedChildren returns the named, non-trivia children of n.
func namedChildren(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c == nil || isTrivia(c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (l *lowerer) file(root *sitter.Node) *syntax.File {
	f := &syntax.File{}
	for _, n := range namedChildren(root) {
		switch n.Type() {
		case "function_item":
			f.Items = append(f.Items, l.function(n))
		case "empty_statement":
		default:
			f.Items = append(f.Items, &syntax.OtherItem{Kind: n.Type()})
		}
	}
	return f
}

func (l *lowerer) function(n *sitter.Node) *syntax.Function {
	fn := &syntax.Function{Line: int(n.StartPoint().Row) + 1}
	if name := n.ChildByFieldName("name"); name != nil {
		fn.Name = l.text(name)
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		fn.Params = l.params(params)
	}
	if rt := n.ChildByFieldName("return_type"); rt != nil {
		fn.Result = l.typ(rt)
	}
	fn.Body = l.blockField(n, "body")
	return fn
}

func (l *lowerer) params(n *sitter.Node) []syntax.Param {
	var params []syntax.Param
	for _, c := range namedChildren(n) {
		if c.Type() != "parameter" {
			// self receivers, variadics and bare types carry no simple name
			params = append(params, syntax.Param{})
			continue
		}
		params = append(params, l.param(c))
	}
	return params
}

func (l *lowerer) param(n *sitter.Node) syntax.Param {
	var p syntax.Param
	if pat := n.ChildByFieldName("pattern"); pat != nil {
		p.Name = l.simpleName(pat)
	}
	if ty := n.ChildByFieldName("type"); ty != nil {
		p.Type = l.typ(ty)
	}
	return p
}

// simpleName returns the bound identifier of a plain binding pattern
// (`x`, `ref x`, `mut x`) or "" for anything that destructures.
func (l *lowerer) simpleName(pat *sitter.Node) string {
	switch pat.Type() {
	case "identifier":
		return l.text(pat)
	case "ref_pattern", "mut_pattern":
		for _, c := range namedChildren(pat) {
			if c.Type() == "mutable_specifier" {
				continue
			}
			return l.simpleName(c)
		}
	}
	return ""
}

func (l *lowerer) typ(n *sitter.Node) *syntax.Type {
	t := &syntax.Type{Text: lang.CollapseWhitespace(l.text(n))}
	switch n.Type() {
	case "array_type":
		// [T] without a length is a slice
		if n.ChildByFieldName("length") != nil {
			t.Kind = syntax.TypeArray
		}
	case "tuple_type", "unit_type":
		t.Kind = syntax.TypeTuple
	}
	return t
}

func (l *lowerer) blockField(n *sitter.Node, field string) *syntax.Block {
	if b := n.ChildByFieldName(field); b != nil && b.Type() == "block" {
		return l.block(b)
	}
	return l.firstBlock(n)
}

// firstBlock lowers the first block child of n, for nodes such as
// unsafe_block whose block is not a named field.
func (l *lowerer) firstBlock(n *sitter.Node) *syntax.Block {
	for _, c := range namedChildren(n) {
		if c.Type() == "block" {
			return l.block(c)
		}
	}
	return &syntax.Block{}
}

func (l *lowerer) block(n *sitter.Node) *syntax.Block {
	b := &syntax.Block{}
	for _, c := range namedChildren(n) {
		switch c.Type() {
		case "empty_statement":
			// A terminator the grammar left dangling belongs to the
			// expression right before it.
			if k := len(b.Stmts); k > 0 {
				if es, ok := b.Stmts[k-1].(*syntax.ExprStmt); ok {
					es.Semi = true
				}
			}
		case "let_declaration":
			b.Stmts = append(b.Stmts, l.local(c))
		case "expression_statement":
			b.Stmts = append(b.Stmts, l.exprStmt(c))
		default:
			if _, ok := declarations[c.Type()]; ok {
				b.Stmts = append(b.Stmts, &syntax.ItemStmt{Kind: c.Type()})
				continue
			}
			// trailing expression of the block
			b.Stmts = append(b.Stmts, &syntax.ExprStmt{X: l.expr(c)})
		}
	}
	return b
}

func (l *lowerer) exprStmt(n *sitter.Node) *syntax.ExprStmt {
	s := &syntax.ExprStmt{}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		switch {
		case c.Type() == ";":
			s.Semi = true
		case c.IsNamed() && !isTrivia(c) && s.X == nil:
			s.X = l.expr(c)
		}
	}
	if s.X == nil {
		s.X = &syntax.OtherExpr{Kind: n.Type()}
	}
	return s
}

func (l *lowerer) local(n *sitter.Node) *syntax.LocalStmt {
	s := &syntax.LocalStmt{}
	if pat := n.ChildByFieldName("pattern"); pat != nil {
		s.Name = l.simpleName(pat)
	}
	if ty := n.ChildByFieldName("type"); ty != nil {
		s.Type = l.typ(ty)
	}
	if v := n.ChildByFieldName("value"); v != nil {
		s.Init = l.expr(v)
	}
	return s
}

func (l *lowerer) exprs(nodes []*sitter.Node) []syntax.Expr {
	out := make([]syntax.Expr, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, l.expr(n))
	}
	return out
}

func (l *lowerer) expr(n *sitter.Node) syntax.Expr {
	switch n.Type() {
	case "integer_literal":
		return &syntax.Lit{Kind: syntax.LitInt, Text: l.text(n)}
	case "float_literal":
		return &syntax.Lit{Kind: syntax.LitFloat, Text: l.text(n)}
	case "boolean_literal":
		return &syntax.Lit{Kind: syntax.LitBool, Text: l.text(n)}
	case "string_literal", "raw_string_literal":
		return l.stringLit(n)
	case "char_literal":
		text := l.text(n)
		if strings.HasPrefix(text, "b") {
			return &syntax.Lit{Kind: syntax.LitByte, Text: text}
		}
		return &syntax.Lit{Kind: syntax.LitChar, Text: text}
	case "identifier", "self", "super", "crate", "metavariable",
		"scoped_identifier", "generic_function":
		return &syntax.Path{Segments: l.segments(n)}
	case "unary_expression":
		return l.unary(n)
	case "binary_expression":
		return l.binary(n)
	case "call_expression":
		return l.call(n)
	case "closure_expression":
		return l.closure(n)
	case "macro_invocation":
		return l.macro(n)
	case "array_expression":
		if n.ChildByFieldName("length") != nil {
			return &syntax.OtherExpr{Kind: "array_repeat_expression"}
		}
		return &syntax.Array{Elems: l.exprs(namedChildren(n))}
	case "tuple_expression":
		return &syntax.Tuple{Elems: l.exprs(namedChildren(n))}
	case "unit_expression":
		return &syntax.Tuple{}
	case "struct_expression":
		return l.structLit(n)
	case "if_expression", "if_let_expression":
		return l.ifExpr(n)
	case "match_expression":
		return l.match(n)
	case "loop_expression":
		return &syntax.Loop{Body: l.blockField(n, "body")}
	case "while_expression", "while_let_expression":
		return &syntax.While{Body: l.blockField(n, "body")}
	case "for_expression":
		return &syntax.For{Body: l.blockField(n, "body")}
	case "try_block":
		return &syntax.TryBlock{Body: l.firstBlock(n)}
	case "unsafe_block":
		return &syntax.Unsafe{Body: l.firstBlock(n)}
	case "block":
		return &syntax.BlockExpr{Body: l.block(n)}
	case "try_expression":
		if inner := namedChildren(n); len(inner) > 0 {
			return &syntax.Try{X: l.expr(inner[0])}
		}
		return &syntax.Try{X: &syntax.OtherExpr{Kind: n.Type()}}
	default:
		return &syntax.OtherExpr{Kind: n.Type()}
	}
}

func (l *lowerer) stringLit(n *sitter.Node) *syntax.Lit {
	text := l.text(n)
	switch {
	case strings.HasPrefix(text, "b"):
		return &syntax.Lit{Kind: syntax.LitByteStr, Text: text}
	case strings.HasPrefix(text, "c"):
		return &syntax.Lit{Kind: syntax.LitVerbatim, Text: text}
	}
	return &syntax.Lit{Kind: syntax.LitStr, Text: text}
}

// segments flattens a (possibly qualified) path into its segments. A
// qualified-self prefix such as `<T as Trait>` contributes no segment.
func (l *lowerer) segments(n *sitter.Node) []string {
	switch n.Type() {
	case "scoped_identifier", "scoped_type_identifier":
		var segs []string
		if p := n.ChildByFieldName("path"); p != nil {
			segs = l.segments(p)
		}
		if name := n.ChildByFieldName("name"); name != nil {
			segs = append(segs, l.text(name))
		}
		return segs
	case "generic_function":
		if f := n.ChildByFieldName("function"); f != nil {
			return l.segments(f)
		}
		return nil
	case "generic_type":
		if t := n.ChildByFieldName("type"); t != nil {
			return l.segments(t)
		}
		return nil
	case "bracketed_type":
		return nil
	}
	return []string{l.text(n)}
}

func (l *lowerer) unary(n *sitter.Node) *syntax.Unary {
	u := &syntax.Unary{}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		if !c.IsNamed() {
			if u.Op == "" {
				u.Op = c.Type()
			}
			continue
		}
		if !isTrivia(c) && u.X == nil {
			u.X = l.expr(c)
		}
	}
	if u.X == nil {
		u.X = &syntax.OtherExpr{Kind: n.Type()}
	}
	return u
}

func (l *lowerer) binary(n *sitter.Node) *syntax.Binary {
	b := &syntax.Binary{X: l.fieldExpr(n, "left"), Y: l.fieldExpr(n, "right")}
	if op := n.ChildByFieldName("operator"); op != nil {
		b.Op = l.text(op)
	}
	return b
}

func (l *lowerer) fieldExpr(n *sitter.Node, field string) syntax.Expr {
	if c := n.ChildByFieldName(field); c != nil {
		return l.expr(c)
	}
	return &syntax.OtherExpr{Kind: n.Type()}
}

func (l *lowerer) call(n *sitter.Node) *syntax.Call {
	c := &syntax.Call{Fun: l.fieldExpr(n, "function")}
	if args := n.ChildByFieldName("arguments"); args != nil {
		c.Args = l.exprs(namedChildren(args))
	}
	return c
}

func (l *lowerer) closure(n *sitter.Node) *syntax.Closure {
	c := &syntax.Closure{}
	params := n.ChildByFieldName("parameters")
	if params == nil {
		return c
	}
	for _, p := range namedChildren(params) {
		if p.Type() == "parameter" {
			c.Params = append(c.Params, l.param(p))
			continue
		}
		c.Params = append(c.Params, syntax.Param{Name: l.simpleName(p)})
	}
	return c
}

func (l *lowerer) macro(n *sitter.Node) *syntax.Macro {
	m := &syntax.Macro{}
	if name := n.ChildByFieldName("macro"); name != nil {
		m.Name = l.text(name)
	}
	for _, c := range namedChildren(n) {
		if c.Type() == "token_tree" {
			m.Body = l.text(c)
			break
		}
	}
	return m
}

func (l *lowerer) structLit(n *sitter.Node) *syntax.Struct {
	s := &syntax.Struct{}
	if name := n.ChildByFieldName("name"); name != nil && name.Type() == "type_identifier" {
		s.Name = l.text(name)
	}
	body := n.ChildByFieldName("body")
	if body == nil {
		return s
	}
	for _, f := range namedChildren(body) {
		switch f.Type() {
		case "shorthand_field_initializer":
			s.Fields = append(s.Fields, syntax.FieldInit{Name: l.text(f), Named: true})
		case "field_initializer":
			field := f.ChildByFieldName("field")
			if field == nil {
				continue
			}
			s.Fields = append(s.Fields, syntax.FieldInit{
				Name:  l.text(field),
				Named: field.Type() == "field_identifier",
			})
		}
	}
	return s
}

func (l *lowerer) ifExpr(n *sitter.Node) *syntax.If {
	e := &syntax.If{Then: l.blockField(n, "consequence")}
	alt := n.ChildByFieldName("alternative")
	if alt == nil {
		return e
	}
	for _, c := range namedChildren(alt) {
		switch c.Type() {
		case "block":
			e.Else = &syntax.BlockExpr{Body: l.block(c)}
			return e
		case "if_expression", "if_let_expression":
			e.Else = l.ifExpr(c)
			return e
		}
	}
	return e
}

func (l *lowerer) match(n *sitter.Node) *syntax.Match {
	m := &syntax.Match{}
	body := n.ChildByFieldName("body")
	if body == nil {
		return m
	}
	for _, arm := range namedChildren(body) {
		if arm.Type() != "match_arm" && arm.Type() != "last_match_arm" {
			continue
		}
		m.Arms = append(m.Arms, syntax.Arm{Body: l.fieldExpr(arm, "value")})
	}
	return m
}
