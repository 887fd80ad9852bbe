// Package typetag reports declared parameter and return types and guesses a
// type tag for each local binding from its annotation or initializer shape.
//
// Tags are advisory. Shapes the heuristics do not cover map to a
// NotIdentified sentinel instead of failing.
package typetag

import (
	"fmt"
	"strings"

	"github.com/sirlanci/FuncSelector/internal/model"
	"github.com/sirlanci/FuncSelector/internal/syntax"
)

// Sentinel tags for shapes that cannot be classified.
const (
	NotIdentifiedPath       = "NotIdentified#ExprPath"
	NotIdentifiedCall       = "NotIdentified#ExprCall"
	NotIdentifiedClosure    = "NotIdentified#ExprClosure"
	NotIdentifiedMacro      = "NotIdentified#ExprMacro"
	NotIdentifiedStruct     = "NotIdentified#Struct"
	NotIdentifiedExpression = "NotIdentified#Expression"

	// SentinelPrefix is shared by every sentinel.
	SentinelPrefix = "NotIdentified#"
)

// Literal tags.
const (
	TagInt      = "int"
	TagFloat    = "float"
	TagString   = "string"
	TagChar     = "char"
	TagBool     = "bool"
	TagByte     = "u8"
	TagByteStr  = "Vec<u8>"
	TagVerbatim = "Verbatim Literal"
)

const (
	arrayPrefix  = "array#"
	tuplePrefix  = "tuple#"
	enumPrefix   = "enum#"
	structPrefix = "struct#"
)

// Arguments returns the declared type of each parameter bound to a plain
// identifier, in declaration order.
func Arguments(fn *syntax.Function) []model.Binding {
	var out []model.Binding
	for _, p := range fn.Params {
		if p.Name == "" || p.Type == nil {
			continue
		}
		out = append(out, model.Binding{Name: p.Name, Type: p.Type.Text})
	}
	return out
}

// Return returns the declared return type, if any.
func Return(fn *syntax.Function) (string, bool) {
	if fn.Result == nil {
		return "", false
	}
	return fn.Result.Text, true
}

// Locals tags every top-level let binding of fn's body that has a plain
// identifier pattern and an initializer.
func Locals(fn *syntax.Function) []model.Binding {
	if fn.Body == nil {
		return nil
	}
	var out []model.Binding
	for _, stmt := range fn.Body.Stmts {
		local, ok := stmt.(*syntax.LocalStmt)
		if !ok {
			continue
		}
		if tag, ok := Local(local); ok {
			out = append(out, model.Binding{Name: local.Name, Type: tag})
		}
	}
	return out
}

// Local returns the tag for a single binding. It reports false for bindings
// without an initializer or with a destructuring pattern.
func Local(s *syntax.LocalStmt) (string, bool) {
	if s.Init == nil || s.Name == "" {
		return "", false
	}
	if s.Type != nil {
		return Annotation(s.Type), true
	}
	return Expr(s.Init), true
}

// Annotation returns the tag for an explicit type annotation: the raw text,
// prefixed for array and tuple shapes.
func Annotation(t *syntax.Type) string {
	switch t.Kind {
	case syntax.TypeArray:
		return arrayPrefix + t.Text
	case syntax.TypeTuple:
		return tuplePrefix + t.Text
	}
	return t.Text
}

// Expr classifies an initializer expression. It is total: any shape it does
// not recognize yields NotIdentifiedExpression.
func Expr(e syntax.Expr) string {
	switch x := e.(type) {
	case *syntax.Path:
		if len(x.Segments) == 0 {
			return NotIdentifiedPath
		}
		return enumPrefix + x.Segments[0]
	case *syntax.Lit:
		return literal(x.Kind)
	case *syntax.Unary:
		return Expr(x.X)
	case *syntax.Call:
		return NotIdentifiedCall
	case *syntax.Closure:
		if len(x.Params) > 0 && x.Params[0].Type != nil {
			return x.Params[0].Type.Text
		}
		return NotIdentifiedClosure
	case *syntax.Macro:
		if x.Name == "format" {
			return TagString
		}
		return NotIdentifiedMacro
	case *syntax.Array:
		if len(x.Elems) == 0 {
			return arrayPrefix + "[]"
		}
		return fmt.Sprintf("%s[%s; %d]", arrayPrefix, Expr(x.Elems[0]), len(x.Elems))
	case *syntax.Tuple:
		tags := make([]string, len(x.Elems))
		for i, el := range x.Elems {
			tags[i] = Expr(el)
		}
		return tuplePrefix + "(" + strings.Join(tags, ", ") + ")"
	case *syntax.Struct:
		if x.Name != "" && len(x.Fields) > 0 && x.Fields[0].Named {
			return structPrefix + x.Name
		}
		return NotIdentifiedStruct
	default:
		return NotIdentifiedExpression
	}
}

func literal(k syntax.LitKind) string {
	switch k {
	case syntax.LitInt:
		return TagInt
	case syntax.LitFloat:
		return TagFloat
	case syntax.LitStr:
		return TagString
	case syntax.LitChar:
		return TagChar
	case syntax.LitBool:
		return TagBool
	case syntax.LitByte:
		return TagByte
	case syntax.LitByteStr:
		return TagByteStr
	default:
		return TagVerbatim
	}
}

// IsSentinel reports whether tag is, or is built from, a NotIdentified
// sentinel, as in `array#[NotIdentified#ExprCall; 2]`.
func IsSentinel(tag string) bool {
	return strings.Contains(tag, SentinelPrefix)
}
