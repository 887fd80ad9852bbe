// Package syntax defines the closed syntax tree that the analyses consume.
//
// The tree is a lowered view of a Rust source file: only the shapes the
// analyses distinguish get their own node type, everything else collapses
// into OtherItem, ItemStmt or OtherExpr.
package syntax

// File is an ordered sequence of top-level items.
type File struct {
	Items []Item
}

// Item is a top-level declaration: *Function or *OtherItem.
type Item interface {
	itemNode()
}

// Function is a free function declared at the top level of a file.
type Function struct {
	Name   string
	Line   int
	Params []Param
	Result *Type // nil when the function returns unit implicitly
	Body   *Block
}

// OtherItem is any top-level item that is not a free function.
type OtherItem struct {
	Kind string
}

func (*Function) itemNode()  {}
func (*OtherItem) itemNode() {}

// Param is a function or closure parameter. Name is empty when the pattern
// is not a plain identifier (destructuring, self receivers, wildcards).
type Param struct {
	Name string
	Type *Type
}

// TypeKind distinguishes the type shapes the type tagger cares about.
type TypeKind int

const (
	TypeOther TypeKind = iota
	TypeArray
	TypeTuple
)

// Type is a type annotation as written in the source.
type Type struct {
	Kind TypeKind
	Text string
}

// Block is an ordered sequence of statements.
type Block struct {
	Stmts []Stmt
}

// Stmt is one of *LocalStmt, *ExprStmt or *ItemStmt.
type Stmt interface {
	stmtNode()
}

// LocalStmt is a let binding. Name is empty for non-simple patterns.
type LocalStmt struct {
	Name string
	Type *Type
	Init Expr
}

// ExprStmt is an expression in statement position. Semi records whether the
// statement ends with a terminator.
type ExprStmt struct {
	X    Expr
	Semi bool
}

// ItemStmt is a declaration nested inside a block.
type ItemStmt struct {
	Kind string
}

func (*LocalStmt) stmtNode() {}
func (*ExprStmt) stmtNode()  {}
func (*ItemStmt) stmtNode()  {}

// Expr is the closed set of expression shapes.
type Expr interface {
	exprNode()
}

// LitKind classifies literal tokens.
type LitKind int

const (
	LitVerbatim LitKind = iota
	LitInt
	LitFloat
	LitStr
	LitChar
	LitBool
	LitByte
	LitByteStr
)

type (
	// Lit is a literal token.
	Lit struct {
		Kind LitKind
		Text string
	}

	// Path is a plain or qualified name, split into segments.
	Path struct {
		Segments []string
	}

	// Unary is a prefix operator applied to X (-, !, *).
	Unary struct {
		Op string
		X  Expr
	}

	Binary struct {
		Op   string
		X, Y Expr
	}

	Call struct {
		Fun  Expr
		Args []Expr
	}

	Closure struct {
		Params []Param
	}

	// Macro is a macro invocation. Name is the macro path as written,
	// without the trailing bang.
	Macro struct {
		Name string
		Body string
	}

	Array struct {
		Elems []Expr
	}

	Tuple struct {
		Elems []Expr
	}

	// Struct is a struct literal. Name is empty when the struct path is not
	// a single identifier.
	Struct struct {
		Name   string
		Fields []FieldInit
	}

	// If is an if expression. Else is nil, a *BlockExpr for a plain else,
	// or an *If for an else-if chain.
	If struct {
		Then *Block
		Else Expr
	}

	Match struct {
		Arms []Arm
	}

	Loop struct {
		Body *Block
	}

	While struct {
		Body *Block
	}

	For struct {
		Body *Block
	}

	TryBlock struct {
		Body *Block
	}

	Unsafe struct {
		Body *Block
	}

	// BlockExpr is a bare nested block.
	BlockExpr struct {
		Body *Block
	}

	// Try is the ? operator applied to X.
	Try struct {
		X Expr
	}

	// OtherExpr is any expression the analyses do not distinguish. Kind
	// holds the grammar node type for diagnostics.
	OtherExpr struct {
		Kind string
	}
)

// FieldInit is one field of a struct literal. Named is false for positional
// fields such as `0: x`.
type FieldInit struct {
	Name  string
	Named bool
}

// Arm is one arm of a match expression.
type Arm struct {
	Body Expr
}

func (*Lit) exprNode()       {}
func (*Path) exprNode()      {}
func (*Unary) exprNode()     {}
func (*Binary) exprNode()    {}
func (*Call) exprNode()      {}
func (*Closure) exprNode()   {}
func (*Macro) exprNode()     {}
func (*Array) exprNode()     {}
func (*Tuple) exprNode()     {}
func (*Struct) exprNode()    {}
func (*If) exprNode()        {}
func (*Match) exprNode()     {}
func (*Loop) exprNode()      {}
func (*While) exprNode()     {}
func (*For) exprNode()       {}
func (*TryBlock) exprNode()  {}
func (*Unsafe) exprNode()    {}
func (*BlockExpr) exprNode() {}
func (*Try) exprNode()       {}
func (*OtherExpr) exprNode() {}

// Functions returns the free functions of f in declaration order.
func Functions(f *File) []*Function {
	if f == nil {
		return nil
	}
	var fns []*Function
	for _, item := range f.Items {
		if fn, ok := item.(*Function); ok {
			fns = append(fns, fn)
		}
	}
	return fns
}
