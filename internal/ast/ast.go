// Package ast defines the minimal statement/expression/pattern node
// set the narrowing core (internal/flow) visits. spec.md §1 places the
// AST parser and "the larger visitor dispatch framework" out of scope,
// treating them as an external collaborator that invokes the core on
// each statement/expression; this package is that collaborator's
// output shape, not a parser, and it is deliberately far smaller than
// a full language grammar — only the constructs spec.md §4 names.
//
// The node shape (GetToken/TokenLiteral, an embedded Token field)
// follows the teacher's internal/ast idiom; the full Accept(Visitor)
// dispatch framework is not reproduced, since nothing in SPEC_FULL.md
// needs generic tree-walking — the core dispatches on concrete node
// type directly, the same way the teacher's own
// inferIfExpression/inferBlockStatement family does internally.
package ast

import "github.com/narrowhq/narrow/internal/token"

// Node is the root of every AST type: a Token-bearing position anchor.
type Node interface {
	GetToken() token.Token
	TokenLiteral() string
}

// Statement is a statement-position node.
type Statement interface {
	Node
	stmtNode()
}

// Expression is an expression-position node.
type Expression interface {
	Node
	exprNode()
}

type base struct {
	Token token.Token
}

func (b base) GetToken() token.Token { return b.Token }
func (b base) TokenLiteral() string  { return b.Token.Lexeme }

// Identifier is a bare name reference, used both as an expression and
// (via IdentifierPattern) as a binding target.
type Identifier struct {
	base
	Name string
}

func (Identifier) exprNode() {}

// BlockStatement is an ordered statement sequence evaluated in source
// order (spec.md §5, "Statement visits occur in source order").
type BlockStatement struct {
	base
	Stmts []Statement
}

func (BlockStatement) stmtNode() {}

// ExpressionStatement wraps an expression evaluated for effect.
type ExpressionStatement struct {
	base
	Expr Expression
}

func (ExpressionStatement) stmtNode() {}

// ReturnStatement models `return` / `return expr`.
type ReturnStatement struct {
	base
	Arg Expression // nil for bare `return`
}

func (ReturnStatement) stmtNode() {}

// ThrowStatement models `throw expr`.
type ThrowStatement struct {
	base
	Arg Expression
}

func (ThrowStatement) stmtNode() {}

// BreakStatement models `break`. spec.md §4.9: break is explicitly not
// a terminator.
type BreakStatement struct{ base }

func (BreakStatement) stmtNode() {}

// ContinueStatement models `continue`, a terminator for spec.md §4.9's
// purposes.
type ContinueStatement struct{ base }

func (ContinueStatement) stmtNode() {}

// VariableDeclarator binds Id to the value of Init (if present).
// TypeAnn, when non-nil, is the declared type annotation; spec.md
// §4.8 forbids this on for-in/for-of lhs declarations.
type VariableDeclarator struct {
	Id      Pattern
	Init    Expression
	TypeAnn Node // opaque type-annotation AST slot; nil if absent
}

// VariableDeclaration is `let`/`const` (or language-specific
// equivalent) binding one or more declarators.
type VariableDeclaration struct {
	base
	Declarations []VariableDeclarator
}

func (VariableDeclaration) stmtNode() {}
