package ast

// IfStatement is `if (Test) Cons [else Alt]`. Alt is nil when absent.
// See spec.md §4.3 for the branch-analysis algorithm that visits this
// node.
type IfStatement struct {
	base
	Test Expression
	Cons Statement
	Alt  Statement
}

func (IfStatement) stmtNode() {}

// SwitchCase is one `case Test:`/`default:` arm of a SwitchStatement.
// Test is nil for the default case.
type SwitchCase struct {
	Test Expression
	Cons []Statement
}

// SwitchStatement is `switch (Discriminant) { Cases... }`. See spec.md
// §4.4.
type SwitchStatement struct {
	base
	Discriminant Expression
	Cases        []SwitchCase
}

func (SwitchStatement) stmtNode() {}

// CondExpr is the ternary conditional `Test ? Cons : Alt`. See spec.md
// §4.5.
type CondExpr struct {
	base
	Test Expression
	Cons Expression
	Alt  Expression
}

func (CondExpr) exprNode() {}

// WhileStatement is `while (Test) Body`. See spec.md §4.8.
type WhileStatement struct {
	base
	Test Expression
	Body Statement
}

func (WhileStatement) stmtNode() {}

// DoWhileStatement is `do Body while (Test)`. The loop fixed-point
// analyzer visits Body once before entering the fixed point (spec.md
// §4.11's do-while pre-visit, grounded on loops.rs).
type DoWhileStatement struct {
	base
	Body Statement
	Test Expression
}

func (DoWhileStatement) stmtNode() {}

// ForInStatement is `for (Left in Right) Body`. See spec.md §4.8's
// for-in element-type derivation.
type ForInStatement struct {
	base
	Left  Pattern
	Right Expression
	Body  Statement
}

func (ForInStatement) stmtNode() {}

// ForOfStatement is `for (Left of Right) Body` (or `for await` when
// Await is true). See spec.md §4.8's for-of/for-await-of element-type
// derivation.
type ForOfStatement struct {
	base
	Left  Pattern
	Right Expression
	Body  Statement
	Await bool
}

func (ForOfStatement) stmtNode() {}
