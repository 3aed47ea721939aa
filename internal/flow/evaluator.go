package flow

import (
	"github.com/narrowhq/narrow/internal/ast"
	"github.com/narrowhq/narrow/internal/names"
	"github.com/narrowhq/narrow/internal/typesystem"
)

// EvaluateWithFacts runs expr under truthy-recording mode (spec.md
// §4.2's should_store_truthy_for_access) and returns both its type and
// the Facts it produced. It is the entry point branch analyzers call
// on a condition expression (`if (test)`, a switch case test, a
// ternary's test, a loop's test).
//
// Each call gets its own isolated accumulator rather than writing
// into the caller's a.CurFacts directly: spec.md describes cur_facts
// as "the mutable accumulator" the Rust source's single long-lived
// `self` carries, but composing independently-evaluated Facts values
// explicitly (via ComposeAnd/ComposeOr/Negate below) is the more
// idiomatic Go shape for the same recursive algorithm, and is
// observationally identical — the caller still receives exactly the
// Facts the sub-expression produced.
func EvaluateWithFacts(a *Analyzer, expr ast.Expression) (typesystem.Type, *Facts) {
	sub := a.WithCtx(func(c *Ctx) { c.ShouldStoreTruthyForAccess = true })
	sub.CurFacts = NewFacts()
	ty := Evaluate(sub, expr)
	return ty, sub.CurFacts
}

// Evaluate evaluates expr for its type, recording facts into
// a.CurFacts when a.Ctx.ShouldStoreTruthyForAccess is set (spec.md
// §4.2).
func Evaluate(a *Analyzer, expr ast.Expression) typesystem.Type {
	switch e := expr.(type) {
	case *ast.Identifier:
		return evaluateIdentifier(a, e)
	case *ast.StringLiteral:
		return typesystem.Literal{LKind: typesystem.LiteralString, Value: `"` + e.Value + `"`}
	case *ast.NumberLiteral:
		return typesystem.Literal{LKind: typesystem.LiteralNumber, Value: e.Value}
	case *ast.BoolLiteral:
		if e.Value {
			return typesystem.Literal{LKind: typesystem.LiteralBoolean, Value: "true"}
		}
		return typesystem.Literal{LKind: typesystem.LiteralBoolean, Value: "false"}
	case *ast.NullLiteral:
		return typesystem.Keyword{Name: "null"}
	case *ast.UndefinedLiteral:
		return typesystem.Keyword{Name: "undefined"}
	case *ast.UnaryExpr:
		return evaluateUnary(a, e)
	case *ast.BinaryExpr:
		return evaluateBinary(a, e)
	case *ast.MemberExpr:
		return evaluateMember(a, e)
	case *ast.CallExpr:
		Evaluate(a, e.Callee)
		for _, arg := range e.Args {
			Evaluate(a, arg)
		}
		return typesystem.Any{}
	case *ast.CondExpr:
		return evaluateTernary(a, e)
	case *ast.AssignmentExpression:
		return EvaluateAssignment(a, e)
	default:
		return typesystem.Any{}
	}
}

// varType resolves name's current type. Per spec.md §3, `vars[n]` is a
// "direct narrowed binding" that "overrides scope's actual type" — so a
// live entry in the current true-facts accumulator wins first (the
// after-if / after-switch hoisting of §4.3/§4.4 installs its result
// there, not into scope). Failing that, a scope-local (or
// parent-scope) VarInfo's ActualTy (falling back to DeclaredTy) takes
// priority over External.TypeOfVar, since the scope is exactly where
// try_assign_pat and the loop analyzer install narrowed types. Names
// the scope has never heard of (globals, module-level bindings) fall
// through to External.
func varType(a *Analyzer, name string) (typesystem.Type, error) {
	n := names.Of(name)
	if v, ok := a.CurFacts.True.Vars[n]; ok {
		return v, nil
	}
	if v, _, ok := a.Scope.Resolve(name); ok {
		if v.ActualTy != nil {
			return v.ActualTy, nil
		}
		if v.DeclaredTy != nil {
			return v.DeclaredTy, nil
		}
	}
	return a.External.TypeOfVar(name, AccessRead)
}

func evaluateIdentifier(a *Analyzer, id *ast.Identifier) typesystem.Type {
	ty, err := varType(a, id.Name)
	if err != nil {
		a.report(err)
		return typesystem.Any{}
	}
	if a.Ctx.ShouldStoreTruthyForAccess {
		n := names.Of(id.Name)
		addFact(a.CurFacts.True, n, Truthy)
		addFact(a.CurFacts.False, n, Falsy)
	}
	return ty
}

func addFact(cf *CondFacts, n names.Name, tf TypeFacts) {
	cf.Facts[n] = cf.Facts[n].Or(tf)
}

func evaluateUnary(a *Analyzer, e *ast.UnaryExpr) typesystem.Type {
	switch e.Op {
	case ast.OpNot:
		_, facts := EvaluateWithFacts(a, e.Operand)
		negated := facts.Negate()
		if a.Ctx.ShouldStoreTruthyForAccess {
			a.CurFacts.Compose(negated)
		}
		return typesystem.Keyword{Name: "boolean"}
	case ast.OpTypeof:
		Evaluate(a, e.Operand)
		return typesystem.Keyword{Name: "string"}
	default:
		Evaluate(a, e.Operand)
		return typesystem.Any{}
	}
}

func evaluateBinary(a *Analyzer, e *ast.BinaryExpr) typesystem.Type {
	switch e.Op {
	case ast.OpLogicalAnd:
		_, lf := EvaluateWithFacts(a, e.Left)
		_, rf := EvaluateWithFacts(a, e.Right)
		composed := ComposeAnd(lf, rf)
		if a.Ctx.ShouldStoreTruthyForAccess {
			a.CurFacts.Compose(composed)
		}
		return typesystem.Keyword{Name: "boolean"}
	case ast.OpLogicalOr:
		_, lf := EvaluateWithFacts(a, e.Left)
		_, rf := EvaluateWithFacts(a, e.Right)
		composed := ComposeOr(lf, rf)
		if a.Ctx.ShouldStoreTruthyForAccess {
			a.CurFacts.Compose(composed)
		}
		return typesystem.Keyword{Name: "boolean"}
	case ast.OpNullish:
		lt, lf := EvaluateWithFacts(a, e.Left)
		rt, rf := EvaluateWithFacts(a, e.Right)
		composed := ComposeNullish(lf, rf)
		if a.Ctx.ShouldStoreTruthyForAccess {
			a.CurFacts.Compose(composed)
		}
		return optUnion(lt, rt)
	case ast.OpStrictEq, ast.OpStrictNotEq:
		return evaluateStrictEq(a, e)
	case ast.OpIn:
		return evaluateIn(a, e)
	default:
		Evaluate(a, e.Left)
		Evaluate(a, e.Right)
		return typesystem.Any{}
	}
}

// evaluateStrictEq handles `typeof x === "T"` and `x === literal`,
// spec.md §4.2's second and third bullets. `!==` produces the same
// facts with sides swapped (negated).
func evaluateStrictEq(a *Analyzer, e *ast.BinaryExpr) typesystem.Type {
	negate := e.Op == ast.OpStrictNotEq

	if tf, ok := tryTypeofComparison(a, e.Left, e.Right); ok {
		return finishEq(a, tf, negate)
	}
	if tf, ok := tryTypeofComparison(a, e.Right, e.Left); ok {
		return finishEq(a, tf, negate)
	}
	if tf, ok := tryLiteralComparison(a, e.Left, e.Right); ok {
		return finishEq(a, tf, negate)
	}
	if tf, ok := tryLiteralComparison(a, e.Right, e.Left); ok {
		return finishEq(a, tf, negate)
	}

	Evaluate(a, e.Left)
	Evaluate(a, e.Right)
	return typesystem.Keyword{Name: "boolean"}
}

func finishEq(a *Analyzer, tf *Facts, negate bool) typesystem.Type {
	if negate {
		tf = tf.Negate()
	}
	if a.Ctx.ShouldStoreTruthyForAccess {
		a.CurFacts.Compose(tf)
	}
	return typesystem.Keyword{Name: "boolean"}
}

// tryTypeofComparison matches `typeof ident === "keyword"`.
func tryTypeofComparison(a *Analyzer, maybeTypeof, maybeStr ast.Expression) (*Facts, bool) {
	un, ok := maybeTypeof.(*ast.UnaryExpr)
	if !ok || un.Op != ast.OpTypeof {
		return nil, false
	}
	lit, ok := maybeStr.(*ast.StringLiteral)
	if !ok {
		return nil, false
	}
	n, ok := nameOfExpr(un.Operand)
	if !ok {
		return nil, false
	}
	eq, ne, known := typeofKeywordFact(lit.Value)
	facts := NewFacts()
	addFact(facts.True, n, eq)
	addFact(facts.False, n, ne)
	if known {
		facts.True.Vars[n] = typesystem.Keyword{Name: lit.Value}
	}
	return facts, true
}

// tryLiteralComparison matches `x === literal` for an identifier- or
// member-rooted x.
func tryLiteralComparison(a *Analyzer, maybeName, maybeLit ast.Expression) (*Facts, bool) {
	n, ok := nameOfExpr(maybeName)
	if !ok {
		return nil, false
	}
	litTy, ok := literalTypeOf(maybeLit)
	if !ok {
		return nil, false
	}
	facts := NewFacts()
	facts.True.Vars[n] = litTy
	facts.False.Excludes[n] = append(facts.False.Excludes[n], litTy)

	// obj.field === literal additionally narrows obj itself, per
	// spec.md §4.2 "add_deep_type_fact" / §4.7
	// determine_type_fact_by_field_fact.
	if parent, ok := n.Parent(); ok && n.Len() == 2 {
		field := n.Segments()[1]
		if objTy, err := varType(a, parent.Base()); err == nil {
			if refined, ok := determineTypeFactByFieldFact(a, objTy, field, litTy); ok {
				facts.True.Vars[parent] = refined
			}
		}
	}
	return facts, true
}

func literalTypeOf(e ast.Expression) (typesystem.Type, bool) {
	switch lit := e.(type) {
	case *ast.StringLiteral:
		return typesystem.Literal{LKind: typesystem.LiteralString, Value: `"` + lit.Value + `"`}, true
	case *ast.NumberLiteral:
		return typesystem.Literal{LKind: typesystem.LiteralNumber, Value: lit.Value}, true
	case *ast.BoolLiteral:
		if lit.Value {
			return typesystem.Literal{LKind: typesystem.LiteralBoolean, Value: "true"}, true
		}
		return typesystem.Literal{LKind: typesystem.LiteralBoolean, Value: "false"}, true
	case *ast.NullLiteral:
		return typesystem.Keyword{Name: "null"}, true
	case *ast.UndefinedLiteral:
		return typesystem.Keyword{Name: "undefined"}, true
	default:
		return nil, false
	}
}

// evaluateIn handles `'prop' in obj` (spec.md §4.2's fourth bullet).
func evaluateIn(a *Analyzer, e *ast.BinaryExpr) typesystem.Type {
	lit, ok := e.Left.(*ast.StringLiteral)
	objTy := Evaluate(a, e.Right)
	if ok {
		if n, ok := nameOfExpr(e.Right); ok {
			refined := narrowTypesWithProperty(a, objTy, lit.Value, nil)
			if a.Ctx.ShouldStoreTruthyForAccess {
				a.CurFacts.True.Vars[n] = refined
			}
		}
	}
	return typesystem.Keyword{Name: "boolean"}
}

// evaluateMember handles a member expression used directly as a
// condition (`if (obj.field)`), recording a deep fact on Name(obj,
// field) — spec.md §4.2's fifth bullet.
func evaluateMember(a *Analyzer, e *ast.MemberExpr) typesystem.Type {
	objTy := Evaluate(a, e.Object)
	if e.Computed {
		return typesystem.Any{}
	}
	propTy, err := a.External.AccessProperty(objTy, e.Property, AccessRead)
	if err != nil {
		a.report(err)
		return typesystem.Any{}
	}
	if a.Ctx.ShouldStoreTruthyForAccess {
		if n, ok := nameOfExpr(e); ok {
			addFact(a.CurFacts.True, n, Truthy)
			addFact(a.CurFacts.False, n, Falsy)
		}
	}
	return propTy
}

// nameOfExpr recovers the dotted names.Name a (possibly-member)
// expression denotes, for use as a CondFacts map key. Only
// identifier-rooted, non-computed member chains have a Name; anything
// else (calls, computed access, literals) does not.
func nameOfExpr(e ast.Expression) (names.Name, bool) {
	switch v := e.(type) {
	case *ast.Identifier:
		return names.Of(v.Name), true
	case *ast.MemberExpr:
		if v.Computed {
			return names.Name{}, false
		}
		base, ok := nameOfExpr(v.Object)
		if !ok {
			return names.Name{}, false
		}
		return base.Child(v.Property), true
	default:
		return names.Name{}, false
	}
}
