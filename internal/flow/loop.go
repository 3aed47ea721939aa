package flow

import (
	"github.com/narrowhq/narrow/internal/ast"
	"github.com/narrowhq/narrow/internal/diagnostics"
	"github.com/narrowhq/narrow/internal/symbols"
	"github.com/narrowhq/narrow/internal/typesystem"
)

// runLoopFixedPoint implements spec.md §4.8's fixed-point procedure,
// generic over the loop shape: visit is called once per pass with a
// freshly entered LoopBody child analyzer, and is responsible for
// whatever test-evaluation and body-visiting that pass requires
// (AnalyzeWhile/AnalyzeDoWhile/AnalyzeForIn/AnalyzeForOf each supply
// their own visit closure below).
func runLoopFixedPoint(a *Analyzer, visit func(child *Analyzer)) {
	prevFacts := a.CurFacts.True.Take()
	falseFacts := a.CurFacts.False.Take()

	var factsOfPrevBody *CondFacts
	last := false
	origVars := a.Scope.SnapshotVars()

	for {
		child := a.WithLoopBodyChild(prevFacts.Clone(), last)
		visit(child)

		factsFromBody := child.CurFacts.True
		factsFromBody.ClearExcludes()

		if last {
			prevFacts.Compose(factsFromBody)
			break
		}

		if factsOfPrevBody != nil && factsFromBody.Equal(factsOfPrevBody) {
			last = true
		} else {
			factsOfPrevBody = factsFromBody.Clone()
		}

		prevFacts.OverrideVarsUsing(factsFromBody)
		prevFacts.Compose(factsFromBody)
	}

	a.Scope.RestoreVars(origVars)

	a.CurFacts.True.Compose(prevFacts)
	a.CurFacts.False.Compose(falseFacts)
}

// AnalyzeWhile implements spec.md §4.8 for `while (Test) Body`: the
// test is (re-)evaluated on every pass, its facts feed the body.
func AnalyzeWhile(a *Analyzer, stmt *ast.WhileStatement, visit VisitFn) {
	runLoopFixedPoint(a, func(child *Analyzer) {
		_, testFacts := EvaluateWithFacts(child, stmt.Test)
		child.CurFacts.Compose(testFacts)
		visit(child, stmt.Body)
	})
}

// AnalyzeDoWhile implements spec.md §4.11's do-while supplement: the
// body is visited once, unconditionally, before the fixed point
// begins (a do-while body always runs at least once, so its first
// execution cannot be gated on the test at all). The fixed point
// itself shares runLoopFixedPoint with AnalyzeWhile and evaluates the
// test before visiting the body on every pass, exactly like while —
// do-while's only special case is that one-time pre-visit.
func AnalyzeDoWhile(a *Analyzer, stmt *ast.DoWhileStatement, visit VisitFn) {
	preChild := a.WithChild(symbols.KindBlock, a.CurFacts.True)
	visit(preChild, stmt.Body)

	runLoopFixedPoint(a, func(child *Analyzer) {
		_, testFacts := EvaluateWithFacts(child, stmt.Test)
		child.CurFacts.Compose(testFacts)
		visit(child, stmt.Body)
	})
}

// AnalyzeForIn implements spec.md §4.8's for-in handling: derive the
// element type (see forInElementType: string, Extract<keyof K, string>
// for a mapped type, or string|number otherwise), run
// the lhs legality checks, assign the element type into Left via the
// pattern engine once per pass, then run the fixed point with no test.
func AnalyzeForIn(a *Analyzer, stmt *ast.ForInStatement, visit VisitFn) {
	rhsTy := Evaluate(a, stmt.Right)
	checkForLhsLegality(a, stmt.Left, true)
	elemTy := forInElementType(a, rhsTy)

	runLoopFixedPoint(a, func(child *Analyzer) {
		TryAssignPat(child, stmt.Left, elemTy, AssignOptions{InLoop: true})
		visit(child, stmt.Body)
	})
}

// AnalyzeForOf implements spec.md §4.8's for-of/for-await-of handling.
func AnalyzeForOf(a *Analyzer, stmt *ast.ForOfStatement, visit VisitFn) {
	rhsTy := Evaluate(a, stmt.Right)
	checkForLhsLegality(a, stmt.Left, false)

	var elemTy typesystem.Type
	var err error
	if stmt.Await {
		elemTy, err = a.External.GetAsyncIteratorElementType(rhsTy)
	} else {
		elemTy, err = a.External.GetIteratorElementType(rhsTy)
	}
	if err != nil {
		a.report(err)
		elemTy = typesystem.Any{}
	}

	runLoopFixedPoint(a, func(child *Analyzer) {
		TryAssignPat(child, stmt.Left, elemTy, AssignOptions{InLoop: true})
		visit(child, stmt.Body)
	})
}

// forInElementType implements spec.md §4.8's for-in element-type
// table: object/array/tuple rhs narrows to string; a mapped type
// narrows to Extract<keyof K, string>; anything else falls back to
// string|number (the rhs could be any indexable shape).
func forInElementType(a *Analyzer, rhsTy typesystem.Type) typesystem.Type {
	switch t := a.External.Normalize(rhsTy).(type) {
	case typesystem.Keyword:
		if t.Name == "object" {
			return typesystem.Keyword{Name: "string"}
		}
	case typesystem.Array:
		return typesystem.Keyword{Name: "string"}
	case typesystem.Tuple:
		return typesystem.Keyword{Name: "string"}
	case typesystem.Mapped:
		return typesystem.Operator{
			Op: typesystem.OperatorExtract,
			Args: []typesystem.Type{
				typesystem.Operator{Op: typesystem.OperatorKeyOf, Args: []typesystem.Type{t.KeyOf}},
				typesystem.Keyword{Name: "string"},
			},
		}
	}
	return typesystem.NewUnion(typesystem.Keyword{Name: "string"}, typesystem.Keyword{Name: "number"})
}

// checkForLhsLegality implements spec.md §4.8's additional legality
// checks: destructuring patterns are forbidden as a for-in lhs, type
// annotations are forbidden on any for-in/for-of lhs declaration, and
// an optional-chain lhs (`obj?.prop`) is rejected for both; a plain
// member expression (`obj.prop`), identifier, `this`, or parenthesized
// expression is legal and falls through unreported.
func checkForLhsLegality(a *Analyzer, lhs ast.Pattern, isForIn bool) {
	switch p := lhs.(type) {
	case *ast.IdentifierPattern:
		if p.TypeAnn != nil {
			if isForIn {
				a.report(diagnostics.NewError(diagnostics.TypeAnnOnLhsOfForInLoops, p.GetToken(),
					"type annotation not allowed on for-in loop variable"))
			} else {
				a.report(diagnostics.NewError(diagnostics.TypeAnnOnLhsOfForOfLoops, p.GetToken(),
					"type annotation not allowed on for-of loop variable"))
			}
		}
	case *ast.ArrayPattern, *ast.ObjectPattern:
		if isForIn {
			a.report(diagnostics.NewError(diagnostics.DestructuringBindingNotAllowedInLhsOfForIn, lhs.GetToken(),
				"destructuring not allowed as for-in loop variable"))
		}
	case *ast.ExprPattern:
		if m, isMember := p.Expr.(*ast.MemberExpr); isMember && m.Optional {
			if isForIn {
				a.report(diagnostics.NewError(diagnostics.InvalidExprOfLhsOfForIn, lhs.GetToken(),
					"invalid expression as for-in loop variable"))
			} else {
				a.report(diagnostics.NewError(diagnostics.InvalidExprOfLhsOfForOf, lhs.GetToken(),
					"invalid expression as for-of loop variable"))
			}
		}
	}
}
