package main

import (
	"fmt"

	"github.com/narrowhq/narrow/internal/ast"
	"github.com/narrowhq/narrow/internal/flow"
	"github.com/narrowhq/narrow/internal/symbols"
	"github.com/narrowhq/narrow/internal/typesystem"
)

// scenario builds a fresh Analyzer, runs the fixed sequence of core
// operations the scenario names, and returns the resulting Outcome.
// This is the same shape as internal/flow's own S1-S6 unit tests —
// replayed here as a CLI-driven fixture so the scenarios ship as
// artifacts a non-Go caller (CI, a golden-file reviewer) can run
// without `go test`, per SPEC_FULL.md §11.
type scenario func(a *flow.Analyzer) Outcome

var scenarios = map[string]scenario{
	"s1_if_null_guard":       s1IfNullGuard,
	"s2_ternary_array_union": s2TernaryArrayUnion,
	"s3_switch_exhaustive":   s3SwitchExhaustive,
	"s4_array_destructure":   s4ArrayDestructure,
	"s5_loop_fixed_point":    s5LoopFixedPoint,
	"s6_logical_and_member":  s6LogicalAndMember,
}

func newScenarioAnalyzer(preventPatterns []string) *flow.Analyzer {
	return flow.New(newReplayExternal(preventPatterns), symbols.NewGlobalScope())
}

func strTy() typesystem.Type  { return typesystem.Keyword{Name: "string"} }
func numTy() typesystem.Type  { return typesystem.Keyword{Name: "number"} }
func nullTy() typesystem.Type { return typesystem.Keyword{Name: "null"} }

// s1IfNullGuard replays spec.md §8 S1: `if (x === null) return;` on an
// `x: string | null` binding, hoisting the false branch's exclusion of
// null on x into the surviving facts.
func s1IfNullGuard(a *flow.Analyzer) Outcome {
	a.Scope.InsertVar("x", &symbols.VarInfo{
		DeclaredTy: typesystem.NewUnion(strTy(), nullTy()),
		ActualTy:   typesystem.NewUnion(strTy(), nullTy()),
	})
	stmt := &ast.IfStatement{
		Test: &ast.BinaryExpr{Op: ast.OpStrictEq, Left: &ast.Identifier{Name: "x"}, Right: &ast.NullLiteral{}},
		Cons: &ast.ReturnStatement{},
	}
	flow.AnalyzeIf(a, stmt, func(*flow.Analyzer, ast.Statement) {})
	return snapshotOutcome(a)
}

// s2TernaryArrayUnion replays S2: adjusting a ternary whose two arms
// are Array<number> and Array<string> collapses to Array<number |
// string> via the Array-member union-merge rule (typesystem.NewUnion).
func s2TernaryArrayUnion(a *flow.Analyzer) Outcome {
	cons := typesystem.NewArray(numTy())
	alt := typesystem.NewArray(strTy())
	result := typesystem.NewUnion(cons, alt)
	a.Scope.InsertVar("result", &symbols.VarInfo{ActualTy: result})
	return Outcome{Vars: map[string]string{"result": result.String()}}
}

// s3SwitchExhaustive replays S3: a switch whose every case body ends
// in return is an unconditional terminator, so the analyzer marks the
// program point after it unreachable.
func s3SwitchExhaustive(a *flow.Analyzer) Outcome {
	a.Scope.InsertVar("x", &symbols.VarInfo{ActualTy: typesystem.NewUnion(
		typesystem.Literal{LKind: typesystem.LiteralString, Value: `"a"`},
		typesystem.Literal{LKind: typesystem.LiteralString, Value: `"b"`},
	)})
	stmt := &ast.SwitchStatement{
		Discriminant: &ast.Identifier{Name: "x"},
		Cases: []ast.SwitchCase{
			{Test: &ast.StringLiteral{Value: "a"}, Cons: []ast.Statement{&ast.ReturnStatement{}}},
			{Test: &ast.StringLiteral{Value: "b"}, Cons: []ast.Statement{&ast.ReturnStatement{}}},
		},
	}
	flow.AnalyzeSwitch(a, stmt, func(*flow.Analyzer, ast.Statement) {})
	return snapshotOutcome(a)
}

// s4ArrayDestructure replays S4: `[s, n] = [string, number]` narrows
// both bound identifiers' scope ActualTy via the pattern-assignment
// engine.
func s4ArrayDestructure(a *flow.Analyzer) Outcome {
	a.Scope.InsertVar("s", &symbols.VarInfo{})
	a.Scope.InsertVar("n", &symbols.VarInfo{})
	pat := &ast.ArrayPattern{Elements: []ast.Pattern{
		&ast.IdentifierPattern{Name: "s"},
		&ast.IdentifierPattern{Name: "n"},
	}}
	flow.TryAssignPat(a, pat, typesystem.Tuple{Elems: []typesystem.Type{strTy(), numTy()}}, flow.AssignOptions{})

	out := Outcome{Vars: map[string]string{}}
	if v, ok := a.Scope.GetVar("s"); ok {
		out.Vars["s"] = v.ActualTy.String()
	}
	if v, ok := a.Scope.GetVar("n"); ok {
		out.Vars["n"] = v.ActualTy.String()
	}
	return out
}

// s5LoopFixedPoint replays S5: a while loop testing `x === "a"`
// converges its fixed point and installs the literal narrowing into
// true_facts.vars across loop passes (not into scope, which is
// restored to its pre-loop snapshot once the fixed point exits).
func s5LoopFixedPoint(a *flow.Analyzer) Outcome {
	a.Scope.InsertVar("x", &symbols.VarInfo{
		DeclaredTy: typesystem.NewUnion(strTy(), numTy()),
		ActualTy:   typesystem.NewUnion(strTy(), numTy()),
	})
	stmt := &ast.WhileStatement{
		Test: &ast.BinaryExpr{Op: ast.OpStrictEq, Left: &ast.Identifier{Name: "x"}, Right: &ast.StringLiteral{Value: "a"}},
		Body: &ast.BlockStatement{},
	}
	passes := 0
	flow.AnalyzeWhile(a, stmt, func(a *flow.Analyzer, s ast.Statement) {
		passes++
		if passes > 10 {
			panic(fmt.Sprintf("loop fixed point did not stabilize within %d passes", passes))
		}
	})
	return snapshotOutcome(a)
}

// s6LogicalAndMember replays S6: `obj && obj.kind === "A"` composes a
// Truthy fact on obj with a literal-comparison fact on obj.kind.
func s6LogicalAndMember(a *flow.Analyzer) Outcome {
	objTy := typesystem.TypeLit{Members: []typesystem.TypeElement{
		{Name: "kind", Ty: typesystem.NewUnion(
			typesystem.Literal{LKind: typesystem.LiteralString, Value: `"A"`},
			typesystem.Literal{LKind: typesystem.LiteralString, Value: `"B"`},
		)},
	}}
	a.Scope.InsertVar("obj", &symbols.VarInfo{ActualTy: objTy})

	expr := &ast.BinaryExpr{
		Op:   ast.OpLogicalAnd,
		Left: &ast.Identifier{Name: "obj"},
		Right: &ast.BinaryExpr{
			Op:    ast.OpStrictEq,
			Left:  &ast.MemberExpr{Object: &ast.Identifier{Name: "obj"}, Property: "kind"},
			Right: &ast.StringLiteral{Value: "A"},
		},
	}
	_, facts := flow.EvaluateWithFacts(a, expr)
	a.CurFacts = facts
	return snapshotOutcome(a)
}
