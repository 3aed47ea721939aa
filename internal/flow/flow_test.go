package flow

import (
	"testing"

	"github.com/narrowhq/narrow/internal/ast"
	"github.com/narrowhq/narrow/internal/names"
	"github.com/narrowhq/narrow/internal/symbols"
	"github.com/narrowhq/narrow/internal/typesystem"
)

func strTy() typesystem.Type  { return typesystem.Keyword{Name: "string"} }
func numTy() typesystem.Type  { return typesystem.Keyword{Name: "number"} }
func nullTy() typesystem.Type { return typesystem.Keyword{Name: "null"} }

func newTestAnalyzer() *Analyzer {
	return New(newFakeExternal(), symbols.NewGlobalScope())
}

// Testable Property 1: negation involution.
func TestNegationInvolution(t *testing.T) {
	f := NewFacts()
	f.True.Facts[names.Of("x")] = Truthy
	f.False.Facts[names.Of("y")] = Falsy

	got := f.Negate().Negate()
	if !got.True.Equal(f.True) || !got.False.Equal(f.False) {
		t.Fatalf("negation is not involutive: got %+v, want %+v", got, f)
	}
}

// Testable Property 2: sequential composition identity.
func TestComposeIdentity(t *testing.T) {
	cf := NewCondFacts()
	cf.Facts[names.Of("x")] = Truthy
	cf.Vars[names.Of("y")] = strTy()

	composed := cf.Clone()
	composed.Compose(NewCondFacts())
	if !composed.Equal(cf) {
		t.Fatalf("cf += empty changed cf: got %+v, want %+v", composed, cf)
	}

	empty := NewCondFacts()
	empty.Compose(cf)
	if !empty.Equal(cf) {
		t.Fatalf("empty += cf != cf: got %+v, want %+v", empty, cf)
	}
}

// Testable Property 3: parallel join commutativity (up to type-equality
// of union members — NewUnion's own sort/dedup makes this automatic).
func TestJoinCommutative(t *testing.T) {
	a := NewCondFacts()
	a.Vars[names.Of("x")] = strTy()
	a.Facts[names.Of("z")] = Truthy

	b := NewCondFacts()
	b.Vars[names.Of("x")] = numTy()
	b.Facts[names.Of("z")] = Falsy

	ab := Join(a, b)
	ba := Join(b, a)
	if !ab.Equal(ba) {
		t.Fatalf("join not commutative: a|b = %+v, b|a = %+v", ab, ba)
	}
}

// Testable Property 4: parallel join idempotence.
func TestJoinIdempotent(t *testing.T) {
	cf := NewCondFacts()
	cf.Vars[names.Of("x")] = strTy()
	cf.Facts[names.Of("y")] = Truthy

	joined := Join(cf, cf)
	if !joined.Equal(cf) {
		t.Fatalf("cf|cf != cf: got %+v, want %+v", joined, cf)
	}
}

// Testable Property 5: override monotonicity.
func TestOverrideVarsUsing(t *testing.T) {
	cf := NewCondFacts()
	cf.Vars[names.Of("x")] = strTy()
	cf.Vars[names.Of("y")] = strTy()

	r := NewCondFacts()
	r.Vars[names.Of("x")] = numTy()

	cf.OverrideVarsUsing(r)
	for k, v := range r.Vars {
		if !typesystem.Equal(cf.Vars[k], v) {
			t.Fatalf("override did not install r.Vars[%v]: got %v, want %v", k, cf.Vars[k], v)
		}
	}
	if !typesystem.Equal(cf.Vars[names.Of("y")], strTy()) {
		t.Fatalf("override clobbered a key not present in r.Vars")
	}
}

// Testable Property 6: cheap-clone preservation — every Type variant's
// CheapClone is a same-value operation.
func TestCheapClonePreservation(t *testing.T) {
	values := []typesystem.Type{
		typesystem.Never{},
		typesystem.Any{},
		strTy(),
		typesystem.Literal{LKind: typesystem.LiteralString, Value: `"a"`},
		typesystem.NewUnion(strTy(), numTy()),
		typesystem.NewArray(strTy()),
	}
	for _, v := range values {
		cloned := v.CheapClone()
		if !typesystem.Equal(v, cloned) {
			t.Fatalf("CheapClone changed value: got %v, want %v", cloned, v)
		}
	}
}

// Testable Property 7: terminator classification.
func TestTerminatorClassification(t *testing.T) {
	cases := []struct {
		name  string
		stmts []ast.Statement
		want  bool
	}{
		{"empty", nil, false},
		{"return", []ast.Statement{&ast.ReturnStatement{}}, true},
		{"throw", []ast.Statement{&ast.ThrowStatement{}}, true},
		{"continue", []ast.Statement{&ast.ContinueStatement{}}, true},
		{"break-is-not-terminator", []ast.Statement{&ast.BreakStatement{}}, false},
		{"if-both-terminate", []ast.Statement{&ast.IfStatement{
			Cons: &ast.ReturnStatement{}, Alt: &ast.ThrowStatement{},
		}}, true},
		{"if-no-alt", []ast.Statement{&ast.IfStatement{Cons: &ast.ReturnStatement{}}}, false},
		{"trailing-expr", []ast.Statement{&ast.ReturnStatement{}, &ast.ExpressionStatement{}}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := isUnconditionalTerminator(c.stmts); got != c.want {
				t.Fatalf("isUnconditionalTerminator(%s) = %v, want %v", c.name, got, c.want)
			}
		})
	}
}

// S1 (if null-guard): after `if (x === null) { return; }`, the
// after-if true-facts carry the false-side's exclusion of null on x
// (spec.md §4.3 step 7's cons_ends_with_ret branch) — the mechanical
// artifact a consumer would feed into apply_type_facts_to_type to
// arrive at the "narrowed to string" outcome the scenario describes.
func TestAnalyzeIfNullGuardHoistsFalseFacts(t *testing.T) {
	a := newTestAnalyzer()
	xName := names.Of("x")
	a.Scope.InsertVar("x", &symbols.VarInfo{
		DeclaredTy: typesystem.NewUnion(strTy(), nullTy()),
		ActualTy:   typesystem.NewUnion(strTy(), nullTy()),
	})

	stmt := &ast.IfStatement{
		Test: &ast.BinaryExpr{Op: ast.OpStrictEq, Left: &ast.Identifier{Name: "x"}, Right: &ast.NullLiteral{}},
		Cons: &ast.ReturnStatement{},
	}
	AnalyzeIf(a, stmt, func(a *Analyzer, s ast.Statement) {})

	excludes := a.CurFacts.True.Excludes[xName]
	if len(excludes) != 1 || !typesystem.Equal(excludes[0], nullTy()) {
		t.Fatalf("after if-null-guard, Excludes[x] = %v, want [null]", excludes)
	}
}

// S2 (ternary union): `cond ? [1, 2] : ["a"]` lifts both tuples to
// arrays and the resulting union collapses to Array<number | string>.
func TestAdjustTernaryTupleUnion(t *testing.T) {
	a := newTestAnalyzer()
	cons := typesystem.Tuple{Elems: []typesystem.Type{numTy(), numTy()}}
	alt := typesystem.Tuple{Elems: []typesystem.Type{strTy()}}

	consTy, altTy := adjustTernaryType(a, cons, alt)
	result := typesystem.NewUnion(consTy, altTy)

	arr, ok := result.(typesystem.Array)
	if !ok {
		t.Fatalf("result is not an Array: %v (%T)", result, result)
	}
	want := typesystem.NewUnion(numTy(), strTy())
	if !typesystem.Equal(arr.Elem, want) {
		t.Fatalf("element type = %v, want %v", arr.Elem, want)
	}
}

// S3 (switch exhaustive): every case body returns, so the switch marks
// the program point after it unreachable.
func TestAnalyzeSwitchExhaustiveUnreachable(t *testing.T) {
	a := newTestAnalyzer()
	stmt := &ast.SwitchStatement{
		Discriminant: &ast.Identifier{Name: "k"},
		Cases: []ast.SwitchCase{
			{Test: &ast.StringLiteral{Value: "a"}, Cons: []ast.Statement{&ast.ReturnStatement{}}},
			{Test: &ast.StringLiteral{Value: "b"}, Cons: []ast.Statement{&ast.ReturnStatement{}}},
		},
	}
	a.Scope.InsertVar("k", &symbols.VarInfo{
		DeclaredTy: typesystem.NewUnion(
			typesystem.Literal{LKind: typesystem.LiteralString, Value: `"a"`},
			typesystem.Literal{LKind: typesystem.LiteralString, Value: `"b"`},
		),
	})
	AnalyzeSwitch(a, stmt, func(a *Analyzer, s ast.Statement) {})

	if !a.InUnreachable {
		t.Fatalf("exhaustive switch (all cases return) did not mark in_unreachable")
	}
}

// S4 (destructuring narrows): `let [s, n] = t` where t: [string, number]
// installs actual_ty(s)=string, actual_ty(n)=number.
func TestTryAssignPatArrayDestructure(t *testing.T) {
	a := newTestAnalyzer()
	a.Scope.InsertVar("s", &symbols.VarInfo{})
	a.Scope.InsertVar("n", &symbols.VarInfo{})

	pat := &ast.ArrayPattern{Elements: []ast.Pattern{
		&ast.IdentifierPattern{Name: "s"},
		&ast.IdentifierPattern{Name: "n"},
	}}
	tupleTy := typesystem.Tuple{Elems: []typesystem.Type{strTy(), numTy()}}
	TryAssignPat(a, pat, tupleTy, AssignOptions{})

	sv, _ := a.Scope.GetVar("s")
	nv, _ := a.Scope.GetVar("n")
	if !typesystem.Equal(sv.ActualTy, strTy()) {
		t.Fatalf("actual_ty(s) = %v, want string", sv.ActualTy)
	}
	if !typesystem.Equal(nv.ActualTy, numTy()) {
		t.Fatalf("actual_ty(n) = %v, want number", nv.ActualTy)
	}
}

// S5 (loop fixed point): `while (x === "a") {}` re-evaluates the test
// every pass; since the test's literal-comparison facts are identical
// pass to pass, the fixed point must stabilize (and halt) with
// cur_facts.true_facts.vars[x] = "a" installed afterward.
func TestLoopFixedPointStabilizes(t *testing.T) {
	a := newTestAnalyzer()
	a.Scope.InsertVar("x", &symbols.VarInfo{
		DeclaredTy: typesystem.NewUnion(strTy(), numTy()),
		ActualTy:   typesystem.NewUnion(strTy(), numTy()),
	})

	stmt := &ast.WhileStatement{
		Test: &ast.BinaryExpr{Op: ast.OpStrictEq, Left: &ast.Identifier{Name: "x"}, Right: &ast.StringLiteral{Value: "a"}},
		Body: &ast.BlockStatement{},
	}

	passes := 0
	AnalyzeWhile(a, stmt, func(a *Analyzer, s ast.Statement) {
		passes++
		if passes > 10 {
			t.Fatal("loop fixed point did not stabilize within 10 passes")
		}
	})

	xName := names.Of("x")
	want := typesystem.Literal{LKind: typesystem.LiteralString, Value: `"a"`}
	if got := a.CurFacts.True.Vars[xName]; !typesystem.Equal(got, want) {
		t.Fatalf("true_facts.vars[x] after loop = %v, want %v", got, want)
	}
}

// S6 (logical-and narrow): `obj && obj.kind === "A"` records both a
// truthy fact and a deep literal-comparison fact on the same Name
// chain, composed sequentially by &&'s true-side rule.
func TestLogicalAndNarrowsMember(t *testing.T) {
	a := newTestAnalyzer()
	objTy := typesystem.TypeLit{Members: []typesystem.TypeElement{
		{Name: "kind", Ty: typesystem.NewUnion(
			typesystem.Literal{LKind: typesystem.LiteralString, Value: `"A"`},
			typesystem.Literal{LKind: typesystem.LiteralString, Value: `"B"`},
		)},
	}}
	a.Scope.InsertVar("obj", &symbols.VarInfo{
		DeclaredTy: typesystem.NewUnion(objTy, typesystem.Keyword{Name: "null"}),
		ActualTy:   typesystem.NewUnion(objTy, typesystem.Keyword{Name: "null"}),
	})

	expr := &ast.BinaryExpr{
		Op:   ast.OpLogicalAnd,
		Left: &ast.Identifier{Name: "obj"},
		Right: &ast.BinaryExpr{
			Op:    ast.OpStrictEq,
			Left:  &ast.MemberExpr{Object: &ast.Identifier{Name: "obj"}, Property: "kind"},
			Right: &ast.StringLiteral{Value: "A"},
		},
	}

	_, facts := EvaluateWithFacts(a, expr)

	objName := names.Of("obj")
	if f := facts.True.Facts[objName]; f&Truthy == 0 {
		t.Fatalf("true-side facts do not record obj as truthy: %v", f)
	}
	kindName := objName.Child("kind")
	want := typesystem.Literal{LKind: typesystem.LiteralString, Value: `"A"`}
	if got := facts.True.Vars[kindName]; !typesystem.Equal(got, want) {
		t.Fatalf("true-side facts do not narrow obj.kind: got %v, want %v", got, want)
	}
}

// A switch that is not provably exhaustive (its last case ends in
// break, not return) must not leak the negation of every case test
// into the facts installed after the switch: `case "b": break;` falls
// through to the statement after the switch with k === "b" still
// true, so k must not come out narrowed to exclude "b" there.
func TestAnalyzeSwitchNonExhaustiveLeavesFactsUntouched(t *testing.T) {
	a := newTestAnalyzer()
	a.Scope.InsertVar("k", &symbols.VarInfo{
		DeclaredTy: typesystem.NewUnion(
			typesystem.Literal{LKind: typesystem.LiteralString, Value: `"a"`},
			typesystem.Literal{LKind: typesystem.LiteralString, Value: `"b"`},
		),
	})
	stmt := &ast.SwitchStatement{
		Discriminant: &ast.Identifier{Name: "k"},
		Cases: []ast.SwitchCase{
			{Test: &ast.StringLiteral{Value: "a"}, Cons: []ast.Statement{&ast.BreakStatement{}}},
			{Test: &ast.StringLiteral{Value: "b"}, Cons: []ast.Statement{&ast.BreakStatement{}}},
		},
	}
	AnalyzeSwitch(a, stmt, func(a *Analyzer, s ast.Statement) {})

	if a.InUnreachable {
		t.Fatalf("non-exhaustive switch (last case breaks) marked in_unreachable")
	}
	kName := names.Of("k")
	if _, excluded := a.CurFacts.True.Excludes[kName]; excluded {
		t.Fatalf("post-switch facts excluded a case value from k, but the switch can fall through with k === \"b\"")
	}
}

// checkForLhsLegality must reject only an optional-chain lhs
// (`obj?.prop`), not a plain member expression (`obj.prop`), for both
// for-in and for-of.
func TestCheckForLhsLegalityMemberExpr(t *testing.T) {
	plain := &ast.ExprPattern{Expr: &ast.MemberExpr{Object: &ast.Identifier{Name: "obj"}, Property: "prop"}}
	optional := &ast.ExprPattern{Expr: &ast.MemberExpr{Object: &ast.Identifier{Name: "obj"}, Property: "prop", Optional: true}}

	for _, isForIn := range []bool{true, false} {
		a := newTestAnalyzer()
		checkForLhsLegality(a, plain, isForIn)
		fe := a.External.(*fakeExternal)
		if len(fe.reported) != 0 {
			t.Fatalf("plain member expr lhs (isForIn=%v) reported %d errors, want 0: %v", isForIn, len(fe.reported), fe.reported)
		}

		a = newTestAnalyzer()
		checkForLhsLegality(a, optional, isForIn)
		fe = a.External.(*fakeExternal)
		if len(fe.reported) != 1 {
			t.Fatalf("optional-chain member expr lhs (isForIn=%v) reported %d errors, want 1", isForIn, len(fe.reported))
		}
	}
}
