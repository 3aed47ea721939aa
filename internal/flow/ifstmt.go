package flow

import (
	"github.com/narrowhq/narrow/internal/ast"
	"github.com/narrowhq/narrow/internal/symbols"
)

// VisitFn visits a statement under a given Analyzer; it is supplied by
// the outer driver (spec.md §1's "external collaborator... invokes
// this core on each statement/expression"). The core never recurses
// into statement kinds other than the control-flow constructs it
// itself analyzes (if/switch/ternary/loops) — any other statement is
// handed back to VisitFn.
type VisitFn func(a *Analyzer, s ast.Statement)

// AnalyzeIf implements spec.md §4.3 exactly, including step ordering:
// the then-branch's ends_with_return_or_throw check happens before the
// cons/alt sub-analyses run, and the flow-sensitive merge at the end
// checks cons_ends_with_ret first regardless of what cons_unreachable
// turns out to be.
func AnalyzeIf(a *Analyzer, stmt *ast.IfStatement, visit VisitFn) {
	// Step 1: snapshot.
	prevFacts := a.CurFacts.Take()

	// Step 2: evaluate the test in a fresh child scope seeded with
	// true_facts, capturing the facts the test itself produces.
	testChild := a.WithChild(symbols.KindBlock, prevFacts.True)
	_, factsFromTest := EvaluateWithFacts(testChild, stmt.Test)

	// Step 3: syntactic check on the consequent, before visiting it.
	consEndsWithRet := endsWithReturnOrThrow(stmt.Cons)

	// Step 4: visit cons under true_facts.
	a.CurFacts = &Facts{True: prevFacts.Clone().True, False: NewCondFacts()}
	consChild := a.WithChild(symbols.KindBlock, factsFromTest.True)
	visit(consChild, stmt.Cons)
	consUnreachable := consChild.InUnreachable

	// Step 5: visit alt (if present) under false_facts.
	altUnreachable := false
	if stmt.Alt != nil {
		a.CurFacts = &Facts{True: prevFacts.Clone().True, False: NewCondFacts()}
		altChild := a.WithChild(symbols.KindBlock, factsFromTest.False)
		visit(altChild, stmt.Alt)
		altUnreachable = altChild.InUnreachable
	}

	// Step 6: restore.
	a.CurFacts = prevFacts

	// Step 7: flow-sensitive merge.
	switch {
	case consEndsWithRet:
		a.CurFacts.True.Compose(factsFromTest.False)
	case consUnreachable && altUnreachable:
		a.InUnreachable = true
	case consUnreachable && !altUnreachable:
		a.CurFacts.True.Compose(factsFromTest.False)
	default:
		// No fact installed; the after-if type is the union of both
		// branch outputs, handled by the enclosing scope merge.
	}
}
