package flow

import (
	"github.com/narrowhq/narrow/internal/ast"
	"github.com/narrowhq/narrow/internal/symbols"
)

// AnalyzeSwitch implements spec.md §4.4's five-step procedure. Cases
// are visited in source order; each case's test (when present) is
// checked as a synthesized `discriminant === case.test` comparison so
// the ordinary strict-equality fact machinery (evaluateStrictEq)
// produces the per-case true/false facts without a separate code path.
//
// ends_with_ret keeps whichever case was last processed when the loop
// exits (spec.md §9 Open Question 1: no "improvement" attempted over
// the source's own ambiguous intent here) — it is reassigned every
// iteration and read only after the loop.
//
// The source's "if previous case already errored, stop" short-circuit
// has no equivalent in this package's External surface (which exposes
// no way to query whether a case test failed to type-check); every
// case is processed here.
//
// baseTrueFacts is a pure local accumulator until the very end: it is
// only installed into a.CurFacts.True when the last-processed case
// ends with an unconditional terminator. Otherwise a fall-through path
// can reach the statement after the switch with the discriminant still
// equal to a case that never returned, so the negations accumulated in
// baseTrueFacts must not leak into the surrounding facts. In that case
// the true-facts drained into baseTrueFacts at entry are not
// reinstated either: a.CurFacts.True is left empty.
func AnalyzeSwitch(a *Analyzer, stmt *ast.SwitchStatement, visit VisitFn) {
	Evaluate(a, stmt.Discriminant)

	baseTrueFacts := a.CurFacts.True.Take()
	falseFacts := NewCondFacts()
	endsWithRet := false

	last := len(stmt.Cases) - 1
	for i, c := range stmt.Cases {
		var trueFactsOfCase, falseFactsOfCase *CondFacts
		if c.Test != nil {
			virtual := &ast.BinaryExpr{Op: ast.OpStrictEq, Left: stmt.Discriminant, Right: c.Test}
			caseAnalyzer := a.WithCtx(func(ctx *Ctx) { ctx.InSwitchCaseTest = true })
			_, cf := EvaluateWithFacts(caseAnalyzer, virtual)
			trueFactsOfCase = cf.True
			falseFactsOfCase = cf.False
		} else {
			trueFactsOfCase = NewCondFacts()
			falseFactsOfCase = NewCondFacts()
		}

		factsForBody := baseTrueFacts.Clone()
		factsForBody.Compose(trueFactsOfCase)

		bodyChild := a.WithChild(symbols.KindBlock, factsForBody)
		for _, s := range c.Cons {
			visit(bodyChild, s)
		}

		endsWithRet = isUnconditionalTerminator(c.Cons)

		if endsWithRet || i == last {
			falseFacts.Compose(falseFactsOfCase.Clone())
			baseTrueFacts.Compose(falseFactsOfCase)
		}
	}

	if isSwitchCaseBodyUnconditionalTermination(stmt.Cases) {
		a.InUnreachable = true
	}

	if endsWithRet {
		baseTrueFacts.Compose(falseFacts)
		a.CurFacts.True = baseTrueFacts
	}
}
