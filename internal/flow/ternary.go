package flow

import (
	"github.com/narrowhq/narrow/internal/ast"
	"github.com/narrowhq/narrow/internal/symbols"
	"github.com/narrowhq/narrow/internal/typesystem"
)

// evaluateTernary implements spec.md §4.5: evaluate the test under
// truthy-recording, then evaluate cons/alt each in their own child
// scope seeded with the corresponding side's facts, and combine the
// two branch types via adjustTernaryType when they are not already
// type-equal.
func evaluateTernary(a *Analyzer, e *ast.CondExpr) typesystem.Type {
	_, testFacts := EvaluateWithFacts(a, e.Test)

	consChild := a.WithChild(symbols.KindBlock, testFacts.True)
	consTy := Evaluate(consChild, e.Cons)

	altChild := a.WithChild(symbols.KindBlock, testFacts.False)
	altTy := Evaluate(altChild, e.Alt)

	if consTy == nil {
		consTy = typesystem.Any{}
	}
	if altTy == nil {
		altTy = typesystem.Any{}
	}

	if typesystem.Equal(consTy, altTy) {
		return consTy
	}

	consTy, altTy = adjustTernaryType(a, consTy, altTy)
	return typesystem.NewUnion(consTy, altTy)
}
