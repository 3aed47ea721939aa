package flow

import (
	"github.com/narrowhq/narrow/internal/ast"
	"github.com/narrowhq/narrow/internal/typesystem"
)

// EvaluateAssignment implements spec.md §4.6's assignment-expression
// handling: a plain `=` destructuring assignment runs through
// TryAssignPat; a compound operator (`+=`, `-=`, `*=`, `/=`, `??=`)
// evaluates its lhs as an lvalue and runs AssignWithOp. `??=` on a bare
// identifier additionally narrows the identifier's ActualTy by
// NEUndefinedOrNull before the compound-assign result is computed.
func EvaluateAssignment(a *Analyzer, e *ast.AssignmentExpression) typesystem.Type {
	rhsTy := Evaluate(a, e.Right)

	if e.PatternLhs != nil {
		TryAssignPat(a, e.PatternLhs, rhsTy, AssignOptions{})
		return rhsTy
	}

	lhsTy := Evaluate(a, e.ExprLhs)

	if e.Op == ast.AssignNullish {
		if id, ok := e.ExprLhs.(*ast.Identifier); ok {
			narrowIdentifierByFacts(a, id.Name, NEUndefinedOrNull, lhsTy)
		}
	}

	result, err := a.External.AssignWithOp(e.Op, lhsTy, rhsTy)
	if err != nil {
		a.report(err)
		return typesystem.Any{}
	}
	return result
}

// narrowIdentifierByFacts applies facts to prior and installs the
// result as name's ActualTy, shadowing into the current scope if name
// lives in a parent one — the same in-scope-vs-parent split
// assignIdentifierPattern uses.
func narrowIdentifierByFacts(a *Analyzer, name string, facts TypeFacts, prior typesystem.Type) {
	v, owner, found := a.Scope.Resolve(name)
	if !found {
		return
	}
	refined := a.External.ApplyTypeFactsToType(facts, prior)
	if owner == a.Scope {
		v.ActualTy = refined
		return
	}
	cp := v.Clone()
	cp.Copied = true
	cp.ActualTy = refined
	a.Scope.InsertVar(name, cp)
}
