package flow

import (
	"github.com/narrowhq/narrow/internal/ast"
	"github.com/narrowhq/narrow/internal/diagnostics"
	"github.com/narrowhq/narrow/internal/typesystem"
)

// AssignOptions carries the per-call opts of spec.md §4.6's
// try_assign_pat(pat, ty, opts).
type AssignOptions struct {
	// IgnoreLhsErrors suppresses UndefinedSymbol on an unresolved
	// identifier target (used when the caller already reported a more
	// specific error upstream).
	IgnoreLhsErrors bool
	// InLoop marks the assignment as occurring inside a loop body, so
	// the target VarInfo's ActualTypeModifiedInLoop flag is set.
	InLoop bool
	// AllowIterableOnRhs is set on the options of a rest-element
	// recursion (spec.md §4.6 Array case). Nothing in this package reads
	// it, and the options are not passed on to External.
	AllowIterableOnRhs bool
}

// TryAssignPat implements spec.md §4.6: install ty into every binding
// named in pat, mutating scope VarInfo in place or shadowing a parent
// binding with a copy, exactly as each pattern shape below describes.
func TryAssignPat(a *Analyzer, pat ast.Pattern, ty typesystem.Type, opts AssignOptions) {
	switch p := pat.(type) {
	case *ast.InvalidPattern:
		// success no-op
	case *ast.DefaultPattern:
		assignDefaultPattern(a, p, ty, opts)
	case *ast.IdentifierPattern:
		assignIdentifierPattern(a, p, ty, opts)
	case *ast.ArrayPattern:
		assignArrayPattern(a, p, ty, opts)
	case *ast.ObjectPattern:
		assignObjectPattern(a, p, ty, opts)
	case *ast.RestPattern:
		assignRestPattern(a, p, ty, opts)
	case *ast.ExprPattern:
		assignExprPattern(a, p, ty, opts)
	}
}

// assignDefaultPattern evaluates the default expression once, then
// recurses into Lhs twice — once with ty, once with the default's own
// type. Neither recursion's errors block the other: TryAssignPat never
// returns an error to propagate, it only reports, so running both
// unconditionally already gives the report-and-continue behavior
// spec.md §4.6 calls for.
func assignDefaultPattern(a *Analyzer, p *ast.DefaultPattern, ty typesystem.Type, opts AssignOptions) {
	defaultTy := Evaluate(a, p.Default)
	TryAssignPat(a, p.Lhs, ty, opts)
	TryAssignPat(a, p.Lhs, defaultTy, opts)
}

func assignIdentifierPattern(a *Analyzer, p *ast.IdentifierPattern, ty typesystem.Type, opts AssignOptions) {
	v, owner, found := a.Scope.Resolve(p.Name)

	if !found {
		if opts.IgnoreLhsErrors {
			return
		}
		if a.Scope.Declaring(p.Name) && a.Ctx.AllowRefDeclaring {
			return
		}
		a.report(diagnostics.NewError(diagnostics.UndefinedSymbol, p.GetToken(), "undefined symbol: "+p.Name))
		return
	}

	tyPrime := ty
	if v.DeclaredTy != nil && !typesystem.IsAny(v.DeclaredTy) && !isNullOrUndefinedKeyword(ty) {
		tyPrime = a.External.ApplyTypeFactsToType(NEUndefined|NENull, ty)
		if tyPrime.IsNever() {
			return
		}
	}

	narrowed := a.External.NarrowedTypeOfAssignment(v.DeclaredTy, tyPrime)

	if owner == a.Scope {
		v.ActualTy = narrowed
		v.ActualTypeModifiedInLoop = v.ActualTypeModifiedInLoop || opts.InLoop
		return
	}

	cp := v.Clone()
	cp.Copied = true
	cp.ActualTy = narrowed
	a.Scope.InsertVar(p.Name, cp)
}

func isNullOrUndefinedKeyword(t typesystem.Type) bool {
	k, ok := t.(typesystem.Keyword)
	return ok && (k.Name == "null" || k.Name == "undefined")
}

func assignArrayPattern(a *Analyzer, p *ast.ArrayPattern, ty typesystem.Type, opts AssignOptions) {
	iterTy, err := a.External.GetIterator(ty)
	if err != nil {
		a.report(err)
		return
	}
	for i, elem := range p.Elements {
		if elem == nil {
			continue // hole, e.g. `[, b] = xs`
		}
		elemTy, err := a.External.GetElementFromIterator(iterTy, i)
		if err != nil {
			a.report(err)
			continue
		}
		TryAssignPat(a, elem, elemTy, opts)
	}
	if p.Rest != nil {
		restTy, err := a.External.GetRestElements(iterTy, len(p.Elements))
		if err != nil {
			a.report(err)
			return
		}
		restOpts := opts
		restOpts.AllowIterableOnRhs = true
		// recurse directly into the rest target (not through the
		// generic Rest dispatch case): GetRestElements already returns
		// the full rest-collection type, so wrapping it in another
		// Array (as the generic Rest case does) would double-nest it.
		TryAssignPat(a, p.Rest.Arg, restTy, restOpts)
	}
}

func assignObjectPattern(a *Analyzer, p *ast.ObjectPattern, ty typesystem.Type, opts AssignOptions) {
	for _, prop := range p.Props {
		propTy, err := a.External.AccessProperty(ty, prop.Key, AccessRead)
		if err != nil {
			a.report(err)
			continue
		}
		target := prop.Value
		if target == nil {
			// shorthand `{key}` (or `{key = default}`): the binding
			// target is an identifier named after the key itself.
			target = &ast.IdentifierPattern{Name: prop.Key}
		}
		if prop.Default != nil {
			TryAssignPat(a, &ast.DefaultPattern{Lhs: target, Default: prop.Default}, propTy, opts)
		} else {
			TryAssignPat(a, target, propTy, opts)
		}
	}

	if p.Rest == nil {
		return
	}
	idPat, isIdent := p.Rest.Arg.(*ast.IdentifierPattern)
	if !isIdent {
		a.report(diagnostics.NewError(diagnostics.BindingPatNotAllowedInRestPatArg, p.Rest.GetToken(),
			"rest pattern argument must be an identifier"))
		if exprPat, isExpr := p.Rest.Arg.(*ast.ExprPattern); isExpr {
			if m, isMember := exprPat.Expr.(*ast.MemberExpr); isMember && m.Optional {
				a.report(diagnostics.NewError(diagnostics.InvalidRestPatternInOptionalChain, p.Rest.GetToken(),
					"rest pattern argument may not be an optional chain"))
			}
		}
		return
	}
	TryAssignPat(a, idPat, ty, opts)
}

// assignRestPattern is the generic Rest case: wrap ty in Array<ty> and
// recurse into the rest target. Only reached from call sites other
// than the Array pattern's own rest handling (which recurses past this
// dispatch directly — see assignArrayPattern).
func assignRestPattern(a *Analyzer, p *ast.RestPattern, ty typesystem.Type, opts AssignOptions) {
	TryAssignPat(a, p.Arg, typesystem.NewArray(ty), opts)
}

// assignExprPattern implements spec.md §4.6's "Expression lhs" case:
// `obj.x = rhs` / `a[i] = rhs`. A literal lhs is always an error.
func assignExprPattern(a *Analyzer, p *ast.ExprPattern, ty typesystem.Type, opts AssignOptions) {
	switch p.Expr.(type) {
	case *ast.StringLiteral, *ast.NumberLiteral, *ast.BoolLiteral, *ast.NullLiteral, *ast.UndefinedLiteral:
		a.report(diagnostics.NewError(diagnostics.InvalidLhsOfAssign, p.GetToken(), "literal is not a valid assignment target"))
		return
	}
	lhsTy := Evaluate(a, p.Expr)
	if err := a.External.Assign(lhsTy, ty); err != nil {
		a.report(err)
	}
}
