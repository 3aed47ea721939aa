package flow

import (
	"github.com/narrowhq/narrow/internal/ast"
	"github.com/narrowhq/narrow/internal/symbols"
	"github.com/narrowhq/narrow/internal/typesystem"
)

// AccessMode distinguishes read vs. write property/variable access,
// threaded through to External so it can apply the right checks.
type AccessMode int

const (
	AccessRead AccessMode = iota
	AccessWrite
)

// External is the collaborator boundary of spec.md §6: everything the
// core needs that it does not itself implement — assignability,
// subtyping, normalization, property access, variable resolution, the
// iterable protocol, and the error sink. No operation here may block
// or perform I/O (spec.md §5); a real checker backs this with its own
// synchronous in-process logic.
type External interface {
	// ValidateWithDefault evaluates expr outside of a special
	// fact-recording context, returning its type and whatever facts it
	// incidentally produced.
	ValidateWithDefault(expr ast.Expression) (typesystem.Type, *Facts)

	Assign(l, r typesystem.Type) error
	AssignWithOp(op ast.AssignOp, l, r typesystem.Type) (typesystem.Type, error)

	// Extends reports whether a is a subtype of b. nil means unknown
	// (spec.md §6: "None = unknown").
	Extends(a, b typesystem.Type) *bool

	Normalize(ty typesystem.Type) typesystem.Type

	AccessProperty(ty typesystem.Type, key string, mode AccessMode) (typesystem.Type, error)
	TypeOfVar(name string, mode AccessMode) (typesystem.Type, error)

	GetIterator(ty typesystem.Type) (typesystem.Type, error)
	GetElementFromIterator(iterTy typesystem.Type, index int) (typesystem.Type, error)
	GetRestElements(iterTy typesystem.Type, from int) (typesystem.Type, error)
	GetIteratorElementType(ty typesystem.Type) (typesystem.Type, error)
	GetAsyncIteratorElementType(ty typesystem.Type) (typesystem.Type, error)

	ApplyTypeFactsToType(facts TypeFacts, ty typesystem.Type) typesystem.Type
	NarrowedTypeOfAssignment(declared, rhs typesystem.Type) typesystem.Type

	FindType(name string) (typesystem.Type, bool)

	// PreventConvertingToChildren reports the per-Type metadata flag
	// spec.md §4.10/§9 Open Question 3 leaves to an external pass to
	// construct; this package only reads it.
	PreventConvertingToChildren(ty typesystem.Type) bool

	Report(err error)
}

// Ctx is the context-flag frame of spec.md §6 ("Context flags").
// Threaded by value, matching the teacher's Ctx-threading idiom
// (inference_control.go's `self.ctx`, `self.with_ctx(ctx)`).
type Ctx struct {
	InCond                         bool
	ShouldStoreTruthyForAccess     bool
	InSwitchCaseTest               bool
	CheckingSwitchDiscriminantAsBin bool
	InUnreachable                  bool
	AllowRefDeclaring              bool
	CannotBeTuple                  bool
	IgnoreErrors                   bool
}

// Analyzer is the mutable driver spec.md §2 describes: "the core
// manipulates a mutable current-facts field on the analyzer and nests
// sub-analyses via scoped child contexts." CurFacts and Scope are the
// two pieces of shared mutable state (spec.md §5); everything else the
// core needs is reached through External.
type Analyzer struct {
	External External
	Scope    *symbols.Scope
	CurFacts *Facts
	Ctx      Ctx
	// InUnreachable is written by branch analyzers (spec.md §4.3/§4.4)
	// to flag that the current program point cannot be reached; it is
	// deliberately a field on Analyzer (not just Ctx) because it must
	// survive back out to the caller after a child analysis returns,
	// the same way the Rust source's `self.ctx.in_unreachable` does by
	// being part of the long-lived `self`, not a borrowed child frame.
	InUnreachable bool
}

// New creates an Analyzer ready to run at the top of a function body.
func New(external External, scope *symbols.Scope) *Analyzer {
	return &Analyzer{External: external, Scope: scope, CurFacts: NewFacts()}
}

// WithCtx returns a shallow copy of a with patch applied to its Ctx —
// spec.md §6's `with_ctx(ctx)`, "push a context frame". The caller is
// expected to use the returned Analyzer for one nested call and
// discard it. Scope and CurFacts are pointers shared with a; Ctx and
// InUnreachable are copied, so writes to them on the returned Analyzer
// do not reach a.
func (a *Analyzer) WithCtx(patch func(*Ctx)) *Analyzer {
	cp := *a
	patch(&cp.Ctx)
	return &cp
}

// WithChild runs f against a new Analyzer whose Scope is a.Scope's
// child of the given kind and whose CurFacts starts at {True: seed,
// False: empty} — spec.md §6's `with_child(kind, seed_facts, f)`.
// Mutations f makes to the child's CurFacts/Scope do not automatically
// propagate back to a; callers fold back what they need exactly as
// spec.md §4.3-§4.8 describe (take/clone/compose by hand).
func (a *Analyzer) WithChild(kind symbols.Kind, seed *CondFacts) *Analyzer {
	child := *a
	child.Scope = a.Scope.WithChild(kind)
	if seed == nil {
		seed = NewCondFacts()
	}
	child.CurFacts = &Facts{True: seed.Clone(), False: NewCondFacts()}
	child.InUnreachable = false
	return &child
}

// WithLoopBodyChild is WithChild specialized to a LoopBody scope,
// tagged with whether this is the fixed point's final (errors-enabled)
// pass (spec.md §4.8).
func (a *Analyzer) WithLoopBodyChild(seed *CondFacts, last bool) *Analyzer {
	child := a.WithChild(symbols.KindLoopBody, seed)
	child.Scope = a.Scope.WithLoopBodyChild(last)
	child.Ctx.IgnoreErrors = !last
	return child
}

// report routes err to External.Report unless the current context has
// errors suppressed (spec.md §6 `ignore_errors`, used on non-final
// loop iterations).
func (a *Analyzer) report(err error) {
	if err == nil || a.Ctx.IgnoreErrors {
		return
	}
	a.External.Report(err)
}
