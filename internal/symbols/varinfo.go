// Package symbols implements the scope side of spec.md §3: VarInfo and
// the lexical Scope that stores it. The narrowing core (internal/flow)
// mutates VarInfo in place and snapshots/restores Scope around
// branches, exactly as spec.md §3's "Lifecycle" paragraph describes.
//
// This is a from-scratch rewrite of the teacher's symbol-table idiom
// (its ScopeType enum becomes Kind here; there is no prelude scope)
// adapted to spec.md's VarInfo fields; the teacher's typeclass/instance-dictionary
// machinery (InstanceDef, Constraint, trait methods) has no analog in
// structural narrowing and is not carried over.
package symbols

import "github.com/narrowhq/narrow/internal/typesystem"

// VarInfo is the scope-side per-variable record of spec.md §3.
// DeclaredTy is immutable after declaration; ActualTy is the
// narrowed-at-this-program-point type the core reads and writes.
type VarInfo struct {
	DeclaredTy typesystem.Type
	ActualTy   typesystem.Type
	// Copied is true for a VarInfo created in a child (block) scope
	// to shadow a parent-scope variable narrowed there (spec.md §4.6
	// Identifier pattern, step 4).
	Copied bool
	// Initialized is true once the variable has been assigned.
	Initialized bool
	// Declaring is true while the variable's own initializer is being
	// analyzed (supports allow_ref_declaring, spec.md §6).
	Declaring bool
	// ActualTypeModifiedInLoop is set once a loop body has narrowed
	// this variable's actual type (spec.md §4.6 Identifier pattern,
	// step 3).
	ActualTypeModifiedInLoop bool
}

// Clone returns a value copy of v. VarInfo's only reference-typed
// field is ActualTy/DeclaredTy, both typesystem.Type values that are
// cheap-clone by construction (typesystem.Type.CheapClone), so a plain
// struct copy is itself a cheap clone — matching spec.md §3's
// cheap-clone invariant one level up, at the VarInfo that holds them.
func (v *VarInfo) Clone() *VarInfo {
	cp := *v
	return &cp
}

// Merge implements the VarInfo case of spec.md §4.1's parallel-join
// `Merge` rule: boolean flags or-fold, actual_ty merges as an
// Option<Type> (join via typesystem.NewUnion when both sides have a
// narrowed actual type; otherwise take whichever side has one).
func Merge(a, b *VarInfo) *VarInfo {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	out := &VarInfo{
		DeclaredTy:               a.DeclaredTy,
		Copied:                   a.Copied || b.Copied,
		Initialized:              a.Initialized || b.Initialized,
		Declaring:                a.Declaring || b.Declaring,
		ActualTypeModifiedInLoop: a.ActualTypeModifiedInLoop || b.ActualTypeModifiedInLoop,
	}
	switch {
	case a.ActualTy == nil:
		out.ActualTy = b.ActualTy
	case b.ActualTy == nil:
		out.ActualTy = a.ActualTy
	default:
		out.ActualTy = typesystem.NewUnion(a.ActualTy, b.ActualTy)
	}
	return out
}
