package flow

import (
	"github.com/narrowhq/narrow/internal/names"
	"github.com/narrowhq/narrow/internal/typesystem"
)

// CondFacts is the one-sided fact store of spec.md §3: predicates
// asserted about names, direct narrowed bindings, excluded candidate
// types, and locally introduced type aliases.
type CondFacts struct {
	Facts    map[names.Name]TypeFacts
	Vars     map[names.Name]typesystem.Type
	Excludes map[names.Name][]typesystem.Type
	Types    map[string]typesystem.Type
}

// NewCondFacts returns an empty (identity-element) CondFacts.
func NewCondFacts() *CondFacts {
	return &CondFacts{
		Facts:    map[names.Name]TypeFacts{},
		Vars:     map[names.Name]typesystem.Type{},
		Excludes: map[names.Name][]typesystem.Type{},
		Types:    map[string]typesystem.Type{},
	}
}

// IsEmpty reports whether cf carries no information at all — the
// identity of both `+=` and `|` (spec.md Testable Property 2).
func (cf *CondFacts) IsEmpty() bool {
	return cf == nil || (len(cf.Facts) == 0 && len(cf.Vars) == 0 && len(cf.Excludes) == 0 && len(cf.Types) == 0)
}

// Clone returns a deep-enough copy: map structure is copied, and every
// stored Type goes through CheapClone (spec.md §3's cheap-clone
// invariant — an O(1) operation for every variant in internal/typesystem,
// so this clone is itself cheap, matching the "snapshots... are cheap"
// guarantee of spec.md §5).
func (cf *CondFacts) Clone() *CondFacts {
	out := NewCondFacts()
	for k, v := range cf.Facts {
		out.Facts[k] = v
	}
	for k, v := range cf.Vars {
		out.Vars[k] = v.CheapClone()
	}
	for k, vs := range cf.Excludes {
		cp := make([]typesystem.Type, len(vs))
		for i, v := range vs {
			cp[i] = v.CheapClone()
		}
		out.Excludes[k] = cp
	}
	for k, v := range cf.Types {
		out.Types[k] = v.CheapClone()
	}
	return out
}

// Take drains cf into a fresh CondFacts, resetting cf to empty, and
// returns the drained contents — the `cur_facts.take()` operation used
// throughout the branch analyzers (spec.md §4.3 step 1, §4.4 step 2,
// §4.8 step 1).
func (cf *CondFacts) Take() *CondFacts {
	drained := &CondFacts{Facts: cf.Facts, Vars: cf.Vars, Excludes: cf.Excludes, Types: cf.Types}
	cf.Facts = map[names.Name]TypeFacts{}
	cf.Vars = map[names.Name]typesystem.Type{}
	cf.Excludes = map[names.Name][]typesystem.Type{}
	cf.Types = map[string]typesystem.Type{}
	return drained
}

// Compose implements spec.md §4.1's sequential `+=`: cf becomes
// "execute cf, then rhs". It does not alias rhs's storage after
// return (every Vars entry taken from rhs is independently owned,
// since Type values are cheap-clone).
func (cf *CondFacts) Compose(rhs *CondFacts) {
	if rhs == nil {
		return
	}
	for k, v := range rhs.Facts {
		cf.Facts[k] = cf.Facts[k].Or(v)
	}
	for k, v := range rhs.Types {
		cf.Types[k] = v // latest writer wins
	}
	for k, v := range rhs.Vars {
		prev, had := cf.Vars[k]
		switch {
		case !had:
			cf.Vars[k] = v
		case prev.Kind() == typesystem.KindUnion:
			u := prev.(typesystem.Union)
			cf.Vars[k] = typesystem.NewUnion(append(append([]typesystem.Type{}, u.Types...), v)...)
		default:
			cf.Vars[k] = typesystem.NewUnion(prev, v)
		}
	}
	for k, vs := range rhs.Excludes {
		cf.Excludes[k] = append(cf.Excludes[k], vs...)
	}
}

// Join implements spec.md §4.1's parallel join `|`: "either branch may
// have executed". Per-key values merge via the closed-set Merge rule
// (TypeFacts: or; Type: union after reset-to-never; Vec: concat;
// Option: recursive-merge-or-take-Some).
func Join(a, b *CondFacts) *CondFacts {
	out := NewCondFacts()
	for k, v := range a.Facts {
		out.Facts[k] = out.Facts[k].Or(v)
	}
	for k, v := range b.Facts {
		out.Facts[k] = out.Facts[k].Or(v)
	}

	keys := map[names.Name]bool{}
	for k := range a.Vars {
		keys[k] = true
	}
	for k := range b.Vars {
		keys[k] = true
	}
	for k := range keys {
		av, aok := a.Vars[k]
		bv, bok := b.Vars[k]
		switch {
		case aok && bok:
			out.Vars[k] = typesystem.NewUnion(av, bv)
		case aok:
			out.Vars[k] = av
		case bok:
			out.Vars[k] = bv
		}
	}

	exKeys := map[names.Name]bool{}
	for k := range a.Excludes {
		exKeys[k] = true
	}
	for k := range b.Excludes {
		exKeys[k] = true
	}
	for k := range exKeys {
		out.Excludes[k] = append(append([]typesystem.Type{}, a.Excludes[k]...), b.Excludes[k]...)
	}

	for k, v := range a.Types {
		out.Types[k] = v
	}
	for k, v := range b.Types {
		if _, had := out.Types[k]; !had {
			out.Types[k] = v
		}
	}
	return out
}

// OverrideVarsUsing transfers r.Vars into cf.Vars with unconditional
// replacement (spec.md §4.1): used when a nested body has already
// computed a refined actual type to install, not to merge with.
func (cf *CondFacts) OverrideVarsUsing(r *CondFacts) {
	for k, v := range r.Vars {
		cf.Vars[k] = v
	}
}

// Equal reports structural equality, the termination oracle of
// spec.md §4.8's loop fixed point (step 3e: "facts_from_body ==
// facts_of_prev_body").
func (cf *CondFacts) Equal(other *CondFacts) bool {
	if cf == nil || other == nil {
		return cf.IsEmpty() && other.IsEmpty()
	}
	if len(cf.Facts) != len(other.Facts) || len(cf.Vars) != len(other.Vars) ||
		len(cf.Excludes) != len(other.Excludes) || len(cf.Types) != len(other.Types) {
		return false
	}
	for k, v := range cf.Facts {
		if other.Facts[k] != v {
			return false
		}
	}
	for k, v := range cf.Vars {
		ov, ok := other.Vars[k]
		if !ok || !typesystem.Equal(v, ov) {
			return false
		}
	}
	for k, vs := range cf.Excludes {
		ovs, ok := other.Excludes[k]
		if !ok || len(vs) != len(ovs) {
			return false
		}
		for i := range vs {
			if !typesystem.Equal(vs[i], ovs[i]) {
				return false
			}
		}
	}
	for k, v := range cf.Types {
		ov, ok := other.Types[k]
		if !ok || !typesystem.Equal(v, ov) {
			return false
		}
	}
	return true
}

// ClearExcludes empties Excludes in place (spec.md §4.8 step 3c: "a
// loop iteration must not accumulate excludes indefinitely").
func (cf *CondFacts) ClearExcludes() {
	cf.Excludes = map[names.Name][]typesystem.Type{}
}
