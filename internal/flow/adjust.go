package flow

import "github.com/narrowhq/narrow/internal/typesystem"

// adjustTernaryType implements spec.md §4.10: lift any Tuple operand to
// an Array first (so a tuple and an array of the same element type
// compare as the same shape), then either drop the narrower of the two
// branch types (removeChildTypes, the default — keep the widest common
// type) or drop the wider one (downcastTypes — keep the narrowest),
// depending on whether every candidate type carries
// PreventConvertingToChildren (spec.md §9 Open Question 3).
func adjustTernaryType(a *Analyzer, cons, alt typesystem.Type) (typesystem.Type, typesystem.Type) {
	cons = liftTupleToArray(cons)
	alt = liftTupleToArray(alt)

	if preferDowncast(a, cons, alt) {
		return downcastTypes(a, cons, alt)
	}
	return removeChildTypes(a, cons, alt)
}

func liftTupleToArray(t typesystem.Type) typesystem.Type {
	tup, ok := t.(typesystem.Tuple)
	if !ok {
		return t
	}
	return typesystem.NewArray(typesystem.NewUnion(tup.Elems...))
}

// preferDowncast reports whether every member of both candidate types
// carries PreventConvertingToChildren, in which case downcastTypes
// (keep narrowest) runs instead of the default removeChildTypes (keep
// widest).
func preferDowncast(a *Analyzer, cons, alt typesystem.Type) bool {
	candidates := make([]typesystem.Type, 0, 4)
	candidates = append(candidates, typesystem.Members(cons)...)
	candidates = append(candidates, typesystem.Members(alt)...)
	for _, t := range candidates {
		if !a.External.PreventConvertingToChildren(t) {
			return false
		}
	}
	return true
}

// removeChildTypes keeps the widest of cons/alt: if one extends the
// other, the narrower (child) side is dropped in favor of the wider
// one. extends() == nil (unknown) is treated as "do not drop" (spec.md
// §9 Open Question 2) — an uncertain subtype relationship never
// collapses the pair.
func removeChildTypes(a *Analyzer, cons, alt typesystem.Type) (typesystem.Type, typesystem.Type) {
	if extends(a, cons, alt) {
		return alt, alt
	}
	if extends(a, alt, cons) {
		return cons, cons
	}
	return cons, alt
}

// downcastTypes keeps the narrowest of cons/alt, with the same
// extends()==nil "do not drop" treatment as removeChildTypes. Literal
// and null operands are never dropped: they are exact singleton facts,
// not shapes a wider sibling can stand in for.
func downcastTypes(a *Analyzer, cons, alt typesystem.Type) (typesystem.Type, typesystem.Type) {
	if typesystem.IsLiteralOrNull(cons) || typesystem.IsLiteralOrNull(alt) {
		return cons, alt
	}
	if extends(a, cons, alt) {
		return cons, cons
	}
	if extends(a, alt, cons) {
		return alt, alt
	}
	return cons, alt
}

// extends reports whether sub is a subtype of sup, treating unknown
// (nil) as false.
func extends(a *Analyzer, sub, sup typesystem.Type) bool {
	r := a.External.Extends(sub, sup)
	return r != nil && *r
}
