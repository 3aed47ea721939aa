package flow

import "github.com/narrowhq/narrow/internal/typesystem"

// narrowTypesWithProperty implements spec.md §4.7's
// narrow_types_with_property(src, property, fact?). Its only caller is
// evaluateIn, for `'prop' in obj`, with fact = nil (presence only, no
// truthiness claim on the property's value). A member used directly as
// a condition (`if (obj.prop)`, evaluateMember) does not go through
// this function, so it does not narrow obj's own type.
func narrowTypesWithProperty(a *Analyzer, src typesystem.Type, property string, fact *TypeFacts) typesystem.Type {
	normalized := a.External.Normalize(src)

	if u, isUnion := normalized.(typesystem.Union); isUnion {
		members := make([]typesystem.Type, 0, len(u.Types))
		for _, m := range u.Types {
			refined := narrowTypesWithProperty(a, m, property, fact)
			if refined.IsNever() {
				continue
			}
			members = append(members, refined)
		}
		switch len(members) {
		case 0:
			return typesystem.Never{}
		case 1:
			return members[0]
		default:
			return typesystem.NewUnion(members...)
		}
	}

	propTy, err := a.External.AccessProperty(normalized, property, AccessRead)
	if err != nil {
		// Property missing: that branch of src is ruled out.
		return typesystem.Never{}
	}

	if fact == nil {
		// Presence established only; src itself is unchanged.
		return src
	}

	refined := a.External.ApplyTypeFactsToType(*fact, propTy)
	if refined.IsNever() {
		return typesystem.Never{}
	}
	return src
}

// determineTypeFactByFieldFact implements spec.md §4.7's
// determine_type_fact_by_field_fact(name, ty): for a 2-deep name
// obj.field, if obj is a union, filter members whose field type
// equals ty, yielding a refined type for obj itself. ok is false when
// objTy is not a union or no member qualifies (callers should leave
// obj's narrowing alone in that case).
func determineTypeFactByFieldFact(a *Analyzer, objTy typesystem.Type, field string, ty typesystem.Type) (typesystem.Type, bool) {
	normalized := a.External.Normalize(objTy)
	u, isUnion := normalized.(typesystem.Union)
	if !isUnion {
		return nil, false
	}
	var matches []typesystem.Type
	for _, m := range u.Types {
		fieldTy, err := a.External.AccessProperty(m, field, AccessRead)
		if err != nil {
			continue
		}
		if typesystem.Equal(fieldTy, ty) {
			matches = append(matches, m)
		}
	}
	if len(matches) == 0 {
		return nil, false
	}
	return typesystem.NewUnion(matches...), true
}
