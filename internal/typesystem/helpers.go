package typesystem

// Equal reports structural type-equality used throughout the core
// (spec.md §4.5 "if consequent and alternate are type-equal", and
// Testable Property 3's "up to type-equality of union members").
// String-form comparison is sufficient here because every variant's
// String is a canonical, side-effect-free rendering; the teacher's own
// typesystem package uses the analogous "compare via rendered form"
// shortcut in several of its structural-equality helpers.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.String() == b.String()
}

// Freeze marks t as immutable-and-cheap-clone from this point forward.
// Every Type in this package is already cheap-clone by construction
// (composite variants share slices, never deep-copy), so Freeze is a
// no-op identity placed here only to give callers translating
// spec.md's "after a freeze() call" language a concrete call site.
func Freeze(t Type) Type {
	return t
}

// IsLiteralOrNull reports whether t is a Literal or the null keyword,
// the two "don't work with downcast" exclusions of spec.md §4.10's
// downcastTypes.
func IsLiteralOrNull(t Type) bool {
	if _, ok := t.(Literal); ok {
		return true
	}
	if k, ok := t.(Keyword); ok {
		return k.Name == "null"
	}
	return false
}
