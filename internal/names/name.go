// Package names implements Name, the dotted-path value object spec.md
// §3 uses as the key of every CondFacts map.
package names

import "strings"

// Name is a non-empty ordered tuple of identifiers: base.field1.field2…
// Equality is structural and order-significant (a.b != b.a). A Name of
// length 1 denotes a bare variable; length >= 2 denotes a projected
// property access.
//
// Name is comparable (usable as a map key directly) because it is
// backed by a single canonical string rather than a slice: Go slices
// cannot be map keys, and spec.md's "arena + interned index" advice
// (§9, Back-references) is served here by the cheap comparable string
// form instead.
// Name is backed by a single canonical separator-joined string so that
// the type stays comparable and directly usable as a map key — Go
// slices are neither, which is why segments are recovered by splitting
// key on demand rather than carried alongside it.
type Name struct {
	key string
}

const sep = "\x00"

// Of builds a Name from one or more path segments. Of panics if called
// with zero segments: spec.md §3 requires Name to be non-empty.
func Of(segments ...string) Name {
	if len(segments) == 0 {
		panic("names: Name must have at least one segment")
	}
	return Name{key: strings.Join(segments, sep)}
}

// Segments returns the ordered path segments.
func (n Name) Segments() []string {
	return strings.Split(n.key, sep)
}

// Base returns the first segment (the root variable).
func (n Name) Base() string {
	if i := strings.Index(n.key, sep); i >= 0 {
		return n.key[:i]
	}
	return n.key
}

// Len reports the number of segments; length 1 is a bare variable,
// length >= 2 is a projected access such as obj.field.
func (n Name) Len() int {
	return strings.Count(n.key, sep) + 1
}

// Child returns obj.field for an n = obj and field name.
func (n Name) Child(field string) Name {
	return Name{key: n.key + sep + field}
}

// Parent returns obj for an n = obj.field, and ok=false for a bare
// (length-1) Name.
func (n Name) Parent() (Name, bool) {
	i := strings.LastIndex(n.key, sep)
	if i < 0 {
		return Name{}, false
	}
	return Name{key: n.key[:i]}, true
}

// String renders the dotted form, e.g. "obj.field".
func (n Name) String() string {
	return strings.ReplaceAll(n.key, sep, ".")
}
