// Package typesystem implements the Type model of spec.md §3: an
// opaque sum-of-variants tree (keyword, literal, union, intersection,
// tuple, array, class, class-def, interface, type-lit, ref, query,
// mapped, operator, param, enum, enum-variant, never, any) that the
// narrowing core treats as immutable and cheaply clonable once frozen.
//
// This package keeps the interface-plus-one-struct-per-variant idiom
// of the teacher's own type package, but the variant set itself models
// structural narrowing rather than Hindley-Milner unification: there
// is no TVar/TApp/Subst here, because this module never unifies or
// generalizes a type, it only narrows one.
package typesystem

// Kind discriminates the Type variants named in spec.md §3.
type Kind int

const (
	KindKeyword Kind = iota
	KindLiteral
	KindUnion
	KindIntersection
	KindTuple
	KindArray
	KindClass
	KindClassDef
	KindInterface
	KindTypeLit
	KindRef
	KindQuery
	KindMapped
	KindOperator
	KindParam
	KindEnum
	KindEnumVariant
	KindNever
	KindAny
)

func (k Kind) String() string {
	switch k {
	case KindKeyword:
		return "keyword"
	case KindLiteral:
		return "literal"
	case KindUnion:
		return "union"
	case KindIntersection:
		return "intersection"
	case KindTuple:
		return "tuple"
	case KindArray:
		return "array"
	case KindClass:
		return "class"
	case KindClassDef:
		return "class-def"
	case KindInterface:
		return "interface"
	case KindTypeLit:
		return "type-lit"
	case KindRef:
		return "ref"
	case KindQuery:
		return "query"
	case KindMapped:
		return "mapped"
	case KindOperator:
		return "operator"
	case KindParam:
		return "param"
	case KindEnum:
		return "enum"
	case KindEnumVariant:
		return "enum-variant"
	case KindNever:
		return "never"
	case KindAny:
		return "any"
	default:
		return "unknown"
	}
}

// Metadata carries the per-Type flags external passes attach. Its one
// field, PreventConvertingToChildren, is carried on every variant but
// is not read anywhere in this module: SPEC_FULL.md's §9 Open Question
// 3 leaves the construction of that flag to an external pass, and the
// ternary type adjuster asks External.PreventConvertingToChildren
// instead of reading this struct.
type Metadata struct {
	// PreventConvertingToChildren mirrors the flag that
	// External.PreventConvertingToChildren reports to adjustTernaryType
	// (spec.md §4.10 and §9 Open Question 3); adjustTernaryType does not
	// read this field.
	PreventConvertingToChildren bool
}

// Type is the narrowing core's view of a type node: immutable and
// cheaply clonable once Freeze has been called (spec.md §3's
// cheap-clone invariant), mutable before that.
type Type interface {
	// String renders the type for diagnostics and test fixtures.
	String() string
	// Kind reports which variant this is.
	Kind() Kind
	// IsNever reports whether this Type is exactly the Never variant.
	IsNever() bool
	// CheapClone returns a clone whose cost is O(1): composite
	// variants share their element slices rather than deep-copy them.
	// spec.md §3's invariant requires every Type inserted into
	// CondFacts or scope to satisfy this, directly or (for unions)
	// through cheap-clone recursive subterms.
	CheapClone() Type
	// Meta returns the type's metadata (possibly the zero value).
	Meta() Metadata
}

// IsNever reports whether t is the Never variant. Provided as a
// free function so callers that only have a possibly-nil Type need
// not special-case the receiver.
func IsNever(t Type) bool {
	return t != nil && t.IsNever()
}

// IsAny reports whether t is the Any variant.
func IsAny(t Type) bool {
	_, ok := t.(Any)
	return ok
}

// Never is the bottom type: the type of an expression that cannot
// produce a value (e.g. the declared actual type of a variable in an
// unreachable branch, spec.md §3's "vars[n] is never unless the branch
// is unreachable" invariant).
type Never struct{}

func (Never) String() string     { return "never" }
func (Never) Kind() Kind         { return KindNever }
func (Never) IsNever() bool      { return true }
func (n Never) CheapClone() Type { return n }
func (Never) Meta() Metadata     { return Metadata{} }

// Any is the top/unknown type used as the safe default when analysis
// cannot determine a more precise type (spec.md §4.5: ternary operands
// "default to any on error").
type Any struct{}

func (Any) String() string     { return "any" }
func (Any) Kind() Kind         { return KindAny }
func (Any) IsNever() bool      { return false }
func (a Any) CheapClone() Type { return a }
func (Any) Meta() Metadata     { return Metadata{} }

// Keyword is a primitive keyword type: string, number, boolean,
// null, undefined, object, symbol, bigint, void, unknown.
type Keyword struct {
	Name string
	Md   Metadata
}

func (k Keyword) String() string     { return k.Name }
func (Keyword) Kind() Kind           { return KindKeyword }
func (Keyword) IsNever() bool        { return false }
func (k Keyword) CheapClone() Type   { return k }
func (k Keyword) Meta() Metadata     { return k.Md }
func (k Keyword) WithMeta(m Metadata) Keyword {
	k.Md = m
	return k
}

// LiteralKind distinguishes the kinds of literal a Literal Type wraps.
type LiteralKind int

const (
	LiteralString LiteralKind = iota
	LiteralNumber
	LiteralBoolean
)

// Literal is a literal type, e.g. the type of the string literal "a"
// considered as its own singleton type ("a" in a === "a" comparisons).
type Literal struct {
	LKind LiteralKind
	Value string // canonical textual form, e.g. `"a"`, `1`, `true`
	Md    Metadata
}

func (l Literal) String() string   { return l.Value }
func (Literal) Kind() Kind         { return KindLiteral }
func (Literal) IsNever() bool      { return false }
func (l Literal) CheapClone() Type { return l }
func (l Literal) Meta() Metadata   { return l.Md }
