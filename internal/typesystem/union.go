package typesystem

import "sort"

// Union is a union of candidate types. Construction goes through
// NewUnion so the flatten/dedup/sort invariant the rest of the package
// relies on (mirroring the teacher's NormalizeUnion) always holds for a
// Union actually handed to a caller.
type Union struct {
	Types []Type
	Md    Metadata
}

func (u Union) String() string {
	s := "("
	for i, t := range u.Types {
		if i > 0 {
			s += " | "
		}
		s += t.String()
	}
	return s + ")"
}

func (Union) Kind() Kind    { return KindUnion }
func (Union) IsNever() bool { return false }

// CheapClone shares the element slice: a Union is cheap-clone exactly
// when its members are (spec.md §3's "union whose recursive subterms
// are cheap-clone" clause). Callers that mutate the returned Union's
// Types slice in place would violate that invariant; nothing in this
// module does.
func (u Union) CheapClone() Type { return u }
func (u Union) Meta() Metadata   { return u.Md }

// NewUnion builds a normalized Union from members, per the
// flatten-nested-unions / drop-never / dedup-by-String / sort rule the
// teacher's typesystem package applies to its own unions.
func NewUnion(members ...Type) Type {
	flat := flattenUnion(members)
	flat = dedupByString(flat)
	if len(flat) == 0 {
		return Never{}
	}
	if len(flat) == 1 {
		return flat[0]
	}
	if allArrays(flat) {
		return mergeArrayUnion(flat)
	}
	sort.Slice(flat, func(i, j int) bool { return flat[i].String() < flat[j].String() })
	return Union{Types: flat}
}

// allArrays reports whether every member of flat is an Array.
func allArrays(flat []Type) bool {
	for _, t := range flat {
		if _, ok := t.(Array); !ok {
			return false
		}
	}
	return true
}

// mergeArrayUnion collapses a union whose every member is an Array
// into a single Array of the union of their element types —
// Array<A> | Array<B> normalizes to Array<A | B>, matching how a real
// structural checker treats array shapes under union (distinct from
// ordinary nominal-looking types, which stay as separate union
// members).
func mergeArrayUnion(flat []Type) Type {
	elems := make([]Type, 0, len(flat))
	for _, t := range flat {
		elems = append(elems, t.(Array).Elem)
	}
	return NewArray(NewUnion(elems...))
}

func flattenUnion(members []Type) []Type {
	out := make([]Type, 0, len(members))
	for _, m := range members {
		if m == nil {
			continue
		}
		if u, ok := m.(Union); ok {
			out = append(out, flattenUnion(u.Types)...)
			continue
		}
		if m.IsNever() {
			continue
		}
		out = append(out, m)
	}
	return out
}

func dedupByString(members []Type) []Type {
	seen := make(map[string]bool, len(members))
	out := make([]Type, 0, len(members))
	for _, m := range members {
		s := m.String()
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, m)
	}
	return out
}

// Members returns u's members, or a single-element slice {t} for any
// non-Union t, so callers can treat both uniformly — the same
// "treat non-union as a 1-member union" convention the Rust source
// applies throughout control_flow.rs's property-narrowing code.
func Members(t Type) []Type {
	if u, ok := t.(Union); ok {
		return u.Types
	}
	return []Type{t}
}

// Intersection is an intersection of types (A & B).
type Intersection struct {
	Types []Type
	Md    Metadata
}

func (i Intersection) String() string {
	s := "("
	for idx, t := range i.Types {
		if idx > 0 {
			s += " & "
		}
		s += t.String()
	}
	return s + ")"
}
func (Intersection) Kind() Kind         { return KindIntersection }
func (Intersection) IsNever() bool      { return false }
func (i Intersection) CheapClone() Type { return i }
func (i Intersection) Meta() Metadata   { return i.Md }

// Tuple is a fixed-length positional type, e.g. [string, number].
type Tuple struct {
	Elems []Type
	Md    Metadata
}

func (t Tuple) String() string {
	s := "["
	for i, e := range t.Elems {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + "]"
}
func (Tuple) Kind() Kind         { return KindTuple }
func (Tuple) IsNever() bool      { return false }
func (t Tuple) CheapClone() Type { return t }
func (t Tuple) Meta() Metadata   { return t.Md }

// Array is Array<Elem>.
type Array struct {
	Elem Type
	Md   Metadata
}

func (a Array) String() string   { return "Array<" + a.Elem.String() + ">" }
func (Array) Kind() Kind         { return KindArray }
func (Array) IsNever() bool      { return false }
func (a Array) CheapClone() Type { return a }
func (a Array) Meta() Metadata   { return a.Md }

// NewArray builds Array<Elem>.
func NewArray(elem Type) Array { return Array{Elem: elem} }

// ClassDef is a class's static shape (constructor signature, static
// members) independent of any particular instantiation.
type ClassDef struct {
	Name string
	Md   Metadata
}

func (c ClassDef) String() string   { return "class " + c.Name }
func (ClassDef) Kind() Kind         { return KindClassDef }
func (ClassDef) IsNever() bool      { return false }
func (c ClassDef) CheapClone() Type { return c }
func (c ClassDef) Meta() Metadata   { return c.Md }

// Class is an instance type of a ClassDef.
type Class struct {
	Def ClassDef
	Md  Metadata
}

func (c Class) String() string   { return c.Def.Name }
func (Class) Kind() Kind         { return KindClass }
func (Class) IsNever() bool      { return false }
func (c Class) CheapClone() Type { return c }
func (c Class) Meta() Metadata   { return c.Md }

// TypeElement is one member of an Interface or TypeLit: a named,
// possibly-optional property.
type TypeElement struct {
	Name     string
	Ty       Type
	Optional bool
}

// Interface is a named structural interface with optional parents.
type Interface struct {
	Name    string
	Body    []TypeElement
	Extends []string
	Md      Metadata
}

func (i Interface) String() string { return "interface " + i.Name }
func (Interface) Kind() Kind       { return KindInterface }
func (Interface) IsNever() bool    { return false }
func (i Interface) CheapClone() Type {
	return i
}
func (i Interface) Meta() Metadata { return i.Md }

// TypeLit is an anonymous structural object type: { a: T; b?: U }.
type TypeLit struct {
	Members []TypeElement
	Md      Metadata
}

func (t TypeLit) String() string {
	s := "{"
	for i, m := range t.Members {
		if i > 0 {
			s += "; "
		}
		s += m.Name
		if m.Optional {
			s += "?"
		}
		s += ": " + m.Ty.String()
	}
	return s + "}"
}
func (TypeLit) Kind() Kind         { return KindTypeLit }
func (TypeLit) IsNever() bool      { return false }
func (t TypeLit) CheapClone() Type { return t }
func (t TypeLit) Meta() Metadata   { return t.Md }

// Ref is a named reference to a type (possibly generic), e.g. MyAlias
// or List<T>. The narrowing core treats Ref as an opaque handle and
// relies on the external normalizer to resolve/break cycles at use
// sites (spec.md §9, Cyclic Type graphs).
type Ref struct {
	TypeName string
	TypeArgs []Type
	Md       Metadata
}

func (r Ref) String() string {
	if len(r.TypeArgs) == 0 {
		return r.TypeName
	}
	s := r.TypeName + "<"
	for i, a := range r.TypeArgs {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ">"
}
func (Ref) Kind() Kind         { return KindRef }
func (Ref) IsNever() bool      { return false }
func (r Ref) CheapClone() Type { return r }
func (r Ref) Meta() Metadata   { return r.Md }

// QueryExprKind discriminates what a Query type's expr names.
type QueryExprKind int

const (
	QueryEntityName QueryExprKind = iota
)

// Query is `typeof expr`.
type Query struct {
	ExprKind QueryExprKind
	ExprName string
	Md       Metadata
}

func (q Query) String() string   { return "typeof " + q.ExprName }
func (Query) Kind() Kind         { return KindQuery }
func (Query) IsNever() bool      { return false }
func (q Query) CheapClone() Type { return q }
func (q Query) Meta() Metadata   { return q.Md }

// Mapped is a mapped type, e.g. { [P in keyof K]: V }.
type Mapped struct {
	KeyOf Type
	Value Type
	Md    Metadata
}

func (m Mapped) String() string {
	return "{[P in keyof " + m.KeyOf.String() + "]: " + m.Value.String() + "}"
}
func (Mapped) Kind() Kind         { return KindMapped }
func (Mapped) IsNever() bool      { return false }
func (m Mapped) CheapClone() Type { return m }
func (m Mapped) Meta() Metadata   { return m.Md }

// OperatorKind discriminates the supported type operators.
type OperatorKind int

const (
	OperatorKeyOf OperatorKind = iota
	OperatorExtract
)

// Operator is a unary/binary type-level operator application, e.g.
// keyof K or Extract<K, V>.
type Operator struct {
	Op   OperatorKind
	Args []Type
	Md   Metadata
}

func (o Operator) String() string {
	switch o.Op {
	case OperatorKeyOf:
		return "keyof " + o.Args[0].String()
	case OperatorExtract:
		return "Extract<" + o.Args[0].String() + ", " + o.Args[1].String() + ">"
	default:
		return "operator"
	}
}
func (Operator) Kind() Kind         { return KindOperator }
func (Operator) IsNever() bool      { return false }
func (o Operator) CheapClone() Type { return o }
func (o Operator) Meta() Metadata   { return o.Md }

// Param is a type parameter reference, e.g. T inside a generic body.
type Param struct {
	Name string
	Md   Metadata
}

func (p Param) String() string   { return p.Name }
func (Param) Kind() Kind         { return KindParam }
func (Param) IsNever() bool      { return false }
func (p Param) CheapClone() Type { return p }
func (p Param) Meta() Metadata   { return p.Md }

// Enum is a named enum declaration.
type Enum struct {
	Name     string
	Variants []string
	Md       Metadata
}

func (e Enum) String() string   { return "enum " + e.Name }
func (Enum) Kind() Kind         { return KindEnum }
func (Enum) IsNever() bool      { return false }
func (e Enum) CheapClone() Type { return e }
func (e Enum) Meta() Metadata   { return e.Md }

// EnumVariant is one member of an Enum, optionally a specific named
// variant (Name == "" denotes "any variant of EnumName").
type EnumVariant struct {
	EnumName string
	Name     string
	Md       Metadata
}

func (v EnumVariant) String() string {
	if v.Name == "" {
		return v.EnumName
	}
	return v.EnumName + "." + v.Name
}
func (EnumVariant) Kind() Kind         { return KindEnumVariant }
func (EnumVariant) IsNever() bool      { return false }
func (v EnumVariant) CheapClone() Type { return v }
func (v EnumVariant) Meta() Metadata   { return v.Md }
