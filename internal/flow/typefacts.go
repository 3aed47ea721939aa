// Package flow implements the control-flow narrowing core of spec.md:
// the fact algebra, fact-propagating evaluator, branch analyzers for
// if/switch/ternary, the pattern-directed assignment engine, the loop
// fixed-point analyzer, and the ternary type adjuster. It is
// single-threaded and synchronous (spec.md §5): no goroutines, no I/O,
// no blocking.
//
// The package depends only on internal/ast, internal/names,
// internal/symbols, internal/typesystem, and internal/diagnostics —
// the assignability checker, subtype oracle, normalizer, property
// accessor, and scope/module machinery are all reached through the
// External interface (external.go), never implemented here, per
// spec.md §1's explicit out-of-scope boundary.
package flow

// TypeFacts is the dense bitset of orthogonal narrowing predicates
// spec.md §3 names. None is the bitwise-or identity. The member set is
// the familiar structural-narrowing predicate family (truthy/falsy,
// nullability, and one pair per `typeof` keyword result) rather than a
// per-property "has-property-X" bit: spec.md's "has-property-X" is
// illustrative, and concrete has-property narrowing is instead carried
// per-Name through CondFacts, not a single global bit: `'prop' in obj`
// installs obj's narrowed type in CondFacts.vars (see
// narrowTypesWithProperty in property.go), and a member used as a
// condition records Truthy/Falsy in CondFacts.facts under the member's
// own Name (obj.field).
type TypeFacts uint32

const (
	None TypeFacts = 0

	Truthy TypeFacts = 1 << iota
	Falsy

	NENull
	EQNull
	NEUndefined
	EQUndefined
	NEUndefinedOrNull
	EQUndefinedOrNull

	TypeofEQString
	TypeofEQNumber
	TypeofEQBoolean
	TypeofEQBigInt
	TypeofEQSymbol
	TypeofEQObject
	TypeofEQFunction
	TypeofEQUndefined

	TypeofNEString
	TypeofNENumber
	TypeofNEBoolean
	TypeofNEBigInt
	TypeofNESymbol
	TypeofNEObject
	TypeofNEFunction
	TypeofNEUndefined
)

// Or is the accumulate operation of spec.md §3 ("bitwise-or").
func (f TypeFacts) Or(g TypeFacts) TypeFacts { return f | g }

// AndNot is the exclude operation of spec.md §3 ("bitwise-and-not").
func (f TypeFacts) AndNot(g TypeFacts) TypeFacts { return f &^ g }

// Has reports whether every bit of g is set in f.
func (f TypeFacts) Has(g TypeFacts) bool { return f&g == g }

// typeofKeywordFact maps a keyword-type name to its TypeofEQ* /
// TypeofNE* bit pair, used by the evaluator's `typeof x === "T"`
// handling (spec.md §4.2).
func typeofKeywordFact(keyword string) (eq, ne TypeFacts, ok bool) {
	switch keyword {
	case "string":
		return TypeofEQString, TypeofNEString, true
	case "number":
		return TypeofEQNumber, TypeofNENumber, true
	case "boolean":
		return TypeofEQBoolean, TypeofNEBoolean, true
	case "bigint":
		return TypeofEQBigInt, TypeofNEBigInt, true
	case "symbol":
		return TypeofEQSymbol, TypeofNESymbol, true
	case "object":
		return TypeofEQObject, TypeofNEObject, true
	case "function":
		return TypeofEQFunction, TypeofNEFunction, true
	case "undefined":
		return TypeofEQUndefined, TypeofNEUndefined, true
	default:
		return None, None, false
	}
}
