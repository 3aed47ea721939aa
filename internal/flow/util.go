package flow

import "github.com/narrowhq/narrow/internal/typesystem"

// Comparator mirrors util.rs's Comparator<T>: a small utility for
// checking (l, r) and (r, l) with the same code. The evaluator does not
// use it; evaluateStrictEq tries each operand order by calling its
// matchers twice (e.g. `x === null` vs `null === x`).
type Comparator[T any] struct {
	Left  T
	Right T
}

// TakeIfAnyMatches tries op(Left, Right), then op(Right, Left),
// returning the first non-zero result.
func (c Comparator[T]) TakeIfAnyMatches(op func(a, b T) (any, bool)) (any, bool) {
	if v, ok := op(c.Left, c.Right); ok {
		return v, ok
	}
	return op(c.Right, c.Left)
}

// Both reports whether op holds for both sides.
func (c Comparator[T]) Both(op func(T) bool) bool {
	return op(c.Left) && op(c.Right)
}

// Any reports whether op holds for either side.
func (c Comparator[T]) Any(op func(T) bool) bool {
	return op(c.Left) || op(c.Right)
}

// optUnion mirrors util.rs's opt_union: returns the union of two
// optional types, or whichever side is present, or nil if neither is.
func optUnion(a, b typesystem.Type) typesystem.Type {
	switch {
	case a == nil && b == nil:
		return nil
	case a == nil:
		return b
	case b == nil:
		return a
	default:
		return typesystem.NewUnion(a, b)
	}
}

// reportable mirrors util.rs's ResultExt: a result that can be
// reported to a diagnostics.Storage (via the External.Report method)
// instead of propagated, matching spec.md §7's "pattern-assignment
// sub-recursions report errors to storage and continue" policy.
type reportable[T any] struct {
	val T
	err error
}

func ok[T any](v T) reportable[T]      { return reportable[T]{val: v} }
func failed[T any](err error) reportable[T] {
	var zero T
	return reportable[T]{val: zero, err: err}
}

// report records r's error (if any) via report and returns the value
// together with whether it succeeded.
func (r reportable[T]) report(reportFn func(error)) (T, bool) {
	if r.err != nil {
		reportFn(r.err)
		return r.val, false
	}
	return r.val, true
}
