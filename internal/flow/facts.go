package flow

// Facts is the pair (true_facts, false_facts) of spec.md §3,
// representing the two sides of a condition.
type Facts struct {
	True  *CondFacts
	False *CondFacts
}

// NewFacts returns an empty Facts pair.
func NewFacts() *Facts {
	return &Facts{True: NewCondFacts(), False: NewCondFacts()}
}

// Negate implements spec.md §4.1: `!Facts = { true: self.false, false:
// self.true }`. Negation involution (Testable Property 1) holds
// because Negate simply swaps the two pointers, twice.
func (f *Facts) Negate() *Facts {
	return &Facts{True: f.False, False: f.True}
}

// Take drains f into a fresh Facts pair, resetting f's two sides to
// empty (used wherever the analyzer does `cur_facts.take()` on the
// whole Facts pair rather than a single CondFacts side).
func (f *Facts) Take() *Facts {
	return &Facts{True: f.True.Take(), False: f.False.Take()}
}

// Clone returns a cheap deep-enough copy of both sides.
func (f *Facts) Clone() *Facts {
	return &Facts{True: f.True.Clone(), False: f.False.Clone()}
}

// Compose implements sequential composition of two Facts pairs
// side-by-side: "this Facts, then that Facts" (spec.md §4.1's `+=`
// lifted from CondFacts to Facts, used when a child expression's
// Facts must be folded into the parent's in sequence, e.g. a chain of
// `&&` operands).
func (f *Facts) Compose(rhs *Facts) {
	f.True.Compose(rhs.True)
	f.False.Compose(rhs.False)
}

// ComposeAnd implements spec.md §4.2's `&&` rule: "uses sequential for
// true-side, join for false-side" — `a && b` is true only when both a
// and b are true (so the true-sides chain sequentially, b's facts
// layered onto a's), but is false whenever *either* operand is false
// (so the false-sides only need to join, since either alone suffices).
func ComposeAnd(a, b *Facts) *Facts {
	trueSide := a.True.Clone()
	trueSide.Compose(b.True)
	return &Facts{
		True:  trueSide,
		False: Join(a.False, b.False),
	}
}

// ComposeOr implements spec.md §4.2's `||` rule ("swaps"): `a || b` is
// the De Morgan dual of `&&` under negation — true whenever either
// operand is true (join), false only when both are false (sequential
// chain of false-sides).
func ComposeOr(a, b *Facts) *Facts {
	return ComposeAnd(a.Negate(), b.Negate()).Negate()
}

// ComposeNullish implements `??` exactly as `||` (ComposeOr). No
// nullness-specific facts are recorded for `??`: the evaluator does
// not set the NE/EQ-Undefined-or-Null bits on either operand.
func ComposeNullish(a, b *Facts) *Facts {
	return ComposeOr(a, b)
}
