package typesystem

import "testing"

func str(s string) Keyword { return Keyword{Name: s} }

func TestNewUnionFlattensDedupsSorts(t *testing.T) {
	u := NewUnion(str("number"), NewUnion(str("string"), str("number")), Never{})
	got := u.String()
	want := "(number | string)"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestNewUnionSingleMemberCollapses(t *testing.T) {
	u := NewUnion(str("number"), Never{})
	if _, ok := u.(Union); ok {
		t.Fatalf("single-member union should collapse to its member")
	}
	if !Equal(u, str("number")) {
		t.Fatalf("expected number, got %s", u.String())
	}
}

func TestNewUnionAllNeverYieldsNever(t *testing.T) {
	u := NewUnion(Never{}, Never{})
	if !u.IsNever() {
		t.Fatalf("expected never")
	}
}

func TestEqual(t *testing.T) {
	if !Equal(str("string"), str("string")) {
		t.Fatalf("expected equal")
	}
	if Equal(str("string"), str("number")) {
		t.Fatalf("expected not equal")
	}
}

func TestMembersTreatsNonUnionAsSingleton(t *testing.T) {
	ms := Members(str("string"))
	if len(ms) != 1 || !Equal(ms[0], str("string")) {
		t.Fatalf("expected singleton slice")
	}
}
