package names

import "testing"

func TestNameOrderSignificant(t *testing.T) {
	ab := Of("a", "b")
	ba := Of("b", "a")
	if ab == ba {
		t.Fatalf("a.b must not equal b.a")
	}
}

func TestNameMapKey(t *testing.T) {
	m := map[Name]int{}
	m[Of("obj", "field")] = 1
	if m[Of("obj", "field")] != 1 {
		t.Fatalf("Name must be usable as a comparable map key")
	}
}

func TestNameChildParent(t *testing.T) {
	obj := Of("obj")
	child := obj.Child("field")
	if child.String() != "obj.field" {
		t.Fatalf("got %q", child.String())
	}
	parent, ok := child.Parent()
	if !ok || parent != obj {
		t.Fatalf("Parent() = %v, %v; want %v, true", parent, ok, obj)
	}
	if _, ok := obj.Parent(); ok {
		t.Fatalf("bare variable must have no parent")
	}
}

func TestNameLen(t *testing.T) {
	if Of("x").Len() != 1 {
		t.Fatalf("expected length 1")
	}
	if Of("x", "y", "z").Len() != 3 {
		t.Fatalf("expected length 3")
	}
}
