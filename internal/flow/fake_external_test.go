package flow

import (
	"fmt"

	"github.com/narrowhq/narrow/internal/ast"
	"github.com/narrowhq/narrow/internal/typesystem"
)

// fakeExternal is a minimal, in-package stand-in for the External
// interface, good enough to exercise the narrowing core's own logic in
// tests without pulling in (or fabricating) a real type checker —
// spec.md §1 places the checker itself out of this module's scope.
type fakeExternal struct {
	vars      map[string]typesystem.Type
	preventTo map[string]bool // by Type.String()
	reported  []error
}

func newFakeExternal() *fakeExternal {
	return &fakeExternal{vars: map[string]typesystem.Type{}, preventTo: map[string]bool{}}
}

func (f *fakeExternal) ValidateWithDefault(expr ast.Expression) (typesystem.Type, *Facts) {
	return typesystem.Any{}, NewFacts()
}

func (f *fakeExternal) Assign(l, r typesystem.Type) error { return nil }

func (f *fakeExternal) AssignWithOp(op ast.AssignOp, l, r typesystem.Type) (typesystem.Type, error) {
	return r, nil
}

func (f *fakeExternal) Extends(a, b typesystem.Type) *bool {
	t := true
	ff := false
	if typesystem.Equal(a, b) {
		return &t
	}
	if lit, ok := a.(typesystem.Literal); ok {
		if kw, ok := b.(typesystem.Keyword); ok {
			switch lit.LKind {
			case typesystem.LiteralString:
				if kw.Name == "string" {
					return &t
				}
			case typesystem.LiteralNumber:
				if kw.Name == "number" {
					return &t
				}
			case typesystem.LiteralBoolean:
				if kw.Name == "boolean" {
					return &t
				}
			}
			return &ff
		}
	}
	if ka, ok := a.(typesystem.Keyword); ok {
		if kb, ok := b.(typesystem.Keyword); ok {
			if ka.Name != kb.Name {
				return &ff
			}
			return &t
		}
	}
	return nil
}

func (f *fakeExternal) Normalize(ty typesystem.Type) typesystem.Type { return ty }

func (f *fakeExternal) AccessProperty(ty typesystem.Type, key string, mode AccessMode) (typesystem.Type, error) {
	switch t := ty.(type) {
	case typesystem.TypeLit:
		for _, m := range t.Members {
			if m.Name == key {
				return m.Ty, nil
			}
		}
	case typesystem.Interface:
		for _, m := range t.Body {
			if m.Name == key {
				return m.Ty, nil
			}
		}
	}
	return nil, fmt.Errorf("no such property %q on %s", key, ty.String())
}

func (f *fakeExternal) TypeOfVar(name string, mode AccessMode) (typesystem.Type, error) {
	if ty, ok := f.vars[name]; ok {
		return ty, nil
	}
	return nil, fmt.Errorf("no such var %q", name)
}

func (f *fakeExternal) GetIterator(ty typesystem.Type) (typesystem.Type, error) {
	switch ty.(type) {
	case typesystem.Tuple, typesystem.Array:
		return ty, nil
	}
	return nil, fmt.Errorf("not iterable: %s", ty.String())
}

func (f *fakeExternal) GetElementFromIterator(iterTy typesystem.Type, index int) (typesystem.Type, error) {
	switch t := iterTy.(type) {
	case typesystem.Tuple:
		if index < len(t.Elems) {
			return t.Elems[index], nil
		}
		return typesystem.Keyword{Name: "undefined"}, nil
	case typesystem.Array:
		return t.Elem, nil
	}
	return nil, fmt.Errorf("not an iterator: %s", iterTy.String())
}

func (f *fakeExternal) GetRestElements(iterTy typesystem.Type, from int) (typesystem.Type, error) {
	switch t := iterTy.(type) {
	case typesystem.Tuple:
		if from >= len(t.Elems) {
			return typesystem.NewArray(typesystem.Never{}), nil
		}
		return typesystem.NewArray(typesystem.NewUnion(t.Elems[from:]...)), nil
	case typesystem.Array:
		return t, nil
	}
	return nil, fmt.Errorf("not an iterator: %s", iterTy.String())
}

func (f *fakeExternal) GetIteratorElementType(ty typesystem.Type) (typesystem.Type, error) {
	switch t := ty.(type) {
	case typesystem.Array:
		return t.Elem, nil
	case typesystem.Tuple:
		return typesystem.NewUnion(t.Elems...), nil
	}
	return nil, fmt.Errorf("not iterable: %s", ty.String())
}

func (f *fakeExternal) GetAsyncIteratorElementType(ty typesystem.Type) (typesystem.Type, error) {
	return f.GetIteratorElementType(ty)
}

func (f *fakeExternal) ApplyTypeFactsToType(facts TypeFacts, ty typesystem.Type) typesystem.Type {
	members := typesystem.Members(ty)
	kept := make([]typesystem.Type, 0, len(members))
	for _, m := range members {
		kw, isKw := m.(typesystem.Keyword)
		if facts.Has(NENull) && isKw && kw.Name == "null" {
			continue
		}
		if facts.Has(NEUndefined) && isKw && kw.Name == "undefined" {
			continue
		}
		if facts.Has(NEUndefinedOrNull) && isKw && (kw.Name == "null" || kw.Name == "undefined") {
			continue
		}
		kept = append(kept, m)
	}
	if len(kept) == 0 {
		return typesystem.Never{}
	}
	return typesystem.NewUnion(kept...)
}

func (f *fakeExternal) NarrowedTypeOfAssignment(declared, rhs typesystem.Type) typesystem.Type {
	if rhs == nil {
		return declared
	}
	return rhs
}

func (f *fakeExternal) FindType(name string) (typesystem.Type, bool) { return nil, false }

func (f *fakeExternal) PreventConvertingToChildren(ty typesystem.Type) bool {
	return f.preventTo[ty.String()]
}

func (f *fakeExternal) Report(err error) {
	f.reported = append(f.reported, err)
}
