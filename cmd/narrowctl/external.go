package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/narrowhq/narrow/internal/ast"
	"github.com/narrowhq/narrow/internal/diagnostics"
	"github.com/narrowhq/narrow/internal/flow"
	"github.com/narrowhq/narrow/internal/typesystem"
)

// replayExternal is the cmd/narrowctl driver's own stand-in for a real
// type checker, built against flow.External exactly as spec.md §6
// describes it: assignability, property access, and the iterable
// protocol answered by lookup against the fixture's own declared
// variable/property tables rather than a live checker. It exists
// because a fixture-replay CLI has no parser or checker behind it
// (spec.md §1 keeps both out of this module's scope) — only enough of
// External to drive the scenarios this package ships.
type replayExternal struct {
	vars     map[string]typesystem.Type
	reported []error
	// preventPatterns holds the type-name substrings a run config's
	// prevent_converting_to_children list names (SPEC_FULL.md §10,
	// §9 Open Question 3); any Type whose String() contains one of
	// these reports true from PreventConvertingToChildren.
	preventPatterns []string
}

func newReplayExternal(preventPatterns []string) *replayExternal {
	return &replayExternal{vars: map[string]typesystem.Type{}, preventPatterns: preventPatterns}
}

func (r *replayExternal) ValidateWithDefault(expr ast.Expression) (typesystem.Type, *flow.Facts) {
	return typesystem.Any{}, flow.NewFacts()
}

func (r *replayExternal) Assign(l, rhs typesystem.Type) error { return nil }

func (r *replayExternal) AssignWithOp(op ast.AssignOp, l, rhs typesystem.Type) (typesystem.Type, error) {
	return rhs, nil
}

func (r *replayExternal) Extends(a, b typesystem.Type) *bool {
	t, f := true, false
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
			return &f
		}
	}
	return nil
}

func (r *replayExternal) Normalize(ty typesystem.Type) typesystem.Type { return ty }

func (r *replayExternal) AccessProperty(ty typesystem.Type, key string, mode flow.AccessMode) (typesystem.Type, error) {
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

func (r *replayExternal) TypeOfVar(name string, mode flow.AccessMode) (typesystem.Type, error) {
	if ty, ok := r.vars[name]; ok {
		return ty, nil
	}
	return nil, fmt.Errorf("no such var %q", name)
}

func (r *replayExternal) GetIterator(ty typesystem.Type) (typesystem.Type, error) {
	switch ty.(type) {
	case typesystem.Tuple, typesystem.Array:
		return ty, nil
	}
	return nil, fmt.Errorf("not iterable: %s", ty.String())
}

func (r *replayExternal) GetElementFromIterator(iterTy typesystem.Type, index int) (typesystem.Type, error) {
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

func (r *replayExternal) GetRestElements(iterTy typesystem.Type, from int) (typesystem.Type, error) {
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

func (r *replayExternal) GetIteratorElementType(ty typesystem.Type) (typesystem.Type, error) {
	switch t := ty.(type) {
	case typesystem.Array:
		return t.Elem, nil
	case typesystem.Tuple:
		return typesystem.NewUnion(t.Elems...), nil
	}
	return nil, fmt.Errorf("not iterable: %s", ty.String())
}

func (r *replayExternal) GetAsyncIteratorElementType(ty typesystem.Type) (typesystem.Type, error) {
	return r.GetIteratorElementType(ty)
}

func (r *replayExternal) ApplyTypeFactsToType(facts flow.TypeFacts, ty typesystem.Type) typesystem.Type {
	members := typesystem.Members(ty)
	kept := make([]typesystem.Type, 0, len(members))
	for _, m := range members {
		kw, isKw := m.(typesystem.Keyword)
		if facts.Has(flow.NENull) && isKw && kw.Name == "null" {
			continue
		}
		if facts.Has(flow.NEUndefined) && isKw && kw.Name == "undefined" {
			continue
		}
		if facts.Has(flow.NEUndefinedOrNull) && isKw && (kw.Name == "null" || kw.Name == "undefined") {
			continue
		}
		kept = append(kept, m)
	}
	if len(kept) == 0 {
		return typesystem.Never{}
	}
	return typesystem.NewUnion(kept...)
}

func (r *replayExternal) NarrowedTypeOfAssignment(declared, rhs typesystem.Type) typesystem.Type {
	if rhs == nil {
		return declared
	}
	return rhs
}

func (r *replayExternal) FindType(name string) (typesystem.Type, bool) { return nil, false }

func (r *replayExternal) PreventConvertingToChildren(ty typesystem.Type) bool {
	s := ty.String()
	for _, p := range r.preventPatterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func (r *replayExternal) Report(err error) {
	r.reported = append(r.reported, err)
}

// stampRunID attaches runID to every diagnostics.Error a replay
// External collected (SPEC_FULL.md §11): the core itself never sets
// RunID, only the driver, after a scenario finishes running.
func stampRunID(external flow.External, runID uuid.UUID) {
	r, ok := external.(*replayExternal)
	if !ok {
		return
	}
	for _, err := range r.reported {
		if de, ok := err.(*diagnostics.Error); ok {
			de.RunID = runID
		}
	}
}
