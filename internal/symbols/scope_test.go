package symbols

import (
	"testing"

	"github.com/narrowhq/narrow/internal/typesystem"
)

func TestScopeResolveLocalThenParent(t *testing.T) {
	root := NewGlobalScope()
	root.InsertVar("x", &VarInfo{DeclaredTy: typesystem.Keyword{Name: "string"}})

	child := root.WithChild(KindBlock)
	if _, owner, ok := child.Resolve("x"); !ok || owner != root {
		t.Fatalf("expected to resolve x in parent scope")
	}

	child.InsertVar("x", &VarInfo{DeclaredTy: typesystem.Keyword{Name: "string"}, Copied: true})
	if v, owner, ok := child.Resolve("x"); !ok || owner != child || !v.Copied {
		t.Fatalf("expected local shadow to win")
	}
}

func TestIsInLoopBodyStopsAtFunction(t *testing.T) {
	fn := NewGlobalScope().WithChild(KindFunction)
	loop := fn.WithLoopBodyChild(false)
	block := loop.WithChild(KindBlock)
	if !block.IsInLoopBody() {
		t.Fatalf("nested block inside loop body should report true")
	}
	innerFn := loop.WithChild(KindFunction)
	if innerFn.IsInLoopBody() {
		t.Fatalf("loop-body-ness must not cross an inner function boundary")
	}
}

func TestSnapshotRestoreVars(t *testing.T) {
	s := NewGlobalScope()
	s.InsertVar("x", &VarInfo{ActualTy: typesystem.Keyword{Name: "string"}})
	snap := s.SnapshotVars()

	s.InsertVar("x", &VarInfo{ActualTy: typesystem.Keyword{Name: "number"}})
	if v, _ := s.GetVar("x"); !typesystem.Equal(v.ActualTy, typesystem.Keyword{Name: "number"}) {
		t.Fatalf("expected mutated value before restore")
	}

	s.RestoreVars(snap)
	if v, _ := s.GetVar("x"); !typesystem.Equal(v.ActualTy, typesystem.Keyword{Name: "string"}) {
		t.Fatalf("expected restored value, got %v", v.ActualTy)
	}
}

func TestMergeVarInfo(t *testing.T) {
	a := &VarInfo{ActualTy: typesystem.Keyword{Name: "string"}}
	b := &VarInfo{ActualTy: typesystem.Keyword{Name: "number"}, Initialized: true}
	m := Merge(a, b)
	if !m.Initialized {
		t.Fatalf("expected or-folded Initialized flag")
	}
	if m.ActualTy.String() != "(number | string)" {
		t.Fatalf("expected joined union, got %s", m.ActualTy.String())
	}
}
