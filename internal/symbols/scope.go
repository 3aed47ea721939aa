package symbols

// Kind discriminates the lexical scopes the narrowing core enters,
// matching spec.md §4.8's `LoopBody{last}` kind and the ordinary
// block/function nesting every branch analyzer creates via
// `with_child`.
type Kind int

const (
	KindGlobal Kind = iota
	KindFunction
	KindBlock
	KindLoopBody
)

// Scope is the lexical scope the core reads variables from and writes
// narrowed actual types into. It is a plain parent-linked tree; the
// core is solely responsible for creating/discarding child scopes
// around branches (spec.md §5: no sharing across goroutines, so no
// locking is needed here).
type Scope struct {
	kind   Kind
	last   bool // meaningful only when kind == KindLoopBody
	parent *Scope
	vars   map[string]*VarInfo
	declng map[string]bool
}

// NewGlobalScope creates the outermost scope a narrowing analysis
// runs in.
func NewGlobalScope() *Scope {
	return &Scope{kind: KindGlobal, vars: map[string]*VarInfo{}, declng: map[string]bool{}}
}

// WithChild enters a new child scope of the given kind (spec.md §6's
// `with_child(kind, seed_facts, f)`; the seed_facts half of that
// interface belongs to flow.Facts, not to Scope itself).
func (s *Scope) WithChild(kind Kind) *Scope {
	return &Scope{kind: kind, parent: s, vars: map[string]*VarInfo{}, declng: map[string]bool{}}
}

// WithLoopBodyChild enters a LoopBody child scope, tagged with whether
// this is the final (errors-enabled) pass of the loop fixed point
// (spec.md §4.8).
func (s *Scope) WithLoopBodyChild(last bool) *Scope {
	c := s.WithChild(KindLoopBody)
	c.last = last
	return c
}

// Kind reports this scope's kind.
func (s *Scope) Kind() Kind { return s.kind }

// Parent returns the enclosing scope, or nil at the global scope.
func (s *Scope) Parent() *Scope { return s.parent }

// GetVar looks up name in this scope only (spec.md §6 `scope.get_var`).
func (s *Scope) GetVar(name string) (*VarInfo, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// SearchParent looks up name starting at the immediate parent and
// walking outward (spec.md §6 `scope.search_parent`), returning the
// VarInfo and the scope that owns it.
func (s *Scope) SearchParent(name string) (*VarInfo, *Scope, bool) {
	for p := s.parent; p != nil; p = p.parent {
		if v, ok := p.vars[name]; ok {
			return v, p, true
		}
	}
	return nil, nil, false
}

// Resolve looks up name in this scope, then outward through parents —
// the common "find wherever it lives" composition of get_var and
// search_parent that pattern assignment (spec.md §4.6 Identifier,
// steps 3-4) performs before deciding whether to mutate in place or
// shadow with a copy.
func (s *Scope) Resolve(name string) (*VarInfo, *Scope, bool) {
	if v, ok := s.vars[name]; ok {
		return v, s, true
	}
	return s.SearchParent(name)
}

// InsertVar installs/replaces the VarInfo for name in this scope
// (spec.md §6 `scope.insert_var`).
func (s *Scope) InsertVar(name string, v *VarInfo) {
	s.vars[name] = v
}

// IsInLoopBody reports whether this scope or an ancestor (stopping at
// the nearest enclosing function) is a LoopBody scope (spec.md §6
// `scope.is_in_loop_body`).
func (s *Scope) IsInLoopBody() bool {
	for c := s; c != nil; c = c.parent {
		if c.kind == KindLoopBody {
			return true
		}
		if c.kind == KindFunction {
			return false
		}
	}
	return false
}

// IsLastLoopPass reports whether this scope is a LoopBody scope on its
// final (errors-enabled) pass. Meaningless (returns false) outside a
// LoopBody scope.
func (s *Scope) IsLastLoopPass() bool {
	return s.kind == KindLoopBody && s.last
}

// Vars returns this scope's own variable map (spec.md §6 `scope.vars`).
// Callers that need a restorable snapshot should use SnapshotVars.
func (s *Scope) Vars() map[string]*VarInfo {
	return s.vars
}

// SnapshotVars returns a clone of this scope's variable map suitable
// for restoring later (spec.md §4.8 step 2's `orig_vars :=
// scope.vars.clone()`, and §3's "snapshots may be taken before a
// branch and restored after").
func (s *Scope) SnapshotVars() map[string]*VarInfo {
	snap := make(map[string]*VarInfo, len(s.vars))
	for k, v := range s.vars {
		snap[k] = v.Clone()
	}
	return snap
}

// RestoreVars replaces this scope's variable map wholesale (spec.md
// §4.8 step 3h's `scope.vars := orig_vars`).
func (s *Scope) RestoreVars(snapshot map[string]*VarInfo) {
	s.vars = snapshot
}

// Declaring reports whether name is currently being declared in this
// scope (spec.md §6 `scope.declaring`), supporting allow_ref_declaring
// forward references.
func (s *Scope) Declaring(name string) bool {
	return s.declng[name]
}

// SetDeclaring marks/unmarks name as currently being declared.
func (s *Scope) SetDeclaring(name string, declaring bool) {
	if declaring {
		s.declng[name] = true
	} else {
		delete(s.declng, name)
	}
}
