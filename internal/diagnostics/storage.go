package diagnostics

import "sort"

// Storage is the append-only error sink of spec.md §5/§7
// ("storage.report(err)"; "append-only; writers must not assume
// position"). It reproduces the teacher's addError/addErrors/getErrors
// dedup-by-position-and-code, sort-by-line/column behavior.
type Storage struct {
	errs []*Error
	seen map[string]bool
}

// NewStorage creates an empty Storage.
func NewStorage() *Storage {
	return &Storage{seen: map[string]bool{}}
}

// Report appends err to storage, dropping duplicates that share the
// same line, column, and code (spec.md §7: "duplicate suppression is
// not the core's responsibility" — Storage is where it actually
// happens, one layer below the core that calls Report).
func (s *Storage) Report(err *Error) {
	key := err.dedupKey()
	if s.seen[key] {
		return
	}
	s.seen[key] = true
	s.errs = append(s.errs, err)
}

// Errors returns all reported diagnostics sorted by line then column,
// matching the teacher's getErrors ordering.
func (s *Storage) Errors() []*Error {
	out := make([]*Error, len(s.errs))
	copy(out, s.errs)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Token.Line != out[j].Token.Line {
			return out[i].Token.Line < out[j].Token.Line
		}
		return out[i].Token.Column < out[j].Token.Column
	})
	return out
}

// Len reports how many distinct diagnostics have been reported.
func (s *Storage) Len() int {
	return len(s.errs)
}
