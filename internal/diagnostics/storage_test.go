package diagnostics

import (
	"testing"

	"github.com/narrowhq/narrow/internal/token"
)

func TestStorageDedupesByPositionAndCode(t *testing.T) {
	s := NewStorage()
	tok := token.Token{Line: 3, Column: 5}
	s.Report(NewError(UndefinedSymbol, tok, "x"))
	s.Report(NewError(UndefinedSymbol, tok, "x again"))
	if s.Len() != 1 {
		t.Fatalf("expected dedup to collapse to 1, got %d", s.Len())
	}
}

func TestStorageSortsByLineThenColumn(t *testing.T) {
	s := NewStorage()
	s.Report(NewError(NoSuchVar, token.Token{Line: 2, Column: 1}, "b"))
	s.Report(NewError(NoSuchVar, token.Token{Line: 1, Column: 9}, "a"))
	s.Report(NewError(NoSuchVar, token.Token{Line: 1, Column: 2}, "c"))
	errs := s.Errors()
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d", len(errs))
	}
	if errs[0].Message != "c" || errs[1].Message != "a" || errs[2].Message != "b" {
		t.Fatalf("unexpected order: %v %v %v", errs[0].Message, errs[1].Message, errs[2].Message)
	}
}
