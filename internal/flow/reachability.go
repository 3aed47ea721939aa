package flow

import "github.com/narrowhq/narrow/internal/ast"

// endsWithReturnOrThrow implements spec.md §4.3's
// ends_with_return_or_throw(stmt.cons): a syntactic check of whether a
// single statement's tail is `return` or `throw`. `break` and
// `continue` are not included here — this predicate backs the
// if-statement's "early return dominates" rule specifically, which
// cares only about unwinding the enclosing function (return/throw),
// not transferring control within it.
func endsWithReturnOrThrow(s ast.Statement) bool {
	switch v := s.(type) {
	case *ast.ReturnStatement:
		return true
	case *ast.ThrowStatement:
		return true
	case *ast.BlockStatement:
		if len(v.Stmts) == 0 {
			return false
		}
		return endsWithReturnOrThrow(v.Stmts[len(v.Stmts)-1])
	case *ast.IfStatement:
		if v.Alt == nil {
			return false
		}
		return endsWithReturnOrThrow(v.Cons) && endsWithReturnOrThrow(v.Alt)
	default:
		return false
	}
}

// isUnconditionalTerminator implements spec.md §4.9: a statement
// sequence is an unconditional terminator if its tail is return,
// throw, or continue; or an if/else whose both arms are terminators.
// break is explicitly not a terminator.
func isUnconditionalTerminator(stmts []ast.Statement) bool {
	if len(stmts) == 0 {
		return false
	}
	return statementTerminates(stmts[len(stmts)-1])
}

func statementTerminates(s ast.Statement) bool {
	switch v := s.(type) {
	case *ast.ReturnStatement, *ast.ThrowStatement, *ast.ContinueStatement:
		return true
	case *ast.BlockStatement:
		return isUnconditionalTerminator(v.Stmts)
	case *ast.IfStatement:
		if v.Alt == nil {
			return false
		}
		return statementTerminates(v.Cons) && statementTerminates(v.Alt)
	default:
		return false
	}
}

// isSwitchCaseBodyUnconditionalTermination reports whether every case
// body in cases is itself an unconditional terminator (spec.md §4.4
// step 4: "every case body is an unconditional terminator... mark
// in_unreachable").
func isSwitchCaseBodyUnconditionalTermination(cases []ast.SwitchCase) bool {
	if len(cases) == 0 {
		return false
	}
	for _, c := range cases {
		if !isUnconditionalTerminator(c.Cons) {
			return false
		}
	}
	return true
}
