// Package diagnostics reconstructs the teacher's diagnostics package —
// absent from the retrieval pack — from its observed call shape
// (diagnostics.NewError(code, token, msg), .Token/.Code fields, a
// "line:col:code" dedup key) and implements the error taxonomy of
// spec.md §7.
package diagnostics

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/narrowhq/narrow/internal/token"
)

// Code enumerates the flat error kinds of spec.md §7.
type Code int

const (
	UndefinedSymbol Code = iota
	NoSuchVar
	NotVariable
	InvalidLhsOfAssign
	InvalidOperatorForLhs
	NotArrayType
	NotArrayTypeNorStringType
	BindingPatNotAllowedInRestPatArg
	RestArgMustBeVarOrMemberAccess
	InvalidRestPatternInOptionalChain
	DestructuringBindingNotAllowedInLhsOfForIn
	TypeAnnOnLhsOfForInLoops
	TypeAnnOnLhsOfForOfLoops
	InvalidExprOfLhsOfForIn
	InvalidExprOfLhsOfForOf
	WrongTypeForLhsOfForInLoop
	ForOfStringUsedInEs3
)

func (c Code) String() string {
	switch c {
	case UndefinedSymbol:
		return "UndefinedSymbol"
	case NoSuchVar:
		return "NoSuchVar"
	case NotVariable:
		return "NotVariable"
	case InvalidLhsOfAssign:
		return "InvalidLhsOfAssign"
	case InvalidOperatorForLhs:
		return "InvalidOperatorForLhs"
	case NotArrayType:
		return "NotArrayType"
	case NotArrayTypeNorStringType:
		return "NotArrayTypeNorStringType"
	case BindingPatNotAllowedInRestPatArg:
		return "BindingPatNotAllowedInRestPatArg"
	case RestArgMustBeVarOrMemberAccess:
		return "RestArgMustBeVarOrMemberAccess"
	case InvalidRestPatternInOptionalChain:
		return "InvalidRestPatternInOptionalChain"
	case DestructuringBindingNotAllowedInLhsOfForIn:
		return "DestructuringBindingNotAllowedInLhsOfForIn"
	case TypeAnnOnLhsOfForInLoops:
		return "TypeAnnOnLhsOfForInLoops"
	case TypeAnnOnLhsOfForOfLoops:
		return "TypeAnnOnLhsOfForOfLoops"
	case InvalidExprOfLhsOfForIn:
		return "InvalidExprOfLhsOfForIn"
	case InvalidExprOfLhsOfForOf:
		return "InvalidExprOfLhsOfForOf"
	case WrongTypeForLhsOfForInLoop:
		return "WrongTypeForLhsOfForInLoop"
	case ForOfStringUsedInEs3:
		return "ForOfStringUsedInEs3"
	default:
		return "NotVariable"
	}
}

// Error is a single diagnostic: a stable Code, the Token it is
// attached to (for span/line/column), and a human-readable Message.
// RunID is optional and is never populated by internal/flow itself —
// only cmd/narrowctl's driver stamps it, for correlating diagnostics
// across a fixture-replay run (SPEC_FULL.md §11).
type Error struct {
	Code    Code
	Token   token.Token
	Message string
	RunID   uuid.UUID
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", e.Token.Line, e.Token.Column, e.Code, e.Message)
}

// NewError constructs a diagnostic, matching the teacher's observed
// diagnostics.NewError(code, token, msg) call shape.
func NewError(code Code, tok token.Token, message string) *Error {
	return &Error{Code: code, Token: tok, Message: message}
}

// dedupKey mirrors the teacher's "line:col:code" dedup key.
func (e *Error) dedupKey() string {
	return fmt.Sprintf("%d:%d:%d", e.Token.Line, e.Token.Column, e.Code)
}
