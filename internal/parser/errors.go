package parser

import "fmt"

// ErrorKind distinguishes the parse failure families.
type ErrorKind int

const (
	// UnexpectedToken: the current token cannot start an expression.
	UnexpectedToken ErrorKind = iota
	// UnterminatedList: end of input before a matching ')'.
	UnterminatedList
)

// Error is a parse failure at a source position. Line and Col are
// 1-based.
type Error struct {
	Kind ErrorKind
	Line int
	Col  int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %d:%d", e.Msg, e.Line, e.Col)
}
