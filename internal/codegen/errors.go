package codegen

// ErrorKind distinguishes the codegen failure families.
type ErrorKind int

const (
	// UndefinedSymbol: an identifier with no binding in the environment.
	UndefinedSymbol ErrorKind = iota
	// EmptyForm: a list with zero children.
	EmptyForm
	// BadSpecialForm: a special form whose shape the handler rejects.
	BadSpecialForm
)

// Error is a codegen failure.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }
