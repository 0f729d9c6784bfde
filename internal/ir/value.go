package ir

import (
	"fmt"
	"strconv"

	"github.com/nukata/goarith"
)

// Value is an operand the backend works with: an integer constant, a
// builtin operation reference, or the result of an earlier instruction.
type Value interface {
	fmt.Stringer
	value()
}

// Const is an integer constant.
type Const struct {
	N goarith.Number
}

// Op is a reference to one of the backend's builtin operations.
type Op struct {
	Name  string
	Arity int
	code  byte
	apply func(args []goarith.Number) goarith.Number
}

// Ref is the result of the instruction at Index in the module.
type Ref struct {
	Index int
}

func (*Const) value() {}
func (*Op) value()    {}
func (*Ref) value()   {}

func (c *Const) String() string { return fmt.Sprint(c.N) }
func (o *Op) String() string    { return o.Name }
func (r *Ref) String() string   { return "%" + strconv.Itoa(r.Index) }

// constInt64 extracts a constant's value for encoding. Folding can
// overflow into a big integer, which has no wire representation here.
func constInt64(n goarith.Number) (int64, bool) {
	switch v := n.(type) {
	case goarith.Int32:
		return int64(v), true
	case goarith.Int64:
		return int64(v), true
	}
	return 0, false
}
