package ir

import (
	"errors"
	"fmt"

	"github.com/nukata/goarith"
)

// Builder constructs backend values inside an implicit module context:
// constants are immediate, call forms become instructions appended to
// the module. A builtin applied to all-constant operands is folded at
// build time unless NoFold is set; set NoFold when the whole program
// must be materialized in the module (encoding, execution on the VM).
type Builder struct {
	mod    *Module
	NoFold bool
}

// NewBuilder creates a builder emitting into mod.
func NewBuilder(mod *Module) *Builder {
	return &Builder{mod: mod}
}

// Module returns the build context the builder emits into.
func (b *Builder) Module() *Module {
	return b.mod
}

// Constant returns the backend value for an integer literal.
func (b *Builder) Constant(v int64) Value {
	return &Const{N: goarith.AsNumber(v)}
}

// Composite realizes a call form from already-computed values. The
// sequence must be non-empty and its first element names the operation.
func (b *Builder) Composite(vals []Value) (Value, error) {
	if len(vals) == 0 {
		return nil, errors.New("composite needs at least one value")
	}
	op, ok := vals[0].(*Op)
	if !ok {
		return nil, fmt.Errorf("%s is not an operation", vals[0])
	}
	args := vals[1:]
	if len(args) != op.Arity {
		return nil, fmt.Errorf("%s expects %d operands, got %d", op.Name, op.Arity, len(args))
	}

	if !b.NoFold {
		if ns, ok := constOperands(args); ok {
			return &Const{N: op.apply(ns)}, nil
		}
	}
	for _, a := range args {
		if _, ok := a.(*Op); ok {
			return nil, fmt.Errorf("operation %s used as a value", a)
		}
	}
	b.mod.Insts = append(b.mod.Insts, Inst{Op: op, Args: args})
	return &Ref{Index: len(b.mod.Insts) - 1}, nil
}

func constOperands(args []Value) ([]goarith.Number, bool) {
	ns := make([]goarith.Number, len(args))
	for i, a := range args {
		c, ok := a.(*Const)
		if !ok {
			return nil, false
		}
		ns[i] = c.N
	}
	return ns, true
}
