package ir

import "github.com/nukata/goarith"

// The closed set of builtin operations. Opcode bytes are part of the
// encoded module format and must not be reordered.
var ops = []*Op{
	{Name: "add", Arity: 2, code: 1, apply: func(a []goarith.Number) goarith.Number {
		return a[0].Add(a[1])
	}},
	{Name: "sub", Arity: 2, code: 2, apply: func(a []goarith.Number) goarith.Number {
		return a[0].Sub(a[1])
	}},
	{Name: "mul", Arity: 2, code: 3, apply: func(a []goarith.Number) goarith.Number {
		return a[0].Mul(a[1])
	}},
	{Name: "neg", Arity: 1, code: 4, apply: func(a []goarith.Number) goarith.Number {
		return goarith.AsNumber(0).Sub(a[0])
	}},
}

// Builtins returns the builtin operations keyed by name, for a driver
// that wants to bind them into a session environment.
func Builtins() map[string]Value {
	m := make(map[string]Value, len(ops))
	for _, op := range ops {
		m[op.Name] = op
	}
	return m
}

// OpByCode resolves an opcode byte from an encoded module.
func OpByCode(code byte) (*Op, bool) {
	for _, op := range ops {
		if op.code == code {
			return op, true
		}
	}
	return nil, false
}

// Apply evaluates a builtin over already-realized numbers. The argument
// count must match the operation's arity.
func (o *Op) Apply(args []goarith.Number) goarith.Number {
	return o.apply(args)
}
