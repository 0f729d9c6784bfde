package env

import "lisc/internal/ir"

// Env is the flat symbol table for one compilation session: name to
// backend value, unique keys. It is created empty, mutated only by the
// binding special form during codegen, and never shared between
// sessions. There is no outer scope; nesting would chain environments.
type Env struct {
	table map[string]ir.Value
}

// New creates an empty environment.
func New() *Env {
	return &Env{table: map[string]ir.Value{}}
}

// Set binds name to value, overwriting any prior binding.
func (e *Env) Set(name string, v ir.Value) {
	e.table[name] = v
}

// Get returns the value bound to name, if any.
func (e *Env) Get(name string) (ir.Value, bool) {
	v, ok := e.table[name]
	return v, ok
}

// Len reports the number of bindings.
func (e *Env) Len() int {
	return len(e.table)
}
