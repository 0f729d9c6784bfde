package codegen

import (
	"fmt"

	"lisc/internal/ast"
	"lisc/internal/diag"
	"lisc/internal/env"
	"lisc/internal/ir"
)

// Backend is the collaborator that realizes values: constants for
// integer literals, composites for generic call forms. It only ever
// receives already-resolved values, never names.
type Backend interface {
	Constant(v int64) ir.Value
	Composite(vals []ir.Value) (ir.Value, error)
}

// A special form is handled by the generator itself instead of being
// forwarded to the backend. Handlers return handled=false when the form
// does not match their shape, sending it down the generic call path.
type specialForm func(g *Generator, form *ast.ListExpr) (v ir.Value, handled bool, err error)

// Generator lowers syntax trees to backend values with a post-order
// walk, binding names into the session environment as a side effect.
type Generator struct {
	backend Backend
	env     *env.Env
	diag    *diag.Reporter
	special map[string]specialForm
}

// New creates a generator over the given backend and environment.
func New(backend Backend, e *env.Env, d *diag.Reporter) *Generator {
	return &Generator{
		backend: backend,
		env:     e,
		diag:    d,
		special: map[string]specialForm{
			"set": genSet,
		},
	}
}

// Generate lowers one expression to a backend value. On failure no
// value is returned and the error has been reported once, where it was
// first detected; callers propagate without re-reporting.
func (g *Generator) Generate(node ast.Node) (ir.Value, error) {
	switch n := node.(type) {
	case *ast.NumberExpr:
		return g.backend.Constant(n.Value), nil
	case *ast.IdentExpr:
		v, ok := g.env.Get(n.Name)
		if !ok {
			return nil, g.errorf(UndefinedSymbol, "undefined symbol %q", n.Name)
		}
		return v, nil
	case *ast.ListExpr:
		return g.generateList(n)
	default:
		return nil, g.diag.Report(fmt.Errorf("unknown node kind %d", node.Kind()))
	}
}

func (g *Generator) generateList(form *ast.ListExpr) (ir.Value, error) {
	if len(form.Items) == 0 {
		return nil, g.errorf(EmptyForm, "empty form")
	}

	if head, ok := form.Items[0].(*ast.IdentExpr); ok {
		if fn, ok := g.special[head.Name]; ok {
			if v, handled, err := fn(g, form); handled {
				return v, err
			}
		}
	}

	// Generic call: every item in source order, first failure wins and
	// the backend is never consulted.
	vals := make([]ir.Value, 0, len(form.Items))
	for _, item := range form.Items {
		v, err := g.Generate(item)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	v, err := g.backend.Composite(vals)
	if err != nil {
		return nil, g.diag.Report(err)
	}
	return v, nil
}

// genSet handles (set name expr): the value expression is generated
// under the same environment, then bound to the name, overwriting any
// prior binding. Nothing is bound when the value expression fails. A
// list with a "set" head but a different item count is a generic call.
func genSet(g *Generator, form *ast.ListExpr) (ir.Value, bool, error) {
	if len(form.Items) != 3 {
		return nil, false, nil
	}
	name, ok := form.Items[1].(*ast.IdentExpr)
	if !ok {
		return nil, true, g.errorf(BadSpecialForm, "set: %s is not an identifier", form.Items[1])
	}
	v, err := g.Generate(form.Items[2])
	if err != nil {
		return nil, true, err
	}
	g.env.Set(name.Name, v)
	return v, true, nil
}

func (g *Generator) errorf(kind ErrorKind, format string, args ...any) error {
	return g.diag.Report(&Error{Kind: kind, Msg: fmt.Sprintf(format, args...)})
}
