package env

import (
	"testing"

	"lisc/internal/ir"
)

func TestEnv_SetGet(t *testing.T) {
	e := New()
	if _, ok := e.Get("a"); ok {
		t.Fatal("fresh environment must be empty")
	}

	b := ir.NewBuilder(&ir.Module{})
	e.Set("a", b.Constant(1))
	v, ok := e.Get("a")
	if !ok || v.String() != "1" {
		t.Fatalf("want a=1, got %v (ok=%v)", v, ok)
	}

	e.Set("a", b.Constant(2))
	if v, _ := e.Get("a"); v.String() != "2" {
		t.Fatalf("overwrite: want 2, got %s", v)
	}
	if e.Len() != 1 {
		t.Fatalf("want 1 binding, got %d", e.Len())
	}
}

func TestEnv_SessionsAreIndependent(t *testing.T) {
	b := ir.NewBuilder(&ir.Module{})
	a, c := New(), New()
	a.Set("x", b.Constant(1))
	if _, ok := c.Get("x"); ok {
		t.Fatal("environments must not share bindings")
	}
}
