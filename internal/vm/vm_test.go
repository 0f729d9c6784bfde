package vm

import (
	"encoding/binary"
	"fmt"
	"testing"

	"lisc/internal/ir"
)

func encode(t *testing.T, build func(b *ir.Builder)) []byte {
	t.Helper()
	mod := &ir.Module{}
	b := ir.NewBuilder(mod)
	b.NoFold = true
	build(b)
	code, err := mod.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return code
}

func TestVM_RunsEncodedModule(t *testing.T) {
	ops := ir.Builtins()
	code := encode(t, func(b *ir.Builder) {
		// (mul (add 1 2) (neg 4)) lowered by hand
		sum, err := b.Composite([]ir.Value{ops["add"], b.Constant(1), b.Constant(2)})
		if err != nil {
			t.Fatalf("composite: %v", err)
		}
		neg, err := b.Composite([]ir.Value{ops["neg"], b.Constant(4)})
		if err != nil {
			t.Fatalf("composite: %v", err)
		}
		if _, err := b.Composite([]ir.Value{ops["mul"], sum, neg}); err != nil {
			t.Fatalf("composite: %v", err)
		}
	})

	res, err := Run(code)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := fmt.Sprint(res); got != "-12" {
		t.Fatalf("want -12, got %s", got)
	}
}

func TestVM_ReturnsLastResult(t *testing.T) {
	ops := ir.Builtins()
	code := encode(t, func(b *ir.Builder) {
		b.Composite([]ir.Value{ops["add"], b.Constant(1), b.Constant(1)})
		b.Composite([]ir.Value{ops["sub"], b.Constant(10), b.Constant(3)})
	})
	res, err := Run(code)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := fmt.Sprint(res); got != "7" {
		t.Fatalf("want 7, got %s", got)
	}
}

func TestVM_EmptyModule(t *testing.T) {
	code := encode(t, func(b *ir.Builder) {})
	if _, err := Run(code); err == nil {
		t.Fatal("empty module must fail")
	}
}

func TestVM_RejectsBadInput(t *testing.T) {
	ops := ir.Builtins()
	good := encode(t, func(b *ir.Builder) {
		b.Composite([]ir.Value{ops["add"], b.Constant(1), b.Constant(2)})
	})

	tests := []struct {
		name string
		code []byte
	}{
		{"empty", nil},
		{"bad magic", []byte("XYZ\x01")},
		{"bad version", []byte("LBC\x7f")},
		{"truncated", good[:len(good)-3]},
	}
	for _, tt := range tests {
		if _, err := New(tt.code); err == nil {
			t.Errorf("%s: want decode failure", tt.name)
		}
	}
}

func TestVM_RejectsForwardResultReference(t *testing.T) {
	// The builder can never emit an instruction referring to its own or
	// a later result, so the bytes are crafted by hand: one "add" whose
	// operands name result %0, the instruction itself.
	code := []byte(ir.Magic)
	code = append(code, ir.Version)
	code = binary.LittleEndian.AppendUint32(code, 0) // empty constant pool
	code = binary.LittleEndian.AppendUint32(code, 1)
	code = append(code, 1, 2) // add, two operands
	for i := 0; i < 2; i++ {
		code = append(code, ir.TagResult)
		code = binary.LittleEndian.AppendUint32(code, 0)
	}

	if _, err := Run(code); err == nil {
		t.Fatal("forward result reference must fail, not read uninitialized results")
	}
}
