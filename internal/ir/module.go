package ir

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Encoded module layout: "LBC" magic and a version byte, a constant
// pool of 64-bit little-endian integers, then the instruction list.
// Each instruction is an opcode byte, an operand count byte, and per
// operand a tag byte (TagConst or TagResult) plus a 32-bit index.
const (
	Magic   = "LBC"
	Version = 1

	TagConst  byte = 0
	TagResult byte = 1
)

// Module is the implicit build context: the ordered instruction list
// produced by one session's composites.
type Module struct {
	Insts []Inst
}

// Inst is one call instruction, an operation applied to operands that
// are constants or results of earlier instructions.
type Inst struct {
	Op   *Op
	Args []Value
}

// Encode serializes the module to its wire format. Constants are
// interned into a shared pool; operations used as operands and
// constants outside the 64-bit range have no representation and fail.
func (m *Module) Encode() ([]byte, error) {
	var pool []int64
	index := map[int64]int{}
	intern := func(v int64) int {
		if i, ok := index[v]; ok {
			return i
		}
		pool = append(pool, v)
		index[v] = len(pool) - 1
		return len(pool) - 1
	}

	type operand struct {
		tag byte
		idx uint32
	}
	encoded := make([][]operand, len(m.Insts))
	for i, inst := range m.Insts {
		for _, a := range inst.Args {
			switch v := a.(type) {
			case *Const:
				n, ok := constInt64(v.N)
				if !ok {
					return nil, fmt.Errorf("constant %s exceeds 64 bits", v)
				}
				encoded[i] = append(encoded[i], operand{TagConst, uint32(intern(n))})
			case *Ref:
				if v.Index < 0 || v.Index >= i {
					return nil, fmt.Errorf("instruction %d refers to result %%%d", i, v.Index)
				}
				encoded[i] = append(encoded[i], operand{TagResult, uint32(v.Index)})
			default:
				return nil, fmt.Errorf("operand %s has no wire representation", a)
			}
		}
	}

	out := []byte(Magic)
	out = append(out, Version)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(pool)))
	for _, v := range pool {
		out = binary.LittleEndian.AppendUint64(out, uint64(v))
	}
	out = binary.LittleEndian.AppendUint32(out, uint32(len(m.Insts)))
	for i, inst := range m.Insts {
		out = append(out, inst.Op.code, byte(len(encoded[i])))
		for _, op := range encoded[i] {
			out = append(out, op.tag)
			out = binary.LittleEndian.AppendUint32(out, op.idx)
		}
	}
	return out, nil
}

// String renders the instruction list one per line, result first:
//
//	%0 = add 1 2
//	%1 = mul %0 3
func (m *Module) String() string {
	var b strings.Builder
	for i, inst := range m.Insts {
		fmt.Fprintf(&b, "%%%d = %s", i, inst.Op.Name)
		for _, a := range inst.Args {
			b.WriteByte(' ')
			b.WriteString(a.String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
